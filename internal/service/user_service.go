// Package service orchestrates the use cases: each operation loads
// what it needs from the repositories, asks the policy package for a
// decision and performs a single read-check-write sequence. Services
// hold no mutable state and are safe for concurrent use.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskhub/internal/auth"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

type UserService struct {
	users repository.UserRepositoryInterface
	auth  *auth.Service
}

func NewUserService(users repository.UserRepositoryInterface, authService *auth.Service) *UserService {
	return &UserService{users: users, auth: authService}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to team_member
}

// Register creates a user and issues a session token. The email is
// the unique handle; a taken email fails with ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	role := input.Role
	if role == "" {
		role = model.RoleTeamMember
	}
	if !model.ValidRole(role) {
		return nil, "", ErrInvalidState
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", unavailable(err)
	}
	if existing != nil {
		return nil, "", ErrDuplicateEmail
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           input.Name,
		HashedPassword: hash,
		Role:           role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", unavailable(err)
	}

	token, err := s.auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate verifies the credentials and issues a session token.
// A missing account and a wrong password both yield
// ErrInvalidCredentials so account existence is not revealed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", unavailable(err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !s.auth.CheckPassword(password, user.HashedPassword) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
