package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/model"
	"taskhub/internal/policy"
	"taskhub/internal/repository"
)

type ProjectService struct {
	projects repository.ProjectRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewProjectService(
	projects repository.ProjectRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface,
) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, users: users}
}

type CreateProjectInput struct {
	Name          string
	Description   string
	TeamMemberIDs []uuid.UUID
	Status        string // optional, defaults to not_started
	StartDate     *time.Time
	EndDate       *time.Time
}

type UpdateProjectInput struct {
	Name          string // empty keeps the current value
	Description   string
	Status        string
	EndDate       *time.Time
	TeamMemberIDs *[]uuid.UUID // nil keeps the current team
}

// Create persists a new project owned by the caller. Any
// authenticated identity may create a project; unknown team member
// ids are dropped rather than rejected.
func (s *ProjectService) Create(ctx context.Context, identity policy.Identity, input CreateProjectInput) (*model.Project, error) {
	status := input.Status
	if status == "" {
		status = model.ProjectNotStarted
	}
	if !model.ValidProjectStatus(status) {
		return nil, ErrInvalidState
	}

	members, err := s.users.GetByIDs(ctx, input.TeamMemberIDs)
	if err != nil {
		return nil, unavailable(err)
	}

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	project := &model.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   identity.ID,
		Status:      status,
		StartDate:   startDate,
		EndDate:     input.EndDate,
		Version:     1,
		TeamMembers: members,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, unavailable(err)
	}
	return project, nil
}

// Get returns a project with its tasks. NotFound before Forbidden, so
// a denied caller learns nothing beyond the id not resolving for them.
func (s *ProjectService) Get(ctx context.Context, identity policy.Identity, projectID uuid.UUID) (*model.Project, []model.Task, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, unavailable(err)
	}
	if project == nil {
		return nil, nil, ErrNotFound
	}

	if !policy.CanViewProject(identity, project) {
		return nil, nil, ErrForbidden
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, unavailable(err)
	}

	return project, tasks, nil
}

// List returns the projects the caller owns or belongs to. The filter
// is applied in the store query, never after the fact. Admins see
// everything.
func (s *ProjectService) List(ctx context.Context, identity policy.Identity) ([]model.Project, error) {
	var (
		projects []model.Project
		err      error
	)
	if identity.IsAdmin() {
		projects, err = s.projects.ListAll(ctx)
	} else {
		projects, err = s.projects.ListForUser(ctx, identity.ID)
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return projects, nil
}

// Update edits project metadata and optionally replaces the team.
// Only the owner or an admin may mutate; the write is guarded by the
// version read here and fails with ErrConflict if it moved.
func (s *ProjectService) Update(ctx context.Context, identity policy.Identity, projectID uuid.UUID, input UpdateProjectInput) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, unavailable(err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if !policy.CanMutateProject(identity, project) {
		return nil, ErrForbidden
	}

	if input.Name != "" {
		project.Name = input.Name
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if input.Status != "" {
		if !model.ValidProjectStatus(input.Status) {
			return nil, ErrInvalidState
		}
		project.Status = input.Status
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projects.UpdateVersioned(ctx, project); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, unavailable(err)
	}

	if input.TeamMemberIDs != nil {
		members, err := s.users.GetByIDs(ctx, *input.TeamMemberIDs)
		if err != nil {
			return nil, unavailable(err)
		}
		if err := s.projects.ReplaceTeamMembers(ctx, project, members); err != nil {
			return nil, unavailable(err)
		}
		project.TeamMembers = members
	}

	return project, nil
}

// AddTeamMember grants a user membership of the project.
func (s *ProjectService) AddTeamMember(ctx context.Context, identity policy.Identity, projectID, userID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, unavailable(err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if !policy.CanMutateProject(identity, project) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := s.projects.AddTeamMember(ctx, project, user); err != nil {
		return nil, unavailable(err)
	}
	if !project.HasMember(user.ID) {
		project.TeamMembers = append(project.TeamMembers, *user)
	}
	return project, nil
}

// RemoveTeamMember revokes a user's membership of the project.
func (s *ProjectService) RemoveTeamMember(ctx context.Context, identity policy.Identity, projectID, userID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return unavailable(err)
	}
	if project == nil {
		return ErrNotFound
	}

	if !policy.CanMutateProject(identity, project) {
		return ErrForbidden
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return unavailable(err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.projects.RemoveTeamMember(ctx, project, user); err != nil {
		return unavailable(err)
	}
	return nil
}

// Delete removes a project with its tasks and comments. Same gate as
// any other project mutation.
func (s *ProjectService) Delete(ctx context.Context, identity policy.Identity, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return unavailable(err)
	}
	if project == nil {
		return ErrNotFound
	}

	if !policy.CanMutateProject(identity, project) {
		return ErrForbidden
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return unavailable(err)
	}
	return nil
}
