package auth_test

import (
	"testing"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	// Генерируем токен
	userID := uuid.New()
	token, err := service.GenerateToken(userID, model.RoleTeamLeader)

	// Проверяем, что токен создан без ошибок
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Парсим токен
	identity, err := service.ParseToken(token)

	// Проверяем, что из токена извлечены id и роль
	assert.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, model.RoleTeamLeader, identity.Role)
}

func TestParseToken_InvalidToken(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	// Пытаемся парсить неверный токен
	_, err := service.ParseToken("invalid-token")

	// Проверяем, что возникла ошибка
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	// Создаем токен с истекшим сроком действия
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    model.RoleTeamMember,
		"exp":     time.Now().Add(-1 * time.Hour).Unix(), // Токен истек 1 час назад
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte("test-secret-key"))

	// Пытаемся парсить истекший токен
	_, err := service.ParseToken(expiredToken)

	// Проверяем, что возникла ошибка
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewService("secret-one", 24*time.Hour)
	verifier := auth.NewService("secret-two", 24*time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), model.RoleTeamMember)
	assert.NoError(t, err)

	// Токен, подписанный другим секретом, не проходит проверку
	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	// Создаем токен без роли
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		// Отсутствует "role"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutRole, _ := token.SignedString([]byte("test-secret-key"))

	// Пытаемся парсить токен
	_, err := service.ParseToken(tokenWithoutRole)

	// Проверяем, что возникла ошибка
	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestParseToken_BadUserID(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	claims := jwt.MapClaims{
		"user_id": "not-a-valid-uuid",
		"role":    model.RoleTeamMember,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	badToken, _ := token.SignedString([]byte("test-secret-key"))

	_, err := service.ParseToken(badToken)
	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestHashAndCheckPassword(t *testing.T) {
	service := auth.NewService("test-secret-key", 24*time.Hour)

	hash, err := service.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, service.CheckPassword("password123", hash))
	assert.False(t, service.CheckPassword("wrong_password", hash))
}
