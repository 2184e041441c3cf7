package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/security"
	"scaffoldrent-backend/internal/service"
)

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           "u1",
		Email:        "ops@scaffoldrent.example",
		PasswordHash: string(hash),
		Name:         "Operator",
		Role:         domain.UserRoleOperator,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 10080)

	t.Run("ValidCredentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)
		user := testUser(t, "hunter2")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		access, refresh, err := svc.Login(ctx, user.Email, "hunter2")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)
		user := testUser(t, "hunter2")
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, user.Email, "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailHidesReason", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)
		userRepo.On("GetByEmail", ctx, "noone@example.com").Return(nil, repository.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "noone@example.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 10080)

	t.Run("IssuesNewPair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)
		user := testUser(t, "hunter2")
		userRepo.On("GetByID", ctx, "u1").Return(user, nil).Once()

		refresh, err := tokens.GenerateRefreshToken("u1", user.Email)
		assert.NoError(t, err)

		access, newRefresh, err := svc.Refresh(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)

		access, err := tokens.GenerateAccessToken("u1", "ops@scaffoldrent.example", "OPERATOR")
		assert.NoError(t, err)

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tokens)

		_, _, err := svc.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
