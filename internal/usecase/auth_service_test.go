package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/usecase"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("valid credentials return a token", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		service := usecase.NewAuthService(staffRepo, "secret", time.Hour, logger)

		staff := &model.Staff{
			ID:           uuid.New(),
			SchoolID:     uuid.New(),
			Email:        "bursar@school.test",
			PasswordHash: hashFor(t, "hunter2"),
			Role:         model.StaffRoleBursar,
			IsActive:     true,
		}
		staffRepo.On("GetByEmail", ctx, "bursar@school.test").Return(staff, nil)

		result, err := service.Login(ctx, "bursar@school.test", "hunter2")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.True(t, result.ExpiresAt.After(time.Now()))
		assert.Equal(t, staff.ID, result.Staff.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		service := usecase.NewAuthService(staffRepo, "secret", time.Hour, logger)

		staffRepo.On("GetByEmail", ctx, "ghost@school.test").Return(nil, nil)

		_, err := service.Login(ctx, "ghost@school.test", "whatever")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		service := usecase.NewAuthService(staffRepo, "secret", time.Hour, logger)

		staff := &model.Staff{
			ID:           uuid.New(),
			SchoolID:     uuid.New(),
			PasswordHash: hashFor(t, "hunter2"),
			IsActive:     true,
		}
		staffRepo.On("GetByEmail", ctx, "bursar@school.test").Return(staff, nil)

		_, err := service.Login(ctx, "bursar@school.test", "hunter3")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		service := usecase.NewAuthService(staffRepo, "secret", time.Hour, logger)

		staff := &model.Staff{
			ID:           uuid.New(),
			SchoolID:     uuid.New(),
			PasswordHash: hashFor(t, "hunter2"),
			IsActive:     false,
		}
		staffRepo.On("GetByEmail", ctx, "old@school.test").Return(staff, nil)

		_, err := service.Login(ctx, "old@school.test", "hunter2")
		assert.ErrorIs(t, err, domainErrors.ErrAccountInactive)
	})
}

func TestAuthService_CreateStaff(t *testing.T) {
	ctx := context.Background()

	staffRepo := new(MockStaffRepository)
	service := usecase.NewAuthService(staffRepo, "secret", time.Hour, zap.NewNop())

	staffRepo.On("Create", ctx, mock.MatchedBy(func(s *model.Staff) bool {
		// The raw password must never reach the repository.
		return s.PasswordHash != "s3cret" && s.PasswordHash != ""
	})).Return(nil)

	staff, err := service.CreateStaff(ctx, &usecase.CreateStaffInput{
		SchoolID:  uuid.New(),
		Email:     "teacher@school.test",
		Password:  "s3cret",
		FirstName: "Ada",
		LastName:  "Obi",
		Role:      model.StaffRoleTeacher,
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte("s3cret")))
	assert.True(t, staff.IsActive)
}
