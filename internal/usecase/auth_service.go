package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
	"schoolhub/internal/middleware/auth"
)

// AuthService authenticates staff and issues session tokens.
type AuthService struct {
	staffRepo repository.StaffRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Staff     *model.Staff `json:"staff"`
}

// Login verifies credentials and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login failed: password mismatch",
			zap.String("staff_id", staff.ID.String()))
		return nil, domainErrors.ErrInvalidCredentials
	}

	if !staff.IsActive {
		return nil, domainErrors.ErrAccountInactive
	}

	token, expiresAt, err := auth.GenerateToken(s.jwtSecret, staff.ID, staff.SchoolID, staff.Email, staff.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Staff logged in",
		zap.String("staff_id", staff.ID.String()),
		zap.String("school_id", staff.SchoolID.String()),
		zap.String("role", staff.Role))

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Staff:     staff,
	}, nil
}

// CreateStaffInput carries a new staff account.
type CreateStaffInput struct {
	SchoolID  uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Phone     string
}

// CreateStaff registers a staff account with a bcrypt password hash.
func (s *AuthService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*model.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := &model.Staff{
		SchoolID:     input.SchoolID,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff returns a staff member by ID.
func (s *AuthService) GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// ListStaff returns a page of a school's staff.
func (s *AuthService) ListStaff(ctx context.Context, schoolID uuid.UUID, params *entity.PaginationParams) ([]model.Staff, entity.PaginationMeta, error) {
	params.Validate()
	staff, total, err := s.staffRepo.ListBySchool(ctx, schoolID, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return staff, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// UpdateStaffInput carries mutable staff fields. A non-empty Password
// rotates the stored hash.
type UpdateStaffInput struct {
	FirstName string
	LastName  string
	Role      string
	Phone     string
	Password  string
	IsActive  *bool
}

// UpdateStaff saves mutable staff fields.
func (s *AuthService) UpdateStaff(ctx context.Context, id uuid.UUID, input *UpdateStaffInput) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		staff.FirstName = input.FirstName
	}
	if input.LastName != "" {
		staff.LastName = input.LastName
	}
	if input.Role != "" {
		staff.Role = input.Role
	}
	if input.Phone != "" {
		staff.Phone = input.Phone
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = string(hash)
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
