package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

// SchoolService manages tenant schools and their support tickets.
type SchoolService struct {
	schoolRepo repository.SchoolRepository
	ticketRepo repository.TicketRepository
	logger     *zap.Logger
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo repository.SchoolRepository, ticketRepo repository.TicketRepository, logger *zap.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// CreateSchool registers a tenant. Subdomains are normalized to lower
// case and must be unique across the platform.
func (s *SchoolService) CreateSchool(ctx context.Context, school *model.School) error {
	school.Subdomain = strings.ToLower(strings.TrimSpace(school.Subdomain))

	existing, err := s.schoolRepo.GetBySubdomain(ctx, school.Subdomain)
	if err != nil {
		return err
	}
	if existing != nil {
		return domainErrors.ErrSubdomainTaken
	}

	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return err
	}

	s.logger.Info("School created",
		zap.String("school_id", school.ID.String()),
		zap.String("subdomain", school.Subdomain))
	return nil
}

// GetSchool returns a school by ID.
func (s *SchoolService) GetSchool(ctx context.Context, id uuid.UUID) (*model.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// ListSchools returns a page of schools.
func (s *SchoolService) ListSchools(ctx context.Context, params *entity.PaginationParams) ([]model.School, entity.PaginationMeta, error) {
	params.Validate()
	schools, total, err := s.schoolRepo.List(ctx, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return schools, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// UpdateSchool saves mutable school fields. The subdomain is immutable
// once registered.
func (s *SchoolService) UpdateSchool(ctx context.Context, id uuid.UUID, name, contactEmail, contactPhone, address string, isActive *bool) (*model.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		school.Name = name
	}
	if contactEmail != "" {
		school.ContactEmail = contactEmail
	}
	if contactPhone != "" {
		school.ContactPhone = contactPhone
	}
	if address != "" {
		school.Address = address
	}
	if isActive != nil {
		school.IsActive = *isActive
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// OpenTicket files a support ticket for a school.
func (s *SchoolService) OpenTicket(ctx context.Context, ticket *model.SupportTicket) error {
	if ticket.Priority == "" {
		ticket.Priority = model.TicketPriorityMedium
	}
	ticket.Status = model.TicketStatusOpen

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return err
	}

	s.logger.Info("Support ticket opened",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("school_id", ticket.SchoolID.String()),
		zap.String("priority", ticket.Priority))
	return nil
}

// GetTicket returns a ticket by ID.
func (s *SchoolService) GetTicket(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

// ListTickets returns a page of a school's tickets, optionally filtered
// by status.
func (s *SchoolService) ListTickets(ctx context.Context, schoolID uuid.UUID, status string, params *entity.PaginationParams) ([]model.SupportTicket, entity.PaginationMeta, error) {
	params.Validate()
	tickets, total, err := s.ticketRepo.ListBySchool(ctx, schoolID, status, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}
	return tickets, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// UpdateTicketStatus moves a ticket through its workflow.
func (s *SchoolService) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*model.SupportTicket, error) {
	switch status {
	case model.TicketStatusOpen, model.TicketStatusInProgress, model.TicketStatusResolved, model.TicketStatusClosed:
	default:
		return nil, domainErrors.NewValidationError("unknown ticket status: %s", status)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.Status = status
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
