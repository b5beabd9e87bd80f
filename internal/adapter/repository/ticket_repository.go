package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "schoolhub/internal/domain/errors"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/domain/repository"
)

type ticketRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTicketRepository creates a new support ticket repository
func NewTicketRepository(db *gorm.DB, logger *zap.Logger) repository.TicketRepository {
	return &ticketRepository{db: db, logger: logger}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.SupportTicket) error {
	err := r.db.WithContext(ctx).Create(ticket).Error
	if err != nil {
		r.logger.Error("Failed to create support ticket",
			zap.String("school_id", ticket.SchoolID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create support ticket: %w", err)
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrTicketNotFound
		}
		r.logger.Error("Failed to get support ticket",
			zap.String("ticket_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}

	return &ticket, nil
}

func (r *ticketRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, status string, offset, limit int) ([]model.SupportTicket, int64, error) {
	var tickets []model.SupportTicket
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.SupportTicket{}).
		Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count support tickets",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count support tickets: %w", err)
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		r.logger.Error("Failed to list support tickets",
			zap.String("school_id", schoolID.String()),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list support tickets: %w", err)
	}

	return tickets, total, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.SupportTicket) error {
	err := r.db.WithContext(ctx).Save(ticket).Error
	if err != nil {
		r.logger.Error("Failed to update support ticket",
			zap.String("ticket_id", ticket.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update support ticket: %w", err)
	}
	return nil
}
