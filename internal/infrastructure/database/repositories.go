package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	adapterRepo "schoolhub/internal/adapter/repository"
	"schoolhub/internal/domain/repository"
)

// Repositories bundles every repository implementation for wiring.
type Repositories struct {
	School        repository.SchoolRepository
	Student       repository.StudentRepository
	Staff         repository.StaffRepository
	Class         repository.ClassRepository
	Subject       repository.SubjectRepository
	Admission     repository.AdmissionRepository
	Ticket        repository.TicketRepository
	Plan          repository.PlanRepository
	Subscription  repository.SubscriptionRepository
	Invoice       repository.InvoiceRepository
	Payment       repository.PaymentRepository
	PaymentMethod repository.PaymentMethodRepository
}

// NewRepositories creates all repository implementations
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		School:        adapterRepo.NewSchoolRepository(db, logger),
		Student:       adapterRepo.NewStudentRepository(db, logger),
		Staff:         adapterRepo.NewStaffRepository(db, logger),
		Class:         adapterRepo.NewClassRepository(db, logger),
		Subject:       adapterRepo.NewSubjectRepository(db, logger),
		Admission:     adapterRepo.NewAdmissionRepository(db, logger),
		Ticket:        adapterRepo.NewTicketRepository(db, logger),
		Plan:          adapterRepo.NewPlanRepository(db, logger),
		Subscription:  adapterRepo.NewSubscriptionRepository(db, logger),
		Invoice:       adapterRepo.NewInvoiceRepository(db, logger),
		Payment:       adapterRepo.NewPaymentRepository(db, logger),
		PaymentMethod: adapterRepo.NewPaymentMethodRepository(db, logger),
	}
}
