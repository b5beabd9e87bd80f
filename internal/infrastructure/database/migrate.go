package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Enum types must exist before AutoMigrate references them.
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.School{},
		&model.SubscriptionPlan{},
		&model.Subscription{},
		&model.Invoice{},
		&model.InvoiceLineItem{},
		&model.Payment{},
		&model.PaymentMethod{},
		&model.Staff{},
		&model.SchoolClass{},
		&model.Subject{},
		&model.Student{},
		&model.Admission{},
		&model.SupportTicket{},
		&model.AuditLog{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	// gen_random_uuid defaults on primary keys
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// createCustomTypes creates the enum types backing status columns.
func createCustomTypes(db *gorm.DB) error {
	statements := []string{
		`DO $$ BEGIN
			CREATE TYPE subscription_status AS ENUM ('trial', 'active', 'suspended', 'cancelled', 'inactive');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`,
		`DO $$ BEGIN
			CREATE TYPE invoice_status AS ENUM ('draft', 'sent', 'paid', 'overdue', 'cancelled', 'refunded');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// createCustomIndexes creates indexes GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// One current subscription per school
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_subscription_per_school ON subscriptions (school_id)`).Error; err != nil {
		return err
	}

	// Overdue scans: unpaid invoices past their due date
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_unpaid_due ON invoices (due_date) WHERE status <> 'paid'`).Error; err != nil {
		return err
	}

	return nil
}
