package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"schoolhub/internal/config"
	"schoolhub/internal/domain/billing"
	"schoolhub/internal/domain/model"
	"schoolhub/internal/infrastructure/database"
	"schoolhub/pkg/logger"
)

// seed mirrors the compiled-in plan catalog into the database and can
// bootstrap a first school with an admin account.
func main() {
	var (
		schoolName    = flag.String("school", "", "bootstrap a school with this name")
		subdomain     = flag.String("subdomain", "", "subdomain for the bootstrapped school")
		adminEmail    = flag.String("admin-email", "", "admin account email for the bootstrapped school")
		adminPassword = flag.String("admin-password", "", "admin account password")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db, zapLogger)

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)
	ctx := context.Background()

	if err := repos.Plan.Sync(ctx, catalogRows()); err != nil {
		zapLogger.Fatal("Failed to sync plan catalog", zap.Error(err))
	}
	zapLogger.Info("Plan catalog synced", zap.Int("plans", len(billing.Plans())))

	if *schoolName != "" {
		if *subdomain == "" || *adminEmail == "" || *adminPassword == "" {
			zapLogger.Fatal("Bootstrapping a school requires -subdomain, -admin-email and -admin-password")
		}
		bootstrapSchool(ctx, repos, zapLogger, *schoolName, *subdomain, *adminEmail, *adminPassword)
	}
}

// catalogRows converts the compiled-in catalog into database rows.
func catalogRows() []model.SubscriptionPlan {
	plans := billing.Plans()
	rows := make([]model.SubscriptionPlan, 0, len(plans))
	for _, p := range plans {
		features := make([]map[string]interface{}, 0, len(p.Features))
		for _, f := range p.Features {
			features = append(features, map[string]interface{}{
				"name":     f.Name,
				"included": f.Included,
			})
		}
		rows = append(rows, model.SubscriptionPlan{
			Slug:         string(p.Slug),
			Name:         p.Name,
			MonthlyPrice: p.MonthlyPrice,
			YearlyPrice:  p.YearlyPrice,
			MaxStudents:  p.MaxStudents,
			MaxTeachers:  p.MaxTeachers,
			MaxSchools:   p.MaxSchools,
			StorageGB:    p.StorageGB,
			Features:     model.JSONB{"features": features},
		})
	}
	return rows
}

func bootstrapSchool(ctx context.Context, repos *database.Repositories, zapLogger *zap.Logger, name, subdomain, email, password string) {
	existing, err := repos.School.GetBySubdomain(ctx, subdomain)
	if err != nil {
		zapLogger.Fatal("Failed to check subdomain", zap.Error(err))
	}
	if existing != nil {
		zapLogger.Info("School already exists, skipping bootstrap",
			zap.String("subdomain", subdomain))
		return
	}

	school := &model.School{
		Name:         name,
		Subdomain:    subdomain,
		ContactEmail: email,
		IsActive:     true,
	}
	if err := repos.School.Create(ctx, school); err != nil {
		zapLogger.Fatal("Failed to create school", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zapLogger.Fatal("Failed to hash admin password", zap.Error(err))
	}

	admin := &model.Staff{
		SchoolID:     school.ID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     name,
		Role:         model.StaffRoleAdmin,
		IsActive:     true,
	}
	if err := repos.Staff.Create(ctx, admin); err != nil {
		zapLogger.Fatal("Failed to create admin account", zap.Error(err))
	}

	zapLogger.Info("School bootstrapped",
		zap.String("school_id", school.ID.String()),
		zap.String("subdomain", subdomain),
		zap.String("admin_email", email))
}
