package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "schoolhub/internal/adapter/handler/http"
	"schoolhub/internal/config"
	domainGateway "schoolhub/internal/domain/gateway"
	"schoolhub/internal/infrastructure/crypto"
	"schoolhub/internal/infrastructure/database"
	"schoolhub/internal/infrastructure/gateway"
	"schoolhub/internal/middleware/auth"
	"schoolhub/internal/usecase"
	pkgErrors "schoolhub/pkg/errors"
	"schoolhub/pkg/logger"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

// requestValidator adapts go-playground/validator to echo's Validator.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Errors that escape the handlers (unknown routes, middleware
	// failures) are normalized before Echo renders them.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(pkgErrors.ToHTTPError(err), c)
	}

	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// cardGateway picks the charge backend from config.
func (s *Server) cardGateway() domainGateway.CardGateway {
	if s.config.Service.MockPayments {
		s.logger.Info("Card charges routed to the mock gateway")
		return gateway.NewMockGateway(s.logger)
	}
	return gateway.NewStripeGateway(s.config.Service.StripeSecretKey, s.logger)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	cipher, err := crypto.NewAESTokenCipher(s.config.Service.EncryptionKey)
	if err != nil {
		s.logger.Fatal("Invalid encryption key", zap.Error(err))
	}

	tokenTTL := time.Duration(s.config.Service.TokenTTLHours) * time.Hour

	// Services
	subscriptionService := usecase.NewSubscriptionService(s.repos.Subscription, s.repos.School, s.logger)
	billingService := usecase.NewBillingService(
		s.repos.Invoice, s.repos.Payment, s.repos.PaymentMethod, s.repos.Subscription,
		s.cardGateway(), cipher, s.logger)
	authService := usecase.NewAuthService(s.repos.Staff, s.config.Service.JWTSecret, tokenTTL, s.logger)
	schoolService := usecase.NewSchoolService(s.repos.School, s.repos.Ticket, s.logger)
	enrollmentService := usecase.NewEnrollmentService(
		s.repos.Student, s.repos.Class, s.repos.Subject, s.repos.Admission, s.logger)

	// Handlers
	plansHandler := handlers.NewPlansHandler(s.logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, s.logger)
	billingHandler := handlers.NewBillingHandler(billingService, s.logger)
	authHandler := handlers.NewAuthHandler(authService, s.logger)
	schoolHandler := handlers.NewSchoolHandler(schoolService, s.logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/plans",
		},
	}

	// Everything under /api/v1 passes through the JWT middleware; the
	// public endpoints are skipped by prefix.
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/plans", plansHandler.GetPlans)
	v1.GET("/plans/:slug", plansHandler.GetPlan)

	// Schools
	schools := v1.Group("/schools")
	schools.POST("", schoolHandler.CreateSchool)
	schools.GET("", schoolHandler.ListSchools)
	schools.GET("/:id", schoolHandler.GetSchool)
	schools.PUT("/:id", schoolHandler.UpdateSchool)
	schools.GET("/:id/subscription", subscriptionHandler.GetSchoolSubscription)
	schools.GET("/:id/staff", authHandler.ListStaff)
	schools.POST("/:id/students", enrollmentHandler.CreateStudent)
	schools.GET("/:id/students", enrollmentHandler.ListStudents)
	schools.POST("/:id/classes", enrollmentHandler.CreateClass)
	schools.GET("/:id/classes", enrollmentHandler.ListClasses)
	schools.POST("/:id/subjects", enrollmentHandler.CreateSubject)
	schools.GET("/:id/subjects", enrollmentHandler.ListSubjects)
	schools.POST("/:id/admissions", enrollmentHandler.SubmitAdmission)
	schools.GET("/:id/admissions", enrollmentHandler.ListAdmissions)
	schools.POST("/:id/payment-methods", billingHandler.AddPaymentMethod)
	schools.GET("/:id/payment-methods", billingHandler.ListPaymentMethods)
	schools.POST("/:id/tickets", schoolHandler.OpenTicket)
	schools.GET("/:id/tickets", schoolHandler.ListTickets)

	// Staff
	v1.POST("/staff", authHandler.CreateStaff)
	v1.GET("/staff/:id", authHandler.GetStaff)
	v1.PUT("/staff/:id", authHandler.UpdateStaff)

	// Students / classes / subjects
	v1.GET("/students/:id", enrollmentHandler.GetStudent)
	v1.PUT("/students/:id", enrollmentHandler.UpdateStudent)
	v1.GET("/classes/:id", enrollmentHandler.GetClass)
	v1.PUT("/classes/:id", enrollmentHandler.UpdateClass)
	v1.PUT("/subjects/:id", enrollmentHandler.UpdateSubject)

	// Admissions
	v1.GET("/admissions/:id", enrollmentHandler.GetAdmission)
	v1.POST("/admissions/:id/approve", enrollmentHandler.ApproveAdmission)
	v1.POST("/admissions/:id/reject", enrollmentHandler.RejectAdmission)

	// Subscriptions
	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.ListSubscriptions)
	subscriptions.GET("/stats", subscriptionHandler.GetStats)
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
	subscriptions.POST("/:id/change-plan", subscriptionHandler.ChangePlan)
	subscriptions.POST("/:id/activate", subscriptionHandler.Activate)
	subscriptions.POST("/:id/suspend", subscriptionHandler.Suspend)
	subscriptions.POST("/:id/reactivate", subscriptionHandler.Reactivate)
	subscriptions.POST("/:id/cancel", subscriptionHandler.Cancel)
	subscriptions.POST("/:id/deactivate", subscriptionHandler.Deactivate)
	subscriptions.POST("/:id/invoices", billingHandler.IssueInvoice)
	subscriptions.GET("/:id/invoices", billingHandler.ListInvoices)

	// Invoices & payments
	v1.GET("/invoices/:id", billingHandler.GetInvoice)
	v1.POST("/invoices/:id/send", billingHandler.SendInvoice)
	v1.POST("/invoices/:id/payments", billingHandler.RecordPayment)
	v1.DELETE("/payment-methods/:id", billingHandler.DeletePaymentMethod)
	v1.GET("/billing/stats", billingHandler.GetStats)

	// Tickets
	v1.GET("/tickets/:id", schoolHandler.GetTicket)
	v1.PUT("/tickets/:id/status", schoolHandler.UpdateTicketStatus)
}
