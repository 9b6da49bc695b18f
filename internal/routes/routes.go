package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// Deps are the lifecycle-scoped resources owned by the serve command.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     zerolog.Logger
	Audit   *audit.Dispatcher
	Locker  domain.SlotLocker
	Limiter redislock.AttemptLimiter
	Sender  notify.Sender
	Checks  map[string]handlers.Check
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	clock := timezone.Clock(cfg.ClinicTimezone)
	catalog := domain.Catalog{
		Branches: cfg.Branches,
		Slots:    cfg.Slots,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		catalog,
		d.Audit,
		clock,
	)
	if cfg.VerifyEmailDomain {
		createAppointmentUC.WithEmailCheck(validators.NewEmailDomainChecker(nil).DomainResolves)
	}

	setStatusUC := ucAppointment.NewSetStatus(
		appointmentRepo,
		catalog,
		d.Locker,
		domain.NewBookingCodeGenerator(),
		d.Sender,
		d.Audit,
		d.Log,
		clock,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		setStatusUC,
		ucAppointment.NewGetBookedSlots(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewStats(appointmentRepo, clock),
		ucAppointment.NewLookupAppointment(appointmentRepo),
		ucAppointment.NewPatientCancel(appointmentRepo, d.Audit, clock),
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		userRepo,
		d.Limiter,
		d.Audit,
		d.Log,
		cfg.JWTSecret,
		cfg.JWTTTL,
	)
	patientHandler := handlers.NewPatientHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	healthHandler := handlers.NewHealthHandler(d.Checks)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/appointments", appointmentHandler.Create)
	r.GET("/appointments/booked", appointmentHandler.Booked)
	r.POST("/appointments/lookup", appointmentHandler.Lookup)
	r.POST("/appointments/cancel", appointmentHandler.PatientCancel)

	r.POST("/users/login", authHandler.Login)

	// ======================================================
	// STAFF
	// ======================================================
	staff := r.Group("/")
	staff.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		staff.GET("/appointments", appointmentHandler.List)
		staff.GET("/appointments/stats", appointmentHandler.Stats)
		staff.GET("/appointments/:id", appointmentHandler.Get)
		staff.PATCH("/appointments/:id", appointmentHandler.UpdateStatus)

		staff.GET("/patients", patientHandler.List)
		staff.GET("/audit-logs", auditLogsHandler.List)
	}
}
