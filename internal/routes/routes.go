package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	"github.com/BruksfildServices01/saloon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/saloon-scheduler/internal/infra/ratelimit"
	infraRepo "github.com/BruksfildServices01/saloon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/saloon-scheduler/internal/usecase/appointment"
	ucWorkingDay "github.com/BruksfildServices01/saloon-scheduler/internal/usecase/workingday"
)

// Dependencies are the process-wide collaborators built in main.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Payments domain.PaymentGateway
	Limiter  ratelimit.Limiter
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	log := deps.Log

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB, log, cfg.BookingMaxRetries)
	catalogRepo := infraRepo.NewCatalogGormRepository(deps.DB)

	defaultBuffer := time.Duration(cfg.DefaultBufferMinutes) * time.Minute

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(catalogRepo, appointmentRepo, defaultBuffer)

	bookUC := ucAppointment.NewBookAppointment(
		catalogRepo,
		appointmentRepo,
		deps.Payments,
		deps.Audit,
		log,
		ucAppointment.BookingConfig{
			Timeout:       cfg.BookingTimeout,
			DefaultBuffer: defaultBuffer,
		},
	)

	confirmUC := ucAppointment.NewConfirmAppointment(catalogRepo, appointmentRepo, deps.Audit)
	cancelUC := ucAppointment.NewCancelAppointment(catalogRepo, appointmentRepo, deps.Audit)
	completeUC := ucAppointment.NewCompleteAppointment(catalogRepo, appointmentRepo, deps.Audit)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(catalogRepo, appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(catalogRepo, appointmentRepo)

	getWorkingDaysUC := ucWorkingDay.NewGetWorkingDays(catalogRepo, catalogRepo)
	updateWorkingDaysUC := ucWorkingDay.NewUpdateWorkingDays(catalogRepo, catalogRepo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, bookUC, log)

	appointmentHandler := handlers.NewAppointmentHandler(
		confirmUC,
		cancelUC,
		completeUC,
		listByDateUC,
		listByMonthUC,
		log,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(getWorkingDaysUC, updateWorkingDaysUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB, log)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/saloons/:saloonID/staff/:staffID")
		publicAPI.Use(middleware.RateLimit(deps.Limiter, log))
		{
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST(
				"/appointments",
				middleware.OptionalAuth(cfg.JWTSecret),
				publicHandler.CreateAppointment,
			)
		}

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/staff/:staffID/working-days", workingHoursHandler.Get)
			secured.PUT("/staff/:staffID/working-days", workingHoursHandler.Update)

			secured.GET("/staff/:staffID/appointments", appointmentHandler.ListByDate)
			secured.GET("/staff/:staffID/appointments/month", appointmentHandler.ListByMonth)

			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
