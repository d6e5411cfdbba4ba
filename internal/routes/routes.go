package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/audit"
	"github.com/ajoca/Barberia/internal/clock"
	"github.com/ajoca/Barberia/internal/config"
	"github.com/ajoca/Barberia/internal/handlers"
	infraRepo "github.com/ajoca/Barberia/internal/infra/repository"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/notifier"
	"github.com/ajoca/Barberia/internal/storage"
	ucAppointment "github.com/ajoca/Barberia/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	clk := clock.System{}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	whatsappQueue := notifier.NewWhatsAppQueue(rdb)
	notifierService := notifier.NewService(db, whatsappQueue)
	notifierDispatcher := notifier.NewDispatcher(notifierService)

	avatarUploader := storage.NewAvatarUploader(cfg)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		clk,
		auditDispatcher,
		notifierDispatcher,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		clk,
		auditDispatcher,
		notifierDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, clk)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barberHandler := handlers.NewBarberHandler(db, avatarUploader)
	serviceHandler := handlers.NewServiceHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateStatusUC,
		availabilityUC,
	)

	reviewHandler := handlers.NewReviewHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, notifierService)
	whatsappHandler := handlers.NewWhatsAppHandler(db, whatsappQueue, clk)
	analyticsHandler := handlers.NewAnalyticsHandler(db, clk)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/availability", appointmentHandler.Availability)
		api.GET("/services", serviceHandler.List)
		api.GET("/reviews", reviewHandler.List)
		api.GET("/reviews/barber/:id/stats", reviewHandler.BarberStats)
		api.GET("/reviews/service/:id/stats", reviewHandler.ServiceStats)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/users/profile", authHandler.Profile)

			secured.PUT("/barbers/:id", barberHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews/my-reviews", reviewHandler.MyReviews)
			secured.GET("/reviews/pending-reviews", reviewHandler.PendingReviews)
			secured.PUT("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PUT("/notifications/mark-all-read", notificationHandler.MarkAllRead)
			secured.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)

			// ------------------------------
			// WHATSAPP (bridge externo via Redis)
			// ------------------------------
			secured.GET("/whatsapp/status", whatsappHandler.Status)
			secured.GET("/whatsapp/messages", whatsappHandler.Messages)
			secured.GET("/whatsapp/appointments/reminders", whatsappHandler.Reminders)

			// ------------------------------
			// 👑 ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PUT("/services/:id", serviceHandler.Update)

				admin.POST("/notifications/send-test", notificationHandler.SendTest)
				admin.POST("/whatsapp/send-message", whatsappHandler.SendMessage)

				admin.GET("/analytics/business-metrics", analyticsHandler.BusinessMetrics)
				admin.GET("/analytics/barber-performance", analyticsHandler.BarberPerformance)
				admin.GET("/analytics/service-analytics", analyticsHandler.ServiceAnalytics)
				admin.GET("/analytics/revenue-chart", analyticsHandler.RevenueChart)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
