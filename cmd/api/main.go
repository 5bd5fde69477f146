package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/autoventa/autoventa-api/docs" // Swagger docs
	"github.com/autoventa/autoventa-api/internal/config"
	"github.com/autoventa/autoventa-api/internal/database"
	"github.com/autoventa/autoventa-api/internal/handlers"
	"github.com/autoventa/autoventa-api/internal/jobs"
	"github.com/autoventa/autoventa-api/internal/middleware"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/autoventa/autoventa-api/internal/storage"
	"github.com/autoventa/autoventa-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title AutoVenta API
// @version 1.0
// @description REST API for AutoVenta Dealership Management System

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Warn if Resend email is not configured
	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set. Set them in .env and ensure the From domain is verified in Resend dashboard.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Uploaded vehicle photos
		router.Static("/uploads", cfg.StoragePath)

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Password recovery (public)
		v1.POST("/users/send_recovery_code", h.User.SendRecoveryCode)
		v1.POST("/users/verify_recovery_code", h.User.VerifyRecoveryCode)
		v1.POST("/users/update_password_with_code", h.User.ResetPassword)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)
				admin.POST("/users/:user_id/restore", h.User.Restore)

				// Branch management
				admin.POST("/branches", h.Branch.Create)
				admin.PUT("/branches/:branch_id", h.Branch.Update)
				admin.DELETE("/branches/:branch_id", h.Branch.Delete)

				// Sale deletion reverses lead and vehicle statuses
				admin.DELETE("/sales/:sale_id", h.Sale.Delete)

				// Vehicle removal
				admin.DELETE("/vehicles/:vehicle_id", h.Vehicle.Delete)

				// Expense type catalog
				admin.POST("/finance/expense_types", h.Finance.CreateExpenseType)
				admin.PUT("/finance/expense_types/:type_id", h.Finance.UpdateExpenseType)

				// Marketplace platform linking
				admin.POST("/marketplace/connect", h.Marketplace.Connect)
			}

			// Seller + Admin routes (day-to-day dealership operations)
			sellerAdmin := protected.Group("")
			sellerAdmin.Use(middleware.RequireRole("admin", "vendedor"))
			{
				// Users
				sellerAdmin.GET("/users", h.User.Index)
				sellerAdmin.GET("/users/sellers", h.User.Sellers)

				// Branches
				sellerAdmin.GET("/branches", h.Branch.Index)
				sellerAdmin.GET("/branches/:branch_id", h.Branch.Show)

				// Vehicles
				sellerAdmin.GET("/vehicles", h.Vehicle.Index)
				sellerAdmin.GET("/vehicles/stats", h.Vehicle.GetStats)
				sellerAdmin.GET("/vehicles/:vehicle_id", h.Vehicle.Show)
				sellerAdmin.POST("/vehicles", h.Vehicle.Create)
				sellerAdmin.PUT("/vehicles/:vehicle_id", h.Vehicle.Update)
				sellerAdmin.PATCH("/vehicles/:vehicle_id/status", h.Vehicle.SetStatus)
				sellerAdmin.POST("/vehicles/:vehicle_id/photos", h.Vehicle.UploadPhotos)
				sellerAdmin.DELETE("/vehicles/:vehicle_id/photos", h.Vehicle.DeletePhoto)
				sellerAdmin.GET("/vehicles/:vehicle_id/tramites", h.Tramite.ByVehicle)

				// Leads
				sellerAdmin.GET("/leads", h.Lead.Index)
				sellerAdmin.GET("/leads/stats", h.Lead.GetStats)
				sellerAdmin.GET("/leads/:lead_id", h.Lead.Show)
				sellerAdmin.POST("/leads", h.Lead.Create)
				sellerAdmin.PUT("/leads/:lead_id", h.Lead.Update)
				sellerAdmin.POST("/leads/:lead_id/transition", h.Lead.Transition)
				sellerAdmin.POST("/leads/:lead_id/assign", h.Lead.Assign)
				sellerAdmin.POST("/leads/:lead_id/touch_contact", h.Lead.TouchContact)
				sellerAdmin.DELETE("/leads/:lead_id", h.Lead.Delete)

				// Quotes
				sellerAdmin.GET("/quotes", h.Quote.Index)
				sellerAdmin.GET("/quotes/:quote_id", h.Quote.Show)
				sellerAdmin.GET("/quotes/:quote_id/pdf", h.Quote.DownloadPDF)
				sellerAdmin.POST("/quotes", h.Quote.Create)
				sellerAdmin.PUT("/quotes/:quote_id", h.Quote.Update)
				sellerAdmin.POST("/quotes/:quote_id/accept", h.Quote.Accept)
				sellerAdmin.POST("/quotes/:quote_id/reject", h.Quote.Reject)
				sellerAdmin.DELETE("/quotes/:quote_id", h.Quote.Delete)

				// Sales
				sellerAdmin.GET("/sales", h.Sale.Index)
				sellerAdmin.GET("/sales/stats", h.Sale.GetStats)
				sellerAdmin.GET("/sales/:sale_id", h.Sale.Show)
				sellerAdmin.POST("/sales", h.Sale.Create)
				sellerAdmin.PUT("/sales/:sale_id", h.Sale.Update)
				sellerAdmin.POST("/sales/:sale_id/complete", h.Sale.Complete)
				sellerAdmin.GET("/sales/:sale_id/expenses", h.Sale.ListExpenses)
				sellerAdmin.PUT("/sales/:sale_id/expenses", h.Sale.ReplaceExpenses)

				// Appointments
				sellerAdmin.GET("/appointments", h.Appointment.Index)
				sellerAdmin.GET("/appointments/:appointment_id", h.Appointment.Show)
				sellerAdmin.POST("/appointments", h.Appointment.Create)
				sellerAdmin.PUT("/appointments/:appointment_id", h.Appointment.Update)
				sellerAdmin.POST("/appointments/:appointment_id/done", h.Appointment.MarkDone)
				sellerAdmin.POST("/appointments/:appointment_id/cancel", h.Appointment.Cancel)
				sellerAdmin.DELETE("/appointments/:appointment_id", h.Appointment.Delete)

				// Consignments
				sellerAdmin.GET("/consignments", h.Consignment.Index)
				sellerAdmin.GET("/consignments/:consignment_id", h.Consignment.Show)
				sellerAdmin.POST("/consignments", h.Consignment.Create)
				sellerAdmin.PUT("/consignments/:consignment_id", h.Consignment.Update)
				sellerAdmin.POST("/consignments/:consignment_id/sold", h.Consignment.MarkSold)
				sellerAdmin.POST("/consignments/:consignment_id/return", h.Consignment.Return)
				sellerAdmin.DELETE("/consignments/:consignment_id", h.Consignment.Delete)

				// Tramites
				sellerAdmin.GET("/tramites", h.Tramite.Index)
				sellerAdmin.GET("/tramites/:tramite_id", h.Tramite.Show)
				sellerAdmin.POST("/tramites", h.Tramite.Create)
				sellerAdmin.PUT("/tramites/:tramite_id", h.Tramite.Update)
				sellerAdmin.POST("/tramites/:tramite_id/start", h.Tramite.Start)
				sellerAdmin.POST("/tramites/:tramite_id/complete", h.Tramite.Complete)
				sellerAdmin.POST("/tramites/:tramite_id/cancel", h.Tramite.Cancel)
				sellerAdmin.DELETE("/tramites/:tramite_id", h.Tramite.Delete)

				// Company finance
				sellerAdmin.GET("/finance/expense_types", h.Finance.ExpenseTypes)
				sellerAdmin.GET("/finance/expenses", h.Finance.ListExpenses)
				sellerAdmin.POST("/finance/expenses", h.Finance.CreateExpense)
				sellerAdmin.PUT("/finance/expenses/:expense_id", h.Finance.UpdateExpense)
				sellerAdmin.DELETE("/finance/expenses/:expense_id", h.Finance.DeleteExpense)
				sellerAdmin.GET("/finance/incomes", h.Finance.ListIncomes)
				sellerAdmin.POST("/finance/incomes", h.Finance.CreateIncome)
				sellerAdmin.PUT("/finance/incomes/:income_id", h.Finance.UpdateIncome)
				sellerAdmin.DELETE("/finance/incomes/:income_id", h.Finance.DeleteIncome)
				sellerAdmin.GET("/finance/summary", h.Finance.MonthlySummary)

				// Marketplace listings and ads
				sellerAdmin.POST("/marketplace/vehicles/:vehicle_id/publish", h.Marketplace.Publish)
				sellerAdmin.POST("/marketplace/vehicles/:vehicle_id/unpublish", h.Marketplace.Unpublish)
				sellerAdmin.POST("/marketplace/sync", h.Marketplace.SyncAll)
				sellerAdmin.GET("/marketplace/ads/insights", h.Marketplace.AdsInsights)

				// Reports and exports
				sellerAdmin.GET("/reports/sales_csv", h.Report.SalesCSV)
				sellerAdmin.GET("/reports/commissions_csv", h.Report.CommissionsCSV)
				sellerAdmin.GET("/reports/inventory_csv", h.Report.InventoryCSV)
				sellerAdmin.GET("/reports/inventory_xlsx", h.Report.InventoryXLSX)
				sellerAdmin.GET("/reports/sales_xlsx", h.Report.SalesXLSX)
			}

			// Profile update: admin or profile owner only
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)
			protected.GET("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Show)
			// User can change their own password and locale
			protected.PATCH("/users/change_password", h.User.ChangePassword)
			protected.PATCH("/users/update_locale", h.User.UpdateLocale)

			// Notifications (users manage their own)
			// Static routes first so they are not matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.GET("/unread_count", h.Notification.UnreadCount)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
				notifications.DELETE("/:notification_id", h.Notification.Delete)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Expire stale quotes and appointments every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Expiring stale quotes and appointments...")
		if _, err := svcs.Quote.ExpireQuotes(ctx); err != nil {
			logger.Error("Error expiring quotes", "error", err)
		}
		_, err := svcs.Appointment.ExpireAppointments(ctx)
		return err
	})

	// Appointment reminders for the next 24 hours, every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sending appointment reminders...")
		return svcs.Appointment.SendReminders(ctx, 24)
	})

	// Daily follow-up nudges for leads without recent contact
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Notifying stale leads...")
		return svcs.Lead.NotifyStaleLeads(ctx, 7)
	})

	// Daily consignment expiry and tramite overdue notices
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking consignments and tramites...")
		if err := svcs.Consignment.NotifyExpiring(ctx, 7); err != nil {
			logger.Error("Error notifying expiring consignments", "error", err)
		}
		return svcs.Tramite.NotifyOverdue(ctx)
	})

	// Push the inventory to connected marketplaces every 6 hours
	worker.ScheduleEvery(6*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Syncing marketplace listings...")
		_, err := svcs.Marketplace.SyncAll(ctx, 0)
		return err
	})

	logger.Info("Scheduled recurring jobs")
}
