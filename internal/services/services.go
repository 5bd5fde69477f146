package services

import (
	"net/http"
	"time"

	"github.com/autoventa/autoventa-api/internal/config"
	"github.com/autoventa/autoventa-api/internal/jobs"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Branch       *BranchService
	Vehicle      *VehicleService
	Lead         *LeadService
	Sale         *SaleService
	Quote        *QuoteService
	Appointment  *AppointmentService
	Consignment  *ConsignmentService
	Tramite      *TramiteService
	Finance      *FinanceService
	Notification *NotificationService
	Marketplace  *MarketplaceService
	Report       *ReportService
	Export       *ExportService
	Email        *EmailService
	Image        *ImageService
	Audit        *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(db)
	imageSvc := NewImageService(store)

	marketplaceClient := &http.Client{Timeout: 30 * time.Second}

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, worker, emailSvc, auditSvc),
		Branch:       NewBranchService(repos.Branch),
		Vehicle:      NewVehicleService(repos.Vehicle, auditSvc),
		Lead:         NewLeadService(repos.Lead, repos.User, notificationSvc, worker),
		Sale:         NewSaleService(repos.Sale, repos.Lead, repos.Vehicle, repos.User, notificationSvc, auditSvc, worker),
		Quote:        NewQuoteService(repos.Quote, repos.Lead, repos.Vehicle, notificationSvc, auditSvc, worker),
		Appointment:  NewAppointmentService(repos.Appointment, repos.Lead, notificationSvc, emailSvc, worker),
		Consignment:  NewConsignmentService(repos.Consignment, repos.Vehicle, notificationSvc),
		Tramite:      NewTramiteService(repos.Tramite, notificationSvc),
		Finance:      NewFinanceService(repos.Finance),
		Notification: notificationSvc,
		Marketplace:  NewMarketplaceService(cfg.MarketplaceURL, cfg.MarketplaceAPIKey, marketplaceClient, repos.Vehicle),
		Report:       NewReportService(repos.Sale, repos.Quote, repos.User),
		Export:       NewExportService(repos.Vehicle, repos.Sale),
		Email:        emailSvc,
		Image:        imageSvc,
		Audit:        auditSvc,
	}
}
