package handlers

import (
	"github.com/autoventa/autoventa-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Branch       *BranchHandler
	Vehicle      *VehicleHandler
	Lead         *LeadHandler
	Sale         *SaleHandler
	Quote        *QuoteHandler
	Appointment  *AppointmentHandler
	Consignment  *ConsignmentHandler
	Tramite      *TramiteHandler
	Finance      *FinanceHandler
	Notification *NotificationHandler
	Marketplace  *MarketplaceHandler
	Report       *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Branch:       NewBranchHandler(svcs.Branch),
		Vehicle:      NewVehicleHandler(svcs.Vehicle, svcs.Image),
		Lead:         NewLeadHandler(svcs.Lead),
		Sale:         NewSaleHandler(svcs.Sale),
		Quote:        NewQuoteHandler(svcs.Quote, svcs.Report),
		Appointment:  NewAppointmentHandler(svcs.Appointment),
		Consignment:  NewConsignmentHandler(svcs.Consignment),
		Tramite:      NewTramiteHandler(svcs.Tramite),
		Finance:      NewFinanceHandler(svcs.Finance),
		Notification: NewNotificationHandler(svcs.Notification),
		Marketplace:  NewMarketplaceHandler(svcs.Marketplace),
		Report:       NewReportHandler(svcs.Report, svcs.Export),
	}
}
