package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Branch       BranchRepository
	Vehicle      VehicleRepository
	Lead         LeadRepository
	Sale         SaleRepository
	Quote        QuoteRepository
	Appointment  AppointmentRepository
	Consignment  ConsignmentRepository
	Tramite      TramiteRepository
	Finance      FinanceRepository
	Notification NotificationRepository
	RefreshToken RefreshTokenRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Branch:       NewBranchRepository(db),
		Vehicle:      NewVehicleRepository(db),
		Lead:         NewLeadRepository(db),
		Sale:         NewSaleRepository(db),
		Quote:        NewQuoteRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Consignment:  NewConsignmentRepository(db),
		Tramite:      NewTramiteRepository(db),
		Finance:      NewFinanceRepository(db),
		Notification: NewNotificationRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
	}
}
