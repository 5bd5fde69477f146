package models

import (
	"time"
)

// Consignment represents a third-party vehicle left for sale on commission
type Consignment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	BranchID      uint       `gorm:"not null;index" json:"branch_id"`
	VehicleID     uint       `gorm:"not null;index" json:"vehicle_id"`
	OwnerName     string     `gorm:"not null" json:"owner_name"`
	OwnerPhone    string     `gorm:"not null" json:"owner_phone"`
	OwnerEmail    *string    `json:"owner_email"`
	AgreedPrice   float64    `gorm:"type:decimal(15,2);not null" json:"agreed_price"`
	CommissionPct float64    `gorm:"type:decimal(5,2);default:5" json:"commission_pct"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Status        string     `gorm:"default:activa;index" json:"status"`
	Note          *string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Branch  Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

// TableName specifies the table name for Consignment
func (Consignment) TableName() string {
	return "consignments"
}

// Consignment status constants
const (
	ConsignmentStatusActive   = "activa"
	ConsignmentStatusSold     = "vendida"
	ConsignmentStatusReturned = "devuelta"
	ConsignmentStatusExpired  = "vencida"
)

// CommissionAmount returns the dealership cut at the agreed price
func (c *Consignment) CommissionAmount() float64 {
	return c.AgreedPrice * c.CommissionPct / 100
}

// ConsignmentResponse is the JSON response format for consignments
type ConsignmentResponse struct {
	ID               uint       `json:"id"`
	BranchID         uint       `json:"branch_id"`
	VehicleID        uint       `json:"vehicle_id"`
	VehicleName      string     `json:"vehicle_name"`
	OwnerName        string     `json:"owner_name"`
	OwnerPhone       string     `json:"owner_phone"`
	OwnerEmail       *string    `json:"owner_email"`
	AgreedPrice      float64    `json:"agreed_price"`
	CommissionPct    float64    `json:"commission_pct"`
	CommissionAmount float64    `json:"commission_amount"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Status           string     `json:"status"`
	Note             *string    `json:"note"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToResponse converts Consignment to ConsignmentResponse
func (c *Consignment) ToResponse() ConsignmentResponse {
	return ConsignmentResponse{
		ID:               c.ID,
		BranchID:         c.BranchID,
		VehicleID:        c.VehicleID,
		VehicleName:      c.Vehicle.DisplayName(),
		OwnerName:        c.OwnerName,
		OwnerPhone:       c.OwnerPhone,
		OwnerEmail:       c.OwnerEmail,
		AgreedPrice:      c.AgreedPrice,
		CommissionPct:    c.CommissionPct,
		CommissionAmount: c.CommissionAmount(),
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		Status:           c.Status,
		Note:             c.Note,
		CreatedAt:        c.CreatedAt,
	}
}
