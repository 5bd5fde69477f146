package models

import (
	"time"
)

// Quote represents a priced offer for a vehicle presented to a lead
type Quote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BranchID   uint       `gorm:"not null;index" json:"branch_id"`
	LeadID     uint       `gorm:"not null;index" json:"lead_id"`
	VehicleID  uint       `gorm:"not null;index" json:"vehicle_id"`
	SellerID   uint       `gorm:"not null;index" json:"seller_id"`
	Price      float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	Discount   float64    `gorm:"type:decimal(15,2);default:0" json:"discount"`
	ValidUntil *time.Time `json:"valid_until"`
	Status     string     `gorm:"default:pendiente;index" json:"status"`
	Note       *string    `gorm:"type:text" json:"note"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	Branch  Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Lead    Lead    `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Seller  User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// Quote status constants
const (
	QuoteStatusPending  = "pendiente"
	QuoteStatusAccepted = "aceptada"
	QuoteStatusRejected = "rechazada"
	QuoteStatusExpired  = "vencida"
)

// MayAccept returns true if the quote can still be accepted
func (q *Quote) MayAccept() bool {
	return q.Status == QuoteStatusPending && !q.IsExpired()
}

// IsExpired returns true if the quote passed its valid_until date
func (q *Quote) IsExpired() bool {
	if q.ValidUntil == nil {
		return false
	}
	return time.Now().After(*q.ValidUntil)
}

// FinalPrice returns price minus discount
func (q *Quote) FinalPrice() float64 {
	return q.Price - q.Discount
}

// QuoteResponse is the JSON response format for quotes
type QuoteResponse struct {
	ID          uint       `json:"id"`
	BranchID    uint       `json:"branch_id"`
	LeadID      uint       `json:"lead_id"`
	LeadName    string     `json:"lead_name"`
	VehicleID   uint       `json:"vehicle_id"`
	VehicleName string     `json:"vehicle_name"`
	SellerID    uint       `json:"seller_id"`
	SellerName  string     `json:"seller_name"`
	Price       float64    `json:"price"`
	Discount    float64    `json:"discount"`
	FinalPrice  float64    `json:"final_price"`
	ValidUntil  *time.Time `json:"valid_until"`
	Status      string     `json:"status"`
	Note        *string    `json:"note"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToResponse converts Quote to QuoteResponse
func (q *Quote) ToResponse() QuoteResponse {
	return QuoteResponse{
		ID:          q.ID,
		BranchID:    q.BranchID,
		LeadID:      q.LeadID,
		LeadName:    q.Lead.FullName,
		VehicleID:   q.VehicleID,
		VehicleName: q.Vehicle.DisplayName(),
		SellerID:    q.SellerID,
		SellerName:  q.Seller.FullName,
		Price:       q.Price,
		Discount:    q.Discount,
		FinalPrice:  q.FinalPrice(),
		ValidUntil:  q.ValidUntil,
		Status:      q.Status,
		Note:        q.Note,
		AcceptedAt:  q.AcceptedAt,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
