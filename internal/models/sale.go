package models

import (
	"time"
)

// Sale represents a closed or in-progress vehicle sale
type Sale struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	GUID            string     `gorm:"uniqueIndex" json:"guid"`
	BranchID        uint       `gorm:"not null;index" json:"branch_id"`
	LeadID          *uint      `gorm:"index" json:"lead_id"`
	VehicleID       *uint      `gorm:"index" json:"vehicle_id"`
	SellerID        uint       `gorm:"not null;index" json:"seller_id"`
	SalePrice       float64    `gorm:"type:decimal(15,2);not null" json:"sale_price"`
	Margin          float64    `gorm:"type:decimal(15,2)" json:"margin"`
	Commission      float64    `gorm:"type:decimal(15,2)" json:"commission"`
	Status          string     `gorm:"default:pendiente;index" json:"status"`
	SaleDate        time.Time  `json:"sale_date"`
	PaymentMethod   string     `gorm:"default:contado" json:"payment_method"`
	FinancingBank   *string    `json:"financing_bank"`
	FinancingMonths *int       `json:"financing_months"`
	DownPayment     *float64   `gorm:"type:decimal(15,2)" json:"down_payment"`
	Note            *string    `gorm:"type:text" json:"note"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	Branch   Branch        `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Lead     *Lead         `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Vehicle  *Vehicle      `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Seller   User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Expenses []SaleExpense `gorm:"foreignKey:SaleID" json:"expenses,omitempty"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// SaleExpense is a cost line attached to a sale (traspaso, detailing, etc.)
type SaleExpense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SaleID      uint      `gorm:"not null;index" json:"sale_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for SaleExpense
func (SaleExpense) TableName() string {
	return "sale_expenses"
}

// Sale status constants
const (
	SaleStatusPending   = "pendiente"
	SaleStatusCompleted = "completada"
	SaleStatusCancelled = "cancelada"
)

// Payment method constants
const (
	PaymentMethodCash      = "contado"
	PaymentMethodFinanced  = "financiado"
	PaymentMethodTradeIn   = "permuta"
	PaymentMethodMixed     = "mixto"
)

// MayComplete returns true if the sale can be marked completada
func (s *Sale) MayComplete() bool {
	return s.Status == SaleStatusPending
}

// MayCancel returns true if the sale can be cancelled
func (s *Sale) MayCancel() bool {
	return s.Status != SaleStatusCancelled
}

// TotalExpenses sums the attached expense lines
func (s *Sale) TotalExpenses() float64 {
	var total float64
	for _, e := range s.Expenses {
		total += e.Amount
	}
	return total
}

// NetMargin returns margin minus attached expenses
func (s *Sale) NetMargin() float64 {
	return s.Margin - s.TotalExpenses()
}

// SaleResponse is the JSON response format for sales
type SaleResponse struct {
	ID              uint          `json:"id"`
	GUID            string        `json:"guid"`
	BranchID        uint          `json:"branch_id"`
	LeadID          *uint         `json:"lead_id"`
	LeadName        string        `json:"lead_name,omitempty"`
	VehicleID       *uint         `json:"vehicle_id"`
	VehicleName     string        `json:"vehicle_name,omitempty"`
	SellerID        uint          `json:"seller_id"`
	SellerName      string        `json:"seller_name,omitempty"`
	SalePrice       float64       `json:"sale_price"`
	Margin          float64       `json:"margin"`
	NetMargin       float64       `json:"net_margin"`
	Commission      float64       `json:"commission"`
	Status          string        `json:"status"`
	SaleDate        time.Time     `json:"sale_date"`
	PaymentMethod   string        `json:"payment_method"`
	FinancingBank   *string       `json:"financing_bank"`
	FinancingMonths *int          `json:"financing_months"`
	DownPayment     *float64      `json:"down_payment"`
	Note            *string       `json:"note"`
	Expenses        []SaleExpense `json:"expenses"`
	TotalExpenses   float64       `json:"total_expenses"`
	CompletedAt     *time.Time    `json:"completed_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		GUID:            s.GUID,
		BranchID:        s.BranchID,
		LeadID:          s.LeadID,
		VehicleID:       s.VehicleID,
		SellerID:        s.SellerID,
		SellerName:      s.Seller.FullName,
		SalePrice:       s.SalePrice,
		Margin:          s.Margin,
		NetMargin:       s.NetMargin(),
		Commission:      s.Commission,
		Status:          s.Status,
		SaleDate:        s.SaleDate,
		PaymentMethod:   s.PaymentMethod,
		FinancingBank:   s.FinancingBank,
		FinancingMonths: s.FinancingMonths,
		DownPayment:     s.DownPayment,
		Note:            s.Note,
		Expenses:        s.Expenses,
		TotalExpenses:   s.TotalExpenses(),
		CompletedAt:     s.CompletedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Lead != nil {
		resp.LeadName = s.Lead.FullName
	}
	if s.Vehicle != nil {
		resp.VehicleName = s.Vehicle.DisplayName()
	}
	return resp
}
