package models

import (
	"time"
)

// Tramite represents an administrative procedure tied to a vehicle or sale
// (traspaso, placas, revisado, etc.)
type Tramite struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BranchID    uint       `gorm:"not null;index" json:"branch_id"`
	VehicleID   *uint      `gorm:"index" json:"vehicle_id"`
	SaleID      *uint      `gorm:"index" json:"sale_id"`
	Kind        string     `gorm:"not null" json:"kind"`
	Description *string    `gorm:"type:text" json:"description"`
	Cost        float64    `gorm:"type:decimal(15,2);default:0" json:"cost"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"default:pendiente;index" json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Branch  Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Sale    *Sale    `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
}

// TableName specifies the table name for Tramite
func (Tramite) TableName() string {
	return "tramites"
}

// Tramite status constants
const (
	TramiteStatusPending    = "pendiente"
	TramiteStatusInProgress = "en_proceso"
	TramiteStatusDone       = "completado"
	TramiteStatusCancelled  = "cancelado"
)

// Tramite kind constants
const (
	TramiteKindTransfer = "traspaso"
	TramiteKindPlates   = "placas"
	TramiteKindRevision = "revisado"
	TramiteKindCustoms  = "aduana"
	TramiteKindOther    = "otro"
)

// IsOverdue returns true if the tramite passed its due date without completing
func (t *Tramite) IsOverdue() bool {
	if t.DueDate == nil || t.Status == TramiteStatusDone || t.Status == TramiteStatusCancelled {
		return false
	}
	return time.Now().After(*t.DueDate)
}

// TramiteResponse is the JSON response format for tramites
type TramiteResponse struct {
	ID          uint       `json:"id"`
	BranchID    uint       `json:"branch_id"`
	VehicleID   *uint      `json:"vehicle_id"`
	VehicleName string     `json:"vehicle_name,omitempty"`
	SaleID      *uint      `json:"sale_id"`
	Kind        string     `json:"kind"`
	Description *string    `json:"description"`
	Cost        float64    `json:"cost"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Overdue     bool       `json:"overdue"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToResponse converts Tramite to TramiteResponse
func (t *Tramite) ToResponse() TramiteResponse {
	resp := TramiteResponse{
		ID:          t.ID,
		BranchID:    t.BranchID,
		VehicleID:   t.VehicleID,
		SaleID:      t.SaleID,
		Kind:        t.Kind,
		Description: t.Description,
		Cost:        t.Cost,
		DueDate:     t.DueDate,
		Status:      t.Status,
		Overdue:     t.IsOverdue(),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
	if t.Vehicle != nil {
		resp.VehicleName = t.Vehicle.DisplayName()
	}
	return resp
}
