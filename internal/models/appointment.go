package models

import (
	"time"
)

// Appointment represents a scheduled visit or test drive with a lead
type Appointment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	LeadID      uint      `gorm:"not null;index" json:"lead_id"`
	VehicleID   *uint     `gorm:"index" json:"vehicle_id"`
	SellerID    uint      `gorm:"not null;index" json:"seller_id"`
	Kind        string    `gorm:"default:visita" json:"kind"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	Status      string    `gorm:"default:programada;index" json:"status"`
	Note        *string   `gorm:"type:text" json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Branch  Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Lead    Lead     `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Seller  User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// TableName specifies the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}

// Appointment status constants
const (
	AppointmentStatusScheduled = "programada"
	AppointmentStatusDone      = "realizada"
	AppointmentStatusCancelled = "cancelada"
	AppointmentStatusExpired   = "vencida"
)

// Appointment kind constants
const (
	AppointmentKindVisit     = "visita"
	AppointmentKindTestDrive = "prueba_manejo"
	AppointmentKindDelivery  = "entrega"
)

// IsPast returns true if the scheduled time already passed
func (a *Appointment) IsPast() bool {
	return a.ScheduledAt.Before(time.Now())
}

// AppointmentResponse is the JSON response format for appointments
type AppointmentResponse struct {
	ID          uint      `json:"id"`
	BranchID    uint      `json:"branch_id"`
	LeadID      uint      `json:"lead_id"`
	LeadName    string    `json:"lead_name"`
	LeadPhone   string    `json:"lead_phone"`
	VehicleID   *uint     `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name,omitempty"`
	SellerID    uint      `json:"seller_id"`
	SellerName  string    `json:"seller_name"`
	Kind        string    `json:"kind"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Appointment to AppointmentResponse
func (a *Appointment) ToResponse() AppointmentResponse {
	resp := AppointmentResponse{
		ID:          a.ID,
		BranchID:    a.BranchID,
		LeadID:      a.LeadID,
		LeadName:    a.Lead.FullName,
		LeadPhone:   a.Lead.Phone,
		VehicleID:   a.VehicleID,
		SellerID:    a.SellerID,
		SellerName:  a.Seller.FullName,
		Kind:        a.Kind,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
		Note:        a.Note,
		CreatedAt:   a.CreatedAt,
	}
	if a.Vehicle != nil {
		resp.VehicleName = a.Vehicle.DisplayName()
	}
	return resp
}
