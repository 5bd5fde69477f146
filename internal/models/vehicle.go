package models

import (
	"time"
)

// Vehicle represents a unit in the dealership inventory
type Vehicle struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	GUID         string     `gorm:"uniqueIndex" json:"guid"`
	BranchID     uint       `gorm:"not null;index" json:"branch_id"`
	Make         string     `gorm:"not null" json:"make"`
	Model        string     `gorm:"not null" json:"model"`
	Year         int        `gorm:"not null" json:"year"`
	VIN          string     `gorm:"column:vin;uniqueIndex;not null" json:"vin"`
	Plate        *string    `json:"plate"`
	Color        *string    `json:"color"`
	Mileage      *int       `json:"mileage"`
	Transmission *string    `json:"transmission"`
	Fuel         *string    `json:"fuel"`
	Price        float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	Cost         float64    `gorm:"type:decimal(15,2)" json:"cost"`
	Category     string     `gorm:"default:usado;index" json:"category"`
	Status       string     `gorm:"default:disponible;index" json:"status"`
	Images       *string    `gorm:"type:text" json:"images"` // JSON array of image URLs
	Note         *string    `gorm:"type:text" json:"note"`
	SoldAt       *time.Time `json:"sold_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Branch Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Sales  []Sale `gorm:"foreignKey:VehicleID" json:"sales,omitempty"`
}

// TableName specifies the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// Vehicle status constants
const (
	VehicleStatusAvailable    = "disponible"
	VehicleStatusReserved     = "reservado"
	VehicleStatusSold         = "vendido"
	VehicleStatusInRepair     = "en_reparacion"
	VehicleStatusOutOfService = "fuera_de_servicio"
)

// Vehicle category constants
const (
	VehicleCategoryNew         = "nuevo"
	VehicleCategoryUsed        = "usado"
	VehicleCategoryConsignment = "consignado"
)

// IsAvailable returns true if the vehicle can be reserved or sold
func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusAvailable || v.Status == VehicleStatusReserved
}

// Margin returns the gross margin over cost
func (v *Vehicle) Margin() float64 {
	return v.Price - v.Cost
}

// DisplayName returns the human-readable unit name
func (v *Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

// VehicleResponse is the JSON response format for vehicles
type VehicleResponse struct {
	ID         uint       `json:"id"`
	GUID       string     `json:"guid"`
	BranchID   uint       `json:"branch_id"`
	BranchName string     `json:"branch_name"`
	Make       string     `json:"make"`
	Model      string     `json:"model"`
	Year       int        `json:"year"`
	VIN        string     `json:"vin"`
	Plate      *string    `json:"plate"`
	Color      *string    `json:"color"`
	Mileage    *int       `json:"mileage"`
	Price      float64    `json:"price"`
	Cost       float64    `json:"cost"`
	Margin     float64    `json:"margin"`
	Category   string     `json:"category"`
	Status     string     `json:"status"`
	Images     *string    `json:"images"`
	Note       *string    `json:"note"`
	SoldAt     *time.Time `json:"sold_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToResponse converts Vehicle to VehicleResponse
func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		ID:         v.ID,
		GUID:       v.GUID,
		BranchID:   v.BranchID,
		BranchName: v.Branch.Name,
		Make:       v.Make,
		Model:      v.Model,
		Year:       v.Year,
		VIN:        v.VIN,
		Plate:      v.Plate,
		Color:      v.Color,
		Mileage:    v.Mileage,
		Price:      v.Price,
		Cost:       v.Cost,
		Margin:     v.Margin(),
		Category:   v.Category,
		Status:     v.Status,
		Images:     v.Images,
		Note:       v.Note,
		SoldAt:     v.SoldAt,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
