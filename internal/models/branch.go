package models

import (
	"time"
)

// Branch represents a physical dealership location
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Vehicles []Vehicle `gorm:"foreignKey:BranchID" json:"vehicles,omitempty"`
	Leads    []Lead    `gorm:"foreignKey:BranchID" json:"leads,omitempty"`
}

// TableName specifies the table name for Branch
func (Branch) TableName() string {
	return "branches"
}
