package models

import (
	"time"
)

// Lead represents a prospective buyer in the CRM funnel
type Lead struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BranchID     uint       `gorm:"not null;index" json:"branch_id"`
	AssignedToID *uint      `gorm:"index" json:"assigned_to_id"`
	FullName     string     `gorm:"not null" json:"full_name"`
	Phone        string     `gorm:"not null;index" json:"phone"`
	Email        *string    `json:"email"`
	Source       string     `gorm:"default:otro" json:"source"`
	Interest     *string    `json:"interest"` // free-form: model or budget the lead asked about
	Status       string     `gorm:"default:nuevo;index" json:"status"`
	LostReason   *string    `json:"lost_reason"`
	Note         *string    `gorm:"type:text" json:"note"`
	LastContact  *time.Time `json:"last_contact"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Branch     Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	AssignedTo *User  `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// Lead funnel status constants
const (
	LeadStatusNew         = "nuevo"
	LeadStatusContacted   = "contactado"
	LeadStatusInterested  = "interesado"
	LeadStatusQuoting     = "cotizando"
	LeadStatusNegotiating = "negociando"
	LeadStatusSold        = "vendido"
	LeadStatusLost        = "perdido"
)

// Lead source constants
const (
	LeadSourceWalkIn      = "visita"
	LeadSourceFacebook    = "facebook"
	LeadSourceMarketplace = "marketplace"
	LeadSourceReferral    = "referido"
	LeadSourceOther       = "otro"
)

// MayQuote returns true if a quote can move the lead to cotizando
func (l *Lead) MayQuote() bool {
	return l.Status != LeadStatusSold && l.Status != LeadStatusLost
}

// MayNegotiate returns true if the lead can move to negociando
func (l *Lead) MayNegotiate() bool {
	return l.Status != LeadStatusSold && l.Status != LeadStatusLost
}

// MaySell returns true if the lead can be marked vendido
func (l *Lead) MaySell() bool {
	return l.Status != LeadStatusLost
}

// MayReopen returns true if a reversed sale can reopen the lead
func (l *Lead) MayReopen() bool {
	return l.Status == LeadStatusSold
}

// IsClosed returns true if the lead left the active funnel
func (l *Lead) IsClosed() bool {
	return l.Status == LeadStatusSold || l.Status == LeadStatusLost
}

// LeadResponse is the JSON response format for leads
type LeadResponse struct {
	ID             uint       `json:"id"`
	BranchID       uint       `json:"branch_id"`
	BranchName     string     `json:"branch_name"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	AssignedToName string     `json:"assigned_to_name,omitempty"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone"`
	Email          *string    `json:"email"`
	Source         string     `json:"source"`
	Interest       *string    `json:"interest"`
	Status         string     `json:"status"`
	LostReason     *string    `json:"lost_reason"`
	Note           *string    `json:"note"`
	LastContact    *time.Time `json:"last_contact"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToResponse converts Lead to LeadResponse
func (l *Lead) ToResponse() LeadResponse {
	resp := LeadResponse{
		ID:           l.ID,
		BranchID:     l.BranchID,
		BranchName:   l.Branch.Name,
		AssignedToID: l.AssignedToID,
		FullName:     l.FullName,
		Phone:        l.Phone,
		Email:        l.Email,
		Source:       l.Source,
		Interest:     l.Interest,
		Status:       l.Status,
		LostReason:   l.LostReason,
		Note:         l.Note,
		LastContact:  l.LastContact,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.AssignedTo != nil {
		resp.AssignedToName = l.AssignedTo.FullName
	}
	return resp
}
