package repository

import (
	"context"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Lead, error)
	FindByPhone(ctx context.Context, phone string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *LeadQuery) ([]models.Lead, int64, error)
	GetStats(ctx context.Context, branchID uint) (*LeadStats, error)
	FindStale(ctx context.Context, olderThanDays int) ([]models.Lead, error)
}

// LeadQuery extends ListQuery with lead-specific filters
type LeadQuery struct {
	*ListQuery
	BranchID     uint
	AssignedToID uint
	Status       string
	Source       string
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) FindByID(ctx context.Context, id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("AssignedTo").
		First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) FindByPhone(ctx context.Context, phone string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) Update(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Lead{}, id).Error
}

func (r *leadRepository) List(ctx context.Context, query *LeadQuery) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Lead{})

	if query.BranchID > 0 {
		db = db.Where("leads.branch_id = ?", query.BranchID)
	}

	if query.AssignedToID > 0 {
		db = db.Where("leads.assigned_to_id = ?", query.AssignedToID)
	}

	if query.Status != "" {
		db = db.Where("leads.status = ?", query.Status)
	}

	if query.Source != "" {
		db = db.Where("leads.source = ?", query.Source)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("leads.full_name ILIKE ? OR leads.phone ILIKE ? OR COALESCE(leads.email, '') ILIKE ?",
			search, search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("leads.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Branch").
		Preload("AssignedTo").
		Find(&leads).Error
	return leads, total, err
}

// LeadStats holds the count of leads per funnel status
type LeadStats struct {
	Total       int64 `json:"total"`
	New         int64 `json:"new"`
	Contacted   int64 `json:"contacted"`
	Interested  int64 `json:"interested"`
	Quoting     int64 `json:"quoting"`
	Negotiating int64 `json:"negotiating"`
	Sold        int64 `json:"sold"`
	Lost        int64 `json:"lost"`
}

func (s *LeadStats) addStatusCount(status string, count int64) {
	s.Total += count
	switch status {
	case models.LeadStatusNew:
		s.New = count
	case models.LeadStatusContacted:
		s.Contacted = count
	case models.LeadStatusInterested:
		s.Interested = count
	case models.LeadStatusQuoting:
		s.Quoting = count
	case models.LeadStatusNegotiating:
		s.Negotiating = count
	case models.LeadStatusSold:
		s.Sold = count
	case models.LeadStatusLost:
		s.Lost = count
	}
}

func (r *leadRepository) GetStats(ctx context.Context, branchID uint) (*LeadStats, error) {
	stats := &LeadStats{}

	db := r.db.WithContext(ctx).Model(&models.Lead{})
	if branchID > 0 {
		db = db.Where("branch_id = ?", branchID)
	}

	rows, err := db.
		Select("status, count(*) as count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.addStatusCount(status, count)
	}

	return stats, nil
}

// FindStale returns live leads with no contact in the given number of days
func (r *leadRepository) FindStale(ctx context.Context, olderThanDays int) ([]models.Lead, error) {
	var leads []models.Lead
	interval := fmt.Sprintf("%d days", olderThanDays)
	err := r.db.WithContext(ctx).
		Where("leads.status NOT IN ?", []string{models.LeadStatusSold, models.LeadStatusLost}).
		Where("COALESCE(leads.last_contact, leads.created_at) < NOW() - INTERVAL '"+interval+"'").
		Preload("AssignedTo").
		Find(&leads).Error
	return leads, err
}
