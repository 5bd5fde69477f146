package repository

import (
	"context"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// QuoteRepository defines the interface for quote data access
type QuoteRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Quote, error)
	FindByLead(ctx context.Context, leadID uint) ([]models.Quote, error)
	Create(ctx context.Context, quote *models.Quote) error
	Update(ctx context.Context, quote *models.Quote) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *QuoteQuery) ([]models.Quote, int64, error)
	MarkExpired(ctx context.Context) (int64, error)
}

// QuoteQuery extends ListQuery with quote-specific filters
type QuoteQuery struct {
	*ListQuery
	BranchID  uint
	LeadID    uint
	VehicleID uint
	SellerID  uint
	Status    string
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) FindByID(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Joins("Lead").
		Joins("Vehicle").
		Joins("Seller").
		First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) FindByLead(ctx context.Context, leadID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Preload("Vehicle").
		Preload("Seller").
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *quoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Quote{}, id).Error
}

func (r *quoteRepository) List(ctx context.Context, query *QuoteQuery) ([]models.Quote, int64, error) {
	var quotes []models.Quote
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Quote{})

	if query.BranchID > 0 {
		db = db.Where("quotes.branch_id = ?", query.BranchID)
	}
	if query.LeadID > 0 {
		db = db.Where("quotes.lead_id = ?", query.LeadID)
	}
	if query.VehicleID > 0 {
		db = db.Where("quotes.vehicle_id = ?", query.VehicleID)
	}
	if query.SellerID > 0 {
		db = db.Where("quotes.seller_id = ?", query.SellerID)
	}
	if query.Status != "" {
		db = db.Where("quotes.status = ?", query.Status)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN leads ON leads.id = quotes.lead_id").
			Joins("LEFT JOIN vehicles ON vehicles.id = quotes.vehicle_id").
			Where("leads.full_name ILIKE ? OR vehicles.make ILIKE ? OR vehicles.model ILIKE ?",
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
		db = db.Order("quotes.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("quotes.*").
		Preload("Lead").
		Preload("Vehicle").
		Preload("Seller").
		Find(&quotes).Error
	return quotes, total, err
}

// MarkExpired flips pending quotes past their valid_until date to vencida
func (r *quoteRepository) MarkExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("status = ? AND valid_until IS NOT NULL AND valid_until < NOW()", models.QuoteStatusPending).
		Update("status", models.QuoteStatusExpired)
	return result.RowsAffected, result.Error
}
