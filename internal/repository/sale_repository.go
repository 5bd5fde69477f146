package repository

import (
	"context"
	"strings"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Sale, error)
	FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Sale, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]models.Sale, error)
	Create(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, sale *models.Sale) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *SaleQuery) ([]models.Sale, int64, error)
	GetStats(ctx context.Context, branchID uint) (*SaleStats, error)
	FindByMonth(ctx context.Context, month, year int) ([]models.Sale, error)

	// Expense line operations
	FindExpensesBySale(ctx context.Context, saleID uint) ([]models.SaleExpense, error)
	CreateExpense(ctx context.Context, expense *models.SaleExpense) error
	UpdateExpense(ctx context.Context, expense *models.SaleExpense) error
	DeleteExpense(ctx context.Context, id uint) error
}

// SaleQuery extends ListQuery with sale-specific filters
type SaleQuery struct {
	*ListQuery
	BranchID uint
	SellerID uint
	Status   string
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	// Sale + Lead, Vehicle, Seller via Joins in one query; Expenses is
	// one-to-many so it stays a Preload.
	err := r.db.WithContext(ctx).
		Joins("Lead").
		Joins("Vehicle").
		Joins("Seller").
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Preload("Lead").
		Preload("Seller").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) FindBySeller(ctx context.Context, sellerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Preload("Vehicle").
		Preload("Lead").
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.SaleExpense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Sale{}, id).Error
	})
}

func (r *saleRepository) List(ctx context.Context, query *SaleQuery) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Sale{})

	if query.BranchID > 0 {
		db = db.Where("sales.branch_id = ?", query.BranchID)
	}

	if query.SellerID > 0 {
		db = db.Where("sales.seller_id = ?", query.SellerID)
	}

	// Status filter (single or multiple via status_in)
	if query.Filters != nil {
		if val, ok := query.Filters["status_in"]; ok && val != "" {
			statuses := strings.Split(val, ",")
			for i, s := range statuses {
				statuses[i] = strings.TrimSpace(s)
			}
			if len(statuses) > 0 {
				db = db.Where("sales.status IN ?", statuses)
			}
		}
	}
	if query.Filters == nil || query.Filters["status_in"] == "" {
		if query.Status != "" {
			db = db.Where("sales.status = ?", query.Status)
		}
	}

	// Apply sale_date range filters
	if query.Filters != nil {
		if val, ok := query.Filters["start_date"]; ok && val != "" {
			db = db.Where("sales.sale_date >= ?", val)
		}
		if val, ok := query.Filters["end_date"]; ok && val != "" {
			// Include the full day if only a date is provided
			if len(val) == 10 { // YYYY-MM-DD
				val += " 23:59:59"
			}
			db = db.Where("sales.sale_date <= ?", val)
		}
	}

	if val, ok := query.Filters["guid"]; ok && val != "" {
		db = db.Where("sales.guid = ?", val)
	}

	// Apply search (JOINs only for filtering; associations loaded via Preload below)
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN leads ON leads.id = sales.lead_id").
			Joins("LEFT JOIN vehicles ON vehicles.id = sales.vehicle_id").
			Joins("LEFT JOIN users ON users.id = sales.seller_id").
			Where("leads.full_name ILIKE ? OR vehicles.make ILIKE ? OR vehicles.model ILIKE ? OR vehicles.vin ILIKE ? OR users.full_name ILIKE ? OR sales.guid ILIKE ?",
				search, search, search, search, search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
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
		db = db.Order("sales.sale_date DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("sales.*").
		Preload("Lead").
		Preload("Vehicle").
		Preload("Seller").
		Preload("Expenses").
		Find(&sales).Error
	return sales, total, err
}

// SaleStats holds aggregate sale figures
type SaleStats struct {
	Total           int64   `json:"total"`
	Pending         int64   `json:"pending"`
	Completed       int64   `json:"completed"`
	Cancelled       int64   `json:"cancelled"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalMargin     float64 `json:"total_margin"`
	TotalCommission float64 `json:"total_commission"`
}

func (s *SaleStats) addStatusCount(status string, count int64) {
	s.Total += count
	switch status {
	case models.SaleStatusPending:
		s.Pending = count
	case models.SaleStatusCompleted:
		s.Completed = count
	case models.SaleStatusCancelled:
		s.Cancelled = count
	}
}

func (r *saleRepository) GetStats(ctx context.Context, branchID uint) (*SaleStats, error) {
	stats := &SaleStats{}

	db := r.db.WithContext(ctx).Model(&models.Sale{})
	if branchID > 0 {
		db = db.Where("branch_id = ?", branchID)
	}

	// Counts by status
	rows, err := db.Session(&gorm.Session{}).
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

	// Revenue, margin and commission sums over non-cancelled sales
	type sums struct {
		Revenue    float64
		Margin     float64
		Commission float64
	}
	var s sums
	err = db.Session(&gorm.Session{}).
		Select("COALESCE(SUM(sale_price), 0) as revenue, COALESCE(SUM(margin), 0) as margin, COALESCE(SUM(commission), 0) as commission").
		Where("status <> ?", models.SaleStatusCancelled).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = s.Revenue
	stats.TotalMargin = s.Margin
	stats.TotalCommission = s.Commission

	return stats, nil
}

func (r *saleRepository) FindByMonth(ctx context.Context, month, year int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("EXTRACT(MONTH FROM sale_date) = ? AND EXTRACT(YEAR FROM sale_date) = ?", month, year).
		Preload("Lead").
		Preload("Vehicle").
		Preload("Seller").
		Preload("Expenses").
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) FindExpensesBySale(ctx context.Context, saleID uint) ([]models.SaleExpense, error) {
	var expenses []models.SaleExpense
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *saleRepository) CreateExpense(ctx context.Context, expense *models.SaleExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *saleRepository) UpdateExpense(ctx context.Context, expense *models.SaleExpense) error {
	return r.db.WithContext(ctx).
		Model(&models.SaleExpense{}).
		Where("id = ?", expense.ID).
		Select("Description", "Amount").
		Updates(expense).Error
}

func (r *saleRepository) DeleteExpense(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SaleExpense{}, id).Error
}
