package repository

import (
	"context"
	"errors"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// VehicleRepository defines the interface for vehicle data access
type VehicleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *VehicleQuery) ([]models.Vehicle, int64, error)
	GetStats(ctx context.Context, branchID uint) (*VehicleStats, error)
	HasSales(ctx context.Context, vehicleID uint) (bool, error)
}

// VehicleQuery extends ListQuery with vehicle-specific filters
type VehicleQuery struct {
	*ListQuery
	BranchID uint
	Status   string
	Category string
	MinPrice float64
	MaxPrice float64
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Preload("Branch").First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByVIN(ctx context.Context, vin string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Where("UPPER(vin) = UPPER(?)", vin).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		if isDuplicateKeyError(err, "idx_vehicles_vin") {
			return errors.New("ya existe un vehículo con este VIN")
		}
		return err
	}
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, id).Error
}

func (r *vehicleRepository) List(ctx context.Context, query *VehicleQuery) ([]models.Vehicle, int64, error) {
	var vehicles []models.Vehicle
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Vehicle{})

	if query.BranchID > 0 {
		db = db.Where("vehicles.branch_id = ?", query.BranchID)
	}

	if query.Status != "" {
		db = db.Where("vehicles.status = ?", query.Status)
	}

	if query.Category != "" {
		db = db.Where("vehicles.category = ?", query.Category)
	}

	if query.MinPrice > 0 {
		db = db.Where("vehicles.price >= ?", query.MinPrice)
	}
	if query.MaxPrice > 0 {
		db = db.Where("vehicles.price <= ?", query.MaxPrice)
	}

	if val, ok := query.Filters["year"]; ok && val != "" {
		db = db.Where("vehicles.year = ?", val)
	}

	// Apply search across identifying fields
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("vehicles.make ILIKE ? OR vehicles.model ILIKE ? OR vehicles.vin ILIKE ? OR COALESCE(vehicles.plate, '') ILIKE ?",
			search, search, search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("vehicles.created_at DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Branch").Find(&vehicles).Error
	return vehicles, total, err
}

// VehicleStats holds the count of vehicles by status
type VehicleStats struct {
	Total        int64 `json:"total"`
	Available    int64 `json:"available"`
	Reserved     int64 `json:"reserved"`
	Sold         int64 `json:"sold"`
	InRepair     int64 `json:"in_repair"`
	OutOfService int64 `json:"out_of_service"`
}

// addStatusCount folds one GROUP BY status row into the stats. Unknown
// statuses still count toward Total.
func (s *VehicleStats) addStatusCount(status string, count int64) {
	s.Total += count
	switch status {
	case models.VehicleStatusAvailable:
		s.Available = count
	case models.VehicleStatusReserved:
		s.Reserved = count
	case models.VehicleStatusSold:
		s.Sold = count
	case models.VehicleStatusInRepair:
		s.InRepair = count
	case models.VehicleStatusOutOfService:
		s.OutOfService = count
	}
}

func (r *vehicleRepository) GetStats(ctx context.Context, branchID uint) (*VehicleStats, error) {
	stats := &VehicleStats{}

	db := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if branchID > 0 {
		db = db.Where("branch_id = ?", branchID)
	}

	// Single query to get counts by status
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

func (r *vehicleRepository) HasSales(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}
