package repository

import (
	"context"
	"strings"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// BranchRepository defines the interface for branch data access
type BranchRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) FindByID(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).First(&branch, id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Branch{}, id).Error
}

func (r *branchRepository) FindAll(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByLead(ctx context.Context, leadID uint) ([]models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Appointment, int64, error)
	FindUpcoming(ctx context.Context, withinHours int) ([]models.Appointment, error)
	MarkExpired(ctx context.Context) (int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Lead").
		Preload("Vehicle").
		Preload("Seller").
		First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByLead(ctx context.Context, leadID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Preload("Vehicle").
		Preload("Seller").
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

func (r *appointmentRepository) List(ctx context.Context, query *ListQuery) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Appointment{})

	if query.Filters["branch_id"] != "" {
		db = db.Where("appointments.branch_id = ?", query.Filters["branch_id"])
	}
	if query.Filters["seller_id"] != "" {
		db = db.Where("appointments.seller_id = ?", query.Filters["seller_id"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("appointments.status = ?", query.Filters["status"])
	}
	if val, ok := query.Filters["start_date"]; ok && val != "" {
		db = db.Where("appointments.scheduled_at >= ?", val)
	}
	if val, ok := query.Filters["end_date"]; ok && val != "" {
		if len(val) == 10 {
			val += " 23:59:59"
		}
		db = db.Where("appointments.scheduled_at <= ?", val)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN leads ON leads.id = appointments.lead_id").
			Where("leads.full_name ILIKE ? OR leads.phone ILIKE ?", search, search)
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
		db = db.Order("appointments.scheduled_at ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("appointments.*").
		Preload("Lead").
		Preload("Vehicle").
		Preload("Seller").
		Find(&appointments).Error
	return appointments, total, err
}

// FindUpcoming returns scheduled appointments starting within the given window,
// for reminder emails.
func (r *appointmentRepository) FindUpcoming(ctx context.Context, withinHours int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at BETWEEN NOW() AND NOW() + ? * INTERVAL '1 hour'",
			models.AppointmentStatusScheduled, withinHours).
		Preload("Lead").
		Preload("Seller").
		Preload("Vehicle").
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// MarkExpired flips scheduled appointments whose time already passed to vencida
func (r *appointmentRepository) MarkExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status = ? AND scheduled_at < NOW()", models.AppointmentStatusScheduled).
		Update("status", models.AppointmentStatusExpired)
	return result.RowsAffected, result.Error
}

// ConsignmentRepository defines the interface for consignment data access
type ConsignmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Consignment, error)
	FindByVehicle(ctx context.Context, vehicleID uint) (*models.Consignment, error)
	Create(ctx context.Context, consignment *models.Consignment) error
	Update(ctx context.Context, consignment *models.Consignment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Consignment, int64, error)
	FindExpiring(ctx context.Context, withinDays int) ([]models.Consignment, error)
}

type consignmentRepository struct {
	db *gorm.DB
}

func NewConsignmentRepository(db *gorm.DB) ConsignmentRepository {
	return &consignmentRepository{db: db}
}

func (r *consignmentRepository) FindByID(ctx context.Context, id uint) (*models.Consignment, error) {
	var consignment models.Consignment
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		First(&consignment, id).Error
	if err != nil {
		return nil, err
	}
	return &consignment, nil
}

func (r *consignmentRepository) FindByVehicle(ctx context.Context, vehicleID uint) (*models.Consignment, error) {
	var consignment models.Consignment
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, models.ConsignmentStatusActive).
		First(&consignment).Error
	if err != nil {
		return nil, err
	}
	return &consignment, nil
}

func (r *consignmentRepository) Create(ctx context.Context, consignment *models.Consignment) error {
	return r.db.WithContext(ctx).Create(consignment).Error
}

func (r *consignmentRepository) Update(ctx context.Context, consignment *models.Consignment) error {
	return r.db.WithContext(ctx).Save(consignment).Error
}

func (r *consignmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Consignment{}, id).Error
}

func (r *consignmentRepository) List(ctx context.Context, query *ListQuery) ([]models.Consignment, int64, error) {
	var consignments []models.Consignment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Consignment{})

	if query.Filters["branch_id"] != "" {
		db = db.Where("consignments.branch_id = ?", query.Filters["branch_id"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("consignments.status = ?", query.Filters["status"])
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN vehicles ON vehicles.id = consignments.vehicle_id").
			Where("consignments.owner_name ILIKE ? OR consignments.owner_phone ILIKE ? OR vehicles.make ILIKE ? OR vehicles.model ILIKE ?",
				search, search, search, search)
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
		db = db.Order("consignments.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("consignments.*").
		Preload("Vehicle").
		Find(&consignments).Error
	return consignments, total, err
}

// FindExpiring returns active consignments whose end date falls within the window
func (r *consignmentRepository) FindExpiring(ctx context.Context, withinDays int) ([]models.Consignment, error) {
	var consignments []models.Consignment
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date IS NOT NULL AND end_date BETWEEN NOW() AND NOW() + ? * INTERVAL '1 day'",
			models.ConsignmentStatusActive, withinDays).
		Preload("Vehicle").
		Find(&consignments).Error
	return consignments, err
}

// TramiteRepository defines the interface for tramite data access
type TramiteRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Tramite, error)
	FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Tramite, error)
	Create(ctx context.Context, tramite *models.Tramite) error
	Update(ctx context.Context, tramite *models.Tramite) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Tramite, int64, error)
	FindOverdue(ctx context.Context) ([]models.Tramite, error)
}

type tramiteRepository struct {
	db *gorm.DB
}

func NewTramiteRepository(db *gorm.DB) TramiteRepository {
	return &tramiteRepository{db: db}
}

func (r *tramiteRepository) FindByID(ctx context.Context, id uint) (*models.Tramite, error) {
	var tramite models.Tramite
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Sale").
		First(&tramite, id).Error
	if err != nil {
		return nil, err
	}
	return &tramite, nil
}

func (r *tramiteRepository) FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Tramite, error) {
	var tramites []models.Tramite
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&tramites).Error
	return tramites, err
}

func (r *tramiteRepository) Create(ctx context.Context, tramite *models.Tramite) error {
	return r.db.WithContext(ctx).Create(tramite).Error
}

func (r *tramiteRepository) Update(ctx context.Context, tramite *models.Tramite) error {
	return r.db.WithContext(ctx).Save(tramite).Error
}

func (r *tramiteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tramite{}, id).Error
}

func (r *tramiteRepository) List(ctx context.Context, query *ListQuery) ([]models.Tramite, int64, error) {
	var tramites []models.Tramite
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Tramite{})

	if query.Filters["branch_id"] != "" {
		db = db.Where("tramites.branch_id = ?", query.Filters["branch_id"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("tramites.status = ?", query.Filters["status"])
	}
	if query.Filters["kind"] != "" {
		db = db.Where("tramites.kind = ?", query.Filters["kind"])
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN vehicles ON vehicles.id = tramites.vehicle_id").
			Where("COALESCE(tramites.description, '') ILIKE ? OR vehicles.vin ILIKE ? OR COALESCE(vehicles.plate, '') ILIKE ?",
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
		db = db.Order("tramites.due_date ASC NULLS LAST")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("tramites.*").
		Preload("Vehicle").
		Find(&tramites).Error
	return tramites, total, err
}

func (r *tramiteRepository) FindOverdue(ctx context.Context) ([]models.Tramite, error) {
	var tramites []models.Tramite
	err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < NOW()",
			[]string{models.TramiteStatusPending, models.TramiteStatusInProgress}).
		Preload("Vehicle").
		Order("due_date ASC").
		Find(&tramites).Error
	return tramites, err
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	FindByUser(ctx context.Context, userID uint, query *ListQuery) ([]models.Notification, int64, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uint, query *ListQuery) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	if status, ok := query.Filters["status"]; ok && status != "" {
		switch strings.ToLower(status) {
		case "unread":
			db = db.Where("read_at IS NULL")
		case "read":
			db = db.Where("read_at IS NOT NULL")
		}
	}

	db.Count(&total)
	db = db.Order("created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Create(ctx context.Context, rt *models.RefreshToken) error
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Create(ctx context.Context, rt *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
