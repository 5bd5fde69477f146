package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/jobs"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService struct {
	repo            repository.SaleRepository
	leadRepo        repository.LeadRepository
	vehicleRepo     repository.VehicleRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

func NewSaleService(
	repo repository.SaleRepository,
	leadRepo repository.LeadRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *SaleService {
	return &SaleService{
		repo:            repo,
		leadRepo:        leadRepo,
		vehicleRepo:     vehicleRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

// FindByID gets a sale by ID
func (s *SaleService) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByIDWithDetails gets a sale by ID with associations preloaded
func (s *SaleService) FindByIDWithDetails(ctx context.Context, id uint) (*models.Sale, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *SaleService) List(ctx context.Context, query *repository.SaleQuery) ([]models.Sale, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *SaleService) GetStats(ctx context.Context, branchID uint) (*repository.SaleStats, error) {
	return s.repo.GetStats(ctx, branchID)
}

// Create records a sale and runs the completion workflow: the linked lead
// is marked vendido and the linked vehicle is marked vendido, in that
// order. The writes are sequential; the first failure aborts the rest
// and propagates.
func (s *SaleService) Create(ctx context.Context, sale *models.Sale) error {
	// Verify vehicle can be sold before writing anything
	var vehicle *models.Vehicle
	if sale.VehicleID != nil {
		var err error
		vehicle, err = s.vehicleRepo.FindByID(ctx, *sale.VehicleID)
		if err != nil {
			return err
		}
		if !vehicle.IsAvailable() {
			return errors.New("el vehículo no está disponible")
		}
	}

	if sale.GUID == "" {
		sale.GUID = uuid.New().String()
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}

	// Derive margin from vehicle cost and commission from the seller's
	// rate when the caller did not set them
	if vehicle != nil && sale.Margin == 0 {
		sale.Margin = sale.SalePrice - vehicle.Cost
	}
	if sale.Commission == 0 {
		if seller, err := s.userRepo.FindByID(ctx, sale.SellerID); err == nil {
			sale.Commission = sale.SalePrice * seller.CommissionPct / 100
		}
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return err
	}

	if err := s.CompleteSale(ctx, sale); err != nil {
		return err
	}

	// Notify admins asynchronously
	if s.worker != nil && s.notificationSvc != nil {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyAdmins(ctx,
				"Nueva venta registrada",
				fmt.Sprintf("Se ha registrado una nueva venta por %.2f", sale.SalePrice),
				models.NotificationTypeSaleCompleted)
		})
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, sale.SellerID, "CREATE", "Sale", sale.ID,
			fmt.Sprintf("Venta creada. Precio: %.2f", sale.SalePrice), "", "")
	}

	return nil
}

// Update patches sale fields. It is a pure single-row update: the linked
// lead and vehicle are never touched here, even when vehicle_id changes.
func (s *SaleService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Sale, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.repo.FindByIDWithDetails(ctx, id)
}

// Delete removes a sale and runs the reversal workflow: the linked lead
// reopens to negociando (a fixed target, never its pre-sale status) and
// the linked vehicle returns to disponible.
func (s *SaleService) Delete(ctx context.Context, id uint, actorID uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSaleNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.ReverseSale(ctx, sale); err != nil {
		return err
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, actorID, "DELETE", "Sale", sale.ID,
			fmt.Sprintf("Venta eliminada. Precio: %.2f", sale.SalePrice), "", "")
	}

	return nil
}

// Complete marks a pending sale as completada
func (s *SaleService) Complete(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	if err := s.markSaleCompleted(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// ReplaceExpenses reconciles the sale's expense lines against the
// submitted list: rows with a matching id are updated in place, rows
// missing from the list are deleted, rows without an id are inserted.
// Existing ids stay stable across edits. Submitted ids that do not
// belong to this sale are not trusted; they become inserts.
func (s *SaleService) ReplaceExpenses(ctx context.Context, saleID uint, items []models.SaleExpense) ([]models.SaleExpense, error) {
	if _, err := s.repo.FindByID(ctx, saleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	existing, err := s.repo.FindExpensesBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	owned := make(map[uint]bool, len(existing))
	for _, old := range existing {
		owned[old.ID] = true
	}

	submitted := make(map[uint]bool, len(items))
	for i := range items {
		item := &items[i]
		item.SaleID = saleID
		if item.ID > 0 && owned[item.ID] {
			submitted[item.ID] = true
			if err := s.repo.UpdateExpense(ctx, item); err != nil {
				return nil, err
			}
		} else {
			item.ID = 0
			if err := s.repo.CreateExpense(ctx, item); err != nil {
				return nil, err
			}
		}
	}

	for _, old := range existing {
		if !submitted[old.ID] {
			if err := s.repo.DeleteExpense(ctx, old.ID); err != nil {
				return nil, err
			}
		}
	}

	return s.repo.FindExpensesBySale(ctx, saleID)
}

// FindExpenses returns the expense lines of a sale
func (s *SaleService) FindExpenses(ctx context.Context, saleID uint) ([]models.SaleExpense, error) {
	return s.repo.FindExpensesBySale(ctx, saleID)
}
