package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"gorm.io/gorm"
)

type ConsignmentService struct {
	repo            repository.ConsignmentRepository
	vehicleRepo     repository.VehicleRepository
	notificationSvc *NotificationService
}

func NewConsignmentService(
	repo repository.ConsignmentRepository,
	vehicleRepo repository.VehicleRepository,
	notificationSvc *NotificationService,
) *ConsignmentService {
	return &ConsignmentService{
		repo:            repo,
		vehicleRepo:     vehicleRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *ConsignmentService) FindByID(ctx context.Context, id uint) (*models.Consignment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ConsignmentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Consignment, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a consignment and recategorizes the vehicle as consignado
func (s *ConsignmentService) Create(ctx context.Context, consignment *models.Consignment) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, consignment.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// One active consignment per vehicle
	if existing, err := s.repo.FindByVehicle(ctx, consignment.VehicleID); err == nil && existing != nil {
		return errors.New("el vehículo ya tiene una consignación activa")
	}

	if consignment.AgreedPrice <= 0 {
		return errors.New("el precio acordado debe ser mayor que cero")
	}

	if err := s.repo.Create(ctx, consignment); err != nil {
		return err
	}

	if vehicle.Category != models.VehicleCategoryConsignment {
		vehicle.Category = models.VehicleCategoryConsignment
		if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
			return err
		}
	}

	return nil
}

func (s *ConsignmentService) Update(ctx context.Context, consignment *models.Consignment) error {
	return s.repo.Update(ctx, consignment)
}

// MarkSold closes the consignment as vendida. The vehicle itself is sold
// through the regular sale flow.
func (s *ConsignmentService) MarkSold(ctx context.Context, id uint) (*models.Consignment, error) {
	consignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if consignment.Status != models.ConsignmentStatusActive {
		return nil, fmt.Errorf("la consignación no puede venderse en estado %s", consignment.Status)
	}

	consignment.Status = models.ConsignmentStatusSold
	return consignment, s.repo.Update(ctx, consignment)
}

// Return marks the consignment devuelta and takes the vehicle out of inventory
func (s *ConsignmentService) Return(ctx context.Context, id uint) (*models.Consignment, error) {
	consignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if consignment.Status != models.ConsignmentStatusActive {
		return nil, fmt.Errorf("la consignación no puede devolverse en estado %s", consignment.Status)
	}

	consignment.Status = models.ConsignmentStatusReturned
	if err := s.repo.Update(ctx, consignment); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, consignment.VehicleID)
	if err == nil && vehicle.Status != models.VehicleStatusSold {
		vehicle.Status = models.VehicleStatusOutOfService
		if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
			return nil, err
		}
	}

	return consignment, nil
}

func (s *ConsignmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// NotifyExpiring alerts admins about consignments ending soon.
// Meant to be run on a schedule.
func (s *ConsignmentService) NotifyExpiring(ctx context.Context, withinDays int) error {
	consignments, err := s.repo.FindExpiring(ctx, withinDays)
	if err != nil {
		return err
	}

	if s.notificationSvc == nil {
		return nil
	}

	for _, c := range consignments {
		_ = s.notificationSvc.NotifyAdmins(ctx,
			"Consignación por vencer",
			fmt.Sprintf("La consignación del %s (propietario %s) vence el %s",
				c.Vehicle.DisplayName(), c.OwnerName, c.EndDate.Format("02/01/2006")),
			models.NotificationTypeConsignmentExpired)
	}

	return nil
}
