package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleService struct {
	repo     repository.VehicleRepository
	auditSvc *AuditService
}

func NewVehicleService(repo repository.VehicleRepository, auditSvc *AuditService) *VehicleService {
	return &VehicleService{repo: repo, auditSvc: auditSvc}
}

func (s *VehicleService) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, query *repository.VehicleQuery) ([]models.Vehicle, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *VehicleService) GetStats(ctx context.Context, branchID uint) (*repository.VehicleStats, error) {
	return s.repo.GetStats(ctx, branchID)
}

func (s *VehicleService) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.GUID == "" {
		vehicle.GUID = uuid.New().String()
	}
	if vehicle.Status == "" {
		vehicle.Status = models.VehicleStatusAvailable
	}
	return s.repo.Create(ctx, vehicle)
}

func (s *VehicleService) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return s.repo.Update(ctx, vehicle)
}

// Delete removes a vehicle. Units with sale history cannot be removed.
func (s *VehicleService) Delete(ctx context.Context, id uint, actorID uint) error {
	vehicle, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasSales, err := s.repo.HasSales(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		return errors.New("el vehículo tiene ventas registradas y no puede eliminarse")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, actorID, "DELETE", "Vehicle", vehicle.ID,
			fmt.Sprintf("Vehículo eliminado: %s (%s)", vehicle.DisplayName(), vehicle.VIN), "", "")
	}

	return nil
}

// SetStatus moves a vehicle to an operational status (en_reparacion,
// fuera_de_servicio, disponible, reservado). Sale-driven transitions go
// through the sale workflow instead.
func (s *VehicleService) SetStatus(ctx context.Context, id uint, status string) (*models.Vehicle, error) {
	switch status {
	case models.VehicleStatusAvailable, models.VehicleStatusReserved,
		models.VehicleStatusInRepair, models.VehicleStatusOutOfService:
	default:
		return nil, fmt.Errorf("estado de vehículo inválido: %s", status)
	}

	vehicle, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == models.VehicleStatusSold {
		return nil, errors.New("un vehículo vendido solo se libera revirtiendo su venta")
	}

	vehicle.Status = status
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// AppendImages adds uploaded image URLs to the vehicle's image list
func (s *VehicleService) AppendImages(ctx context.Context, id uint, urls []string) (*models.Vehicle, error) {
	vehicle, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var images []string
	if vehicle.Images != nil && *vehicle.Images != "" {
		if err := json.Unmarshal([]byte(*vehicle.Images), &images); err != nil {
			return nil, fmt.Errorf("lista de imágenes corrupta: %w", err)
		}
	}
	images = append(images, urls...)

	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	vehicle.Images = &encoded

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// RemoveImage drops an image URL from the vehicle's image list. Returns
// ErrNotFound when the URL is not on the list.
func (s *VehicleService) RemoveImage(ctx context.Context, id uint, url string) (*models.Vehicle, error) {
	vehicle, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var images []string
	if vehicle.Images != nil && *vehicle.Images != "" {
		if err := json.Unmarshal([]byte(*vehicle.Images), &images); err != nil {
			return nil, fmt.Errorf("lista de imágenes corrupta: %w", err)
		}
	}

	kept := images[:0]
	found := false
	for _, img := range images {
		if img == url {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return nil, ErrNotFound
	}

	raw, err := json.Marshal(kept)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	vehicle.Images = &encoded

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}
