package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"gorm.io/gorm"
)

type TramiteService struct {
	repo            repository.TramiteRepository
	notificationSvc *NotificationService
}

func NewTramiteService(repo repository.TramiteRepository, notificationSvc *NotificationService) *TramiteService {
	return &TramiteService{
		repo:            repo,
		notificationSvc: notificationSvc,
	}
}

func (s *TramiteService) FindByID(ctx context.Context, id uint) (*models.Tramite, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TramiteService) FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Tramite, error) {
	return s.repo.FindByVehicle(ctx, vehicleID)
}

func (s *TramiteService) List(ctx context.Context, query *repository.ListQuery) ([]models.Tramite, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *TramiteService) Create(ctx context.Context, tramite *models.Tramite) error {
	if tramite.VehicleID == nil && tramite.SaleID == nil {
		return errors.New("el trámite debe asociarse a un vehículo o a una venta")
	}
	return s.repo.Create(ctx, tramite)
}

func (s *TramiteService) Update(ctx context.Context, tramite *models.Tramite) error {
	return s.repo.Update(ctx, tramite)
}

// Start moves a pending tramite to en_proceso
func (s *TramiteService) Start(ctx context.Context, id uint) (*models.Tramite, error) {
	tramite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if tramite.Status != models.TramiteStatusPending {
		return nil, fmt.Errorf("el trámite no puede iniciarse en estado %s", tramite.Status)
	}

	tramite.Status = models.TramiteStatusInProgress
	return tramite, s.repo.Update(ctx, tramite)
}

// Complete marks a tramite completado and stamps the completion time
func (s *TramiteService) Complete(ctx context.Context, id uint) (*models.Tramite, error) {
	tramite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if tramite.Status == models.TramiteStatusDone || tramite.Status == models.TramiteStatusCancelled {
		return nil, fmt.Errorf("el trámite no puede completarse en estado %s", tramite.Status)
	}

	now := time.Now()
	tramite.Status = models.TramiteStatusDone
	tramite.CompletedAt = &now
	return tramite, s.repo.Update(ctx, tramite)
}

// Cancel marks a tramite cancelado
func (s *TramiteService) Cancel(ctx context.Context, id uint) (*models.Tramite, error) {
	tramite, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if tramite.Status == models.TramiteStatusDone {
		return nil, errors.New("un trámite completado no puede cancelarse")
	}

	tramite.Status = models.TramiteStatusCancelled
	return tramite, s.repo.Update(ctx, tramite)
}

func (s *TramiteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// NotifyOverdue alerts admins about tramites past their due date.
// Meant to be run on a schedule.
func (s *TramiteService) NotifyOverdue(ctx context.Context) error {
	tramites, err := s.repo.FindOverdue(ctx)
	if err != nil {
		return err
	}

	if s.notificationSvc == nil {
		return nil
	}

	for _, t := range tramites {
		detail := t.Kind
		if t.Vehicle != nil {
			detail = fmt.Sprintf("%s de %s", t.Kind, t.Vehicle.DisplayName())
		}
		_ = s.notificationSvc.NotifyAdmins(ctx,
			"Trámite vencido",
			fmt.Sprintf("El trámite %s venció el %s", detail, t.DueDate.Format("02/01/2006")),
			models.NotificationTypeTramiteOverdue)
	}

	return nil
}
