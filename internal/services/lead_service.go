package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/jobs"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/statemachine"
	"gorm.io/gorm"
)

type LeadService struct {
	repo            repository.LeadRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
	worker          *jobs.Worker
}

func NewLeadService(
	repo repository.LeadRepository,
	userRepo repository.UserRepository,
	notificationSvc *NotificationService,
	worker *jobs.Worker,
) *LeadService {
	return &LeadService{
		repo:            repo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		worker:          worker,
	}
}

func (s *LeadService) FindByID(ctx context.Context, id uint) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, query *repository.LeadQuery) ([]models.Lead, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *LeadService) GetStats(ctx context.Context, branchID uint) (*repository.LeadStats, error) {
	return s.repo.GetStats(ctx, branchID)
}

func (s *LeadService) Create(ctx context.Context, lead *models.Lead) error {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	return s.repo.Create(ctx, lead)
}

func (s *LeadService) Update(ctx context.Context, lead *models.Lead) error {
	return s.repo.Update(ctx, lead)
}

func (s *LeadService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Assign hands the lead to a seller and notifies them
func (s *LeadService) Assign(ctx context.Context, id, sellerID uint) (*models.Lead, error) {
	lead, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller, err := s.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lead.AssignedToID = &seller.ID
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if s.worker != nil && s.notificationSvc != nil {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyUser(ctx, seller.ID,
				"Lead asignado",
				fmt.Sprintf("Se te ha asignado el lead %s (%s)", lead.FullName, lead.Phone),
				models.NotificationTypeLeadAssigned)
		})
	}

	return lead, nil
}

// Transition applies a funnel event to the lead by name
func (s *LeadService) Transition(ctx context.Context, id uint, event string, lostReason string) (*models.Lead, error) {
	lead, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fsm := statemachine.NewLeadFSM(lead)

	switch event {
	case "contact":
		err = fsm.Contact(ctx)
	case "interest":
		err = fsm.Interest(ctx)
	case "quote":
		err = fsm.Quote(ctx)
	case "negotiate":
		err = fsm.Negotiate(ctx)
	case "sell":
		err = fsm.Sell(ctx)
	case "lose":
		err = fsm.Lose(ctx)
		if err == nil && lostReason != "" {
			lead.LostReason = &lostReason
		}
	case "reopen":
		err = fsm.Reopen(ctx)
	default:
		return nil, fmt.Errorf("evento de embudo desconocido: %s", event)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

// TouchContact stamps last_contact without changing funnel status
func (s *LeadService) TouchContact(ctx context.Context, id uint) (*models.Lead, error) {
	lead, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead.LastContact = &now
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// NotifyStaleLeads warns assigned sellers about leads without recent contact
func (s *LeadService) NotifyStaleLeads(ctx context.Context, olderThanDays int) error {
	leads, err := s.repo.FindStale(ctx, olderThanDays)
	if err != nil {
		return err
	}

	for _, lead := range leads {
		if lead.AssignedToID == nil {
			continue
		}
		s.notificationSvc.NotifyUser(ctx, *lead.AssignedToID,
			"Lead sin seguimiento",
			fmt.Sprintf("El lead %s lleva más de %d días sin contacto", lead.FullName, olderThanDays),
			models.NotificationTypeLeadAssigned)
	}

	return nil
}
