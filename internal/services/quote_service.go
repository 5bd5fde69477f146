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

type QuoteService struct {
	repo            repository.QuoteRepository
	leadRepo        repository.LeadRepository
	vehicleRepo     repository.VehicleRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

func NewQuoteService(
	repo repository.QuoteRepository,
	leadRepo repository.LeadRepository,
	vehicleRepo repository.VehicleRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *QuoteService {
	return &QuoteService{
		repo:            repo,
		leadRepo:        leadRepo,
		vehicleRepo:     vehicleRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

func (s *QuoteService) FindByID(ctx context.Context, id uint) (*models.Quote, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QuoteService) FindByLead(ctx context.Context, leadID uint) ([]models.Quote, error) {
	return s.repo.FindByLead(ctx, leadID)
}

func (s *QuoteService) List(ctx context.Context, query *repository.QuoteQuery) ([]models.Quote, int64, error) {
	return s.repo.List(ctx, query)
}

// Create records a quote and moves the lead to cotizando
func (s *QuoteService) Create(ctx context.Context, quote *models.Quote) error {
	lead, err := s.leadRepo.FindByID(ctx, quote.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, quote.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !vehicle.IsAvailable() {
		return errors.New("el vehículo no está disponible")
	}

	if quote.Price == 0 {
		quote.Price = vehicle.Price
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return err
	}

	fsm := statemachine.NewLeadFSM(lead)
	if err := fsm.Quote(ctx); err != nil {
		return err
	}
	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return err
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, quote.SellerID, "CREATE", "Quote", quote.ID,
			fmt.Sprintf("Cotización creada para %s. Precio: %.2f", vehicle.DisplayName(), quote.FinalPrice()), "", "")
	}

	return nil
}

// Accept marks the quote aceptada and moves the lead to negociando
func (s *QuoteService) Accept(ctx context.Context, id uint) (*models.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !quote.MayAccept() {
		return nil, fmt.Errorf("la cotización no puede aceptarse en estado %s", quote.Status)
	}

	now := time.Now()
	quote.Status = models.QuoteStatusAccepted
	quote.AcceptedAt = &now
	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.FindByID(ctx, quote.LeadID)
	if err != nil {
		return nil, err
	}
	fsm := statemachine.NewLeadFSM(lead)
	if err := fsm.Negotiate(ctx); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if s.worker != nil && s.notificationSvc != nil {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyUser(ctx, quote.SellerID,
				"Cotización aceptada",
				fmt.Sprintf("El cliente %s aceptó la cotización #%d", lead.FullName, quote.ID),
				models.NotificationTypeQuoteAccepted)
		})
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, quote.SellerID, "ACCEPT", "Quote", quote.ID,
			fmt.Sprintf("Cotización aceptada. Precio final: %.2f", quote.FinalPrice()), "", "")
	}

	return quote, nil
}

// Reject marks the quote rechazada. The lead stays where it is.
func (s *QuoteService) Reject(ctx context.Context, id uint) (*models.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quote.Status != models.QuoteStatusPending {
		return nil, fmt.Errorf("la cotización no puede rechazarse en estado %s", quote.Status)
	}

	quote.Status = models.QuoteStatusRejected
	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, quote *models.Quote) error {
	return s.repo.Update(ctx, quote)
}

// Delete removes a quote. Deleting a quote never reverses the lead's
// funnel status.
func (s *QuoteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ExpireQuotes flips pending quotes past their validity date to vencida
func (s *QuoteService) ExpireQuotes(ctx context.Context) (int64, error) {
	return s.repo.MarkExpired(ctx)
}
