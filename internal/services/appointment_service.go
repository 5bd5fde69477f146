package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/jobs"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"gorm.io/gorm"
)

type AppointmentService struct {
	repo            repository.AppointmentRepository
	leadRepo        repository.LeadRepository
	notificationSvc *NotificationService
	emailSvc        *EmailService
	worker          *jobs.Worker
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	leadRepo repository.LeadRepository,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	worker *jobs.Worker,
) *AppointmentService {
	return &AppointmentService{
		repo:            repo,
		leadRepo:        leadRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		worker:          worker,
	}
}

func (s *AppointmentService) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AppointmentService) FindByLead(ctx context.Context, leadID uint) ([]models.Appointment, error) {
	return s.repo.FindByLead(ctx, leadID)
}

func (s *AppointmentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Appointment, int64, error) {
	return s.repo.List(ctx, query)
}

// Create schedules an appointment and touches the lead's last contact date
func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	lead, err := s.leadRepo.FindByID(ctx, appointment.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if lead.IsClosed() {
		return errors.New("no se pueden agendar citas para un lead cerrado")
	}

	if appointment.IsPast() {
		return errors.New("la cita no puede agendarse en el pasado")
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return err
	}

	if s.worker != nil && s.notificationSvc != nil {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyUser(ctx, appointment.SellerID,
				"Cita agendada",
				fmt.Sprintf("Cita con %s el %s", lead.FullName, appointment.ScheduledAt.Format("02/01/2006 15:04")),
				models.NotificationTypeAppointmentSoon)
		})
	}

	return nil
}

func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	return s.repo.Update(ctx, appointment)
}

// MarkDone closes the appointment as realizada and registers the contact
// on the lead.
func (s *AppointmentService) MarkDone(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appointment.Status != models.AppointmentStatusScheduled {
		return nil, fmt.Errorf("la cita no puede marcarse realizada en estado %s", appointment.Status)
	}

	appointment.Status = models.AppointmentStatusDone
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if lead, err := s.leadRepo.FindByID(ctx, appointment.LeadID); err == nil {
		now := appointment.ScheduledAt
		lead.LastContact = &now
		if err := s.leadRepo.Update(ctx, lead); err != nil {
			return nil, err
		}
	}

	return appointment, nil
}

// Cancel marks a scheduled appointment cancelada
func (s *AppointmentService) Cancel(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appointment.Status != models.AppointmentStatusScheduled {
		return nil, fmt.Errorf("la cita no puede cancelarse en estado %s", appointment.Status)
	}

	appointment.Status = models.AppointmentStatusCancelled
	return appointment, s.repo.Update(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SendReminders notifies sellers about appointments in the next window.
// Meant to be run on a schedule.
func (s *AppointmentService) SendReminders(ctx context.Context, withinHours int) error {
	appointments, err := s.repo.FindUpcoming(ctx, withinHours)
	if err != nil {
		return err
	}

	for _, appointment := range appointments {
		a := appointment
		if s.notificationSvc != nil {
			_ = s.notificationSvc.NotifyUser(ctx, a.SellerID,
				"Cita próxima",
				fmt.Sprintf("Cita con %s el %s", a.Lead.FullName, a.ScheduledAt.Format("02/01/2006 15:04")),
				models.NotificationTypeAppointmentSoon)
		}
		if s.emailSvc != nil {
			_ = s.emailSvc.SendAppointmentReminder(ctx, &a)
		}
	}

	return nil
}

// ExpireAppointments flips past scheduled appointments to vencida
func (s *AppointmentService) ExpireAppointments(ctx context.Context) (int64, error) {
	return s.repo.MarkExpired(ctx)
}
