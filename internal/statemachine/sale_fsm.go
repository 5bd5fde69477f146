package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/looplab/fsm"
)

// SaleFSM wraps a sale with its state machine
type SaleFSM struct {
	sale *models.Sale
	fsm  *fsm.FSM
}

// NewSaleFSM creates a new sale state machine
func NewSaleFSM(sale *models.Sale) *SaleFSM {
	sfsm := &SaleFSM{
		sale: sale,
	}

	sfsm.fsm = fsm.NewFSM(
		sale.Status,
		fsm.Events{
			// pendiente → completada
			{Name: "complete", Src: []string{models.SaleStatusPending}, Dst: models.SaleStatusCompleted},

			// pendiente/completada → cancelada
			{Name: "cancel", Src: []string{models.SaleStatusPending, models.SaleStatusCompleted}, Dst: models.SaleStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return sfsm
}

// Complete transitions sale to completada state
func (s *SaleFSM) Complete(ctx context.Context) error {
	if !s.sale.MayComplete() {
		return fmt.Errorf("sale cannot be completed in current state: %s", s.sale.Status)
	}

	if err := s.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("failed to complete sale: %w", err)
	}

	s.sale.Status = s.fsm.Current()
	now := time.Now()
	s.sale.CompletedAt = &now
	return nil
}

// Cancel transitions sale to cancelada state
func (s *SaleFSM) Cancel(ctx context.Context) error {
	if !s.sale.MayCancel() {
		return fmt.Errorf("sale cannot be cancelled in current state: %s", s.sale.Status)
	}

	if err := s.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel sale: %w", err)
	}

	s.sale.Status = s.fsm.Current()
	return nil
}

// Current returns the current state
func (s *SaleFSM) Current() string {
	return s.fsm.Current()
}

// Can checks if a transition is possible
func (s *SaleFSM) Can(event string) bool {
	return s.fsm.Can(event)
}
