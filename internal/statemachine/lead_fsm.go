package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/looplab/fsm"
)

// LeadFSM wraps a lead with its funnel state machine
type LeadFSM struct {
	lead *models.Lead
	fsm  *fsm.FSM
}

// NewLeadFSM creates a new lead funnel state machine
func NewLeadFSM(lead *models.Lead) *LeadFSM {
	lfsm := &LeadFSM{
		lead: lead,
	}

	liveStates := []string{
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusInterested,
		models.LeadStatusQuoting,
		models.LeadStatusNegotiating,
	}

	lfsm.fsm = fsm.NewFSM(
		lead.Status,
		fsm.Events{
			// nuevo → contactado
			{Name: "contact", Src: []string{models.LeadStatusNew}, Dst: models.LeadStatusContacted},

			// contactado → interesado
			{Name: "interest", Src: []string{models.LeadStatusContacted}, Dst: models.LeadStatusInterested},

			// any live state → cotizando (a quote can be issued at any funnel stage)
			{Name: "quote", Src: liveStates, Dst: models.LeadStatusQuoting},

			// any live state → negociando
			{Name: "negotiate", Src: liveStates, Dst: models.LeadStatusNegotiating},

			// any live state → vendido
			{Name: "sell", Src: liveStates, Dst: models.LeadStatusSold},

			// any live state → perdido
			{Name: "lose", Src: liveStates, Dst: models.LeadStatusLost},

			// vendido → negociando; a reversed sale always reopens into
			// negotiation, never the pre-sale status
			{Name: "reopen", Src: []string{models.LeadStatusSold}, Dst: models.LeadStatusNegotiating},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// Contact transitions lead to contactado state
func (l *LeadFSM) Contact(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "contact"); err != nil {
		return fmt.Errorf("failed to mark lead contacted: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	now := time.Now()
	l.lead.LastContact = &now
	return nil
}

// Interest transitions lead to interesado state
func (l *LeadFSM) Interest(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "interest"); err != nil {
		return fmt.Errorf("failed to mark lead interested: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Quote transitions lead to cotizando state
func (l *LeadFSM) Quote(ctx context.Context) error {
	if !l.lead.MayQuote() {
		return fmt.Errorf("lead cannot be quoted in current state: %s", l.lead.Status)
	}

	if err := l.fsm.Event(ctx, "quote"); err != nil {
		return fmt.Errorf("failed to move lead to quoting: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Negotiate transitions lead to negociando state
func (l *LeadFSM) Negotiate(ctx context.Context) error {
	if !l.lead.MayNegotiate() {
		return fmt.Errorf("lead cannot negotiate in current state: %s", l.lead.Status)
	}

	if err := l.fsm.Event(ctx, "negotiate"); err != nil {
		return fmt.Errorf("failed to move lead to negotiating: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Sell transitions lead to vendido state
func (l *LeadFSM) Sell(ctx context.Context) error {
	if !l.lead.MaySell() {
		return fmt.Errorf("lead cannot be sold in current state: %s", l.lead.Status)
	}

	if err := l.fsm.Event(ctx, "sell"); err != nil {
		return fmt.Errorf("failed to mark lead sold: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Lose transitions lead to perdido state
func (l *LeadFSM) Lose(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "lose"); err != nil {
		return fmt.Errorf("failed to mark lead lost: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Reopen transitions lead from vendido back to negociando
func (l *LeadFSM) Reopen(ctx context.Context) error {
	if !l.lead.MayReopen() {
		return fmt.Errorf("lead cannot be reopened in current state: %s", l.lead.Status)
	}

	if err := l.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen lead: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LeadFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LeadFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
