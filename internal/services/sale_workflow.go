package services

import (
	"context"
	"fmt"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/statemachine"
)

// CompleteSale runs the post-insert consistency steps of a new sale:
// the linked lead moves to vendido, then the linked vehicle moves to
// vendido. Steps run sequentially outside any store transaction; the
// first failing step aborts the remainder and its error propagates.
// There is no compensation for steps that already committed.
func (s *SaleService) CompleteSale(ctx context.Context, sale *models.Sale) error {
	if sale.LeadID != nil {
		if err := s.markLeadSold(ctx, *sale.LeadID); err != nil {
			return fmt.Errorf("venta #%d: %w", sale.ID, err)
		}
	}

	if sale.VehicleID != nil {
		if err := s.markVehicleSold(ctx, *sale.VehicleID); err != nil {
			return fmt.Errorf("venta #%d: %w", sale.ID, err)
		}
	}

	return nil
}

// ReverseSale runs the consistency steps of a deleted sale: the linked
// lead reopens to negociando, then the linked vehicle returns to
// disponible. Same sequencing and failure policy as CompleteSale.
func (s *SaleService) ReverseSale(ctx context.Context, sale *models.Sale) error {
	if sale.LeadID != nil {
		if err := s.reopenLead(ctx, *sale.LeadID); err != nil {
			return fmt.Errorf("venta #%d: %w", sale.ID, err)
		}
	}

	if sale.VehicleID != nil {
		if err := s.releaseVehicle(ctx, *sale.VehicleID); err != nil {
			return fmt.Errorf("venta #%d: %w", sale.ID, err)
		}
	}

	return nil
}

// markLeadSold moves the lead to vendido through its funnel FSM
func (s *SaleService) markLeadSold(ctx context.Context, leadID uint) error {
	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return err
	}

	fsm := statemachine.NewLeadFSM(lead)
	if err := fsm.Sell(ctx); err != nil {
		return err
	}

	return s.leadRepo.Update(ctx, lead)
}

// markVehicleSold flips the vehicle to vendido and stamps sold_at
func (s *SaleService) markVehicleSold(ctx context.Context, vehicleID uint) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	now := time.Now()
	vehicle.Status = models.VehicleStatusSold
	vehicle.SoldAt = &now
	return s.vehicleRepo.Update(ctx, vehicle)
}

// reopenLead moves a vendido lead back to negociando. The target is
// fixed: the funnel does not remember the lead's pre-sale status.
func (s *SaleService) reopenLead(ctx context.Context, leadID uint) error {
	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return err
	}

	fsm := statemachine.NewLeadFSM(lead)
	if err := fsm.Reopen(ctx); err != nil {
		return err
	}

	return s.leadRepo.Update(ctx, lead)
}

// releaseVehicle returns the vehicle to disponible and clears sold_at
func (s *SaleService) releaseVehicle(ctx context.Context, vehicleID uint) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	vehicle.Status = models.VehicleStatusAvailable
	vehicle.SoldAt = nil
	return s.vehicleRepo.Update(ctx, vehicle)
}

// markSaleCompleted transitions the sale row itself through its FSM
func (s *SaleService) markSaleCompleted(ctx context.Context, sale *models.Sale) error {
	fsm := statemachine.NewSaleFSM(sale)
	if err := fsm.Complete(ctx); err != nil {
		return err
	}

	return s.repo.Update(ctx, sale)
}
