package services

import (
	"context"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock QuoteRepository
type mockQuoteRepository struct {
	repository.QuoteRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Quote, error)
	mockCreate   func(ctx context.Context, quote *models.Quote) error
	mockUpdate   func(ctx context.Context, quote *models.Quote) error
	mockDelete   func(ctx context.Context, id uint) error
}

func (m *mockQuoteRepository) FindByID(ctx context.Context, id uint) (*models.Quote, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockQuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, quote)
	}
	return nil
}

func (m *mockQuoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, quote)
	}
	return nil
}

func (m *mockQuoteRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func TestCreateQuote_MovesLeadToQuoting(t *testing.T) {
	lead := &models.Lead{ID: 10, Status: models.LeadStatusInterested}
	vehicle := &models.Vehicle{ID: 20, Status: models.VehicleStatusAvailable, Price: 250000}

	quoteRepo := &mockQuoteRepository{
		mockCreate: func(ctx context.Context, quote *models.Quote) error {
			quote.ID = 1
			return nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
	}
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) { return vehicle, nil },
	}

	service := NewQuoteService(quoteRepo, leadRepo, vehicleRepo, nil, nil, nil)

	quote := &models.Quote{BranchID: 1, LeadID: 10, VehicleID: 20, SellerID: 5}
	err := service.Create(context.Background(), quote)
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusQuoting, lead.Status)
	// A zero price defaults to the vehicle's list price
	assert.Equal(t, 250000.0, quote.Price)
}

func TestCreateQuote_RejectsUnavailableVehicle(t *testing.T) {
	createCalled := false
	quoteRepo := &mockQuoteRepository{
		mockCreate: func(ctx context.Context, quote *models.Quote) error {
			createCalled = true
			return nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			return &models.Lead{ID: id, Status: models.LeadStatusNew}, nil
		},
	}
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) {
			return &models.Vehicle{ID: id, Status: models.VehicleStatusInRepair}, nil
		},
	}

	service := NewQuoteService(quoteRepo, leadRepo, vehicleRepo, nil, nil, nil)

	err := service.Create(context.Background(), &models.Quote{LeadID: 10, VehicleID: 20})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no está disponible")
	assert.False(t, createCalled)
}

func TestAcceptQuote_MovesLeadToNegotiating(t *testing.T) {
	lead := &models.Lead{ID: 10, Status: models.LeadStatusQuoting}

	quoteRepo := &mockQuoteRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Quote, error) {
			return &models.Quote{ID: id, LeadID: 10, SellerID: 5, Price: 240000, Status: models.QuoteStatusPending}, nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
	}

	service := NewQuoteService(quoteRepo, leadRepo, &mockVehicleRepository{}, nil, nil, nil)

	quote, err := service.Accept(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.QuoteStatusAccepted, quote.Status)
	assert.NotNil(t, quote.AcceptedAt)
	assert.Equal(t, models.LeadStatusNegotiating, lead.Status)
}

func TestAcceptQuote_RejectsNonPending(t *testing.T) {
	quoteRepo := &mockQuoteRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Quote, error) {
			return &models.Quote{ID: id, LeadID: 10, Status: models.QuoteStatusExpired}, nil
		},
	}

	service := NewQuoteService(quoteRepo, &mockLeadRepository{}, &mockVehicleRepository{}, nil, nil, nil)

	_, err := service.Accept(context.Background(), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vencida")
}

func TestRejectQuote_OnlyFromPending(t *testing.T) {
	quoteRepo := &mockQuoteRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Quote, error) {
			return &models.Quote{ID: id, Status: models.QuoteStatusAccepted}, nil
		},
	}

	service := NewQuoteService(quoteRepo, &mockLeadRepository{}, &mockVehicleRepository{}, nil, nil, nil)

	_, err := service.Reject(context.Background(), 1)
	assert.Error(t, err)
}

func TestDeleteQuote_NeverTouchesLead(t *testing.T) {
	leadTouched := false

	quoteRepo := &mockQuoteRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Quote, error) {
			return &models.Quote{ID: id, LeadID: 10, Status: models.QuoteStatusPending}, nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			leadTouched = true
			return nil, nil
		},
		mockUpdate: func(ctx context.Context, l *models.Lead) error {
			leadTouched = true
			return nil
		},
	}

	service := NewQuoteService(quoteRepo, leadRepo, &mockVehicleRepository{}, nil, nil, nil)

	err := service.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, leadTouched, "deleting a quote must leave the lead's funnel status alone")
}
