package services

import (
	"context"
	"errors"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLeadTransition_LoseRecordsReason(t *testing.T) {
	lead := &models.Lead{ID: 10, Status: models.LeadStatusContacted}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
	}
	service := NewLeadService(leadRepo, &mockUserRepository{}, nil, nil)

	result, err := service.Transition(context.Background(), 10, "lose", "compró en otra agencia")
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusLost, result.Status)
	require.NotNil(t, result.LostReason)
	assert.Equal(t, "compró en otra agencia", *result.LostReason)
}

func TestLeadTransition_UnknownEvent(t *testing.T) {
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			return &models.Lead{ID: id, Status: models.LeadStatusNew}, nil
		},
	}
	service := NewLeadService(leadRepo, &mockUserRepository{}, nil, nil)

	_, err := service.Transition(context.Background(), 10, "upgrade", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "evento de embudo desconocido")
}

func TestLeadTransition_InvalidStateMapsToSentinel(t *testing.T) {
	updateCalled := false
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			return &models.Lead{ID: id, Status: models.LeadStatusLost}, nil
		},
		mockUpdate: func(ctx context.Context, lead *models.Lead) error {
			updateCalled = true
			return nil
		},
	}
	service := NewLeadService(leadRepo, &mockUserRepository{}, nil, nil)

	_, err := service.Transition(context.Background(), 10, "sell", "")
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, updateCalled)
}

func TestLeadTransition_NotFound(t *testing.T) {
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewLeadService(leadRepo, &mockUserRepository{}, nil, nil)

	_, err := service.Transition(context.Background(), 99, "contact", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAssignLead_SetsSeller(t *testing.T) {
	lead := &models.Lead{ID: 10, Status: models.LeadStatusNew}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
	}
	userRepo := &mockUserRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleSeller}, nil
		},
	}
	service := NewLeadService(leadRepo, userRepo, nil, nil)

	result, err := service.Assign(context.Background(), 10, 5)
	require.NoError(t, err)
	require.NotNil(t, result.AssignedToID)
	assert.Equal(t, uint(5), *result.AssignedToID)
}
