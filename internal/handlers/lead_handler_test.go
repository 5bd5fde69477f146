package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockLeadRepo struct {
	repository.LeadRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Lead, error)
	mockCreate   func(ctx context.Context, lead *models.Lead) error
	mockUpdate   func(ctx context.Context, lead *models.Lead) error
	mockList     func(ctx context.Context, query *repository.LeadQuery) ([]models.Lead, int64, error)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id uint) (*models.Lead, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *models.Lead) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, lead)
	}
	return nil
}

func (m *mockLeadRepo) Update(ctx context.Context, lead *models.Lead) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, lead)
	}
	return nil
}

func (m *mockLeadRepo) List(ctx context.Context, query *repository.LeadQuery) ([]models.Lead, int64, error) {
	return m.mockList(ctx, query)
}

func TestLeadHandler_Index_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockLeadRepo{}
	leadService := services.NewLeadService(mockRepo, nil, nil, nil)
	handler := NewLeadHandler(leadService)

	var captured *repository.LeadQuery
	mockRepo.mockList = func(ctx context.Context, query *repository.LeadQuery) ([]models.Lead, int64, error) {
		captured = query
		return []models.Lead{}, 0, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/leads?status=cotizando&source=facebook&assigned_to=5&branch_id=2", nil)
	handler.Index(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cotizando", captured.Status)
	assert.Equal(t, "facebook", captured.Source)
	assert.Equal(t, uint(5), captured.AssignedToID)
	assert.Equal(t, uint(2), captured.BranchID)
}

func TestLeadHandler_Create_RequiresNameAndPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	created := false
	mockRepo := &mockLeadRepo{
		mockCreate: func(ctx context.Context, lead *models.Lead) error {
			created = true
			return nil
		},
	}
	leadService := services.NewLeadService(mockRepo, nil, nil, nil)
	handler := NewLeadHandler(leadService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]interface{}{"full_name": "Juan Perez"})
	c.Request, _ = http.NewRequest("POST", "/leads", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, created)
	assert.Contains(t, w.Body.String(), "Nombre y teléfono son requeridos")
}

func TestLeadHandler_Update_PreservesFunnelStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockLeadRepo{}
	leadService := services.NewLeadService(mockRepo, nil, nil, nil)
	handler := NewLeadHandler(leadService)

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Lead, error) {
		return &models.Lead{ID: id, FullName: "Juan Perez", Phone: "9999-9999", Status: models.LeadStatusNegotiating}, nil
	}

	var saved *models.Lead
	mockRepo.mockUpdate = func(ctx context.Context, lead *models.Lead) error {
		saved = lead
		return nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "lead_id", Value: "10"}}

	// A status smuggled into the body must not move the funnel
	body, _ := json.Marshal(map[string]interface{}{
		"full_name": "Juan Pablo Perez",
		"status":    models.LeadStatusSold,
	})
	c.Request, _ = http.NewRequest("PUT", "/leads/10", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, saved)
	assert.Equal(t, "Juan Pablo Perez", saved.FullName)
	assert.Equal(t, models.LeadStatusNegotiating, saved.Status)
}

func TestLeadHandler_Transition_InvalidEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockLeadRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) {
			return &models.Lead{ID: id, Status: models.LeadStatusLost}, nil
		},
	}
	leadService := services.NewLeadService(mockRepo, nil, nil, nil)
	handler := NewLeadHandler(leadService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "lead_id", Value: "10"}}
	body, _ := json.Marshal(map[string]interface{}{"event": "sell"})
	c.Request, _ = http.NewRequest("POST", "/leads/10/transition", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Transition(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
