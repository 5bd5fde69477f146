package services

import (
	"context"
	"testing"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock SaleRepository (using embedding to avoid implementing all methods)
type mockSaleRepository struct {
	repository.SaleRepository
	mockFindByID           func(ctx context.Context, id uint) (*models.Sale, error)
	mockFindByIDDetails    func(ctx context.Context, id uint) (*models.Sale, error)
	mockCreate             func(ctx context.Context, sale *models.Sale) error
	mockUpdate             func(ctx context.Context, sale *models.Sale) error
	mockUpdateFields       func(ctx context.Context, id uint, fields map[string]interface{}) error
	mockDelete             func(ctx context.Context, id uint) error
	mockList               func(ctx context.Context, query *repository.SaleQuery) ([]models.Sale, int64, error)
	mockFindExpensesBySale func(ctx context.Context, saleID uint) ([]models.SaleExpense, error)
	mockCreateExpense      func(ctx context.Context, expense *models.SaleExpense) error
	mockUpdateExpense      func(ctx context.Context, expense *models.SaleExpense) error
	mockDeleteExpense      func(ctx context.Context, id uint) error
}

func (m *mockSaleRepository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSaleRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Sale, error) {
	if m.mockFindByIDDetails != nil {
		return m.mockFindByIDDetails(ctx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *mockSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, sale)
	}
	return nil
}

func (m *mockSaleRepository) Update(ctx context.Context, sale *models.Sale) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, sale)
	}
	return nil
}

func (m *mockSaleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if m.mockUpdateFields != nil {
		return m.mockUpdateFields(ctx, id, fields)
	}
	return nil
}

func (m *mockSaleRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func (m *mockSaleRepository) List(ctx context.Context, query *repository.SaleQuery) ([]models.Sale, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

func (m *mockSaleRepository) FindExpensesBySale(ctx context.Context, saleID uint) ([]models.SaleExpense, error) {
	if m.mockFindExpensesBySale != nil {
		return m.mockFindExpensesBySale(ctx, saleID)
	}
	return nil, nil
}

func (m *mockSaleRepository) CreateExpense(ctx context.Context, expense *models.SaleExpense) error {
	if m.mockCreateExpense != nil {
		return m.mockCreateExpense(ctx, expense)
	}
	return nil
}

func (m *mockSaleRepository) UpdateExpense(ctx context.Context, expense *models.SaleExpense) error {
	if m.mockUpdateExpense != nil {
		return m.mockUpdateExpense(ctx, expense)
	}
	return nil
}

func (m *mockSaleRepository) DeleteExpense(ctx context.Context, id uint) error {
	if m.mockDeleteExpense != nil {
		return m.mockDeleteExpense(ctx, id)
	}
	return nil
}

// Mock LeadRepository
type mockLeadRepository struct {
	repository.LeadRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Lead, error)
	mockUpdate   func(ctx context.Context, lead *models.Lead) error
}

func (m *mockLeadRepository) FindByID(ctx context.Context, id uint) (*models.Lead, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockLeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, lead)
	}
	return nil
}

// Mock VehicleRepository
type mockVehicleRepository struct {
	repository.VehicleRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Vehicle, error)
	mockUpdate   func(ctx context.Context, vehicle *models.Vehicle) error
	mockList     func(ctx context.Context, query *repository.VehicleQuery) ([]models.Vehicle, int64, error)
}

func (m *mockVehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, vehicle)
	}
	return nil
}

func (m *mockVehicleRepository) List(ctx context.Context, query *repository.VehicleQuery) ([]models.Vehicle, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

// Mock UserRepository
type mockUserRepository struct {
	repository.UserRepository
	mockFindByID func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func uintPtr(v uint) *uint { return &v }

func TestCreateSale_MarksLeadAndVehicleSold(t *testing.T) {
	lead := &models.Lead{ID: 10, Status: models.LeadStatusNegotiating}
	vehicle := &models.Vehicle{ID: 20, Status: models.VehicleStatusAvailable, Cost: 180000}

	var updatedLead *models.Lead
	var updatedVehicle *models.Vehicle

	saleRepo := &mockSaleRepository{
		mockCreate: func(ctx context.Context, sale *models.Sale) error {
			sale.ID = 1
			return nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
		mockUpdate: func(ctx context.Context, l *models.Lead) error {
			updatedLead = l
			return nil
		},
	}
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) { return vehicle, nil },
		mockUpdate: func(ctx context.Context, v *models.Vehicle) error {
			updatedVehicle = v
			return nil
		},
	}
	userRepo := &mockUserRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, CommissionPct: 2}, nil
		},
	}

	service := NewSaleService(saleRepo, leadRepo, vehicleRepo, userRepo, nil, nil, nil)

	sale := &models.Sale{
		BranchID:  1,
		LeadID:    uintPtr(10),
		VehicleID: uintPtr(20),
		SellerID:  5,
		SalePrice: 250000,
	}

	err := service.Create(context.Background(), sale)
	require.NoError(t, err)

	require.NotNil(t, updatedLead)
	assert.Equal(t, models.LeadStatusSold, updatedLead.Status)

	require.NotNil(t, updatedVehicle)
	assert.Equal(t, models.VehicleStatusSold, updatedVehicle.Status)
	assert.NotNil(t, updatedVehicle.SoldAt)

	// Derived figures
	assert.Equal(t, 70000.0, sale.Margin)
	assert.Equal(t, 5000.0, sale.Commission)
	assert.NotEmpty(t, sale.GUID)
}

func TestCreateSale_RejectsUnavailableVehicle(t *testing.T) {
	createCalled := false
	saleRepo := &mockSaleRepository{
		mockCreate: func(ctx context.Context, sale *models.Sale) error {
			createCalled = true
			return nil
		},
	}
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) {
			return &models.Vehicle{ID: 20, Status: models.VehicleStatusSold}, nil
		},
	}

	service := NewSaleService(saleRepo, &mockLeadRepository{}, vehicleRepo, &mockUserRepository{}, nil, nil, nil)

	sale := &models.Sale{LeadID: uintPtr(10), VehicleID: uintPtr(20), SellerID: 5, SalePrice: 250000}
	err := service.Create(context.Background(), sale)

	assert.Error(t, err)
	assert.False(t, createCalled, "sale must not be written when the vehicle cannot be sold")
}

func TestDeleteSale_ReopensLeadAndReleasesVehicle(t *testing.T) {
	soldAt := time.Now()
	lead := &models.Lead{ID: 10, Status: models.LeadStatusSold}
	vehicle := &models.Vehicle{ID: 20, Status: models.VehicleStatusSold, SoldAt: &soldAt}

	saleRepo := &mockSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Sale, error) {
			return &models.Sale{ID: id, LeadID: uintPtr(10), VehicleID: uintPtr(20)}, nil
		},
	}
	leadRepo := &mockLeadRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lead, error) { return lead, nil },
	}
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) { return vehicle, nil },
	}

	service := NewSaleService(saleRepo, leadRepo, vehicleRepo, &mockUserRepository{}, nil, nil, nil)

	err := service.Delete(context.Background(), 1, 99)
	require.NoError(t, err)

	// The lead always reopens into negotiation, never its pre-sale status
	assert.Equal(t, models.LeadStatusNegotiating, lead.Status)
	assert.Equal(t, models.VehicleStatusAvailable, vehicle.Status)
	assert.Nil(t, vehicle.SoldAt)
}

func TestUpdateSale_NeverTouchesLeadOrVehicle(t *testing.T) {
	leadTouched := false
	vehicleTouched := false

	saleRepo := &mockSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Sale, error) {
			return &models.Sale{ID: id, LeadID: uintPtr(10), VehicleID: uintPtr(20), SalePrice: 250000}, nil
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
	vehicleRepo := &mockVehicleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Vehicle, error) {
			vehicleTouched = true
			return nil, nil
		},
		mockUpdate: func(ctx context.Context, v *models.Vehicle) error {
			vehicleTouched = true
			return nil
		},
	}

	service := NewSaleService(saleRepo, leadRepo, vehicleRepo, &mockUserRepository{}, nil, nil, nil)

	// Even a vehicle_id change is a pure row update
	_, err := service.Update(context.Background(), 1, map[string]interface{}{
		"sale_price": 260000.0,
		"vehicle_id": 33,
	})
	require.NoError(t, err)

	assert.False(t, leadTouched, "updating a sale must not read or write the lead")
	assert.False(t, vehicleTouched, "updating a sale must not read or write the vehicle")
}

func TestUpdateSale_EmptyPatchIsNoOp(t *testing.T) {
	var receivedFields map[string]interface{}
	saleRepo := &mockSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Sale, error) {
			return &models.Sale{ID: id, SalePrice: 250000}, nil
		},
		mockUpdateFields: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			receivedFields = fields
			return nil
		},
	}

	service := NewSaleService(saleRepo, &mockLeadRepository{}, &mockVehicleRepository{}, &mockUserRepository{}, nil, nil, nil)

	sale, err := service.Update(context.Background(), 1, map[string]interface{}{})
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Empty(t, receivedFields)
	assert.Equal(t, 250000.0, sale.SalePrice)
}

func TestReplaceExpenses_ReconcilesLines(t *testing.T) {
	existing := []models.SaleExpense{
		{ID: 1, SaleID: 7, Description: "Traspaso", Amount: 3000},
		{ID: 2, SaleID: 7, Description: "Detailing", Amount: 1500},
	}

	var updated []models.SaleExpense
	var created []models.SaleExpense
	var deleted []uint

	saleRepo := &mockSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Sale, error) {
			return &models.Sale{ID: id}, nil
		},
		mockFindExpensesBySale: func(ctx context.Context, saleID uint) ([]models.SaleExpense, error) {
			return existing, nil
		},
		mockUpdateExpense: func(ctx context.Context, expense *models.SaleExpense) error {
			updated = append(updated, *expense)
			return nil
		},
		mockCreateExpense: func(ctx context.Context, expense *models.SaleExpense) error {
			expense.ID = 3
			created = append(created, *expense)
			return nil
		},
		mockDeleteExpense: func(ctx context.Context, id uint) error {
			deleted = append(deleted, id)
			return nil
		},
	}

	service := NewSaleService(saleRepo, &mockLeadRepository{}, &mockVehicleRepository{}, &mockUserRepository{}, nil, nil, nil)

	_, err := service.ReplaceExpenses(context.Background(), 7, []models.SaleExpense{
		{ID: 1, Description: "Traspaso", Amount: 3500}, // edited in place, id stays stable
		{Description: "Placas", Amount: 900},           // new line
	})
	require.NoError(t, err)

	require.Len(t, updated, 1)
	assert.Equal(t, uint(1), updated[0].ID)
	assert.InDelta(t, 3500.0, updated[0].Amount, 0.01)

	require.Len(t, created, 1)
	assert.Equal(t, "Placas", created[0].Description)
	assert.Equal(t, uint(7), created[0].SaleID)

	// The line missing from the submitted list is removed
	assert.Equal(t, []uint{2}, deleted)
}

func TestReplaceExpenses_ForeignIDBecomesInsert(t *testing.T) {
	// Sale 7 owns only expense row 1. A submitted id belonging to some
	// other sale must never reach the row-level update.
	var updated []models.SaleExpense
	var created []models.SaleExpense

	saleRepo := &mockSaleRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Sale, error) {
			return &models.Sale{ID: id}, nil
		},
		mockFindExpensesBySale: func(ctx context.Context, saleID uint) ([]models.SaleExpense, error) {
			return []models.SaleExpense{
				{ID: 1, SaleID: 7, Description: "Traspaso", Amount: 3000},
			}, nil
		},
		mockUpdateExpense: func(ctx context.Context, expense *models.SaleExpense) error {
			updated = append(updated, *expense)
			return nil
		},
		mockCreateExpense: func(ctx context.Context, expense *models.SaleExpense) error {
			created = append(created, *expense)
			return nil
		},
		mockDeleteExpense: func(ctx context.Context, id uint) error {
			return nil
		},
	}

	service := NewSaleService(saleRepo, &mockLeadRepository{}, &mockVehicleRepository{}, &mockUserRepository{}, nil, nil, nil)

	_, err := service.ReplaceExpenses(context.Background(), 7, []models.SaleExpense{
		{ID: 1, Description: "Traspaso", Amount: 3200},
		{ID: 555, Description: "Placas", Amount: 900}, // id from another sale
	})
	require.NoError(t, err)

	require.Len(t, updated, 1)
	assert.Equal(t, uint(1), updated[0].ID)

	require.Len(t, created, 1)
	assert.Equal(t, uint(0), created[0].ID)
	assert.Equal(t, uint(7), created[0].SaleID)
	assert.Equal(t, "Placas", created[0].Description)
}

func TestSaleNetMargin_SubtractsExpenses(t *testing.T) {
	sale := models.Sale{
		Margin: 70000,
		Expenses: []models.SaleExpense{
			{Amount: 3000},
			{Amount: 1500.50},
		},
	}

	assert.InDelta(t, 4500.50, sale.TotalExpenses(), 0.01)
	assert.InDelta(t, 65499.50, sale.NetMargin(), 0.01)
}
