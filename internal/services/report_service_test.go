package services

import (
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSalesCSV(t *testing.T) {
	mockRepo := &mockSaleRepository{}
	service := NewReportService(mockRepo, nil, nil)

	saleDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	mockRepo.mockList = func(ctx context.Context, query *repository.SaleQuery) ([]models.Sale, int64, error) {
		sales := []models.Sale{
			{
				ID:            1,
				SalePrice:     250000,
				Margin:        70000,
				SaleDate:      saleDate,
				PaymentMethod: "contado",
				Status:        models.SaleStatusCompleted,
				Lead:          &models.Lead{ID: 10, FullName: "Juan Perez"},
				Vehicle:       &models.Vehicle{ID: 20, Make: "Toyota", Model: "Corolla", VIN: "1HGBH41JXMN109186"},
				Seller:        models.User{ID: 5, FullName: "Maria Lopez"},
				Expenses: []models.SaleExpense{
					{Amount: 3000},
					{Amount: 1500},
				},
			},
			{
				ID:            2,
				SalePrice:     180000,
				Margin:        40000,
				SaleDate:      saleDate,
				PaymentMethod: "financiado",
				Status:        models.SaleStatusPending,
				Seller:        models.User{ID: 6, FullName: "Carlos Gomez"},
			},
		}
		return sales, int64(len(sales)), nil
	}

	buf, err := service.GenerateSalesCSV(context.Background(), "2026-08-01", "2026-08-31")
	assert.NoError(t, err)
	assert.NotNil(t, buf)

	reader := csv.NewReader(buf)
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	expectedHeader := []string{
		"Venta ID", "Cliente", "Vehículo", "VIN", "Precio Venta", "Margen",
		"Gastos", "Margen Neto", "Fecha", "Vendedor", "Forma de Pago", "Estado",
	}
	assert.Equal(t, expectedHeader, records[0])

	row1 := records[1]
	assert.Equal(t, "1", row1[0])
	assert.Equal(t, "Juan Perez", row1[1])
	assert.Equal(t, "Toyota Corolla", row1[2])
	assert.Equal(t, "1HGBH41JXMN109186", row1[3])
	assert.Equal(t, "250000.00", row1[4])
	assert.Equal(t, "70000.00", row1[5])
	assert.Equal(t, "4500.00", row1[6])
	assert.Equal(t, "65500.00", row1[7])
	assert.Equal(t, "2026-08-15", row1[8])
	assert.Equal(t, "Maria Lopez", row1[9])

	// A sale without lead or vehicle still exports
	row2 := records[2]
	assert.Equal(t, "N/A", row2[1])
	assert.Equal(t, "N/A", row2[2])
	assert.Equal(t, "", row2[3])
}

func TestGenerateCommissionsCSV_AggregatesPerSeller(t *testing.T) {
	mockRepo := &mockSaleRepository{}
	service := NewReportService(mockRepo, nil, nil)

	mockRepo.mockList = func(ctx context.Context, query *repository.SaleQuery) ([]models.Sale, int64, error) {
		// Only completed sales count toward commissions
		assert.Equal(t, models.SaleStatusCompleted, query.Status)

		sales := []models.Sale{
			{ID: 1, SellerID: 5, SalePrice: 250000, Commission: 5000, Seller: models.User{ID: 5, FullName: "Maria Lopez"}},
			{ID: 2, SellerID: 5, SalePrice: 180000, Commission: 3600, Seller: models.User{ID: 5, FullName: "Maria Lopez"}},
			{ID: 3, SellerID: 6, SalePrice: 300000, Commission: 6000, Seller: models.User{ID: 6, FullName: "Carlos Gomez"}},
		}
		return sales, int64(len(sales)), nil
	}

	buf, err := service.GenerateCommissionsCSV(context.Background(), "", "")
	assert.NoError(t, err)

	reader := csv.NewReader(buf)
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	assert.Equal(t, []string{"Vendedor", "Ventas", "Ingresos", "Comisión"}, records[0])
	assert.Equal(t, []string{"Maria Lopez", "2", "430000.00", "8600.00"}, records[1])
	assert.Equal(t, []string{"Carlos Gomez", "1", "300000.00", "6000.00"}, records[2])
}

func TestGenerateQuotePDF(t *testing.T) {
	validUntil := time.Now().AddDate(0, 0, 15)
	mockRepo := &mockQuoteRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Quote, error) {
			return &models.Quote{
				ID:         101,
				Price:      250000,
				Discount:   10000,
				ValidUntil: &validUntil,
				Status:     models.QuoteStatusPending,
				Lead:       models.Lead{ID: 10, FullName: "Juan Perez", Phone: "9999-9999"},
				Vehicle:    models.Vehicle{ID: 20, Make: "Toyota", Model: "Corolla", Year: 2022, VIN: "1HGBH41JXMN109186"},
				Seller:     models.User{ID: 5, FullName: "Maria Lopez"},
			}, nil
		},
	}
	service := NewReportService(nil, mockRepo, nil)

	buf, err := service.GenerateQuotePDF(context.Background(), 101)
	assert.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 0, "PDF buffer should not be empty")
}

func TestExportInventoryCSV(t *testing.T) {
	plate := "HBN-1234"
	color := "Blanco"
	mileage := 45000
	vehicleRepo := &mockVehicleRepository{
		mockList: func(ctx context.Context, query *repository.VehicleQuery) ([]models.Vehicle, int64, error) {
			vehicles := []models.Vehicle{
				{
					ID:       20,
					Make:     "Toyota",
					Model:    "Corolla",
					Year:     2022,
					VIN:      "1HGBH41JXMN109186",
					Plate:    &plate,
					Color:    &color,
					Mileage:  &mileage,
					Price:    250000,
					Cost:     180000,
					Category: "usado",
					Status:   models.VehicleStatusAvailable,
					Branch:   models.Branch{ID: 1, Name: "Sucursal Centro"},
				},
			}
			return vehicles, int64(len(vehicles)), nil
		},
	}
	service := NewExportService(vehicleRepo, nil)

	buf, err := service.ExportInventoryCSV(context.Background(), 1)
	assert.NoError(t, err)

	reader := csv.NewReader(buf)
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	row := records[1]
	assert.Equal(t, "20", row[0])
	assert.Equal(t, "Toyota", row[1])
	assert.Equal(t, "HBN-1234", row[5])
	assert.Equal(t, "45000", row[7])
	assert.Equal(t, "70000.00", row[10]) // margin = price - cost
	assert.Equal(t, "Sucursal Centro", row[13])
}

func TestExportInventoryXLSX(t *testing.T) {
	vehicleRepo := &mockVehicleRepository{
		mockList: func(ctx context.Context, query *repository.VehicleQuery) ([]models.Vehicle, int64, error) {
			return []models.Vehicle{
				{ID: 20, Make: "Nissan", Model: "Frontier", Year: 2021, VIN: "VIN123", Price: 400000, Cost: 320000},
			}, 1, nil
		},
	}
	service := NewExportService(vehicleRepo, nil)

	buf, err := service.ExportInventoryXLSX(context.Background(), 0)
	assert.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 0, "workbook buffer should not be empty")
}
