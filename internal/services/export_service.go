package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService generates downloadable inventory and sales files
type ExportService struct {
	vehicleRepo repository.VehicleRepository
	saleRepo    repository.SaleRepository
}

func NewExportService(vehicleRepo repository.VehicleRepository, saleRepo repository.SaleRepository) *ExportService {
	return &ExportService{
		vehicleRepo: vehicleRepo,
		saleRepo:    saleRepo,
	}
}

// ExportInventoryCSV exports the vehicle inventory as CSV
func (s *ExportService) ExportInventoryCSV(ctx context.Context, branchID uint) (*bytes.Buffer, error) {
	vehicles, err := s.listInventory(ctx, branchID)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Marca", "Modelo", "Año", "VIN", "Placa", "Color", "Kilometraje", "Precio", "Costo", "Margen", "Categoría", "Estado", "Sucursal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, v := range vehicles {
		record := []string{
			fmt.Sprintf("%d", v.ID),
			v.Make,
			v.Model,
			fmt.Sprintf("%d", v.Year),
			v.VIN,
			strOrEmpty(v.Plate),
			strOrEmpty(v.Color),
			intOrEmpty(v.Mileage),
			fmt.Sprintf("%.2f", v.Price),
			fmt.Sprintf("%.2f", v.Cost),
			fmt.Sprintf("%.2f", v.Margin()),
			v.Category,
			v.Status,
			v.Branch.Name,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b, nil
}

// ExportInventoryXLSX exports the vehicle inventory as an Excel workbook
func (s *ExportService) ExportInventoryXLSX(ctx context.Context, branchID uint) (*bytes.Buffer, error) {
	vehicles, err := s.listInventory(ctx, branchID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventario"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Marca", "Modelo", "Año", "VIN", "Placa", "Color", "Kilometraje", "Precio", "Costo", "Margen", "Categoría", "Estado", "Sucursal"}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1A3C6E"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, v := range vehicles {
		values := []interface{}{
			v.ID,
			v.Make,
			v.Model,
			v.Year,
			v.VIN,
			strOrEmpty(v.Plate),
			strOrEmpty(v.Color),
			intOrEmpty(v.Mileage),
			v.Price,
			v.Cost,
			v.Margin(),
			v.Category,
			v.Status,
			v.Branch.Name,
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	f.SetColWidth(sheet, "B", "C", 16)
	f.SetColWidth(sheet, "E", "E", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// ExportSalesXLSX exports sales in a date range as an Excel workbook
func (s *ExportService) ExportSalesXLSX(ctx context.Context, branchID uint, startDate, endDate string) (*bytes.Buffer, error) {
	listQuery := repository.NewListQuery()
	if startDate != "" {
		listQuery.Filters["start_date"] = startDate
	}
	if endDate != "" {
		listQuery.Filters["end_date"] = endDate
	}
	listQuery.PerPage = 0

	query := &repository.SaleQuery{
		ListQuery: listQuery,
		BranchID:  branchID,
	}

	sales, _, err := s.saleRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ventas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Fecha", "Cliente", "Vehículo", "VIN", "Vendedor", "Precio Venta", "Margen", "Gastos", "Margen Neto", "Comisión", "Forma de Pago", "Estado"}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1A3C6E"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, sale := range sales {
		clientName := "N/A"
		if sale.Lead != nil {
			clientName = sale.Lead.FullName
		}
		vehicleName := "N/A"
		vin := ""
		if sale.Vehicle != nil {
			vehicleName = sale.Vehicle.DisplayName()
			vin = sale.Vehicle.VIN
		}

		values := []interface{}{
			sale.ID,
			sale.SaleDate.Format("2006-01-02"),
			clientName,
			vehicleName,
			vin,
			sale.Seller.FullName,
			sale.SalePrice,
			sale.Margin,
			sale.TotalExpenses(),
			sale.NetMargin(),
			sale.Commission,
			sale.PaymentMethod,
			sale.Status,
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	f.SetColWidth(sheet, "C", "D", 22)
	f.SetColWidth(sheet, "E", "E", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *ExportService) listInventory(ctx context.Context, branchID uint) ([]models.Vehicle, error) {
	listQuery := repository.NewListQuery()
	listQuery.PerPage = 0
	listQuery.SortBy = "make"

	query := &repository.VehicleQuery{
		ListQuery: listQuery,
		BranchID:  branchID,
	}

	vehicles, _, err := s.vehicleRepo.List(ctx, query)
	return vehicles, err
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
