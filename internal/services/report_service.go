package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/jung-kurt/gofpdf"
)

type ReportService struct {
	saleRepo  repository.SaleRepository
	quoteRepo repository.QuoteRepository
	userRepo  repository.UserRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	quoteRepo repository.QuoteRepository,
	userRepo repository.UserRepository,
) *ReportService {
	return &ReportService{
		saleRepo:  saleRepo,
		quoteRepo: quoteRepo,
		userRepo:  userRepo,
	}
}

// GenerateSalesCSV generates a CSV report of sales in a date range
func (s *ReportService) GenerateSalesCSV(ctx context.Context, startDate, endDate string) (*bytes.Buffer, error) {
	listQuery := repository.NewListQuery()
	if startDate != "" {
		listQuery.Filters["start_date"] = startDate
	}
	if endDate != "" {
		listQuery.Filters["end_date"] = endDate
	}
	listQuery.PerPage = 0 // no pagination for exports

	query := &repository.SaleQuery{ListQuery: listQuery}

	sales, _, err := s.saleRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Venta ID", "Cliente", "Vehículo", "VIN", "Precio Venta", "Margen", "Gastos", "Margen Neto", "Fecha", "Vendedor", "Forma de Pago", "Estado"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sale := range sales {
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

		record := []string{
			fmt.Sprintf("%d", sale.ID),
			clientName,
			vehicleName,
			vin,
			fmt.Sprintf("%.2f", sale.SalePrice),
			fmt.Sprintf("%.2f", sale.Margin),
			fmt.Sprintf("%.2f", sale.TotalExpenses()),
			fmt.Sprintf("%.2f", sale.NetMargin()),
			sale.SaleDate.Format("2006-01-02"),
			sale.Seller.FullName,
			sale.PaymentMethod,
			sale.Status,
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

// GenerateCommissionsCSV generates a CSV report of seller commissions in a date range
func (s *ReportService) GenerateCommissionsCSV(ctx context.Context, startDate, endDate string) (*bytes.Buffer, error) {
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
		Status:    models.SaleStatusCompleted,
	}

	sales, _, err := s.saleRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	// Aggregate per seller
	type sellerTotals struct {
		name       string
		count      int
		revenue    float64
		commission float64
	}
	totals := make(map[uint]*sellerTotals)
	var order []uint
	for _, sale := range sales {
		t, ok := totals[sale.SellerID]
		if !ok {
			t = &sellerTotals{name: sale.Seller.FullName}
			totals[sale.SellerID] = t
			order = append(order, sale.SellerID)
		}
		t.count++
		t.revenue += sale.SalePrice
		t.commission += sale.Commission
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Vendedor", "Ventas", "Ingresos", "Comisión"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, id := range order {
		t := totals[id]
		record := []string{
			t.name,
			fmt.Sprintf("%d", t.count),
			fmt.Sprintf("%.2f", t.revenue),
			fmt.Sprintf("%.2f", t.commission),
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

// GenerateQuotePDF renders a printable quote sheet for the customer
func (s *ReportService) GenerateQuotePDF(ctx context.Context, quoteID uint) (*bytes.Buffer, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Cotizacion")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Cliente:")
	pdf.Cell(80, 8, quote.Lead.FullName)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Telefono:")
	pdf.Cell(80, 8, quote.Lead.Phone)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Vendedor:")
	pdf.Cell(80, 8, quote.Seller.FullName)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Vehiculo")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Unidad:")
	pdf.Cell(80, 8, fmt.Sprintf("%s %d", quote.Vehicle.DisplayName(), quote.Vehicle.Year))
	pdf.Ln(6)

	pdf.Cell(60, 8, "VIN:")
	pdf.Cell(80, 8, quote.Vehicle.VIN)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Precios")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Precio de lista:")
	pdf.Cell(80, 8, fmt.Sprintf("L%.2f", quote.Price))
	pdf.Ln(6)

	pdf.Cell(60, 8, "Descuento:")
	pdf.Cell(80, 8, fmt.Sprintf("L%.2f", quote.Discount))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 8, "Precio final:")
	pdf.Cell(80, 8, fmt.Sprintf("L%.2f", quote.FinalPrice()))
	pdf.Ln(10)

	if quote.ValidUntil != nil {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(120, 8, fmt.Sprintf("Valida hasta: %s", quote.ValidUntil.Format("02/01/2006")))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return buf, nil
}
