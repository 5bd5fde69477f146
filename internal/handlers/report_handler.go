package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

func attachmentName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
}

// @Summary Sales Report CSV
// @Description Download the sales report for a date range as CSV
// @Tags Reports
// @Produce text/csv
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/sales.csv [get]
func (h *ReportHandler) SalesCSV(c *gin.Context) {
	buf, err := h.reportService.GenerateSalesCSV(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("ventas", "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary Commissions Report CSV
// @Description Download per-seller commission totals for a date range as CSV
// @Tags Reports
// @Produce text/csv
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/commissions.csv [get]
func (h *ReportHandler) CommissionsCSV(c *gin.Context) {
	buf, err := h.reportService.GenerateCommissionsCSV(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("comisiones", "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary Inventory Export CSV
// @Description Download the vehicle inventory as CSV
// @Tags Reports
// @Produce text/csv
// @Param branch_id query int false "Filter by branch"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/inventory.csv [get]
func (h *ReportHandler) InventoryCSV(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	buf, err := h.exportService.ExportInventoryCSV(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("inventario", "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary Inventory Export XLSX
// @Description Download the vehicle inventory as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param branch_id query int false "Filter by branch"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/inventory.xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	buf, err := h.exportService.ExportInventoryXLSX(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("inventario", "xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// @Summary Sales Export XLSX
// @Description Download sales for a date range as an Excel workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param branch_id query int false "Filter by branch"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/sales.xlsx [get]
func (h *ReportHandler) SalesXLSX(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	buf, err := h.exportService.ExportSalesXLSX(c.Request.Context(), uint(branchID), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("ventas", "xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
