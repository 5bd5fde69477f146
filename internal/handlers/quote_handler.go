package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/middleware"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService  *services.QuoteService
	reportService *services.ReportService
}

func NewQuoteHandler(quoteService *services.QuoteService, reportService *services.ReportService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, reportService: reportService}
}

// @Summary List Quotes
// @Description Get a paginated list of quotes
// @Tags Quotes
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param lead_id query int false "Filter by lead"
// @Param vehicle_id query int false "Filter by vehicle"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) Index(c *gin.Context) {
	query := &repository.QuoteQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Status = c.Query("status")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		id, _ := strconv.ParseUint(branchID, 10, 32)
		query.BranchID = uint(id)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		id, _ := strconv.ParseUint(leadID, 10, 32)
		query.LeadID = uint(id)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		id, _ := strconv.ParseUint(vehicleID, 10, 32)
		query.VehicleID = uint(id)
	}
	if sellerID := c.Query("seller_id"); sellerID != "" {
		id, _ := strconv.ParseUint(sellerID, 10, 32)
		query.SellerID = uint(id)
	}

	quotes, total, err := h.quoteService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, quote := range quotes {
		responses = append(responses, quote.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Quote
// @Description Get a quote by ID
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote_id path int true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id} [get]
func (h *QuoteHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	quote, err := h.quoteService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote.ToResponse()})
}

// @Summary Create Quote
// @Description Create a quote for a lead. The lead moves to the quoting stage.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body models.Quote true "Quote Data"
// @Success 201 {object} models.QuoteResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var quote models.Quote
	if err := BindNestedOrFlat(c, "quote", &quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if quote.LeadID == 0 || quote.VehicleID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lead y vehículo son requeridos"})
		return
	}
	if quote.SellerID == 0 {
		quote.SellerID = middleware.GetUserID(c)
	}

	if err := h.quoteService.Create(c.Request.Context(), &quote); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead o vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quote": quote.ToResponse(), "message": "Cotización creada exitosamente"})
}

// @Summary Update Quote
// @Description Update a pending quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote_id path int true "Quote ID"
// @Param request body models.Quote true "Quote Data"
// @Success 200 {object} models.QuoteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	quote, err := h.quoteService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
		return
	}

	if err := BindNestedOrFlat(c, "quote", quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote.ID = uint(id)

	if err := h.quoteService.Update(c.Request.Context(), quote); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote.ToResponse(), "message": "Cotización actualizada"})
}

// @Summary Accept Quote
// @Description Accept a pending quote. The lead moves to negotiation.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote_id path int true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id}/accept [post]
func (h *QuoteHandler) Accept(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	quote, err := h.quoteService.Accept(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote.ToResponse(), "message": "Cotización aceptada"})
}

// @Summary Reject Quote
// @Description Reject a pending quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote_id path int true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id}/reject [post]
func (h *QuoteHandler) Reject(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	quote, err := h.quoteService.Reject(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote.ToResponse(), "message": "Cotización rechazada"})
}

// @Summary Download Quote PDF
// @Description Generate a printable PDF for a quote
// @Tags Quotes
// @Produce application/pdf
// @Param quote_id path int true "Quote ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	buf, err := h.reportService.GenerateQuotePDF(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cotizacion_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Delete Quote
// @Description Remove a quote. The lead's funnel status is not reversed.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote_id path int true "Quote ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{quote_id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	if err := h.quoteService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cotización no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cotización eliminada"})
}
