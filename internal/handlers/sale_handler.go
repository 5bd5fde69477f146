package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/middleware"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// @Summary List Sales
// @Description Get a paginated list of sales
// @Tags Sales
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param seller_id query int false "Filter by seller"
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /sales [get]
func (h *SaleHandler) Index(c *gin.Context) {
	query := &repository.SaleQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		id, _ := strconv.ParseUint(branchID, 10, 32)
		query.BranchID = uint(id)
	}
	if sellerID := c.Query("seller_id"); sellerID != "" {
		id, _ := strconv.ParseUint(sellerID, 10, 32)
		query.SellerID = uint(id)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}

	sales, total, err := h.saleService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, sale := range sales {
		responses = append(responses, sale.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Sale Stats
// @Description Get sale counts, revenue and margin totals
// @Tags Sales
// @Accept json
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} repository.SaleStats
// @Security BearerAuth
// @Router /sales/stats [get]
func (h *SaleHandler) GetStats(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	stats, err := h.saleService.GetStats(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Sale
// @Description Get a sale with its lead, vehicle, seller and expenses
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Success 200 {object} models.SaleResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id} [get]
func (h *SaleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)
	sale, err := h.saleService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale.ToResponse()})
}

// @Summary Create Sale
// @Description Record a sale. The linked lead and vehicle are marked as sold.
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body models.Sale true "Sale Data"
// @Success 201 {object} models.SaleResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var sale models.Sale
	if err := BindNestedOrFlat(c, "sale", &sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if sale.LeadID == nil || sale.VehicleID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lead y vehículo son requeridos"})
		return
	}
	if sale.SalePrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El precio de venta debe ser mayor que cero"})
		return
	}
	if sale.SellerID == 0 {
		sale.SellerID = middleware.GetUserID(c)
	}

	if err := h.saleService.Create(c.Request.Context(), &sale); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead o vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sale": sale.ToResponse(), "message": "Venta registrada exitosamente"})
}

// @Summary Update Sale
// @Description Update sale fields. Lead and vehicle statuses are never touched here.
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} models.SaleResponse
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)

	var fields map[string]interface{}
	if err := BindNestedOrFlat(c, "sale", &fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), uint(id), fields)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sale": sale.ToResponse(), "message": "Venta actualizada"})
}

// @Summary Complete Sale
// @Description Mark a pending sale as completed
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Success 200 {object} models.SaleResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id}/complete [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)
	sale, err := h.saleService.Complete(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale.ToResponse(), "message": "Venta completada"})
}

// @Summary List Sale Expenses
// @Description Get the expense lines attached to a sale
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id}/expenses [get]
func (h *SaleHandler) ListExpenses(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)
	expenses, err := h.saleService.FindExpenses(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

type ReplaceExpensesRequest struct {
	Expenses []models.SaleExpense `json:"expenses"`
}

// @Summary Replace Sale Expenses
// @Description Replace the full expense list of a sale and recompute its net margin
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Param request body ReplaceExpensesRequest true "Expense lines"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id}/expenses [put]
func (h *SaleHandler) ReplaceExpenses(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)
	var req ReplaceExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lista de gastos inválida"})
		return
	}

	expenses, err := h.saleService.ReplaceExpenses(c.Request.Context(), uint(id), req.Expenses)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "message": "Gastos actualizados"})
}

// @Summary Delete Sale
// @Description Cancel a sale. The lead reopens in negotiation and the vehicle returns to the inventory.
// @Tags Sales
// @Accept json
// @Produce json
// @Param sale_id path int true "Sale ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sales/{sale_id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("sale_id"), 10, 32)
	if err := h.saleService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venta no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venta eliminada"})
}
