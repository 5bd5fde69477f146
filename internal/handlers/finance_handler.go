package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// @Summary List Expense Types
// @Description Get the active expense type catalog
// @Tags Finance
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /finance/expense_types [get]
func (h *FinanceHandler) ExpenseTypes(c *gin.Context) {
	types, err := h.financeService.FindExpenseTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense_types": types})
}

// @Summary Create Expense Type
// @Description Add an expense type to the catalog (admin only)
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body models.ExpenseType true "Expense Type"
// @Success 201 {object} models.ExpenseType
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expense_types [post]
func (h *FinanceHandler) CreateExpenseType(c *gin.Context) {
	var et models.ExpenseType
	if err := c.ShouldBindJSON(&et); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if et.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es requerido"})
		return
	}

	if err := h.financeService.CreateExpenseType(c.Request.Context(), &et); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense_type": et, "message": "Tipo de gasto creado"})
}

// @Summary Update Expense Type
// @Description Update an expense type (admin only)
// @Tags Finance
// @Accept json
// @Produce json
// @Param type_id path int true "Expense Type ID"
// @Param request body models.ExpenseType true "Expense Type"
// @Success 200 {object} models.ExpenseType
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expense_types/{type_id} [put]
func (h *FinanceHandler) UpdateExpenseType(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("type_id"), 10, 32)
	var et models.ExpenseType
	if err := c.ShouldBindJSON(&et); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	et.ID = uint(id)

	if err := h.financeService.UpdateExpenseType(c.Request.Context(), &et); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense_type": et, "message": "Tipo de gasto actualizado"})
}

// @Summary List Company Expenses
// @Description Get a paginated list of company expenses
// @Tags Finance
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		query.Filters["branch_id"] = branchID
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}

	expenses, total, err := h.financeService.ListExpenses(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, expense := range expenses {
		responses = append(responses, expense.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Create Company Expense
// @Description Record a company expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body models.CompanyExpense true "Expense Data"
// @Success 201 {object} models.CompanyExpenseResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expenses [post]
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var expense models.CompanyExpense
	if err := BindNestedOrFlat(c, "expense", &expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.financeService.CreateExpense(c.Request.Context(), &expense); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense.ToResponse(), "message": "Gasto registrado exitosamente"})
}

// @Summary Update Company Expense
// @Description Update a company expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Param request body models.CompanyExpense true "Expense Data"
// @Success 200 {object} models.CompanyExpenseResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expenses/{expense_id} [put]
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	expense, err := h.financeService.FindExpenseByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gasto no encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "expense", expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense.ID = uint(id)

	if err := h.financeService.UpdateExpense(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse(), "message": "Gasto actualizado"})
}

// @Summary Delete Company Expense
// @Description Remove a company expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expenses/{expense_id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err := h.financeService.DeleteExpense(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gasto no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gasto eliminado"})
}

// @Summary List Company Incomes
// @Description Get a paginated list of company incomes
// @Tags Finance
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /finance/incomes [get]
func (h *FinanceHandler) ListIncomes(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		query.Filters["branch_id"] = branchID
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}

	incomes, total, err := h.financeService.ListIncomes(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incomes": incomes,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Create Company Income
// @Description Record a company income
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body models.CompanyIncome true "Income Data"
// @Success 201 {object} models.CompanyIncome
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/incomes [post]
func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	var income models.CompanyIncome
	if err := BindNestedOrFlat(c, "income", &income); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.financeService.CreateIncome(c.Request.Context(), &income); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"income": income, "message": "Ingreso registrado exitosamente"})
}

// @Summary Update Company Income
// @Description Update a company income
// @Tags Finance
// @Accept json
// @Produce json
// @Param income_id path int true "Income ID"
// @Param request body models.CompanyIncome true "Income Data"
// @Success 200 {object} models.CompanyIncome
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/incomes/{income_id} [put]
func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("income_id"), 10, 32)
	income, err := h.financeService.FindIncomeByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingreso no encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "income", income); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	income.ID = uint(id)

	if err := h.financeService.UpdateIncome(c.Request.Context(), income); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"income": income, "message": "Ingreso actualizado"})
}

// @Summary Delete Company Income
// @Description Remove a company income
// @Tags Finance
// @Accept json
// @Produce json
// @Param income_id path int true "Income ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /finance/incomes/{income_id} [delete]
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("income_id"), 10, 32)
	if err := h.financeService.DeleteIncome(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingreso no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingreso eliminado"})
}

// @Summary Monthly Finance Summary
// @Description Get per-month expense and income totals with balance
// @Tags Finance
// @Accept json
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Param months query int false "Number of months" default(12)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *FinanceHandler) MonthlySummary(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))

	summary, err := h.financeService.GetMonthlySummary(c.Request.Context(), uint(branchID), months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
