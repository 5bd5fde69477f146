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

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// @Summary List Leads
// @Description Get a paginated list of leads with optional funnel filters
// @Tags Leads
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by funnel status"
// @Param source query string false "Filter by source"
// @Param assigned_to query int false "Filter by assigned seller"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) Index(c *gin.Context) {
	query := &repository.LeadQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	query.Source = c.Query("source")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		id, _ := strconv.ParseUint(branchID, 10, 32)
		query.BranchID = uint(id)
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		id, _ := strconv.ParseUint(assignedTo, 10, 32)
		query.AssignedToID = uint(id)
	}

	leads, total, err := h.leadService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, lead := range leads {
		responses = append(responses, lead.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Lead Stats
// @Description Get lead counts per funnel status
// @Tags Leads
// @Accept json
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} repository.LeadStats
// @Security BearerAuth
// @Router /leads/stats [get]
func (h *LeadHandler) GetStats(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	stats, err := h.leadService.GetStats(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Lead
// @Description Get a lead by ID
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id} [get]
func (h *LeadHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	lead, err := h.leadService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse()})
}

// @Summary Create Lead
// @Description Register a new sales prospect
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.Lead true "Lead Data"
// @Success 201 {object} models.LeadResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := BindNestedOrFlat(c, "lead", &lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if lead.FullName == "" || lead.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y teléfono son requeridos"})
		return
	}

	if err := h.leadService.Create(c.Request.Context(), &lead); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead.ToResponse(), "message": "Lead registrado exitosamente"})
}

// @Summary Update Lead
// @Description Update lead contact data. Funnel status changes go through the transition endpoint.
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Param request body models.Lead true "Lead Data"
// @Success 200 {object} models.LeadResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	lead, err := h.leadService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
		return
	}

	// Status is owned by the funnel; preserve it across the bind
	status := lead.Status
	if err := BindNestedOrFlat(c, "lead", lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead.ID = uint(id)
	lead.Status = status

	if err := h.leadService.Update(c.Request.Context(), lead); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse(), "message": "Lead actualizado"})
}

type LeadTransitionRequest struct {
	Event      string `json:"event" binding:"required"`
	LostReason string `json:"lost_reason"`
}

// @Summary Transition Lead
// @Description Apply a funnel event to the lead (contact, interest, quote, negotiate, sell, lose, reopen)
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Param request body LeadTransitionRequest true "Event"
// @Success 200 {object} models.LeadResponse
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id}/transition [post]
func (h *LeadHandler) Transition(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	var req LeadTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evento requerido"})
		return
	}

	lead, err := h.leadService.Transition(c.Request.Context(), uint(id), req.Event, req.LostReason)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse(), "message": "Estado actualizado"})
}

type AssignLeadRequest struct {
	SellerID uint `json:"seller_id" binding:"required"`
}

// @Summary Assign Lead
// @Description Assign the lead to a seller
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Param request body AssignLeadRequest true "Seller"
// @Success 200 {object} models.LeadResponse
// @Failure 400,404 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id}/assign [post]
func (h *LeadHandler) Assign(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	var req AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendedor requerido"})
		return
	}

	lead, err := h.leadService.Assign(c.Request.Context(), uint(id), req.SellerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead o vendedor no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse(), "message": "Lead asignado"})
}

// @Summary Touch Lead Contact
// @Description Stamp the lead's last contact date without changing funnel status
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id}/touch_contact [post]
func (h *LeadHandler) TouchContact(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	lead, err := h.leadService.TouchContact(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead.ToResponse()})
}

// @Summary Delete Lead
// @Description Remove a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /leads/{lead_id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	if err := h.leadService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead eliminado"})
}
