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

type TramiteHandler struct {
	tramiteService *services.TramiteService
}

func NewTramiteHandler(tramiteService *services.TramiteService) *TramiteHandler {
	return &TramiteHandler{tramiteService: tramiteService}
}

// @Summary List Tramites
// @Description Get a paginated list of vehicle paperwork tramites
// @Tags Tramites
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param kind query string false "Filter by kind"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tramites [get]
func (h *TramiteHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if kind := c.Query("kind"); kind != "" {
		query.Filters["kind"] = kind
	}

	tramites, total, err := h.tramiteService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, tramite := range tramites {
		responses = append(responses, tramite.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"tramites": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Tramite
// @Description Get a tramite by ID
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Success 200 {object} models.TramiteResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id} [get]
func (h *TramiteHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	tramite, err := h.tramiteService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tramite": tramite.ToResponse()})
}

// @Summary List Vehicle Tramites
// @Description Get the tramites of a vehicle
// @Tags Tramites
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /vehicles/{vehicle_id}/tramites [get]
func (h *TramiteHandler) ByVehicle(c *gin.Context) {
	vehicleID, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	tramites, err := h.tramiteService.FindByVehicle(c.Request.Context(), uint(vehicleID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, tramite := range tramites {
		responses = append(responses, tramite.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"tramites": responses})
}

// @Summary Create Tramite
// @Description Open a paperwork tramite linked to a vehicle or a sale
// @Tags Tramites
// @Accept json
// @Produce json
// @Param request body models.Tramite true "Tramite Data"
// @Success 201 {object} models.TramiteResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /tramites [post]
func (h *TramiteHandler) Create(c *gin.Context) {
	var tramite models.Tramite
	if err := BindNestedOrFlat(c, "tramite", &tramite); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tramiteService.Create(c.Request.Context(), &tramite); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo o venta no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tramite": tramite.ToResponse(), "message": "Trámite registrado exitosamente"})
}

// @Summary Update Tramite
// @Description Update tramite data
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Param request body models.Tramite true "Tramite Data"
// @Success 200 {object} models.TramiteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id} [put]
func (h *TramiteHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	tramite, err := h.tramiteService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "tramite", tramite); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tramite.ID = uint(id)

	if err := h.tramiteService.Update(c.Request.Context(), tramite); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tramite": tramite.ToResponse(), "message": "Trámite actualizado"})
}

// @Summary Start Tramite
// @Description Move a pending tramite to in-progress
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Success 200 {object} models.TramiteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id}/start [post]
func (h *TramiteHandler) Start(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	tramite, err := h.tramiteService.Start(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tramite": tramite.ToResponse(), "message": "Trámite en proceso"})
}

// @Summary Complete Tramite
// @Description Mark a tramite as completed
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Success 200 {object} models.TramiteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id}/complete [post]
func (h *TramiteHandler) Complete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	tramite, err := h.tramiteService.Complete(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tramite": tramite.ToResponse(), "message": "Trámite completado"})
}

// @Summary Cancel Tramite
// @Description Cancel a tramite that has not been completed
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Success 200 {object} models.TramiteResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id}/cancel [post]
func (h *TramiteHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	tramite, err := h.tramiteService.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tramite": tramite.ToResponse(), "message": "Trámite cancelado"})
}

// @Summary Delete Tramite
// @Description Remove a tramite
// @Tags Tramites
// @Accept json
// @Produce json
// @Param tramite_id path int true "Tramite ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tramites/{tramite_id} [delete]
func (h *TramiteHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("tramite_id"), 10, 32)
	if err := h.tramiteService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trámite no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trámite eliminado"})
}
