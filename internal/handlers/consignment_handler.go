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

type ConsignmentHandler struct {
	consignmentService *services.ConsignmentService
}

func NewConsignmentHandler(consignmentService *services.ConsignmentService) *ConsignmentHandler {
	return &ConsignmentHandler{consignmentService: consignmentService}
}

// @Summary List Consignments
// @Description Get a paginated list of consignments
// @Tags Consignments
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /consignments [get]
func (h *ConsignmentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query.Filters["vehicle_id"] = vehicleID
	}

	consignments, total, err := h.consignmentService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, consignment := range consignments {
		responses = append(responses, consignment.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"consignments": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Consignment
// @Description Get a consignment by ID
// @Tags Consignments
// @Accept json
// @Produce json
// @Param consignment_id path int true "Consignment ID"
// @Success 200 {object} models.ConsignmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /consignments/{consignment_id} [get]
func (h *ConsignmentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("consignment_id"), 10, 32)
	consignment, err := h.consignmentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consignación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consignment": consignment.ToResponse()})
}

// @Summary Create Consignment
// @Description Register a consignment agreement for a vehicle
// @Tags Consignments
// @Accept json
// @Produce json
// @Param request body models.Consignment true "Consignment Data"
// @Success 201 {object} models.ConsignmentResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /consignments [post]
func (h *ConsignmentHandler) Create(c *gin.Context) {
	var consignment models.Consignment
	if err := BindNestedOrFlat(c, "consignment", &consignment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if consignment.VehicleID == 0 || consignment.OwnerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vehículo y propietario son requeridos"})
		return
	}

	if err := h.consignmentService.Create(c.Request.Context(), &consignment); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"consignment": consignment.ToResponse(), "message": "Consignación registrada exitosamente"})
}

// @Summary Update Consignment
// @Description Update consignment data
// @Tags Consignments
// @Accept json
// @Produce json
// @Param consignment_id path int true "Consignment ID"
// @Param request body models.Consignment true "Consignment Data"
// @Success 200 {object} models.ConsignmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /consignments/{consignment_id} [put]
func (h *ConsignmentHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("consignment_id"), 10, 32)
	consignment, err := h.consignmentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consignación no encontrada"})
		return
	}

	if err := BindNestedOrFlat(c, "consignment", consignment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	consignment.ID = uint(id)

	if err := h.consignmentService.Update(c.Request.Context(), consignment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consignment": consignment.ToResponse(), "message": "Consignación actualizada"})
}

// @Summary Mark Consignment Sold
// @Description Mark an active consignment as sold
// @Tags Consignments
// @Accept json
// @Produce json
// @Param consignment_id path int true "Consignment ID"
// @Success 200 {object} models.ConsignmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /consignments/{consignment_id}/sold [post]
func (h *ConsignmentHandler) MarkSold(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("consignment_id"), 10, 32)
	consignment, err := h.consignmentService.MarkSold(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consignación no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consignment": consignment.ToResponse(), "message": "Consignación vendida"})
}

// @Summary Return Consignment
// @Description Return an active consignment to its owner
// @Tags Consignments
// @Accept json
// @Produce json
// @Param consignment_id path int true "Consignment ID"
// @Success 200 {object} models.ConsignmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /consignments/{consignment_id}/return [post]
func (h *ConsignmentHandler) Return(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("consignment_id"), 10, 32)
	consignment, err := h.consignmentService.Return(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consignación no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consignment": consignment.ToResponse(), "message": "Consignación devuelta"})
}

// @Summary Delete Consignment
// @Description Remove a consignment
// @Tags Consignments
// @Accept json
// @Produce json
// @Param consignment_id path int true "Consignment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /consignments/{consignment_id} [delete]
func (h *ConsignmentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("consignment_id"), 10, 32)
	if err := h.consignmentService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consignación no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consignación eliminada"})
}
