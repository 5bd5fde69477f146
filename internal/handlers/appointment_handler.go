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

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// @Summary List Appointments
// @Description Get a paginated list of appointments
// @Tags Appointments
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param kind query string false "Filter by kind"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) Index(c *gin.Context) {
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
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		query.Filters["assigned_to"] = assignedTo
	}

	appointments, total, err := h.appointmentService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, appointment := range appointments {
		responses = append(responses, appointment.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Appointment
// @Description Get an appointment by ID
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{appointment_id} [get]
func (h *AppointmentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	appointment, err := h.appointmentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse()})
}

// @Summary Create Appointment
// @Description Schedule an appointment for an open lead
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body models.Appointment true "Appointment Data"
// @Success 201 {object} models.AppointmentResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var appointment models.Appointment
	if err := BindNestedOrFlat(c, "appointment", &appointment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if appointment.LeadID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El lead es requerido"})
		return
	}
	if appointment.SellerID == 0 {
		appointment.SellerID = middleware.GetUserID(c)
	}

	if err := h.appointmentService.Create(c.Request.Context(), &appointment); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appointment.ToResponse(), "message": "Cita agendada exitosamente"})
}

// @Summary Update Appointment
// @Description Update appointment data
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Param request body models.Appointment true "Appointment Data"
// @Success 200 {object} models.AppointmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{appointment_id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	appointment, err := h.appointmentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
		return
	}

	if err := BindNestedOrFlat(c, "appointment", appointment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appointment.ID = uint(id)

	if err := h.appointmentService.Update(c.Request.Context(), appointment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse(), "message": "Cita actualizada"})
}

// @Summary Mark Appointment Done
// @Description Mark a scheduled appointment as done and stamp the lead's last contact
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{appointment_id}/done [post]
func (h *AppointmentHandler) MarkDone(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	appointment, err := h.appointmentService.MarkDone(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse(), "message": "Cita realizada"})
}

// @Summary Cancel Appointment
// @Description Cancel a scheduled appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{appointment_id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	appointment, err := h.appointmentService.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment.ToResponse(), "message": "Cita cancelada"})
}

// @Summary Delete Appointment
// @Description Remove an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /appointments/{appointment_id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err := h.appointmentService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cita eliminada"})
}
