package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/middleware"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/autoventa/autoventa-api/internal/storage"
	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
	imageService   *services.ImageService
}

func NewVehicleHandler(vehicleService *services.VehicleService, imageService *services.ImageService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, imageService: imageService}
}

// @Summary List Vehicles
// @Description Get a paginated list of vehicles with optional filters
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) Index(c *gin.Context) {
	query := &repository.VehicleQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	query.Category = c.Query("category")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if branchID := c.Query("branch_id"); branchID != "" {
		id, _ := strconv.ParseUint(branchID, 10, 32)
		query.BranchID = uint(id)
	}
	query.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	query.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, vehicle := range vehicles {
		responses = append(responses, vehicle.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Vehicle Stats
// @Description Get inventory counts by status
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} repository.VehicleStats
// @Security BearerAuth
// @Router /vehicles/stats [get]
func (h *VehicleHandler) GetStats(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	stats, err := h.vehicleService.GetStats(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Vehicle
// @Description Get a vehicle by ID
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Success 200 {object} models.VehicleResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id} [get]
func (h *VehicleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	vehicle, err := h.vehicleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle.ToResponse()})
}

// @Summary Create Vehicle
// @Description Register a new vehicle in the inventory
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param request body models.Vehicle true "Vehicle Data"
// @Success 201 {object} models.VehicleResponse
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var vehicle models.Vehicle
	if err := BindNestedOrFlat(c, "vehicle", &vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if vehicle.Make == "" || vehicle.Model == "" || vehicle.VIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Marca, modelo y VIN son requeridos"})
		return
	}
	if vehicle.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El precio debe ser mayor que cero"})
		return
	}

	if err := h.vehicleService.Create(c.Request.Context(), &vehicle); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle.ToResponse(), "message": "Vehículo registrado exitosamente"})
}

// @Summary Update Vehicle
// @Description Update vehicle data
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Param request body models.Vehicle true "Vehicle Data"
// @Success 200 {object} models.VehicleResponse
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	vehicle, err := h.vehicleService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
		return
	}

	if err := BindNestedOrFlat(c, "vehicle", vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle.ID = uint(id)

	if err := h.vehicleService.Update(c.Request.Context(), vehicle); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle.ToResponse(), "message": "Vehículo actualizado"})
}

type SetVehicleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Set Vehicle Status
// @Description Move a vehicle to an operational status (disponible, reservado, en_reparacion, fuera_de_servicio)
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Param request body SetVehicleStatusRequest true "Status"
// @Success 200 {object} models.VehicleResponse
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id}/status [patch]
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	var req SetVehicleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado requerido"})
		return
	}

	vehicle, err := h.vehicleService.SetStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle.ToResponse(), "message": "Estado actualizado"})
}

// @Summary Upload Vehicle Photos
// @Description Upload one or more photos for a vehicle; thumbnails are generated automatically
// @Tags Vehicles
// @Accept multipart/form-data
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Param photos formData file true "Photos"
// @Success 200 {object} models.VehicleResponse
// @Failure 400,404 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id}/photos [post]
func (h *VehicleHandler) UploadPhotos(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error al procesar el formulario: " + err.Error()})
		return
	}

	form, _ := c.MultipartForm()
	fileHeaders := form.File["photos"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere al menos una foto"})
		return
	}

	var urls []string
	for _, fileHeader := range fileHeaders {
		if fileHeader.Size > storage.MaxFileSize() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("La foto %s excede el tamaño máximo permitido", fileHeader.Filename)})
			return
		}
		if !storage.IsValidContentType(fileHeader.Header.Get("Content-Type")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Formato no permitido para %s (solo JPG/PNG)", fileHeader.Filename)})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			continue
		}

		originalPath, _, err := h.imageService.ProcessAndSaveVehiclePhoto(file, fileHeader)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		urls = append(urls, originalPath)
	}

	vehicle, err := h.vehicleService.AppendImages(c.Request.Context(), uint(id), urls)
	if err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle.ToResponse(), "message": "Fotos subidas exitosamente"})
}

type DeletePhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

// @Summary Delete Vehicle Photo
// @Description Remove a photo from the vehicle's image list and delete the stored file
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Param request body DeletePhotoRequest true "Photo URL"
// @Success 200 {object} models.VehicleResponse
// @Failure 400,404 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id}/photos [delete]
func (h *VehicleHandler) DeletePhoto(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	var req DeletePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL de la foto requerida"})
		return
	}

	vehicle, err := h.vehicleService.RemoveImage(c.Request.Context(), uint(id), req.URL)
	if err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Foto no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Best effort: the database reference is gone either way
	_ = h.imageService.DeleteVehiclePhoto(req.URL)

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle.ToResponse(), "message": "Foto eliminada"})
}

// @Summary Delete Vehicle
// @Description Remove a vehicle with no sale history from the inventory
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Success 200 {object} map[string]string
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /vehicles/{vehicle_id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	if err := h.vehicleService.Delete(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehículo eliminado"})
}
