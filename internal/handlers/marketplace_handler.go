package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplaceService *services.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService *services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

type ConnectPlatformRequest struct {
	BranchID uint   `json:"branch_id" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

// @Summary Connect Marketplace Platform
// @Description Link a branch to an external marketplace platform
// @Tags Marketplace
// @Accept json
// @Produce json
// @Param request body ConnectPlatformRequest true "Branch and Platform"
// @Success 200 {object} map[string]string
// @Failure 400,502 {object} map[string]string
// @Security BearerAuth
// @Router /marketplace/connect [post]
func (h *MarketplaceHandler) Connect(c *gin.Context) {
	var req ConnectPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sucursal y plataforma son requeridas"})
		return
	}

	if err := h.marketplaceService.ConnectPlatform(c.Request.Context(), req.BranchID, req.Platform); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plataforma conectada exitosamente"})
}

// @Summary Publish Vehicle
// @Description Publish an available vehicle to the connected marketplaces
// @Tags Marketplace
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Success 200 {object} map[string]string
// @Failure 404,422,502 {object} map[string]string
// @Security BearerAuth
// @Router /marketplace/vehicles/{vehicle_id}/publish [post]
func (h *MarketplaceHandler) Publish(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	if err := h.marketplaceService.PublishVehicle(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehículo publicado"})
}

// @Summary Unpublish Vehicle
// @Description Remove a vehicle from the connected marketplaces
// @Tags Marketplace
// @Accept json
// @Produce json
// @Param vehicle_id path int true "Vehicle ID"
// @Success 200 {object} map[string]string
// @Failure 404,502 {object} map[string]string
// @Security BearerAuth
// @Router /marketplace/vehicles/{vehicle_id}/unpublish [post]
func (h *MarketplaceHandler) Unpublish(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	if err := h.marketplaceService.UnpublishVehicle(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehículo no encontrado"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publicación retirada"})
}

// @Summary Sync All Listings
// @Description Push the branch inventory to the connected marketplaces
// @Tags Marketplace
// @Accept json
// @Produce json
// @Param branch_id query int false "Branch ID"
// @Success 200 {object} services.SyncResult
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /marketplace/sync [post]
func (h *MarketplaceHandler) SyncAll(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	result, err := h.marketplaceService.SyncAll(c.Request.Context(), uint(branchID))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Meta Ads Insights
// @Description Get ad campaign metrics for a branch in a date range
// @Tags Marketplace
// @Accept json
// @Produce json
// @Param branch_id query int false "Branch ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} services.AdsInsights
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /marketplace/ads/insights [get]
func (h *MarketplaceHandler) AdsInsights(c *gin.Context) {
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	insights, err := h.marketplaceService.GetMetaAdsInsights(c.Request.Context(), uint(branchID), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, insights)
}
