package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/services"
	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// @Summary List Branches
// @Description Get all branches
// @Tags Branches
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /branches [get]
func (h *BranchHandler) Index(c *gin.Context) {
	branches, err := h.branchService.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// @Summary Get Branch
// @Description Get a branch by ID
// @Tags Branches
// @Accept json
// @Produce json
// @Param branch_id path int true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /branches/{branch_id} [get]
func (h *BranchHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("branch_id"), 10, 32)
	branch, err := h.branchService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sucursal no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

// @Summary Create Branch
// @Description Register a new branch (admin only)
// @Tags Branches
// @Accept json
// @Produce json
// @Param request body models.Branch true "Branch Data"
// @Success 201 {object} models.Branch
// @Failure 400,422 {object} map[string]string
// @Security BearerAuth
// @Router /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var branch models.Branch
	if err := BindNestedOrFlat(c, "branch", &branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if branch.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es requerido"})
		return
	}

	if err := h.branchService.Create(c.Request.Context(), &branch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"branch": branch, "message": "Sucursal creada exitosamente"})
}

// @Summary Update Branch
// @Description Update branch data (admin only)
// @Tags Branches
// @Accept json
// @Produce json
// @Param branch_id path int true "Branch ID"
// @Param request body models.Branch true "Branch Data"
// @Success 200 {object} models.Branch
// @Failure 404,422 {object} map[string]string
// @Security BearerAuth
// @Router /branches/{branch_id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("branch_id"), 10, 32)
	branch, err := h.branchService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sucursal no encontrada"})
		return
	}

	if err := BindNestedOrFlat(c, "branch", branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch.ID = uint(id)

	if err := h.branchService.Update(c.Request.Context(), branch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch, "message": "Sucursal actualizada"})
}

// @Summary Delete Branch
// @Description Deactivate a branch (admin only)
// @Tags Branches
// @Accept json
// @Produce json
// @Param branch_id path int true "Branch ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /branches/{branch_id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("branch_id"), 10, 32)
	if err := h.branchService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sucursal no encontrada"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sucursal desactivada"})
}
