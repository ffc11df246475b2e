package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/service"
	"mindwell-backend/utilities"
)

// AdminController groups assessment-type and recommendation administration.
type AdminController struct {
	SchemaService         service.SchemaService
	RecommendationService service.RecommendationService
}

func NewAdminController(
	schemaService service.SchemaService,
	recommendationService service.RecommendationService,
) *AdminController {
	return &AdminController{
		SchemaService:         schemaService,
		RecommendationService: recommendationService,
	}
}

// ListTypes handles GET /assessments/admin/types/ (inactive types included).
func (ad *AdminController) ListTypes(c *gin.Context) {
	types, err := ad.SchemaService.ListAllTypes(utilities.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// CreateType handles POST /assessments/admin/types/
func (ad *AdminController) CreateType(c *gin.Context) {
	var input service.CreateTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	t, err := ad.SchemaService.CreateType(utilities.CurrentRole(c), utilities.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateType handles PUT /assessments/admin/types/:id/
func (ad *AdminController) UpdateType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid type id", "code": "validation_error"})
		return
	}

	var input service.UpdateTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	t, err := ad.SchemaService.UpdateType(utilities.CurrentRole(c), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteType handles DELETE /assessments/admin/types/:id/
func (ad *AdminController) DeleteType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid type id", "code": "validation_error"})
		return
	}

	if err := ad.SchemaService.DeleteType(utilities.CurrentRole(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assessment type deleted successfully"})
}

// CreateRecommendation handles POST /assessments/admin/recommendations/
func (ad *AdminController) CreateRecommendation(c *gin.Context) {
	var input service.RecommendationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	rec, err := ad.RecommendationService.Create(utilities.CurrentRole(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// UpdateRecommendation handles PUT /assessments/admin/recommendations/:id/
func (ad *AdminController) UpdateRecommendation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid recommendation id", "code": "validation_error"})
		return
	}

	var input service.RecommendationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	rec, err := ad.RecommendationService.Update(utilities.CurrentRole(c), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteRecommendation handles DELETE /assessments/admin/recommendations/:id/
func (ad *AdminController) DeleteRecommendation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid recommendation id", "code": "validation_error"})
		return
	}

	if err := ad.RecommendationService.Delete(utilities.CurrentRole(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recommendation deleted successfully"})
}
