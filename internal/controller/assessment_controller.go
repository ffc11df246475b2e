package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/report"
	"mindwell-backend/internal/service"
	"mindwell-backend/utilities"
)

type AssessmentController struct {
	SchemaService         service.SchemaService
	SubmissionService     service.SubmissionService
	RecommendationService service.RecommendationService
}

func NewAssessmentController(
	schemaService service.SchemaService,
	submissionService service.SubmissionService,
	recommendationService service.RecommendationService,
) *AssessmentController {
	return &AssessmentController{
		SchemaService:         schemaService,
		SubmissionService:     submissionService,
		RecommendationService: recommendationService,
	}
}

// ListTypes handles GET /assessments/types/
func (ac *AssessmentController) ListTypes(c *gin.Context) {
	types, err := ac.SchemaService.ListActiveTypes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GetType handles GET /assessments/types/:idOrName/ and accepts either a
// numeric id or a type name.
func (ac *AssessmentController) GetType(c *gin.Context) {
	idOrName := c.Param("idOrName")
	if id, err := strconv.ParseUint(idOrName, 10, 64); err == nil {
		t, err := ac.SchemaService.GetTypeByID(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
		return
	}

	t, err := ac.SchemaService.GetTypeByName(idOrName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Take handles POST /assessments/take/
func (ac *AssessmentController) Take(c *gin.Context) {
	var input service.TakeAssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	result, err := ac.SubmissionService.TakeAssessment(utilities.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// History handles GET /assessments/history/
func (ac *AssessmentController) History(c *gin.Context) {
	assessments, err := ac.SubmissionService.History(utilities.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

// Result handles GET /assessments/results/:id/
func (ac *AssessmentController) Result(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid assessment id", "code": "validation_error"})
		return
	}

	assessment, err := ac.SubmissionService.Result(utilities.CurrentUserID(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// ResultReport handles GET /assessments/results/:id/report and streams the
// result as a PDF.
func (ac *AssessmentController) ResultReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid assessment id", "code": "validation_error"})
		return
	}

	assessment, err := ac.SubmissionService.Result(utilities.CurrentUserID(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	pdfBytes, err := report.ResultPDF(assessment)
	if err != nil {
		utilities.Error("failed to render result %d as PDF: %v", assessment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to generate report", "code": "internal_error"})
		return
	}

	filename := fmt.Sprintf("assessment_result_%d.pdf", assessment.ID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Recommendations handles GET /assessments/recommendations/ with optional
// assessment_type and risk_level query filters.
func (ac *AssessmentController) Recommendations(c *gin.Context) {
	typeName := c.Query("assessment_type")
	riskLevel := model.RiskLevel(c.Query("risk_level"))

	recs, err := ac.RecommendationService.List(typeName, riskLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
