package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/cache"
	"mindwell-backend/internal/service"
	"mindwell-backend/utilities"
)

type QuestionController struct {
	QuestionService service.QuestionService
	SchemaService   service.SchemaService
	Analytics       *cache.AnalyticsCache
}

func NewQuestionController(
	questionService service.QuestionService,
	schemaService service.SchemaService,
	analytics *cache.AnalyticsCache,
) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		SchemaService:   schemaService,
		Analytics:       analytics,
	}
}

// Create handles POST /assessments/questions/
func (qc *QuestionController) Create(c *gin.Context) {
	var input service.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	question, err := qc.QuestionService.CreateQuestion(utilities.CurrentRole(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// BulkCreate handles POST /assessments/questions/bulk-create/
func (qc *QuestionController) BulkCreate(c *gin.Context) {
	var input service.BulkCreateQuestionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	questions, err := qc.QuestionService.BulkCreateQuestions(utilities.CurrentRole(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"created_questions": questions,
		"count":             len(questions),
	})
}

// Update handles PUT /assessments/questions/:id/
func (qc *QuestionController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid question id", "code": "validation_error"})
		return
	}

	var input service.UpdateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c)
		return
	}

	question, err := qc.QuestionService.UpdateQuestion(utilities.CurrentRole(c), uint(id), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete handles DELETE /assessments/questions/:id/
func (qc *QuestionController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid question id", "code": "validation_error"})
		return
	}

	if err := qc.QuestionService.DeleteQuestion(utilities.CurrentRole(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted successfully"})
}

// AnalyticsOverview handles GET /assessments/questions/analytics/ and returns
// per-question response distributions for every active type.
func (qc *QuestionController) AnalyticsOverview(c *gin.Context) {
	if !utilities.CurrentRole(c).CanManageSchema() {
		c.JSON(http.StatusForbidden, gin.H{"detail": "permission denied", "code": "permission_denied"})
		return
	}

	types, err := qc.SchemaService.ListActiveTypes()
	if err != nil {
		respondError(c, err)
		return
	}

	overview := make([]gin.H, 0, len(types))
	for i := range types {
		analytics, err := qc.Analytics.ForType(types[i].Questions)
		if err != nil {
			respondError(c, err)
			return
		}
		overview = append(overview, gin.H{
			"assessment_type": types[i].Name,
			"questions":       analytics,
		})
	}
	c.JSON(http.StatusOK, overview)
}
