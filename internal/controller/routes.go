package controller

import (
	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/cache"
	"mindwell-backend/internal/config"
	"mindwell-backend/internal/model"
	"mindwell-backend/internal/service"
	"mindwell-backend/pkg/middleware"
	"mindwell-backend/utilities"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	cfg *config.APIConfig,
	authService service.AuthService,
	schemaService service.SchemaService,
	questionService service.QuestionService,
	submissionService service.SubmissionService,
	recommendationService service.RecommendationService,
	analytics *cache.AnalyticsCache,
) {
	authCtrl := NewAuthController(authService)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/refresh", authCtrl.Refresh)
	}

	assessmentCtrl := NewAssessmentController(schemaService, submissionService, recommendationService)
	questionCtrl := NewQuestionController(questionService, schemaService, analytics)
	adminCtrl := NewAdminController(schemaService, recommendationService)

	assessments := r.Group("/assessments")
	{
		assessments.GET("/types/", assessmentCtrl.ListTypes)
		assessments.GET("/types/:idOrName/", assessmentCtrl.GetType)

		assessments.POST("/take/",
			middleware.SubmissionRateLimiter(cfg.RateLimit.SubmissionsPerMinute, cfg.RateLimit.Burst),
			assessmentCtrl.Take)

		assessments.GET("/history/", assessmentCtrl.History)
		assessments.GET("/results/:id/", assessmentCtrl.Result)
		assessments.GET("/results/:id/report", assessmentCtrl.ResultReport)

		assessments.GET("/recommendations/", assessmentCtrl.Recommendations)

		questions := assessments.Group("/questions")
		{
			questions.POST("/", questionCtrl.Create)
			questions.POST("/bulk-create/", questionCtrl.BulkCreate)
			questions.PUT("/:id/", questionCtrl.Update)
			questions.DELETE("/:id/", questionCtrl.Delete)
			questions.GET("/analytics/", questionCtrl.AnalyticsOverview)
		}

		admin := assessments.Group("/admin", utilities.RequireRoles(model.RoleAdmin))
		{
			admin.GET("/types/", adminCtrl.ListTypes)
			admin.POST("/types/", adminCtrl.CreateType)
			admin.PUT("/types/:id/", adminCtrl.UpdateType)
			admin.DELETE("/types/:id/", adminCtrl.DeleteType)

			admin.POST("/recommendations/", adminCtrl.CreateRecommendation)
			admin.PUT("/recommendations/:id/", adminCtrl.UpdateRecommendation)
			admin.DELETE("/recommendations/:id/", adminCtrl.DeleteRecommendation)
		}
	}
}
