package main

import (
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mindwell-backend/internal/cache"
	"mindwell-backend/internal/config"
	"mindwell-backend/internal/controller"
	"mindwell-backend/internal/db"
	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/internal/service"
	"mindwell-backend/pkg/middleware"
	"mindwell-backend/utilities"
)

func main() {
	printStartUpBanner()

	// .env is optional; real deployments inject credentials via the environment.
	_ = godotenv.Load()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.SetupLogging(utilities.LogOptions{
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	utilities.ConfigureTokens(
		cfg.Authentication.AccessSecret,
		cfg.Authentication.RefreshSecret,
		time.Duration(cfg.Authentication.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.Authentication.RefreshTokenHours)*time.Hour,
	)

	// Initialize DB using the loaded config.
	db.InitDBFromConfig(cfg)

	// Run migrations.
	err = db.GetDB().AutoMigrate(
		&model.User{},
		&model.AssessmentType{},
		&model.AssessmentQuestion{},
		&model.QuestionOption{},
		&model.Assessment{},
		&model.AssessmentResponse{},
		&model.AssessmentRecommendation{},
	)
	if err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	typeRepo := repository.NewAssessmentTypeRepository()
	questionRepo := repository.NewQuestionRepository()
	assessmentRepo := repository.NewAssessmentRepository()
	recoRepo := repository.NewRecommendationRepository()

	// Create services.
	authService := service.NewAuthService(userRepo)
	schemaService := service.NewSchemaService(typeRepo, utilities.GlobalEventBus)
	questionService := service.NewQuestionService(questionRepo, typeRepo, utilities.GlobalEventBus)
	submissionService := service.NewSubmissionService(typeRepo, assessmentRepo, recoRepo, utilities.GlobalEventBus)
	recommendationService := service.NewRecommendationService(recoRepo, typeRepo)

	// Event subscribers: schema-change notifications and analytics invalidation.
	service.SubscribeNotifier(utilities.GlobalEventBus, service.LogNotifier{})
	analytics := cache.NewAnalyticsCache(assessmentRepo, questionRepo)
	analytics.Subscribe(utilities.GlobalEventBus)

	if cfg.DB.Initialize {
		if err := seedStandardData(userRepo, typeRepo, recoRepo); err != nil {
			log.Fatalf("failed to seed standard data: %v", err)
		}
	}

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	if cfg.Authentication.EnableTokenAuth {
		r.Use(utilities.AuthMiddleware())
	}

	controller.RegisterRoutes(r, cfg, authService, schemaService, questionService,
		submissionService, recommendationService, analytics)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("MINDWELL", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("MINDWELL API (v%s)\n\n", "1.0.0")
}
