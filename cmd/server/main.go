package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/adapters/cache"
	"github.com/khoahotran/skillfolio/adapters/catalog"
	"github.com/khoahotran/skillfolio/adapters/event"
	httpAdapter "github.com/khoahotran/skillfolio/adapters/http"
	"github.com/khoahotran/skillfolio/adapters/llm"
	"github.com/khoahotran/skillfolio/adapters/media_storage"
	"github.com/khoahotran/skillfolio/adapters/persistence"
	"github.com/khoahotran/skillfolio/internal/application/service"
	analyticsUC "github.com/khoahotran/skillfolio/internal/application/usecase/analytics"
	"github.com/khoahotran/skillfolio/internal/application/usecase/assessment"
	authUC "github.com/khoahotran/skillfolio/internal/application/usecase/auth"
	certUC "github.com/khoahotran/skillfolio/internal/application/usecase/certification"
	chatUC "github.com/khoahotran/skillfolio/internal/application/usecase/chat"
	mentorUC "github.com/khoahotran/skillfolio/internal/application/usecase/mentor"
	profileUC "github.com/khoahotran/skillfolio/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/skillfolio/internal/application/usecase/project"
	"github.com/khoahotran/skillfolio/internal/application/usecase/recommendation"
	skillUC "github.com/khoahotran/skillfolio/internal/application/usecase/skill"
	userUC "github.com/khoahotran/skillfolio/internal/application/usecase/user"
	verificationUC "github.com/khoahotran/skillfolio/internal/application/usecase/verification"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/tracing"
)

const serviceName = "skillfolio-api"

func main() {
	fmt.Println("Start Skillfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("FATAL: JWT_SECRET is required")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	defer appLogger.Sync()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Init(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Optional adapters stay nil when unconfigured; use cases fall back.
	var courseCache service.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, course results will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			courseCache = cache.NewRedisCache(redisClient, "skillfolio")
		}
	}

	var publisher service.EventPublisher
	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Kafka disabled, domain events will not be published", zap.Error(err))
	} else {
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Cloudinary disabled, avatar upload unavailable", zap.Error(err))
	}
	chatLLM, err := llm.NewChatAdapter(cfg.Chat, appLogger)
	if err != nil {
		appLogger.Warn("Chat provider disabled, serving fallback replies", zap.Error(err))
	}
	recommender, err := llm.NewRecommenderAdapter(cfg.Recommender, appLogger)
	if err != nil {
		appLogger.Warn("Recommendation provider disabled, serving fallback lists", zap.Error(err))
	}
	courseCatalog, err := catalog.NewCourseClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Course catalog disabled, serving fallback courses", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	certRepo := persistence.NewPostgresCertificationRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	mentorRepo := persistence.NewPostgresMentorRepo(dbPool)
	verificationRepo := persistence.NewPostgresVerificationRepo(dbPool, appLogger)
	analyticsRepo := persistence.NewPostgresAnalyticsRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	loader := assessment.NewSnapshotLoader(skillRepo, certRepo, projectRepo)
	reapplyUseCase := verificationUC.NewReapplyApprovedUseCase(verificationRepo, skillRepo, userRepo, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(
			authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewGetMeUseCase(userRepo),
			appLogger,
		),
		User: httpAdapter.NewUserHandler(
			userUC.NewUploadAvatarUseCase(userRepo, uploader, appLogger),
			userUC.NewDeactivateUseCase(userRepo, uploader, appLogger),
			appLogger,
		),
		Profile:       httpAdapter.NewProfileHandler(profileUC.NewProfileUseCase(profileRepo)),
		Skill:         httpAdapter.NewSkillHandler(skillUC.NewSkillUseCase(skillRepo, publisher, appLogger), appLogger),
		Certification: httpAdapter.NewCertificationHandler(certUC.NewCertificationUseCase(certRepo, appLogger), appLogger),
		Project: httpAdapter.NewProjectHandler(
			projectUC.NewCreateProjectUseCase(projectRepo),
			projectUC.NewListProjectsUseCase(projectRepo, appLogger),
			projectUC.NewGetProjectUseCase(projectRepo),
			projectUC.NewUpdateProjectUseCase(projectRepo),
			projectUC.NewDeleteProjectUseCase(projectRepo),
			appLogger,
		),
		Sector: httpAdapter.NewSectorHandler(
			assessment.NewAssessmentUseCase(loader),
			recommendation.NewRecommendationUseCase(loader, profileRepo, recommender, courseCatalog, courseCache, cfg.Courses.CacheTTL, appLogger),
			appLogger,
		),
		Analytics: httpAdapter.NewAnalyticsHandler(analyticsUC.NewAnalyticsUseCase(analyticsRepo, loader, publisher, appLogger), appLogger),
		Mentor:    httpAdapter.NewMentorHandler(mentorUC.NewMentorUseCase(mentorRepo, userRepo, appLogger), appLogger),
		Verification: httpAdapter.NewVerificationHandler(
			verificationUC.NewVerificationUseCase(verificationRepo, skillRepo, mentorRepo, userRepo, publisher, appLogger),
			reapplyUseCase,
			appLogger,
		),
		Chat: httpAdapter.NewChatHandler(chatUC.NewChatUseCase(chatLLM, appLogger), appLogger),
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ServiceName: serviceName,
		CORSOrigins: cfg.App.CORSOrigins,
	}, handlers, jwtSvc, userRepo, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		appLogger.Error("Failed to flush traces", err)
	}
	appLogger.Info("Server exited")
}
