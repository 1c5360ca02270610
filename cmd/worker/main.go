package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/adapters/event"
	"github.com/khoahotran/skillfolio/adapters/notify"
	"github.com/khoahotran/skillfolio/adapters/persistence"
	verificationUC "github.com/khoahotran/skillfolio/internal/application/usecase/verification"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

func main() {
	fmt.Println("Starting Skillfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("cannot start worker", errors.New("KAFKA_BROKERS is required"))
	}

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	mentorRepo := persistence.NewPostgresMentorRepo(dbPool)
	verificationRepo := persistence.NewPostgresVerificationRepo(dbPool, appLogger)

	// Worker Use Case
	reapplyUC := verificationUC.NewReapplyApprovedUseCase(verificationRepo, skillRepo, userRepo, appLogger)
	processEventUC := verificationUC.NewProcessVerificationEventUseCase(
		verificationRepo,
		mentorRepo,
		userRepo,
		notify.NewEmailNotifier(cfg, appLogger),
		reapplyUC,
		notify.VerificationEmail,
		appLogger,
	)

	metricsSrv := &http.Server{Addr: ":" + cfg.Worker.MetricsPort, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics server stopped", err)
		}
	}()

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicVerificationEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicVerificationEvents), zap.String("group_id", cfg.Kafka.GroupID))

	runConsumer(ctx, consumer, processEventUC.Execute, fetchRetryDelay, appLogger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	appLogger.Info("Worker stopped")
}
