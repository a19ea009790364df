package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/carelens-ai/platform/pkg/classifier"
	"github.com/carelens-ai/platform/pkg/common/config"
	"github.com/carelens-ai/platform/pkg/common/database"
	"github.com/carelens-ai/platform/pkg/common/kafka"
	"github.com/carelens-ai/platform/pkg/common/logger"
	"github.com/carelens-ai/platform/pkg/common/middleware"
	"github.com/carelens-ai/platform/pkg/mentions"
	"github.com/carelens-ai/platform/pkg/normalizer"
	"github.com/carelens-ai/platform/pkg/observability/metrics"
	"github.com/carelens-ai/platform/pkg/serving"
	"github.com/carelens-ai/platform/pkg/taxonomy"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	cfg := config.Load()
	metrics.Init()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := mentions.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate mention tables")
	}

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		logger.Log.WithError(err).Warn("taxonomy load failed, using built-in catalog")
		tax = taxonomy.Default()
	}

	fields, err := normalizer.LoadFieldMap(cfg.FieldMapPath)
	if err != nil {
		logger.Log.WithError(err).Warn("field map load failed, using built-in chains")
		fields = normalizer.DefaultFieldMap()
	}

	cache := serving.NewPivotCache(database.GetRedis(), cfg.PivotCacheTTL)
	defer database.CloseRedis()

	svc := serving.NewService(repo, normalizer.New(fields), classifier.New(tax), tax, cache, cfg.MaxPivotRows)
	handler := serving.NewHTTPHandler(svc, cfg.MaxRequestBody)

	consumer := kafka.NewConsumer(cfg.MentionBatchTopic, "analytics-service")
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Consume(ctx, svc.HandleEvent); err != nil && err != context.Canceled {
			logger.Log.WithError(err).Fatal("Consumer error")
		}
	}()

	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)
	router.Use(middleware.RateLimit(50, 100)) // basic per-process limiter
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	handler.Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.AnalyticsPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.AnalyticsPort,
		}).Info("Analytics Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Analytics Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Analytics Service stopped")
}
