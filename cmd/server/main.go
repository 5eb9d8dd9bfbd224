package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-ai/internal/api"
	"alcyxob/fitness-ai/internal/cache"
	"alcyxob/fitness-ai/internal/config"
	"alcyxob/fitness-ai/internal/fallback"
	"alcyxob/fitness-ai/internal/llm"
	"alcyxob/fitness-ai/internal/logging"
	"alcyxob/fitness-ai/internal/metrics"
	"alcyxob/fitness-ai/internal/recovery"
	"alcyxob/fitness-ai/internal/repository/mongo"
	"alcyxob/fitness-ai/internal/service"
	"alcyxob/fitness-ai/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// @title Fitness AI API
// @version 1.0
// @description AI-generated exercises and workouts with robust recovery of model output.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.FileName,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	logrus.Info("starting fitness AI server")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		logrus.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
			logrus.WithError(err).Error("index creation incomplete")
			return
		}
		logrus.Info("database indexes ensured")
	}()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("fitness_ai", "server", reg)

	// --- Raw response archive (optional) ---
	var archive storage.RawResponseArchive
	if cfg.S3.BucketName != "" {
		archive, err = storage.NewS3Archive(ctx, cfg.S3)
		if err != nil {
			logrus.Fatalf("failed to initialize S3 archive: %v", err)
		}
	} else {
		logrus.Warn("s3.bucket_name not set, unparseable model replies will not be archived")
	}

	// --- Text generation ---
	generator, err := llm.New(ctx, cfg.LLM, metricsManager)
	if err != nil {
		logrus.Fatalf("failed to initialize %s generator: %v", cfg.LLM.Provider, err)
	}
	pipeline := recovery.NewPipeline(recovery.WithWarmupPolicy(recovery.WarmupPolicy{
		Enabled:       cfg.Recovery.ExcludeWarmups,
		SectionTerms:  cfg.Recovery.WarmupSectionTerms,
		ExerciseTerms: cfg.Recovery.WarmupExerciseTerms,
	}))

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	generatedExerciseRepo := mongo.NewMongoGeneratedExerciseRepository(appDB)
	generatedWorkoutRepo := mongo.NewMongoGeneratedWorkoutRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	usageService := service.NewUsageService(userRepo, cfg.Limits, metricsManager)
	libraryService := service.NewLibraryService(exerciseRepo, cfg.Cache.ExerciseTTL, fallback.NewSynthesizer(), metricsManager, cache.WithSizeMB(cfg.Cache.SizeMB))
	exerciseAIService := service.NewExerciseAIService(generator, pipeline, generatedExerciseRepo, usageService, metricsManager)
	workoutAIService := service.NewWorkoutAIService(generator, pipeline, libraryService, sessionRepo, generatedWorkoutRepo, usageService, archive, metricsManager)

	// --- HTTP ---
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, reg, authService, libraryService, exerciseAIService, workoutAIService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // generation plus retries
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
		os.Exit(1)
	}
	logrus.Info("server exiting")
}
