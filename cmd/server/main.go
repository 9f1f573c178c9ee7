package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/fitness-app/internal/api"
	"fittrack/fitness-app/internal/config"
	"fittrack/fitness-app/internal/logger"
	"fittrack/fitness-app/internal/metrics"
	"fittrack/fitness-app/internal/repository"
	"fittrack/fitness-app/internal/repository/memory"
	"fittrack/fitness-app/internal/repository/mongo"
	"fittrack/fitness-app/internal/service"
	"fittrack/fitness-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// repositories groups the stores selected by database.driver.
type repositories struct {
	users      repository.UserRepository
	plans      repository.WorkoutPlanRepository
	logs       repository.WorkoutLogRepository
	exercises  repository.ExerciseRepository
	challenges repository.ChallengeRepository
	close      func()
}

// @title FitTrack API
// @version 1.0
// @description Workout plans, workout history, exercise library, challenges and dashboard.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fittrack: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting fittrack server", zap.String("driver", cfg.Database.Driver))

	// --- Repositories ---
	repos, err := openRepositories(cfg.Database, log)
	if err != nil {
		return err
	}
	defer repos.close()

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		cancel()
		if err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
	} else {
		log.Warn("s3 bucket not configured, avatar uploads are disabled")
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	// --- Services ---
	services := api.Services{
		Auth:       service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration, log),
		Profile:    service.NewProfileService(repos.users, fileStorage, log),
		Plans:      service.NewPlanService(repos.plans, log, recorder),
		Workouts:   service.NewWorkoutLogService(repos.logs),
		Exercises:  service.NewExerciseService(repos.exercises),
		Challenges: service.NewChallengeService(repos.challenges, repos.users, fileStorage, log),
		Dashboard:  service.NewDashboardService(repos.logs, time.Now),
	}

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	var limiter *api.RateLimiter
	if cfg.Server.RateLimit.RPS > 0 {
		limiter = api.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, 10*time.Minute)
	}
	api.SetupRoutes(router, api.RouterDeps{
		JWTSecret: cfg.JWT.Secret,
		Services:  services,
		Logger:    log,
		Recorder:  recorder,
		Gatherer:  registry,
		Limiter:   limiter,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if limiter != nil {
		go sweepLimiter(ctx, limiter, log)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

func openRepositories(cfg config.DatabaseConfig, log *zap.Logger) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:      memory.NewUserRepository(store),
			plans:      memory.NewWorkoutPlanRepository(store),
			logs:       memory.NewWorkoutLogRepository(store),
			exercises:  memory.NewExerciseRepository(store),
			challenges: memory.NewChallengeRepository(store),
			close:      func() {},
		}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	db := client.Database(cfg.Name)
	log.Info("database connection established", zap.String("database", cfg.Name))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		for collection, err := range mongo.EnsureIndexes(ctx, db) {
			log.Error("ensure indexes failed", zap.String("collection", collection), zap.Error(err))
		}
		log.Info("index creation completed")
	}()

	return &repositories{
		users:      mongo.NewMongoUserRepository(db),
		plans:      mongo.NewMongoWorkoutPlanRepository(db),
		logs:       mongo.NewMongoWorkoutLogRepository(db),
		exercises:  mongo.NewMongoExerciseRepository(db),
		challenges: mongo.NewMongoChallengeRepository(db),
		close: func() {
			if err := mongo.DisconnectDB(client); err != nil {
				log.Error("disconnect mongodb", zap.Error(err))
			}
		},
	}, nil
}

func sweepLimiter(ctx context.Context, limiter *api.RateLimiter, log *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("rate limiter sweep", zap.Int("clients", limiter.Sweep()))
		}
	}
}
