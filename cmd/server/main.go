package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taubit/internal/app"
	"taubit/internal/auth"
	"taubit/internal/config"
	"taubit/internal/handler"
	internalRedis "taubit/internal/redis"
	"taubit/internal/repository/postgres"
	"taubit/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Apply schema migrations.
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Expired sessions pile up otherwise.
	sessionRepo := postgres.NewSessionRepository(db)
	go cleanupSessions(sessionRepo)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)
	leaderboardStore := internalRedis.NewLeaderboardStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	lineRepo := postgres.NewLineRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	rewardRepo := postgres.NewRewardRepository(db)
	friendRepo := postgres.NewFriendRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	// Initialize services.
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	notificationService := service.NewNotificationService()
	accountService := service.NewAccountService(userRepo, sessionRepo, tokenManager)
	tripService := service.NewTripService(db, tripRepo, userRepo, lineRepo, lockStore, leaderboardStore, notificationService)
	ratingService := service.NewRatingService(lineRepo, lockStore, cacheStore)
	rewardService := service.NewRewardService(db, rewardRepo, userRepo, lockStore, notificationService)
	friendService := service.NewFriendService(userRepo, friendRepo, notificationService)
	leaderboardService := service.NewLeaderboardService(leaderboardStore, userRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(accountService)
	tripHandler := handler.NewTripHandler(tripService)
	lineHandler := handler.NewLineHandler(ratingService)
	userHandler := handler.NewUserHandler(accountService)
	rewardHandler := handler.NewRewardHandler(rewardService)
	friendHandler := handler.NewFriendHandler(friendService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:        authHandler,
		TripHandler:        tripHandler,
		LineHandler:        lineHandler,
		UserHandler:        userHandler,
		RewardHandler:      rewardHandler,
		FriendHandler:      friendHandler,
		LeaderboardHandler: leaderboardHandler,
		TokenManager:       tokenManager,
		SessionRepo:        sessionRepo,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// cleanupSessions deletes expired sessions once an hour.
func cleanupSessions(sessionRepo *postgres.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := sessionRepo.DeleteExpired(ctx)
		cancel()
		if err != nil {
			log.Printf("session cleanup failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("session cleanup removed %d expired sessions", n)
		}
	}
}
