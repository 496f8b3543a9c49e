package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/restaurant-service/internal/api/http"
	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/observability"
	"github.com/spec-kit/restaurant-service/internal/persistence"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
	"github.com/spec-kit/restaurant-service/internal/worker"
	"github.com/spec-kit/restaurant-service/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo       repository.UserRepository
		restaurantRepo repository.RestaurantRepository
		cache          repository.RestaurantCache
	)
	if pg.Enabled() {
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		restaurantRepo = repository.NewRestaurantRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
		restaurantRepo = repository.NewMemoryRestaurantRepository()
	}
	if redis.Enabled() {
		cache = repository.NewRedisRestaurantCache(redis.Client, cfg.Redis.CacheTTL())
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), auth.NewMemoryValiditySet(),
		auth.WithTokenLogger(logger.Named("tokens")))
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}
	hasher := auth.NewArgon2Hasher(auth.Argon2Params{
		Memory:      cfg.Auth.Argon2MemoryKiB,
		Iterations:  cfg.Auth.Argon2Iterations,
		Parallelism: cfg.Auth.Argon2Parallelism,
	})
	if cfg.Google.ClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID not provided; federated login will reject every credential")
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuthAuditWorker(service.NewAuthAuditService(dispatcher, logger))
	sweeperDone := worker.StartTokenSweeper(ctx, tokens, cfg.Auth.SweepInterval(), logger.Named("sweeper"))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Hasher:     hasher,
		Tokens:     tokens,
		Verifier:   auth.NewGoogleVerifier(cfg.Google.VerifyTimeout()),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	restaurantService := service.NewRestaurantService(restaurantRepo, cache, logger)
	metrics := observability.NewMetrics()

	app := httptransport.NewApp(cfg.App.Name, logger)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.Origins(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:        handlers.NewAuthHandler(authService),
		Restaurants: handlers.NewRestaurantsHandler(restaurantService),
		Authorizer:  auth.NewRequestAuthorizer(tokens, userRepo, logger.Named("authorizer")),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	cancel()
	<-sweeperDone
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
