package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/auth"
	"github.com/NovaAI-innovation/backend12/internal/blob"
	"github.com/NovaAI-innovation/backend12/internal/config"
	httptransport "github.com/NovaAI-innovation/backend12/internal/http"
	"github.com/NovaAI-innovation/backend12/internal/http/handler"
	"github.com/NovaAI-innovation/backend12/internal/http/middleware"
	"github.com/NovaAI-innovation/backend12/internal/ratelimit"
	"github.com/NovaAI-innovation/backend12/internal/repository"
	"github.com/NovaAI-innovation/backend12/internal/server"
	"github.com/NovaAI-innovation/backend12/internal/service"
	"github.com/NovaAI-innovation/backend12/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newGalleryRepository,
			newBookingRepository,
			newCredentials,
			newTokenService,
			newRouterLimiters,
			newBlobStore,
			service.NewAuthService,
			newGalleryService,
			service.NewBookingService,
			newHealthHandler,
			handler.NewAuthHandler,
			handler.NewGalleryHandler,
			handler.NewCMSHandler,
			handler.NewBookingHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newGalleryRepository(pool *pgxpool.Pool) repository.GalleryRepository {
	return repository.NewPostgresGalleryRepo(pool)
}

func newBookingRepository(pool *pgxpool.Pool) repository.BookingRepository {
	return repository.NewPostgresBookingRepo(pool)
}

func newCredentials(cfg config.Config, logger *zap.Logger) *auth.Credentials {
	return auth.NewCredentials(cfg.AdminPasswordHash, logger)
}

func newTokenService(cfg config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)
}

// newRouterLimiters keeps login attempts on the in-process limiter so the
// brute-force guard never fails open. Upload, delete and booking counters
// move to Redis when REDIS_ADDR is set so they hold across instances.
func newRouterLimiters(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) httptransport.RouterLimiters {
	memory := ratelimit.NewMemoryLimiter()
	limiters := httptransport.RouterLimiters{Login: memory, Shared: memory}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		limiters.Shared = ratelimit.NewRedisLimiter(client)
		logger.Info("rate limiter using redis backend", zap.String("addr", cfg.RedisAddr))
	}

	return limiters
}

func newBlobStore(cfg config.Config, logger *zap.Logger) blob.Store {
	return blob.NewCloudinaryStore(cfg.Cloudinary, logger)
}

func newGalleryService(repo repository.GalleryRepository, store blob.Store, logger *zap.Logger) *service.GalleryService {
	return service.NewGalleryService(repo, store, logger)
}

func newHealthHandler(cfg config.Config, pool *pgxpool.Pool) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg, pool)
}

func newAuthMiddleware(authService *service.AuthService) *middleware.Auth {
	return &middleware.Auth{AuthService: authService}
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
