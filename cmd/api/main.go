package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/api"
	"github.com/hszk-dev/vidtube/internal/api/handler"
	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/config"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/infrastructure/postgres"
	"github.com/hszk-dev/vidtube/internal/infrastructure/queue"
	"github.com/hszk-dev/vidtube/internal/infrastructure/storage"
	"github.com/hszk-dev/vidtube/internal/mediastore"
	"github.com/hszk-dev/vidtube/internal/transcoder"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Media.TempDir, 0o755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	if cfg.Database.Migrate {
		if err := pgClient.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("database schema up to date")
	}

	metrics.RegisterPoolStats(prometheus.DefaultRegisterer, func() metrics.PoolStats {
		s := pgClient.Stats()
		return metrics.PoolStats{
			AcquiredConns: s.AcquiredConns,
			IdleConns:     s.IdleConns,
			TotalConns:    s.TotalConns,
			MaxConns:      s.MaxConns,
		}
	})

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueCfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL())
	queueCfg.MaxRetries = cfg.Worker.MaxRetries
	queueClient, err := queue.NewClient(ctx, queueCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	media := mediastore.New(
		storageClient,
		transcoder.NewFFmpegProcessor(transcoder.FFmpegConfig{
			FFmpegPath:  cfg.Media.FFmpegPath,
			FFprobePath: cfg.Media.FFprobePath,
		}),
		mediastore.Config{
			PublicBaseURL:      cfg.MinIO.PublicBaseURL,
			TempDir:            cfg.Media.TempDir,
			BreakerMaxFailures: cfg.Breaker.MaxFailures,
			BreakerInterval:    cfg.Breaker.Interval,
			BreakerTimeout:     cfg.Breaker.Timeout,
		},
	)

	// Initialize repositories
	pool := pgClient.Pool()
	viewRepo := postgres.NewViewRepository(pool)
	videoRepo := postgres.NewVideoRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	likeRepo := postgres.NewLikeRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	tweetRepo := postgres.NewTweetRepository(pool)
	playlistRepo := postgres.NewPlaylistRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Initialize services
	videoCache := cache.NewRedisVideoCache(redisClient)
	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo, viewRepo, media, media, queueClient),
		videoCache,
		usecase.CachedVideoServiceConfig{CacheTTL: cfg.Cache.VideoTTL},
	)
	subscriptionSvc := usecase.NewSubscriptionService(subscriptionRepo, viewRepo, usecase.SubscriptionServiceConfig{
		AllowSelfSubscription: cfg.Engagement.AllowSelfSubscription,
	})

	handlers := api.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": pgClient.Ping,
			"redis":    videoCache.Ping,
			"minio":    storageClient.Ping,
			"rabbitmq": func(context.Context) error {
				if !queueClient.Healthy() {
					return fmt.Errorf("connection closed")
				}
				return nil
			},
		}),
		Video: handler.NewVideoHandler(videoSvc, handler.VideoHandlerConfig{
			TempDir:       cfg.Media.TempDir,
			MaxUploadSize: cfg.Media.MaxUploadSize,
		}),
		Comment:      handler.NewCommentHandler(usecase.NewCommentService(commentRepo, viewRepo)),
		Like:         handler.NewLikeHandler(usecase.NewLikeService(likeRepo, viewRepo)),
		Subscription: handler.NewSubscriptionHandler(subscriptionSvc),
		Tweet:        handler.NewTweetHandler(usecase.NewTweetService(tweetRepo, userRepo, viewRepo)),
		Playlist:     handler.NewPlaylistHandler(usecase.NewPlaylistService(playlistRepo, viewRepo)),
		Dashboard:    handler.NewDashboardHandler(usecase.NewDashboardService(viewRepo)),
	}

	routerCfg := api.RouterConfig{
		Logger: logger,
		Auth: middleware.AuthConfig{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.JWTIssuer,
		},
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = cache.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handlers, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
