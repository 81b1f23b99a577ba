package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/api/middleware"
	"github.com/nitk/memory-vault/internal/api/server"
	"github.com/nitk/memory-vault/internal/config"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/providers/w3up"
	"github.com/nitk/memory-vault/internal/ratelimit"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/store"
	"github.com/nitk/memory-vault/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "api-server",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Memory Vault API")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// The relay uploads with the server's own storage account
	factory := w3up.NewFactory(w3up.Config{ServiceURL: cfg.Storage.ServiceURL}, adapter.NewHTTPClient(cfg.Storage.Timeout), jsonAdapter)
	session := storage.NewSession(storage.SessionConfig{
		Email:     cfg.Storage.Email,
		SpaceName: cfg.Storage.SpaceName,
	}, factory)
	uploader := storage.NewUploader(session, clockAdapter)

	if _, err := session.EnsureReady(ctx); err != nil {
		logger.WarnCtx(ctx, "Storage session not ready, uploads will retry on demand", zap.Error(err))
	}

	resolver := uri.NewResolver(uri.Config{IPFSGateway: cfg.Gateway.IPFSGateway})

	var uploadLimiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		var redisClient adapter.RedisClient
		if cfg.RateLimit.RedisAddr != "" {
			redisClient = adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		}
		uploadLimiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimit.UploadsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			KeyPrefix:         cfg.RateLimit.RedisKeyPrefix,
			RedisRetryAfter:   cfg.RateLimit.RedisRetryAfter,
		}, redisClient, clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create upload rate limiter", zap.Error(err))
		}
		defer func() {
			if err := uploadLimiter.Close(); err != nil {
				logger.Warn("Failed to close upload rate limiter", zap.Error(err))
			}
		}()
	}

	serverConfig := server.Config{
		Debug:         cfg.Debug,
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		ReadTimeout:   time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:  time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:   time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, dataStore, uploader, resolver, uploadLimiter, clockAdapter, adapter.NewIO())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
