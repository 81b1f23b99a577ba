package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/api/graphql"
	"github.com/nitk/memory-vault/internal/api/middleware"
	"github.com/nitk/memory-vault/internal/api/rest"
	"github.com/nitk/memory-vault/internal/api/shared/constants"
	"github.com/nitk/memory-vault/internal/api/shared/executor"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/ratelimit"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/store"
	"github.com/nitk/memory-vault/internal/uri"
)

// Config holds the server configuration
type Config struct {
	Debug         bool
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxUploadSize int64
	CORSOrigins   []string
	Auth          middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	uploader   storage.Uploader
	resolver   uri.Resolver
	clock      adapter.Clock
	io         adapter.IO
	limiter    ratelimit.Limiter
	httpServer *http.Server
}

// New creates a new API server. A nil limiter leaves the upload relay unthrottled.
func New(cfg Config, store store.Store, uploader storage.Uploader, resolver uri.Resolver, limiter ratelimit.Limiter, clock adapter.Clock, ioAdapter adapter.IO) *Server {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = constants.DEFAULT_MAX_UPLOAD_BYTES
	}

	return &Server{
		config:   cfg,
		store:    store,
		uploader: uploader,
		resolver: resolver,
		clock:    clock,
		io:       ioAdapter,
		limiter:  limiter,
	}
}

// Router builds the gin engine with every route and middleware
func (s *Server) Router() (*gin.Engine, error) {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	authenticator, err := middleware.NewAuthenticator(s.config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = s.config.MaxUploadSize

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSOrigins))

	// Shared executor (business logic shared between REST and GraphQL)
	exec := executor.NewExecutor(s.store, s.uploader, s.resolver)

	var uploadGuards []gin.HandlerFunc
	if s.limiter != nil {
		uploadGuards = append(uploadGuards, middleware.RateLimit(s.limiter))
	}

	rest.SetupRoutes(router, rest.NewHandler(exec, s.clock, s.io, s.config.MaxUploadSize), authenticator, uploadGuards...)
	graphql.SetupRoutes(router, graphql.NewHandler(exec))

	return router, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
