package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terralift/terralift/internal/config"
)

// Server is the agent's HTTP server. All API routes live under /api/v1.
type Server struct {
	cfg  *config.Configuration
	http *http.Server
	log  *zap.SugaredLogger
}

// NewServer builds the gin engine and mounts the API routes through the
// registration callback.
func NewServer(cfg *config.Configuration, registerFn func(*gin.RouterGroup)) (*Server, error) {
	if cfg.Server.ServerMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Logger())
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	api := router.Group("/api/v1")
	if cfg.Auth.Enabled {
		secret, err := os.ReadFile(cfg.Auth.SecretFilePath)
		if err != nil {
			return nil, fmt.Errorf("reading auth secret %s: %w", cfg.Auth.SecretFilePath, err)
		}
		api.Use(TokenAuth(secret))
	}
	registerFn(api)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
		log: zap.S().Named("server"),
	}, nil
}

// Start blocks serving requests until the server is stopped or fails.
func (s *Server) Start(ctx context.Context) error {
	s.log.Infow("starting http server", "port", s.cfg.Server.HTTPPort, "mode", s.cfg.Server.ServerMode)
	return s.http.ListenAndServe()
}

// Stop performs a graceful shutdown, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.log.Errorw("http server shutdown failed", "error", err)
	}
}
