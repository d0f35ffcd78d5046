// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/cube/simple/internal/auth/domain"
	authHTTP "github.com/cube/simple/internal/auth/http"
	authService "github.com/cube/simple/internal/auth/service"
	"github.com/cube/simple/internal/config"
	apperrors "github.com/cube/simple/internal/errors"
	"github.com/cube/simple/internal/httputil"
	memberHTTP "github.com/cube/simple/internal/member/http"
	"github.com/cube/simple/internal/metrics"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is installed by SetupRouter.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port),
	}
}

func newHTTPServer(host string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// RouterDependencies groups the collaborators the router wires together.
type RouterDependencies struct {
	Config          *config.Config
	TokenHandler    *authHTTP.TokenHandler
	MemberHandler   *memberHTTP.MemberHandler
	TokenService    authService.TokenService
	Policy          *authDomain.RoutePolicy
	Responder       *httputil.ErrorResponder
	SecurityMetrics metrics.SecurityMetrics
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the gin engine. Every request passes the bearer token gate
// and then the route policy before reaching a handler; requests that match no
// route are still subject to the policy. ctx bounds background work such as the
// rate limiter cleanup.
func (s *Server) SetupRouter(ctx context.Context, deps RouterDependencies) {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(authHTTP.AuthenticationMiddleware(deps.TokenService, deps.Responder, deps.SecurityMetrics, s.logger))
	router.Use(authHTTP.AuthorizationMiddleware(deps.Policy, deps.Responder, deps.SecurityMetrics, s.logger))

	router.NoRoute(func(c *gin.Context) {
		deps.Responder.Error(c, apperrors.Wrap(apperrors.ErrNotFound, "route not found"))
	})

	router.GET("/", s.healthHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		loginHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitLoginEnabled {
			loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				deps.Responder,
				s.logger,
			))
		}
		loginHandlers = append(loginHandlers, deps.TokenHandler.LoginHandler)

		auth.POST("/login", loginHandlers...)
		auth.POST("/refresh", deps.TokenHandler.RefreshHandler)
		auth.GET("/me", deps.TokenHandler.MeHandler)
	}

	members := api.Group("/members")
	{
		members.POST("", deps.MemberHandler.CreateHandler)
		members.GET("", deps.MemberHandler.ListHandler)
		members.GET("/:id", deps.MemberHandler.GetHandler)
		members.PUT("/:id", deps.MemberHandler.UpdateHandler)
		members.DELETE("/:id", deps.MemberHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must have been called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}
