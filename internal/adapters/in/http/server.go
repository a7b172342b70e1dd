// Package http is the JSON API of the service. Every route below /api/v1
// except login authenticates with HTTP Basic against the static account list;
// the selling point of the account scopes every use case.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"encargos/internal/adapters/in/http/openapi"
	"encargos/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds HTTP server settings.
type Config struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// LoginRate is the sustained number of login attempts per second allowed
	// for one client address; LoginBurst the attempts allowed at once.
	LoginRate       float64       `koanf:"login_rate"`
	LoginBurst      int           `koanf:"login_burst"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		LoginRate:       0.2,
		LoginBurst:      5,
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("http port %d is out of range", c.Port)
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate and burst must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Deps are the collaborators of the server. Metrics, Gatherer and Health are optional.
type Deps struct {
	Handlers Handlers
	Accounts Accounts
	Doc      *openapi.Document
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Health reports whether the backing store is reachable.
	Health func(ctx context.Context) error
	Logger *zap.Logger
	Now    func() time.Time
}

// Server wires the use case handlers to echo routes.
type Server struct {
	cfg      Config
	echo     *echo.Echo
	handlers Handlers
	accounts Accounts
	doc      *openapi.Document
	health   func(ctx context.Context) error
	logger   *zap.Logger
	now      func() time.Time
}

func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if err := deps.Accounts.Validate(); err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(deps.Logger)

	s := &Server{
		cfg:      cfg,
		echo:     e,
		handlers: deps.Handlers,
		accounts: deps.Accounts,
		doc:      deps.Doc,
		health:   deps.Health,
		logger:   deps.Logger,
		now:      deps.Now,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContext())
	e.Use(requestLogger(deps.Logger))
	if deps.Metrics != nil {
		e.Use(requestMetrics(deps.Metrics))
	}

	s.registerRoutes(deps)
	return s, nil
}

func (s *Server) registerRoutes(deps Deps) {
	s.echo.GET("/health", s.handleHealth)
	if deps.Gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if s.doc != nil {
		openapi.Register(s.doc)
		s.echo.GET("/openapi.json", s.handleOpenAPI)
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.cfg.LoginRate),
			Burst:     s.cfg.LoginBurst,
			ExpiresIn: 10 * time.Minute,
		}),
	})

	v1 := s.echo.Group("/api/v1")
	v1.POST("/session", s.login, loginLimiter)

	api := v1.Group("", middleware.BasicAuth(basicAuthValidator(s.accounts)))
	api.GET("/session", s.currentSession)

	api.GET("/orders", s.listOrders)
	api.GET("/orders/search", s.searchOrders)
	api.POST("/orders", s.createOrder)
	api.GET("/orders/:id", s.getOrder)
	api.PATCH("/orders/:id", s.updateOrderDetails)
	api.PATCH("/orders/:id/contact", s.updateOrderContact)
	api.PATCH("/orders/:id/stage", s.changeOrderStage)
	api.DELETE("/orders/:id", s.deleteOrder)

	api.GET("/persons", s.listPersons)
	api.GET("/persons/lookup", s.lookupPerson)
	api.POST("/persons", s.createPerson)
	api.PATCH("/persons/:id", s.updatePerson)
	api.DELETE("/persons/:id", s.deletePerson)

	api.GET("/catalog/:kind", s.listCatalogItems)
	api.POST("/catalog/:kind", s.createCatalogItem)
	api.PATCH("/catalog/:kind/:id", s.renameCatalogItem)
	api.DELETE("/catalog/:kind/:id", s.deleteCatalogItem)

	api.GET("/consistency", s.checkConsistency)
	api.POST("/consistency/repair", s.repairConsistency)
	api.GET("/dashboard", s.dashboard)
}

// Echo exposes the router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleOpenAPI(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, s.doc.JSON())
}

// Start blocks until the server stops. A graceful Shutdown makes it return nil.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.cfg.Addr()))
	if err := s.echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
