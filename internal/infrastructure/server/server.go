package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/vitaapp/core/internal/adapters/http"
	"github.com/vitaapp/core/internal/adapters/repository"
	"github.com/vitaapp/core/internal/application/services"
	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/config"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/infrastructure/storage"
)

// routeNotFoundMessage is the catch-all error body for unmatched routes.
// An unmatched method on a known path gets the same treatment, matching
// a router whose fallback handler answers everything left over.
const routeNotFoundMessage = "Endpoint non trovato"

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
}

// New creates a new server instance with one repository, service and
// handler per resource, all backed by JSON files under the configured
// data directory.
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
	}

	server.setupMiddleware()

	// One repository per resource file.
	repos := make(map[string]*repository.RecordRepository, len(entities.Resources))
	handlers := make([]*httpHandlers.ResourceHandler, 0, len(entities.Resources))
	for _, res := range entities.Resources {
		file := storage.NewFile(cfg.Storage.ResourcePath(res.File), appLogger)
		repo := repository.NewRecordRepository(file, appLogger)
		repos[res.Name] = repo

		service := services.NewResourceService(res, repo, appLogger)
		handlers = append(handlers, httpHandlers.NewResourceHandler(res, service, appLogger))
	}

	profileFile := storage.NewFile(cfg.Storage.ProfilePath, appLogger)
	profileRepo := repository.NewProfileRepository(profileFile, appLogger)
	profileService := services.NewProfileService(profileRepo, appLogger)
	profileHandler := httpHandlers.NewProfileHandler(profileService, appLogger)

	dashboardService := services.NewDashboardService(
		repos["deadlines"],
		repos["events"],
		repos["expenses"],
		repos["properties"],
		repos["vehicles"],
		appLogger,
	)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService, appLogger)

	server.setupRoutes(handlers, profileHandler, dashboardHandler)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware: every origin is allowed by default, the frontend
	// may be served from anywhere.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.Security.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		MaxAge:       300,
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / s.config.Security.RateLimitWindow.Seconds()),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: s.config.Security.RateLimitWindow,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
		},
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: s.config.Server.RequestTimeout,
	}))

	// Gzip compression
	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(
	resourceHandlers []*httpHandlers.ResourceHandler,
	profileHandler *httpHandlers.ProfileHandler,
	dashboardHandler *httpHandlers.DashboardHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	api := s.echo.Group("/api")

	for _, handler := range resourceHandlers {
		res := handler.Resource()
		group := api.Group("/" + res.Slug)

		group.GET("", handler.List)
		group.DELETE("/:id", handler.Delete)

		// Contacts never grew create/update routes on the server; the
		// frontend manages them client-side.
		if res.Capability == entities.CapabilityFull {
			group.POST("", handler.Create)
			group.PUT("/:id", handler.Update)
		}
	}

	api.GET("/profile", profileHandler.Get)
	api.PUT("/profile", profileHandler.Update)

	api.GET("/dashboard", dashboardHandler.Summary)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// The data directory is created lazily on first write; readiness only
	// requires that, when present, it actually is a directory.
	if info, err := os.Stat(s.config.Storage.DataDir); err == nil && !info.IsDir() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "data_dir_not_a_directory",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors with the canonical {error}
// envelope. Unmatched routes and methods collapse into the generic 404.
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  string
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			msg = err.Error()
		}

		// Router misses only: a handler-issued 404 (unknown id) keeps its
		// resource-specific message.
		if err == echo.ErrNotFound || err == echo.ErrMethodNotAllowed {
			code = http.StatusNotFound
			msg = routeNotFoundMessage
		}

		// Log error
		if code >= 500 {
			logger.Error("HTTP error",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"ip", c.RealIP(),
			)
		} else if code >= 400 {
			logger.Warn("HTTP client error",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"ip", c.RealIP(),
			)
		}

		// Send error response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, httpHandlers.ErrorResponse{Error: msg})
			}
			if err != nil {
				logger.Error("Failed to send error response", "error", err)
			}
		}
	}
}
