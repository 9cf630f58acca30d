package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/landed-cost/docs"
	"github.com/99minutos/landed-cost/internal/api/handler"
	"github.com/99minutos/landed-cost/internal/api/middleware"
	"github.com/99minutos/landed-cost/internal/core/ports"
)

// RouterDeps are the collaborators the HTTP layer needs.
type RouterDeps struct {
	Service   ports.CostService
	Batch     handler.BatchCalculator
	Cache     ports.Cache
	Readiness map[string]handler.Pinger
	// JWTSecret enables bearer-token auth on /v1 when set.
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Landed cost API ---
	v1 := e.Group("/v1")
	if deps.JWTSecret != "" {
		v1.Use(middleware.Auth(deps.JWTSecret))
	} else {
		deps.Logger.Warn().Msg("JWT_SECRET not set, /v1 routes are unauthenticated")
	}

	costHandler := handler.NewCostHandler(deps.Service, deps.Batch)
	v1.POST("/landed-cost", costHandler.Calculate)
	v1.POST("/landed-cost/batch", costHandler.CalculateBatch)
	v1.GET("/duty-rates", costHandler.DutyRate)

	// Cache administration needs an admin role, so it only exists with auth on.
	if deps.Cache != nil && deps.JWTSecret != "" {
		cacheHandler := handler.NewCacheHandler(deps.Cache)
		admin := v1.Group("/cache", middleware.RBAC(middleware.RoleAdmin))
		admin.DELETE("", cacheHandler.Clear)
		admin.DELETE("/:key", cacheHandler.Delete)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
