package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/library-membership/internal/handler"    // handlers implement the endpoints
	"github.com/iliyamo/library-membership/internal/middleware" // JWT, role, cache and rate limit middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the Prometheus scrape
// endpoint backed by gatherer.
func RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/healthz", handler.Health)
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// APIOptions controls the middleware stack of the /api group.
type APIOptions struct {
	AuthEnabled bool                // require an admin bearer token
	JWTSecret   string              // secret used to verify access tokens
	RateLimit   echo.MiddlewareFunc // optional; nil skips rate limiting
	Cache       echo.MiddlewareFunc // optional; nil skips response caching
}

// NewAPIGroup creates the /api group.  Authentication runs first so the
// rate limiter and cache can key on the caller.
func NewAPIGroup(e *echo.Echo, opts APIOptions) *echo.Group {
	g := e.Group("/api")
	if opts.AuthEnabled {
		g.Use(middleware.JWTAuth(opts.JWTSecret), middleware.RequireRole("admin"))
	}
	if opts.RateLimit != nil {
		g.Use(opts.RateLimit)
	}
	if opts.Cache != nil {
		g.Use(opts.Cache)
	}
	return g
}
