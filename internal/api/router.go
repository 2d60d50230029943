// Package api wires the HTTP surface: static file serving, CORS preflight,
// and the fixed security-header pipeline.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creamcroissant/devserve/internal/api/middleware"
	"github.com/creamcroissant/devserve/internal/config"
	"github.com/creamcroissant/devserve/internal/content"
)

// Session carries the immutable per-server facts every response depends on.
// Passing it explicitly keeps "am I HTTPS" out of globals.
type Session struct {
	HTTPS         bool
	AllowedOrigin string
}

// NewRouter builds the request dispatch table: GET and OPTIONS on every path,
// 501 for anything else, optional /metrics.
func NewRouter(logger *slog.Logger, session Session, resolver *content.Resolver, metricsCfg config.MetricsConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.SecurityHeaders(middleware.SecurityConfig{
		HTTPS:         session.HTTPS,
		AllowedOrigin: session.AllowedOrigin,
	}))
	// Recoverer sits inside SecurityHeaders so even a panic response
	// carries the full header set.
	r.Use(chiMiddleware.Recoverer)

	if metricsCfg.Enabled {
		m := middleware.NewMetrics(middleware.MetricsConfig{
			Namespace: metricsCfg.Namespace,
			Subsystem: metricsCfg.Subsystem,
			Buckets:   metricsCfg.Buckets,
		})
		r.Use(m.Middleware())

		metricsHandler := http.Handler(promhttp.Handler())
		if metricsCfg.Token != "" {
			metricsHandler = middleware.MetricsGuard(metricsCfg.Token)(metricsHandler)
		}
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	h := NewStaticHandler(resolver, logger)
	r.MethodNotAllowed(h.NotImplemented)
	r.Get("/*", h.Get)
	r.Options("/*", h.Preflight)

	return r
}
