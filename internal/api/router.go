package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the router settings that come from configuration.
type RouterConfig struct {
	Token string
	// RateLimit is the number of requests allowed per IP and minute.
	RateLimit int
	DB        Pinger
	Redis     Pinger
}

// NewRouter builds and returns the Chi router with all routes configured.
// Draw, transport and health routes are public; catalog reload requires
// bearer auth. Rate limiting is applied globally per IP.
func NewRouter(handlers *Handlers, cfg RouterConfig, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(cfg.DB, cfg.Redis, handlers.catalogs, log))
		r.Get("/departures", handlers.ListDepartures)
		r.Get("/tiers", handlers.ListTiers)
		r.Post("/draws", handlers.StartDraw)
		r.Get("/draws/{id}", handlers.GetDraw)
		r.Delete("/draws/{id}", handlers.DeleteDraw)
		r.Post("/draws/{id}/next", handlers.NextDraw)
		r.Get("/destinations/{id}/transport", handlers.DestinationTransport)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(cfg.Token))
			r.Post("/catalog/reload", handlers.ReloadCatalog)
		})
	})

	return r
}

var _ http.Handler = (*chi.Mux)(nil)
