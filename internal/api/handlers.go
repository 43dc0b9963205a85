package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/metrics"
	"github.com/neexbeast/dokoiko/internal/planner"
	"github.com/neexbeast/dokoiko/internal/selection"
	"github.com/neexbeast/dokoiko/internal/transport"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	planner    *planner.Planner
	catalogs   *destination.Store
	departures *destination.DepartureTable
	sessions   SessionStore
	source     CatalogSource
	log        *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(
	p *planner.Planner,
	catalogs *destination.Store,
	departures *destination.DepartureTable,
	sessions SessionStore,
	source CatalogSource,
	log *slog.Logger,
) *Handlers {
	return &Handlers{
		planner:    p,
		catalogs:   catalogs,
		departures: departures,
		sessions:   sessions,
		source:     source,
		log:        log,
	}
}

// DrawRequest is the body of POST /api/v1/draws.
type DrawRequest struct {
	Departure string               `json:"departure" validate:"required"`
	Distance  int                  `json:"distance" validate:"min=1,max=5"`
	Stay      destination.TripType `json:"stay" validate:"required,oneof=daytrip 1night 2night"`
	// At is the intended departure time used in route searches.
	At *time.Time `json:"at,omitempty"`
}

func (d DrawRequest) query() selection.Query {
	return selection.Query{Departure: d.Departure, Tier: d.Distance, Trip: d.Stay}
}

// TransportResponse is returned by the destination transport endpoint.
type TransportResponse struct {
	Destination destination.Record `json:"destination"`
	Departure   string             `json:"departure"`
	Transport   []transport.Link   `json:"transport"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// drawFailed maps planner and catalog errors to responses.
func (h *Handlers) drawFailed(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, destination.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, "destination catalog unavailable")
	case errors.Is(err, planner.ErrNoCandidates):
		writeError(w, http.StatusNotFound, "no destinations available")
	default:
		h.log.Error("draw failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseAt reads the optional RFC 3339 "at" query parameter.
func parseAt(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// StartDraw handles POST /api/v1/draws.
// Builds a pool for the query, stores the session and returns its first plan.
func (h *Handlers) StartDraw(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.planner.Start(req.query())
	if err != nil {
		h.drawFailed(w, err)
		return
	}

	var at time.Time
	if req.At != nil {
		at = *req.At
	}
	plan, err := h.planner.Describe(sess, at)
	if err != nil {
		h.drawFailed(w, err)
		return
	}

	if err := h.sessions.Set(r.Context(), sess); err != nil {
		metrics.SessionStoreErrors.WithLabelValues("set").Inc()
		h.log.Error("session set failed", "session", sess.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store draw session")
		return
	}

	h.log.Info("draw started",
		"session", sess.ID, "departure", req.Departure, "distance", req.Distance,
		"stay", req.Stay, "stage", sess.Stage, "candidates", len(sess.IDs))
	writeJSON(w, http.StatusCreated, plan)
}

// loadSession fetches the session named in the URL, writing the error
// response itself when it cannot.
func (h *Handlers) loadSession(w http.ResponseWriter, r *http.Request) (*selection.Session, bool) {
	id := chi.URLParam(r, "id")

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		metrics.SessionStoreErrors.WithLabelValues("get").Inc()
		h.log.Error("session get failed", "session", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "draw session not found")
		return nil, false
	}
	return sess, true
}

// GetDraw handles GET /api/v1/draws/{id}.
func (h *Handlers) GetDraw(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be an RFC 3339 time")
		return
	}

	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	plan, err := h.planner.Describe(sess, at)
	if err != nil {
		h.drawFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// NextDraw handles POST /api/v1/draws/{id}/next.
// Moves to the next candidate; after the last one a fresh pool is drawn.
func (h *Handlers) NextDraw(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be an RFC 3339 time")
		return
	}

	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if err := h.planner.Next(sess); err != nil {
		h.drawFailed(w, err)
		return
	}

	plan, err := h.planner.Describe(sess, at)
	if err != nil {
		h.drawFailed(w, err)
		return
	}

	if err := h.sessions.Set(r.Context(), sess); err != nil {
		metrics.SessionStoreErrors.WithLabelValues("set").Inc()
		h.log.Error("session set failed", "session", sess.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store draw session")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// DeleteDraw handles DELETE /api/v1/draws/{id}.
func (h *Handlers) DeleteDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		metrics.SessionStoreErrors.WithLabelValues("delete").Inc()
		h.log.Error("session delete failed", "session", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DestinationTransport handles GET /api/v1/destinations/{id}/transport.
func (h *Handlers) DestinationTransport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	departure := r.URL.Query().Get("departure")
	if departure == "" {
		writeError(w, http.StatusBadRequest, "departure is required")
		return
	}
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be an RFC 3339 time")
		return
	}

	rec, links, err := h.planner.Transport(id, departure, at)
	if err != nil {
		if errors.Is(err, planner.ErrNoCandidates) {
			writeError(w, http.StatusNotFound, "destination not found")
			return
		}
		h.drawFailed(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransportResponse{Destination: rec, Departure: departure, Transport: links})
}

// ListDepartures handles GET /api/v1/departures.
func (h *Handlers) ListDepartures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.departures.All())
}

// ListTiers handles GET /api/v1/tiers.
func (h *Handlers) ListTiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, destination.Tiers())
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
// Sessions drawn from the old catalog keep their pools; records that
// disappeared surface as "no destinations available" when shown.
func (h *Handlers) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.source.LoadCatalog(r.Context())
	if err != nil {
		h.log.Error("catalog reload failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to reload catalog")
		return
	}

	h.catalogs.Replace(c)
	h.log.Info("catalog reloaded", "records", c.Len())
	writeJSON(w, http.StatusOK, map[string]int{"records": c.Len()})
}

// HealthHandlerFunc returns an http.HandlerFunc that checks redis, the
// optional database and the catalog. db may be nil when the catalog is
// served from a file.
func HealthHandlerFunc(db, redis Pinger, catalogs *destination.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"db": "disabled", "redis": "ok", "catalog": "ok"}

		if db != nil {
			body["db"] = "ok"
			if err := db.Ping(ctx); err != nil {
				log.Error("health check: db ping failed", "err", err)
				body["db"] = "error"
				status = http.StatusServiceUnavailable
			}
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			body["redis"] = "error"
			status = http.StatusServiceUnavailable
		}

		if _, err := catalogs.Catalog(); err != nil {
			body["catalog"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		body["status"] = "ok"
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		writeJSON(w, status, body)
	}
}
