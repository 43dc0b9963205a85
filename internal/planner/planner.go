// Package planner runs the draw cycle: build a pool for a query, walk through
// its candidates and describe the one being shown.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/lodging"
	"github.com/neexbeast/dokoiko/internal/metrics"
	"github.com/neexbeast/dokoiko/internal/selection"
	"github.com/neexbeast/dokoiko/internal/transport"
)

// ErrNoCandidates is returned when a query produces an empty pool.
var ErrNoCandidates = errors.New("no destinations available")

// Plan describes the candidate a session currently shows.
type Plan struct {
	SessionID     string             `json:"session_id,omitempty"`
	Stage         selection.Stage    `json:"stage,omitempty"`
	Index         int                `json:"index"`
	Total         int                `json:"total"`
	Remaining     int                `json:"remaining"`
	Round         int                `json:"round"`
	DistanceLabel string             `json:"distance_label"`
	Destination   destination.Record `json:"destination"`
	Transport     []transport.Link   `json:"transport"`
	Lodging       []lodging.Link     `json:"lodging,omitempty"`
	Experiences   []lodging.Link     `json:"experiences"`
}

// Planner ties the catalog, pool builder and transport resolver together.
type Planner struct {
	store    *destination.Store
	builder  *selection.Builder
	resolver *transport.Resolver
}

// New constructs a Planner.
func New(store *destination.Store, builder *selection.Builder, resolver *transport.Resolver) *Planner {
	return &Planner{store: store, builder: builder, resolver: resolver}
}

// Start builds a pool for q and opens a session on its first candidate.
func (p *Planner) Start(q selection.Query) (*selection.Session, error) {
	catalog, err := p.store.Catalog()
	if err != nil {
		return nil, err
	}

	pool := p.build(catalog, q)
	if pool.Len() == 0 {
		return nil, ErrNoCandidates
	}
	return selection.NewSession(q, pool), nil
}

// Next moves s to the following candidate, rebuilding the pool once the last
// one has been shown.
func (p *Planner) Next(s *selection.Session) error {
	if s.Advance() {
		return nil
	}

	catalog, err := p.store.Catalog()
	if err != nil {
		return err
	}

	pool := p.build(catalog, s.Query)
	if pool.Len() == 0 {
		return ErrNoCandidates
	}
	s.Restart(pool)
	return nil
}

// Describe returns the plan for the candidate s currently shows. at is the
// intended departure time and may be zero.
func (p *Planner) Describe(s *selection.Session, at time.Time) (*Plan, error) {
	catalog, err := p.store.Catalog()
	if err != nil {
		return nil, err
	}

	id, ok := s.Current()
	if !ok {
		return nil, ErrNoCandidates
	}
	rec, ok := catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("destination %q no longer in catalog: %w", id, ErrNoCandidates)
	}

	return &Plan{
		SessionID:     s.ID,
		Stage:         s.Stage,
		Index:         s.Index,
		Total:         len(s.IDs),
		Remaining:     s.Remaining(),
		Round:         s.Round,
		DistanceLabel: destination.TierLabel(rec.DistanceTier),
		Destination:   rec,
		Transport:     p.resolver.Links(rec, s.Query.Departure, at),
		Lodging:       lodging.Links(rec, s.Query.Trip, catalog),
		Experiences:   lodging.Experiences(rec, catalog),
	}, nil
}

// Transport returns the links for a single destination without a session.
func (p *Planner) Transport(id, departure string, at time.Time) (destination.Record, []transport.Link, error) {
	catalog, err := p.store.Catalog()
	if err != nil {
		return destination.Record{}, nil, err
	}
	rec, ok := catalog.Get(id)
	if !ok {
		return destination.Record{}, nil, fmt.Errorf("destination %q: %w", id, ErrNoCandidates)
	}
	return rec, p.resolver.Links(rec, departure, at), nil
}

func (p *Planner) build(catalog *destination.Catalog, q selection.Query) selection.Pool {
	pool := p.builder.Build(catalog, q)
	metrics.RecordPoolBuild(string(pool.Stage), pool.Len())
	return pool
}
