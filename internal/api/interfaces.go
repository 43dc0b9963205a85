package api

import (
	"context"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/selection"
)

// SessionStore defines the draw session operations needed by handlers.
type SessionStore interface {
	Get(ctx context.Context, id string) (*selection.Session, error)
	Set(ctx context.Context, sess *selection.Session) error
	Delete(ctx context.Context, id string) error
}

// CatalogSource loads a fresh catalog for reloads.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*destination.Catalog, error)
}

// Pinger is a dependency the health check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}
