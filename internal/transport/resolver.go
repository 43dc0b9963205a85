package transport

import (
	"time"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/metrics"
)

// Resolver produces the transport links for a destination.
type Resolver struct {
	departures *destination.DepartureTable
	rules      ProviderRules
	format     Formatter
}

// NewResolver returns a Resolver using the given departure table and rules.
func NewResolver(departures *destination.DepartureTable, rules ProviderRules) *Resolver {
	return &Resolver{departures: departures, rules: rules}
}

// Items returns the access items of rec for departure. Unknown departures are
// used by name.
func (r *Resolver) Items(rec destination.Record, departure string) []AccessItem {
	dep, ok := r.departures.Lookup(departure)
	if !ok {
		dep = destination.Departure{Name: departure}
	}
	return AccessItems(rec, dep)
}

// Links resolves rec into route and booking links for departure, followed by
// comparison links for its intercity alternatives.
func (r *Resolver) Links(rec destination.Record, departure string, at time.Time) []Link {
	var links []Link
	for _, item := range r.Items(rec, departure) {
		var provider ProviderID
		if item.Mode == ModeRail {
			provider, _ = r.rules.Resolve(departure, item.Gateway, item.ProviderTag)
			metrics.RecordProvider(string(provider))
		}
		for _, l := range r.format.Format(item, provider, rec.RouteDestination(), at) {
			metrics.LinksResolved.WithLabelValues(string(l.Mode)).Inc()
			links = append(links, l)
		}
	}
	for _, l := range AlternativeLinks(rec) {
		metrics.LinksResolved.WithLabelValues(string(l.Mode)).Inc()
		links = append(links, l)
	}
	return links
}
