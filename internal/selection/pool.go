package selection

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/neexbeast/dokoiko/internal/destination"
)

// Query is one draw request.
type Query struct {
	Departure string               `json:"departure"`
	Tier      int                  `json:"tier"`
	Trip      destination.TripType `json:"trip"`
}

// Stage names the cascade step that produced a pool.
type Stage string

const (
	StageExact     Stage = "exact"
	StageNearby    Stage = "nearby"
	StageDeparture Stage = "departure"
	StageEligible  Stage = "eligible"
	StageCatalog   Stage = "catalog"
	StageEmpty     Stage = "empty"
)

// Pool is the ordered candidate list for one query.
type Pool struct {
	Records []destination.Record
	Stage   Stage
	// Origin is the departure the records were matched against. It differs
	// from the query departure when the nearest hub was used.
	Origin string
}

// Len returns the number of candidates.
func (p Pool) Len() int { return len(p.Records) }

// IDs returns the record ids in pool order.
func (p Pool) IDs() []string {
	ids := make([]string, len(p.Records))
	for i, r := range p.Records {
		ids[i] = r.ID
	}
	return ids
}

// Builder builds randomized candidate pools. It is safe for concurrent use.
type Builder struct {
	departures *destination.DepartureTable

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBuilder returns a Builder that resolves hubs through departures and
// draws from rng. A nil rng is replaced by a time-seeded source.
func NewBuilder(departures *destination.DepartureTable, rng *rand.Rand) *Builder {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Builder{departures: departures, rng: rng}
}

// stage is one step of the fallback cascade. It receives the records matched
// for the departure and returns the candidates it accepts.
type stage struct {
	name  Stage
	match func(matched []destination.Record, q Query, maxTier int) []destination.Record
}

var cascade = []stage{
	{name: StageExact, match: exactTier},
	{name: StageNearby, match: nearbyTiers},
	{name: StageDeparture, match: func(matched []destination.Record, _ Query, _ int) []destination.Record {
		return matched
	}},
}

// Build returns the candidate pool for q. The pool is empty only when the
// catalog is empty.
func (b *Builder) Build(catalog *destination.Catalog, q Query) Pool {
	all := catalog.Records()
	maxTier := destination.MaxTierFor(q.Trip)

	eligible := filter(all, func(r destination.Record) bool {
		return r.Allows(q.Trip) && r.DistanceTier <= maxTier
	})

	origin := q.Departure
	matched := byDeparture(eligible, origin)
	if len(matched) == 0 {
		if hub, ok := b.departures.NearestHub(q.Departure); ok {
			origin = hub
			matched = byDeparture(eligible, hub)
		}
	}

	for _, s := range cascade {
		if picked := s.match(matched, q, maxTier); len(picked) > 0 {
			return b.pool(picked, s.name, origin)
		}
	}

	if len(eligible) > 0 {
		return b.pool(eligible, StageEligible, q.Departure)
	}

	// Catalog stage, in two passes. The first ignores stay rules but keeps the
	// trip's tier ceiling; only when nothing fits under it does the whole
	// catalog become the pool. Both passes report StageCatalog.
	capped := filter(all, func(r destination.Record) bool { return r.DistanceTier <= maxTier })
	if len(capped) > 0 {
		return b.pool(capped, StageCatalog, q.Departure)
	}
	if len(all) > 0 {
		return b.pool(all, StageCatalog, q.Departure)
	}
	return Pool{Stage: StageEmpty, Origin: q.Departure}
}

func (b *Builder) pool(records []destination.Record, s Stage, origin string) Pool {
	b.mu.Lock()
	shuffled := WeightedShuffle(b.rng, records, destination.Record.SelectionWeight)
	b.mu.Unlock()
	return Pool{Records: shuffled, Stage: s, Origin: origin}
}

func exactTier(matched []destination.Record, q Query, _ int) []destination.Record {
	return filter(matched, func(r destination.Record) bool { return r.DistanceTier == q.Tier })
}

// nearbyTiers collects records one and then two tiers away, nearer deltas
// first, each record at most once.
func nearbyTiers(matched []destination.Record, q Query, maxTier int) []destination.Record {
	seen := make(map[string]struct{})
	var out []destination.Record
	for _, delta := range []int{1, -1, 2, -2} {
		tier := q.Tier + delta
		if tier < destination.MinTier || tier > maxTier {
			continue
		}
		for _, r := range matched {
			if r.DistanceTier != tier {
				continue
			}
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

func byDeparture(records []destination.Record, departure string) []destination.Record {
	return filter(records, func(r destination.Record) bool { return r.ReachableFrom(departure) })
}

func filter(records []destination.Record, keep func(destination.Record) bool) []destination.Record {
	var out []destination.Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
