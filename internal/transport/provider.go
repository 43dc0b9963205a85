package transport

import (
	"slices"
	"strings"

	"github.com/neexbeast/dokoiko/internal/destination"
)

// ProviderID identifies a rail booking channel.
type ProviderID string

const (
	ProviderEkinet   ProviderID = "ekinet"
	ProviderE5489    ProviderID = "e5489"
	ProviderJRKyushu ProviderID = "jr-kyushu"
	ProviderSmartEX  ProviderID = "smart-ex"
)

// Corridor overrides the regional provider when both the departure and the
// destination gateway sit on the same high-speed line.
type Corridor struct {
	Name       string
	Departures []string
	Gateways   []string
	Provider   ProviderID
}

func (c Corridor) covers(departure, gateway string) bool {
	return slices.Contains(c.Departures, departure) && slices.Contains(c.Gateways, gateway)
}

// ProviderRules maps a departure and a destination gateway to a booking
// channel.
type ProviderRules struct {
	Departures *destination.DepartureTable
	Regional   map[destination.Region]ProviderID
	// Fallback is used for departures without a known region.
	Fallback  ProviderID
	Corridors []Corridor
	// Tags lists the catalog booking tags that name a bookable rail line.
	Tags []string
}

// DefaultProviderRules returns the built-in rule table. The only corridor is
// the Tokaido and Sanyo Shinkansen, bookable through smart EX.
func DefaultProviderRules(departures *destination.DepartureTable) ProviderRules {
	return ProviderRules{
		Departures: departures,
		Regional: map[destination.Region]ProviderID{
			destination.RegionEast:   ProviderEkinet,
			destination.RegionWest:   ProviderE5489,
			destination.RegionKyushu: ProviderJRKyushu,
		},
		Fallback: ProviderE5489,
		Corridors: []Corridor{
			{
				Name:       "tokaido-sanyo",
				Departures: []string{"東京", "横浜", "静岡", "名古屋", "京都", "大阪", "神戸", "岡山", "広島", "福岡"},
				Gateways: []string{
					"東京駅", "品川駅", "新横浜駅", "小田原駅", "熱海駅", "三島駅", "静岡駅", "浜松駅",
					"豊橋駅", "名古屋駅", "京都駅", "新大阪駅", "新神戸駅", "姫路駅", "岡山駅",
					"福山駅", "広島駅", "新山口駅", "小倉駅", "博多駅",
				},
				Provider: ProviderSmartEX,
			},
		},
		Tags: []string{"jr", string(ProviderEkinet), string(ProviderE5489), string(ProviderJRKyushu), string(ProviderSmartEX)},
	}
}

// Resolve returns the booking channel for a rail trip from departure to the
// gateway station. ok is false when tag does not name a bookable line; the
// route search is still valid in that case.
func (r ProviderRules) Resolve(departure, gateway, tag string) (id ProviderID, ok bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !slices.Contains(r.Tags, tag) {
		return "", false
	}

	gateway = strings.TrimSpace(gateway)
	for _, c := range r.Corridors {
		if c.covers(departure, gateway) {
			return c.Provider, true
		}
	}

	if dep, found := r.Departures.Lookup(departure); found {
		if p, mapped := r.Regional[dep.Region]; mapped {
			return p, true
		}
	}
	return r.Fallback, true
}
