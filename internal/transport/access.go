// Package transport turns a destination's gateways into route and booking
// links for a given departure point.
package transport

import "github.com/neexbeast/dokoiko/internal/destination"

// Mode is a way of reaching a destination.
type Mode string

const (
	ModeRail   Mode = "rail"
	ModeAir    Mode = "air"
	ModeRental Mode = "rental"
	ModeBus    Mode = "bus"
	ModeFerry  Mode = "ferry"
	// ModeHighwayBus marks comparison links for intercity highway buses.
	ModeHighwayBus Mode = "highwaybus"
)

// AccessItem is one mode a destination can be reached by, with the names
// needed to search for it.
type AccessItem struct {
	Mode    Mode   `json:"mode"`
	Origin  string `json:"origin"`
	Gateway string `json:"gateway"`
	// OriginCode and GatewayCode carry IATA codes for air items.
	OriginCode  string `json:"origin_code,omitempty"`
	GatewayCode string `json:"gateway_code,omitempty"`
	ProviderTag string `json:"provider_tag,omitempty"`
	// URL is an operator page supplied by the catalog (ferries).
	URL string `json:"url,omitempty"`
}

// AccessItems lists the modes rec can be reached by from dep, in the order
// rail, air, rental, bus, ferry. Only gateways present on rec are used.
//
// A rental car is offered with air when there is no rail gateway, bus only
// when rail is absent, and ferry only when neither rail nor air exist.
func AccessItems(rec destination.Record, dep destination.Departure) []AccessItem {
	a := rec.Access
	var items []AccessItem

	station := dep.Station
	if station == "" {
		station = dep.Name
	}

	if a.Rail != nil {
		items = append(items, AccessItem{
			Mode:        ModeRail,
			Origin:      station,
			Gateway:     a.Rail.Station,
			ProviderTag: a.Rail.BookingProvider,
		})
	}

	if a.Air != nil {
		airport := dep.Airport
		if airport == "" {
			airport = dep.Name
		}
		items = append(items, AccessItem{
			Mode:        ModeAir,
			Origin:      airport,
			OriginCode:  dep.IATA,
			Gateway:     a.Air.Airport,
			GatewayCode: a.Air.IATA,
		})
		if a.Rail == nil {
			items = append(items, AccessItem{
				Mode:    ModeRental,
				Origin:  a.Air.Airport,
				Gateway: a.Air.Airport,
			})
		}
	}

	if a.Bus != nil && a.Rail == nil {
		items = append(items, AccessItem{
			Mode:    ModeBus,
			Origin:  station,
			Gateway: a.Bus.Terminal,
		})
	}

	if a.Ferry != nil && a.Rail == nil && a.Air == nil {
		items = append(items, AccessItem{
			Mode:    ModeFerry,
			Origin:  a.Ferry.Port,
			Gateway: a.Ferry.Port,
			URL:     a.Ferry.URL,
		})
	}

	return items
}
