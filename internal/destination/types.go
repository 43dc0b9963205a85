package destination

import "slices"

// TripType is the stay style a user asks for.
type TripType string

const (
	TripDay      TripType = "daytrip"
	TripOneNight TripType = "1night"
	TripTwoNight TripType = "2night"
)

// Overnight reports whether the trip includes at least one night away.
func (t TripType) Overnight() bool {
	return t == TripOneNight || t == TripTwoNight
}

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripDay, TripOneNight, TripTwoNight:
		return true
	}
	return false
}

// Category classifies a destination record.
type Category string

const (
	CategoryHub    Category = "hub"
	CategoryTown   Category = "town"
	CategoryOnsen  Category = "onsen"
	CategoryIsland Category = "island"
	CategoryRural  Category = "rural"
)

const (
	MinTier = 1
	MaxTier = 5
	// DayTripMaxTier is the farthest tier a day trip may reach.
	DayTripMaxTier = 3
)

// MaxTierFor returns the tier ceiling for the given trip type.
func MaxTierFor(trip TripType) int {
	if trip == TripDay {
		return DayTripMaxTier
	}
	return MaxTier
}

// Alternative names an intercity option worth comparing against the main
// access modes.
type Alternative string

const AlternativeHighwayBus Alternative = "highwaybus"

// RailAccess describes the station a destination is reached through.
type RailAccess struct {
	Station         string `json:"station" validate:"required"`
	BookingProvider string `json:"bookingProvider,omitempty"`
	Note            string `json:"note,omitempty"`
}

// AirAccess describes the airport serving a destination.
type AirAccess struct {
	Airport string `json:"airport" validate:"required"`
	IATA    string `json:"iata,omitempty" validate:"omitempty,len=3"`
}

// BusAccess describes the highway bus terminal serving a destination.
type BusAccess struct {
	Terminal string `json:"terminal" validate:"required"`
}

// FerryAccess describes the port a destination is reached through.
type FerryAccess struct {
	Port string `json:"port" validate:"required"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// Access holds the gateways of a destination. A nil field means the mode is
// not available and must never be offered.
type Access struct {
	Rail  *RailAccess  `json:"rail,omitempty"`
	Air   *AirAccess   `json:"air,omitempty"`
	Bus   *BusAccess   `json:"bus,omitempty"`
	Ferry *FerryAccess `json:"ferry,omitempty"`
}

// Record is a single destination in the catalog.
type Record struct {
	ID             string        `json:"id" validate:"required"`
	Name           string        `json:"name" validate:"required"`
	Region         string        `json:"region,omitempty"`
	MapDestination string        `json:"mapDestination,omitempty"`
	Category       Category      `json:"category" validate:"required,oneof=hub town onsen island rural"`
	DistanceTier   int           `json:"distanceTier" validate:"min=1,max=5"`
	Departures     []string      `json:"departures" validate:"dive,required"`
	StayAllowed    []TripType    `json:"stayAllowed" validate:"required,min=1,dive,oneof=daytrip 1night 2night"`
	Access         Access        `json:"access"`
	Weight         *float64      `json:"weight,omitempty"`
	NearestHubID   string        `json:"nearestHubId,omitempty"`
	Alternatives   []Alternative `json:"intercityAlternatives,omitempty" validate:"dive,oneof=highwaybus"`
	Atmosphere     []string      `json:"atmosphere,omitempty"`
	Themes         []string      `json:"themes,omitempty"`
}

const (
	defaultWeight = 1.0
	minWeight     = 1e-6
)

// SelectionWeight returns the draw weight of the record. Unset weights count
// as 1 and non-positive weights are clamped to a small positive value.
func (r Record) SelectionWeight() float64 {
	if r.Weight == nil {
		return defaultWeight
	}
	if *r.Weight <= 0 {
		return minWeight
	}
	return *r.Weight
}

// Allows reports whether the record may be offered for the trip type.
// Islands are never offered as day trips.
func (r Record) Allows(trip TripType) bool {
	if trip == TripDay && r.Category == CategoryIsland {
		return false
	}
	return slices.Contains(r.StayAllowed, trip)
}

// ReachableFrom reports whether departure is listed for the record.
func (r Record) ReachableFrom(departure string) bool {
	return slices.Contains(r.Departures, departure)
}

// RouteDestination is the place name used for route searches.
func (r Record) RouteDestination() string {
	if r.MapDestination != "" {
		return r.MapDestination
	}
	return r.Name
}
