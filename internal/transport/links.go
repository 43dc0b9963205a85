package transport

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/neexbeast/dokoiko/internal/destination"
)

// Link is a labelled URL shown for a destination.
type Link struct {
	Mode     Mode       `json:"mode"`
	Provider ProviderID `json:"provider,omitempty"`
	Label    string     `json:"label"`
	URL      string     `json:"url"`
}

const (
	yahooTransitURL = "https://transit.yahoo.co.jp/search/result"
	googleMapsDir   = "https://www.google.com/maps/dir/"
	skyscannerURL   = "https://www.skyscanner.jp/transport/flights/%s/%s/"
	rentalURL       = "https://www.jalan.net/rentacar/"
	highwayBusURL   = "https://www.bushikaku.net/"
)

// Yahoo transit search types.
const (
	yahooTypeDeparture = "1"
	yahooTypeBus       = "4"
)

var bookingSites = map[ProviderID]Link{
	ProviderEkinet:   {Label: "Book on eki-net (JR East)", URL: "https://www.eki-net.com/"},
	ProviderE5489:    {Label: "Book on e5489 (JR West)", URL: "https://www.jr-odekake.net/goyoyaku/"},
	ProviderJRKyushu: {Label: "Book on JR Kyushu Net", URL: "https://train.yoyaku.jrkyushu.co.jp/"},
	ProviderSmartEX:  {Label: "Book on smart EX", URL: "https://smart-ex.jp/"},
}

// Formatter renders access items as links. The zero value is ready to use.
type Formatter struct{}

// Format returns the links for one access item. provider is empty when no
// booking channel applies. dest is the place name used as route target and
// at, when non-zero, the intended departure time.
func (Formatter) Format(item AccessItem, provider ProviderID, dest string, at time.Time) []Link {
	switch item.Mode {
	case ModeRail:
		links := []Link{{
			Mode:  ModeRail,
			Label: "Search rail route",
			URL:   transitSearch(item.Origin, dest, yahooTypeDeparture, at),
		}}
		if site, ok := bookingSites[provider]; ok {
			site.Mode = ModeRail
			site.Provider = provider
			links = append(links, site)
		}
		return links

	case ModeAir:
		var links []Link
		if item.OriginCode != "" && item.GatewayCode != "" {
			links = append(links, Link{
				Mode:  ModeAir,
				Label: "Find flights",
				URL: fmt.Sprintf(skyscannerURL,
					strings.ToLower(item.OriginCode), strings.ToLower(item.GatewayCode)),
			})
		}
		return append(links, Link{
			Mode:  ModeAir,
			Label: "Route from " + item.Gateway,
			URL:   mapsRoute(item.Gateway, dest, "driving"),
		})

	case ModeRental:
		return []Link{{Mode: ModeRental, Label: "Find a rental car", URL: rentalURL}}

	case ModeBus:
		return []Link{{
			Mode:  ModeBus,
			Label: "Search bus route",
			URL:   transitSearch(item.Origin, item.Gateway, yahooTypeBus, at),
		}}

	case ModeFerry:
		if item.URL != "" {
			return []Link{{Mode: ModeFerry, Label: "Ferry timetable", URL: item.URL}}
		}
		return []Link{{
			Mode:  ModeFerry,
			Label: "Route from " + item.Gateway,
			URL:   mapsRoute(item.Gateway, dest, "transit"),
		}}
	}
	return nil
}

// AlternativeLinks returns comparison links for the intercity alternatives
// rec lists. They do not depend on the departure.
func AlternativeLinks(rec destination.Record) []Link {
	if !slices.Contains(rec.Alternatives, destination.AlternativeHighwayBus) {
		return nil
	}
	return []Link{{Mode: ModeHighwayBus, Label: "Compare highway buses", URL: highwayBusURL}}
}

func transitSearch(from, to, searchType string, at time.Time) string {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("type", searchType)
	if !at.IsZero() {
		q.Set("y", at.Format("2006"))
		q.Set("m", at.Format("01"))
		q.Set("d", at.Format("02"))
		q.Set("hh", at.Format("15"))
		mm := at.Format("04")
		q.Set("m1", mm[:1])
		q.Set("m2", mm[1:])
	}
	return yahooTransitURL + "?" + q.Encode()
}

func mapsRoute(origin, dest, travelMode string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", dest)
	q.Set("travelmode", travelMode)
	return googleMapsDir + "?" + q.Encode()
}
