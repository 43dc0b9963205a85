// Package lodging builds accommodation search links for overnight trips and
// activity search links for the area around a destination.
package lodging

import (
	"net/url"

	"github.com/neexbeast/dokoiko/internal/destination"
)

// Link is an accommodation or activity search link.
type Link struct {
	Site  string `json:"site"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

const searchURL = "https://www.google.com/search"

// SearchName returns the place to search stays in: the record's hub when it
// names one that exists in catalog, otherwise the record itself.
func SearchName(rec destination.Record, catalog *destination.Catalog) string {
	if rec.NearestHubID != "" {
		if hub, ok := catalog.Get(rec.NearestHubID); ok {
			return hub.Name
		}
	}
	return rec.Name
}

// Links returns stay search links for rec. Day trips get none.
func Links(rec destination.Record, trip destination.TripType, catalog *destination.Catalog) []Link {
	if !trip.Overnight() {
		return nil
	}
	name := SearchName(rec, catalog)
	return []Link{
		{Site: "rakuten", Label: "Stays near " + name + " on Rakuten Travel", URL: search(name + " 楽天トラベル")},
		{Site: "jalan", Label: "Stays near " + name + " on Jalan", URL: search(name + " じゃらん")},
	}
}

func search(q string) string {
	return searchURL + "?" + url.Values{"q": {q}}.Encode()
}
