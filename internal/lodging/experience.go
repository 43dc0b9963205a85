package lodging

import (
	"net/url"

	"github.com/neexbeast/dokoiko/internal/destination"
)

const (
	jalanActivityURL = "https://www.jalan.net/activity/asp-webapp/web/WFsearch.do"
	asoviewURL       = "https://www.asoview.com/search/"
)

// Experiences returns activity search links for the area rec is stayed from.
// They apply to every trip type.
func Experiences(rec destination.Record, catalog *destination.Catalog) []Link {
	area := SearchName(rec, catalog)
	keyword := url.Values{"keyword": {area}}.Encode()
	return []Link{
		{Site: "jalan-activity", Label: "Things to do near " + area + " on Jalan", URL: jalanActivityURL + "?" + keyword},
		{Site: "asoview", Label: "Things to do near " + area + " on Asoview", URL: asoviewURL + "?" + keyword},
	}
}
