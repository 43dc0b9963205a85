package destination

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

// HTTPSource loads the catalog from a JSON document served over HTTP.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource constructs an HTTPSource with a 10-second timeout.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url, client: &http.Client{Timeout: httpTimeout}}
}

// LoadCatalog fetches and validates the catalog.
func (s *HTTPSource) LoadCatalog(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", s.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned status %d", s.url, resp.StatusCode)
	}

	c, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", s.url, err)
	}
	return c, nil
}
