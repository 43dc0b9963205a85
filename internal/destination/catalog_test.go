package destination_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/dokoiko/internal/destination"
)

func record(id string, tier int, trips ...destination.TripType) destination.Record {
	return destination.Record{
		ID:           id,
		Name:         id,
		Category:     destination.CategoryTown,
		DistanceTier: tier,
		Departures:   []string{"東京"},
		StayAllowed:  trips,
		Access: destination.Access{
			Rail: &destination.RailAccess{Station: id + "駅", BookingProvider: "jr"},
		},
	}
}

func TestNewCatalog_KeepsOrder(t *testing.T) {
	c, err := destination.NewCatalog([]destination.Record{
		record("nikko", 2, destination.TripDay),
		record("hakone", 2, destination.TripOneNight),
		record("atami", 1, destination.TripDay),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	var ids []string
	for _, r := range c.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"nikko", "hakone", "atami"}, ids)

	got, ok := c.Get("hakone")
	require.True(t, ok)
	assert.Equal(t, 2, got.DistanceTier)

	_, ok = c.Get("kyoto")
	assert.False(t, ok)
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	in := []destination.Record{record("nikko", 2, destination.TripDay)}
	c, err := destination.NewCatalog(in)
	require.NoError(t, err)

	in[0].Name = "changed"
	got, _ := c.Get("nikko")
	assert.Equal(t, "nikko", got.Name)
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	_, err := destination.NewCatalog([]destination.Record{
		record("nikko", 2, destination.TripDay),
		record("nikko", 3, destination.TripOneNight),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNewCatalog_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *destination.Record)
	}{
		{"tier too low", func(r *destination.Record) { r.DistanceTier = 0 }},
		{"tier too high", func(r *destination.Record) { r.DistanceTier = 6 }},
		{"unknown trip", func(r *destination.Record) { r.StayAllowed = []destination.TripType{"3night"} }},
		{"no trips", func(r *destination.Record) { r.StayAllowed = nil }},
		{"unknown category", func(r *destination.Record) { r.Category = "city" }},
		{"missing id", func(r *destination.Record) { r.ID = "" }},
		{"unnamed rail gateway", func(r *destination.Record) { r.Access.Rail = &destination.RailAccess{} }},
		{"unnamed airport", func(r *destination.Record) { r.Access.Air = &destination.AirAccess{IATA: "HND"} }},
		{"bad iata", func(r *destination.Record) { r.Access.Air = &destination.AirAccess{Airport: "羽田空港", IATA: "HANEDA"} }},
		{"unnamed bus terminal", func(r *destination.Record) { r.Access.Bus = &destination.BusAccess{} }},
		{"unnamed port", func(r *destination.Record) { r.Access.Ferry = &destination.FerryAccess{URL: "https://example.com"} }},
		{"bad ferry url", func(r *destination.Record) { r.Access.Ferry = &destination.FerryAccess{Port: "竹芝", URL: "not a url"} }},
		{"unknown alternative", func(r *destination.Record) { r.Alternatives = []destination.Alternative{"train"} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := record("nikko", 2, destination.TripDay)
			tc.mutate(&r)
			_, err := destination.NewCatalog([]destination.Record{r})
			assert.Error(t, err)
		})
	}
}

func TestNewCatalog_Empty(t *testing.T) {
	c, err := destination.NewCatalog(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Records())
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *destination.Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Records())
	_, ok := c.Get("nikko")
	assert.False(t, ok)
}

const catalogJSON = `[
  {
    "id": "hakone",
    "name": "箱根",
    "category": "onsen",
    "distanceTier": 2,
    "departures": ["東京", "横浜"],
    "stayAllowed": ["daytrip", "1night"],
    "access": {"rail": {"station": "箱根湯本駅", "bookingProvider": "private"}},
    "intercityAlternatives": ["highwaybus"],
    "weight": 1.5
  },
  {
    "id": "naoshima",
    "name": "直島",
    "category": "island",
    "distanceTier": 3,
    "departures": ["岡山"],
    "stayAllowed": ["1night"],
    "access": {"ferry": {"port": "宇野港"}},
    "nearestHubId": "okayama"
  }
]`

func TestDecode(t *testing.T) {
	c, err := destination.Decode(strings.NewReader(catalogJSON))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	hakone, ok := c.Get("hakone")
	require.True(t, ok)
	assert.Equal(t, "箱根湯本駅", hakone.Access.Rail.Station)
	assert.Nil(t, hakone.Access.Air)
	assert.InDelta(t, 1.5, hakone.SelectionWeight(), 1e-9)
	assert.Equal(t, []destination.Alternative{destination.AlternativeHighwayBus}, hakone.Alternatives)

	naoshima, ok := c.Get("naoshima")
	require.True(t, ok)
	assert.Nil(t, naoshima.Access.Rail)
	require.NotNil(t, naoshima.Access.Ferry)
	assert.Equal(t, "宇野港", naoshima.Access.Ferry.Port)
	assert.Equal(t, "okayama", naoshima.NearestHubID)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := destination.Decode(strings.NewReader(`{"id": "not an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding catalog")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destinations.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o600))

	c, err := destination.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestNewCatalog_AcceptsHighwayBusAlternative(t *testing.T) {
	r := record("matsumoto", 3, destination.TripDay)
	r.Alternatives = []destination.Alternative{destination.AlternativeHighwayBus}

	c, err := destination.NewCatalog([]destination.Record{r})
	require.NoError(t, err)
	got, _ := c.Get("matsumoto")
	assert.Len(t, got.Alternatives, 1)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destinations.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o600))

	src := destination.FileSource{Path: path}
	c, err := src.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	c, err = src.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(), "file is re-read on every load")
}

func TestLoadFile_ShippedCatalog(t *testing.T) {
	c, err := destination.LoadFile(filepath.Join("..", "..", "data", "destinations.json"))
	require.NoError(t, err)
	assert.NotZero(t, c.Len())

	for _, r := range c.Records() {
		if r.NearestHubID == "" {
			continue
		}
		_, ok := c.Get(r.NearestHubID)
		assert.Truef(t, ok, "%s names unknown hub %s", r.ID, r.NearestHubID)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := destination.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Empty(t *testing.T) {
	s := destination.NewStore(nil)
	_, err := s.Catalog()
	assert.ErrorIs(t, err, destination.ErrCatalogUnavailable)
}

func TestStore_Replace(t *testing.T) {
	first, err := destination.NewCatalog([]destination.Record{record("nikko", 2, destination.TripDay)})
	require.NoError(t, err)
	second, err := destination.NewCatalog([]destination.Record{
		record("nikko", 2, destination.TripDay),
		record("hakone", 2, destination.TripDay),
	})
	require.NoError(t, err)

	s := destination.NewStore(first)
	held, err := s.Catalog()
	require.NoError(t, err)

	s.Replace(second)
	current, err := s.Catalog()
	require.NoError(t, err)

	assert.Equal(t, 1, held.Len(), "snapshot already held is unaffected")
	assert.Equal(t, 2, current.Len())
}

func TestStore_ConcurrentReaders(t *testing.T) {
	c, err := destination.NewCatalog([]destination.Record{record("nikko", 2, destination.TripDay)})
	require.NoError(t, err)
	s := destination.NewStore(c)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := s.Catalog()
			assert.NoError(t, err)
			assert.Equal(t, 1, got.Len())
		}()
		go func() {
			defer wg.Done()
			s.Replace(c)
		}()
	}
	wg.Wait()
}
