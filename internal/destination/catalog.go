package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// ErrCatalogUnavailable is returned when no catalog has been loaded.
var ErrCatalogUnavailable = errors.New("destination catalog unavailable")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Catalog is an ordered, immutable collection of destination records.
type Catalog struct {
	records []Record
	byID    map[string]int
}

// NewCatalog validates records and builds a catalog from them.
// The slice is copied; later changes to it do not affect the catalog.
func NewCatalog(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}

	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.ID, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %q", i, r.ID)
		}
		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}

	return c, nil
}

// Records returns the catalog records in load order. Callers must not modify
// the returned slice.
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Get returns the record with the given id.
func (c *Catalog) Get(id string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Decode reads a JSON array of records from r and builds a catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return NewCatalog(records)
}

// LoadFile reads a JSON catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Store holds the active catalog and allows it to be replaced atomically
// while readers keep using the snapshot they already hold.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a store holding c, which may be nil.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	if c != nil {
		s.current.Store(c)
	}
	return s
}

// Catalog returns the current catalog or ErrCatalogUnavailable.
func (s *Store) Catalog() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrCatalogUnavailable
	}
	return c, nil
}

// Replace swaps in a new catalog.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
}

// FileSource loads the catalog from a JSON file on every call.
type FileSource struct {
	Path string
}

// LoadCatalog reads the file at s.Path.
func (s FileSource) LoadCatalog(_ context.Context) (*Catalog, error) {
	return LoadFile(s.Path)
}
