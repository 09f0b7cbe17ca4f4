package sheetsclient

import (
	"fmt"
	"sync"
	"time"

	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
)

// GridFetcher is the slice of the client the catalog needs.
type GridFetcher interface {
	GetGrid(spreadsheetID, sheetTitle string) (manifest.Grid, error)
	SheetTitles(spreadsheetID string) ([]string, error)
}

// Catalog caches the slow discovery queries (worksheet tabs, package
// listings) behind an explicit TTL so repeated lookups during one session
// do not hammer the API. Entries expire on read; Invalidate drops
// everything, which a caller does right after writing a booking.
type Catalog struct {
	client GridFetcher
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]catalogEntry

	// now is swappable for tests.
	now func() time.Time
}

type catalogEntry struct {
	titles   []string
	packages []string
	loaded   time.Time
}

// NewCatalog creates a catalog over the given client. A non-positive ttl
// disables caching entirely.
func NewCatalog(client GridFetcher, ttl time.Duration) *Catalog {
	return &Catalog{
		client:  client,
		ttl:     ttl,
		entries: make(map[string]catalogEntry),
		now:     time.Now,
	}
}

// SheetTitles returns the worksheet tab titles of a spreadsheet, cached.
func (c *Catalog) SheetTitles(spreadsheetID string) ([]string, error) {
	key := spreadsheetID
	if titles, ok := c.lookup(key); ok {
		return titles.titles, nil
	}

	titles, err := c.client.SheetTitles(spreadsheetID)
	if err != nil {
		return nil, err
	}

	c.store(key, catalogEntry{titles: titles})
	return titles, nil
}

// Packages returns the package names of one worksheet, cached.
func (c *Catalog) Packages(spreadsheetID, sheetTitle string) ([]string, error) {
	key := fmt.Sprintf("%s/%s", spreadsheetID, sheetTitle)
	if entry, ok := c.lookup(key); ok {
		return entry.packages, nil
	}

	grid, err := c.client.GetGrid(spreadsheetID, sheetTitle)
	if err != nil {
		return nil, err
	}

	packages := manifest.ListPackages(grid)
	c.store(key, catalogEntry{packages: packages})
	return packages, nil
}

// Invalidate drops every cached entry.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]catalogEntry)
}

func (c *Catalog) lookup(key string) (catalogEntry, bool) {
	if c.ttl <= 0 {
		return catalogEntry{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return catalogEntry{}, false
	}
	if c.now().Sub(entry.loaded) > c.ttl {
		delete(c.entries, key)
		return catalogEntry{}, false
	}
	return entry, true
}

func (c *Catalog) store(key string, entry catalogEntry) {
	if c.ttl <= 0 {
		return
	}

	entry.loaded = c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}
