package dict

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// ErrUnknownCatalog is returned by Resolve for an ID that is not loaded.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Registry holds every loaded catalog. The built-in Romanian catalog is always
// present unless a directory with the same ID replaces it.
type Registry struct {
	mu          sync.RWMutex
	catalogs    map[string]*Catalog
	catalogsDir string
	defaultID   string
	cacheTTL    time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefault sets the catalog returned by Default.
func WithDefault(id string) Option {
	return func(r *Registry) { r.defaultID = id }
}

// WithCacheTTL sets the segmentation cache TTL of loaded catalogs.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.cacheTTL = ttl }
}

// NewRegistry creates a registry for catalogsDir holding only the built-in
// catalog until Load is called. An empty catalogsDir means built-in only.
func NewRegistry(catalogsDir string, opts ...Option) *Registry {
	r := &Registry{
		catalogsDir: catalogsDir,
		defaultID:   DefaultCatalogID,
		cacheTTL:    DefaultCacheTTL,
	}
	for _, o := range opts {
		o(r)
	}
	r.catalogs = map[string]*Catalog{DefaultCatalogID: r.builtin()}
	return r
}

func (r *Registry) builtin() *Catalog {
	c := Romanian()
	if r.cacheTTL != DefaultCacheTTL {
		c = NewCatalog(c.Manifest, romanianTerms, r.cacheTTL)
	}
	return c
}

// Load scans the catalogs directory and loads every catalog. A missing
// directory leaves only the built-in catalog.
func (r *Registry) Load() error {
	newCatalogs := map[string]*Catalog{DefaultCatalogID: r.builtin()}

	if r.catalogsDir != "" {
		entries, err := os.ReadDir(r.catalogsDir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read catalogs dir %s: %w", r.catalogsDir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(r.catalogsDir, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
				continue
			}
			c, err := loadCatalog(dir, r.cacheTTL)
			if err != nil {
				return fmt.Errorf("load catalog %s: %w", entry.Name(), err)
			}
			newCatalogs[c.ID()] = c
		}
	}

	if _, ok := newCatalogs[r.defaultID]; !ok {
		return fmt.Errorf("default catalog %q not found", r.defaultID)
	}

	r.mu.Lock()
	r.catalogs = newCatalogs
	r.mu.Unlock()
	return nil
}

// Reload reloads all catalogs from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Get returns the catalog with the given ID.
func (r *Registry) Get(id string) (*Catalog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.catalogs[id]
	return c, ok
}

// Default returns the default catalog.
func (r *Registry) Default() *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.catalogs[r.defaultID]; ok {
		return c
	}
	return r.catalogs[DefaultCatalogID]
}

// Resolve returns the catalog with the given ID, or the default catalog when
// id is empty.
func (r *Registry) Resolve(id string) (*Catalog, error) {
	if id == "" {
		return r.Default(), nil
	}
	c, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCatalog, id)
	}
	return c, nil
}

// CatalogInfo is the public metadata for a loaded catalog.
type CatalogInfo struct {
	ID        string `json:"id"`
	Version   string `json:"version"`
	Locale    string `json:"locale"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url,omitempty"`
	License   string `json:"license"`
	Terms     int    `json:"terms"`
	Default   bool   `json:"default"`
}

// ListCatalogs returns metadata for all loaded catalogs, sorted by ID.
func (r *Registry) ListCatalogs() []CatalogInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CatalogInfo, 0, len(r.catalogs))
	for _, c := range r.catalogs {
		infos = append(infos, CatalogInfo{
			ID:        c.Manifest.ID,
			Version:   c.Manifest.Version,
			Locale:    c.Manifest.Locale,
			Source:    c.Manifest.Source,
			SourceURL: c.Manifest.SourceURL,
			License:   c.Manifest.License,
			Terms:     c.Len(),
			Default:   c.Manifest.ID == r.defaultID,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// CatalogCount returns the number of loaded catalogs.
func (r *Registry) CatalogCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.catalogs)
}

// TotalTerms returns the number of terms across all catalogs.
func (r *Registry) TotalTerms() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, c := range r.catalogs {
		total += c.Len()
	}
	return total
}
