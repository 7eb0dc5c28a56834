// Package catalog resolves display-label keys against locale tables loaded
// from YAML files. Labels are handed to registries as lazy handles, so text
// is only resolved (and the active locale only consulted) when a caller
// asks for it.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/choices"
	"github.com/zjrosen/choices/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Catalog holds locale tables and a cache of resolved labels.
type Catalog struct {
	mu     sync.RWMutex
	locale string
	tables map[string]map[string]string // locale -> label key -> text
	cache  *gocache.Cache
}

// New creates a catalog with the given active locale.
func New(locale string) *Catalog {
	return &Catalog{
		locale: locale,
		tables: make(map[string]map[string]string),
		cache:  gocache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

// LoadDir loads every *.yaml file in dir as a locale table named after the
// file (en.yaml -> locale "en"). Each file is a flat key -> text mapping.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read locale dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		if err := c.LoadLocaleFile(locale, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadLocaleFile loads one locale table from a YAML file.
func (c *Catalog) LoadLocaleFile(locale, path string) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from tool config
	if err != nil {
		return fmt.Errorf("read locale file %s: %w", path, err)
	}

	table := make(map[string]string)
	if err := yaml.Unmarshal(content, &table); err != nil {
		return fmt.Errorf("parse locale file %s: %w", path, err)
	}

	c.mu.Lock()
	c.tables[locale] = table
	c.mu.Unlock()
	c.cache.Flush()

	log.Debug(log.CatCatalog, "Locale table loaded", "locale", locale, "labels", len(table))
	return nil
}

// SetLocale switches the active locale. Cached resolutions are dropped so
// outstanding lazy handles pick up the new locale on next resolution.
func (c *Catalog) SetLocale(locale string) {
	c.mu.Lock()
	c.locale = locale
	c.mu.Unlock()
	c.cache.Flush()
}

// Locale returns the active locale.
func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Display returns a lazy label handle for the given key. The handle stays
// valid across locale switches and table reloads.
func (c *Catalog) Display(key string) choices.Display {
	return choices.Lazy(func() string {
		return c.Resolve(key)
	})
}

// Resolve returns the text for key in the active locale, falling back to
// the key itself when no table defines it. Resolutions are cached with a
// TTL; table reloads and locale switches flush the cache.
func (c *Catalog) Resolve(key string) string {
	c.mu.RLock()
	locale := c.locale
	c.mu.RUnlock()

	cacheKey := locale + "\x00" + key
	if cached, found := c.cache.Get(cacheKey); found {
		if text, ok := cached.(string); ok {
			log.Debug(log.CatCatalog, "cache hit", "key", key, "locale", locale)
			return text
		}
		log.Error(log.CatCatalog, "wrong type assertion when getting label", "key", key)
	}

	c.mu.RLock()
	text, ok := c.tables[locale][key]
	c.mu.RUnlock()
	if !ok {
		log.Warn(log.CatCatalog, "Label key missing from locale table", "key", key, "locale", locale)
		text = key
	}

	c.cache.Set(cacheKey, text, gocache.DefaultExpiration)
	return text
}
