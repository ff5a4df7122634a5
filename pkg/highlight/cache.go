// CLAUDE:SUMMARY TTL cache of segmentation results keyed by text hash, wrapping an immutable Highlighter.
package highlight

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes segmentation results per text.
type Cached struct {
	h     *Highlighter
	cache *gocache.Cache
}

// NewCached wraps h with an in-memory cache whose entries expire after ttl.
func NewCached(h *Highlighter, ttl, cleanupInterval time.Duration) *Cached {
	return &Cached{
		h:     h,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Segment returns the cached segmentation of text, computing it on a miss.
// Callers must not modify the returned slice.
func (c *Cached) Segment(text string) []Segment {
	if text == "" {
		return nil
	}
	key := cacheKey(text)
	if v, found := c.cache.Get(key); found {
		return v.([]Segment)
	}
	segs := c.h.Segment(text)
	c.cache.SetDefault(key, segs)
	return segs
}

// Highlighter returns the wrapped highlighter.
func (c *Cached) Highlighter() *Highlighter {
	return c.h
}

// Len returns the number of cached texts, expired entries included until the
// next cleanup.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached entry.
func (c *Cached) Flush() {
	c.cache.Flush()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
