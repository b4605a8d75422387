package server

import (
	"sync"
	"time"

	"github.com/mj1618/tilewm/internal/model"
)

// previewKey identifies one rendered preview.
type previewKey struct {
	Layout model.LayoutMode
	Area   model.Rect
	Count  int
	Scale  float64
	// Labels joins the tile labels so a reorder of the same windows misses.
	Labels string
}

type cacheEntry struct {
	png       []byte
	timestamp time.Time
}

// PreviewCache provides a TTL-based cache for encoded preview images.
type PreviewCache struct {
	mu      sync.Mutex
	entries map[previewKey]cacheEntry
	ttl     time.Duration
}

// NewPreviewCache creates a new cache. A ttl of 0 disables caching.
func NewPreviewCache(ttl time.Duration) *PreviewCache {
	return &PreviewCache{
		entries: make(map[previewKey]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached PNG for key if it is within TTL, otherwise it
// renders a fresh one and stores it.
func (c *PreviewCache) Get(key previewKey, render func() ([]byte, error)) ([]byte, error) {
	if c.ttl == 0 {
		return render()
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.png, nil
	}
	c.mu.Unlock()

	data, err := render()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{png: data, timestamp: time.Now()}
	c.mu.Unlock()
	return data, nil
}

// InvalidateAll clears the entire cache.
func (c *PreviewCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[previewKey]cacheEntry)
}

// Len returns the number of cached previews.
func (c *PreviewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
