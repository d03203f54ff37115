package texture

import (
	"image"
	"os"
	"sync"
)

// Resolver resolves a texture name to a decoded RGBA image. Err reports why
// a name resolved to nil, or nil when the name was simply not found.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
	Err(texName string) error
}

// Cache is a concurrency-safe texture cache. Names are looked up in the
// index first and fall back to being treated as a file path.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new texture cache backed by the given index (may be nil).
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// undecodable; Err reports why.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		if _, err := os.Stat(texName); err != nil {
			return nil
		}
		path = texName
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img
}

// Err returns the load error recorded for texName, if any.
func (c *Cache) Err(texName string) error {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		path = texName
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.items[path]; ok {
		return e.err
	}
	return nil
}
