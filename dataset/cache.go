package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andareed/dynonview/logging"
	"golang.org/x/sync/singleflight"
)

// Key identifies one version of a file on disk.
type Key struct {
	Path    string
	ModTime time.Time
	Size    int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%d:%d", k.Path, k.ModTime.UnixNano(), k.Size)
}

// KeyFor stats path and returns its cache key.
func KeyFor(path string) (Key, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Key{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Key{}, err
	}
	return Key{Path: abs, ModTime: fi.ModTime(), Size: fi.Size()}, nil
}

type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

type entry struct {
	key   Key
	table *Table
}

// Cache holds parsed tables keyed by file identity. A path holds at most one
// entry; a newer mtime or size replaces it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry // by absolute path
	group   singleflight.Group
	read    func(path string) (*Table, error)
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		read:    ReadFile,
	}
}

// Load returns the table for path, reading the file only when the cached
// entry is absent or stale. Failed reads are not cached.
func (c *Cache) Load(path string) (*Table, error) {
	key, err := KeyFor(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	c.mu.Lock()
	if e, ok := c.entries[key.Path]; ok {
		if sameKey(e.key, key) {
			c.hits++
			c.mu.Unlock()
			logging.Debugf("cache hit %s", key)
			return e.table, nil
		}
		logging.Infof("cache entry for %s is stale, evicting", key.Path)
		delete(c.entries, key.Path)
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do(key.String(), func() (interface{}, error) {
		t, err := c.read(key.Path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.misses++
		c.entries[key.Path] = entry{key: key, table: t}
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		logging.Warnf("load %s failed: %v", key.Path, err)
		return nil, err
	}
	if shared {
		logging.Debugf("cache load for %s shared with a concurrent caller", key.Path)
	}
	return v.(*Table), nil
}

// Invalidate drops the entry for path, if any.
func (c *Cache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	c.mu.Lock()
	delete(c.entries, abs)
	c.mu.Unlock()
}

func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

func sameKey(a, b Key) bool {
	return a.Path == b.Path && a.Size == b.Size && a.ModTime.Equal(b.ModTime)
}
