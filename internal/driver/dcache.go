package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"yulc/internal/layout"
	"yulc/internal/project"
)

// Current schema version - increment when CacheEntry format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированный target IR по хешу исходника, бэкенда, имени юнита и раскладки памяти.
// Thread-safe for concurrent access; writers from several processes are
// serialised by an advisory lock on the cache directory where supported.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is the msgpack payload of one cached unit file.
type CacheEntry struct {
	// Schema version for safe invalidation when format changes
	Schema    uint16
	Path      string
	Backend   string
	Artifacts []Artifact
}

// CacheKey mixes the source hash with everything that shapes the emitted
// text: backend, unit name (it names the module) and memory layout.
func CacheKey(content [32]byte, backend, unit string, lay layout.Target) project.Digest {
	if lay.WordSize == 0 {
		lay = layout.EVM()
	}
	return project.Combine(project.Digest(content),
		project.Sum([]byte(backend)),
		project.Sum([]byte(unit)),
		project.Sum([]byte(fmt.Sprintf("%+v", lay))),
	)
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	// Для удобства читаемости/очистки: подкаталог "units".
	return filepath.Join(c.dir, "units", key.String()+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *DiskCache) Put(key project.Digest, entry *CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	unlock, err := lockDir(c.dir)
	if err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes an entry. Entries of another schema are misses.
func (c *DiskCache) Get(key project.Digest) (*CacheEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}
	if entry.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
