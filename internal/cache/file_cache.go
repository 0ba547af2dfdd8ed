// Package cache keeps directions responses on disk so repeated queries for
// the same station pair skip the provider.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Store is the cache the directions client reads through.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// FileCache is a Store of one JSON file per key with a fixed TTL.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	StoredAt  time.Time       `json:"stored_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Option configures a FileCache
type Option func(*FileCache)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *FileCache) {
		c.now = now
	}
}

// NewFileCache creates dir if needed and returns a cache storing entries for ttl.
func NewFileCache(dir string, ttl time.Duration, opts ...Option) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	c := &FileCache{dir: dir, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/athensplus or ~/.cache/athensplus.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "athensplus")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "athensplus-cache")
	}
	return filepath.Join(home, ".cache", "athensplus")
}

// Dir returns the directory holding the entries.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

// Get returns the value stored under key unless it has expired.
// Unreadable and expired entries are removed.
func (c *FileCache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	e, err := readEntry(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = os.Remove(path)
		}
		return nil, false
	}
	if e.Key != key || c.expired(e) {
		_ = os.Remove(path)
		return nil, false
	}
	return e.Data, true
}

// Set stores value under key. value must be valid JSON.
func (c *FileCache) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return errors.New("cache: value is not valid JSON")
	}
	now := c.now()
	data, err := json.Marshal(entry{
		Key:       key,
		Data:      value,
		StoredAt:  now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0600)
}

// Delete removes the entry for key, if any.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry and keeps the directory.
func (c *FileCache) Clear() error {
	_, err := c.sweep(func(string) bool { return true })
	return err
}

// Cleanup removes expired or unreadable entries and returns how many went.
func (c *FileCache) Cleanup() (int, error) {
	return c.sweep(func(path string) bool {
		e, err := readEntry(path)
		return err != nil || c.expired(e)
	})
}

func (c *FileCache) sweep(remove func(path string) bool) (int, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		if remove(path) && os.Remove(path) == nil {
			n++
		}
	}
	return n, nil
}

func (c *FileCache) expired(e entry) bool {
	return c.now().After(e.ExpiresAt)
}

func readEntry(path string) (entry, error) {
	var e entry
	// #nosec G304 -- path is a hash inside the cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(data, &e)
	return e, err
}
