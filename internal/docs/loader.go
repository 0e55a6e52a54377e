// Package docs caches loaded documentation on disk with a time-to-live
// and tracks per-service freshness through JSON manifests.
package docs

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Loader memoizes documentation reads in a disk-backed cache. An entry
// whose file is older than the TTL is treated as a miss; there is no
// other eviction.
type Loader struct {
	cacheDir string
	ttl      time.Duration
}

// NewLoader creates a Loader rooted at cacheDir, creating it if needed.
func NewLoader(cacheDir string, ttl time.Duration) (*Loader, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Loader{cacheDir: cacheDir, ttl: ttl}, nil
}

// TTL returns the configured time-to-live.
func (l *Loader) TTL() time.Duration { return l.ttl }

// key hashes the source identifier into a cache filename.
func (l *Loader) key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%x", hash)
}

// entryPath returns the on-disk path for a source's cache entry.
func (l *Loader) entryPath(source string) string {
	return filepath.Join(l.cacheDir, l.key(source))
}

// Get retrieves a cached entry. It returns the data and true only when
// the entry exists and is younger than the TTL.
func (l *Loader) Get(source string) ([]byte, bool) {
	path := l.entryPath(source)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > l.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under the source's cache key.
func (l *Loader) Put(source string, data []byte) error {
	if err := os.WriteFile(l.entryPath(source), data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Invalidate removes the cache entry for a source. Removing a missing
// entry is not an error.
func (l *Loader) Invalidate(source string) error {
	err := os.Remove(l.entryPath(source))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("invalidate cache entry: %w", err)
	}
	return nil
}

// LoadFile reads a documentation file through the cache: a fresh cache
// entry is returned as-is, otherwise the file is read and cached.
func (l *Loader) LoadFile(path string) ([]byte, error) {
	if data, ok := l.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read documentation: %w", err)
	}
	if err := l.Put(path, data); err != nil {
		return nil, err
	}
	return data, nil
}
