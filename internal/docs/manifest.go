package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest records when a service's cached documentation was last
// refreshed and how long it stays valid.
type Manifest struct {
	// Service is the service the documentation belongs to.
	Service string `json:"service"`
	// Source is the documentation root that was harvested.
	Source string `json:"source,omitempty"`
	// LastUpdated is when the documentation was last refreshed.
	LastUpdated time.Time `json:"last_updated"`
	// TTLDays is the staleness threshold in days.
	TTLDays int `json:"ttl_days"`
	// Pages is the number of documentation pages on disk.
	Pages int `json:"pages,omitempty"`
}

// Stale reports whether the documentation is older than its TTL.
func (m *Manifest) Stale(now time.Time) bool {
	if m.TTLDays <= 0 {
		return true
	}
	return now.Sub(m.LastUpdated) > time.Duration(m.TTLDays)*24*time.Hour
}

// ManifestPath returns the manifest location for a service under dir.
func ManifestPath(dir, service string) string {
	return filepath.Join(dir, service+"_manifest.json")
}

// LoadManifest reads a manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest to disk, creating parent directories.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
