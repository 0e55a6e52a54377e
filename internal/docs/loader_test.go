package docs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoaderRoundTrip(t *testing.T) {
	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	if _, ok := loader.Get("stripe/webhooks"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	if err := loader.Put("stripe/webhooks", []byte("# Webhooks")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	data, ok := loader.Get("stripe/webhooks")
	if !ok {
		t.Fatal("Get after Put reported a miss")
	}
	if string(data) != "# Webhooks" {
		t.Errorf("Get = %q, want %q", data, "# Webhooks")
	}
}

func TestLoaderTTLExpiry(t *testing.T) {
	dir := t.TempDir()
	loader, err := NewLoader(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	if err := loader.Put("usajobs/search", []byte("docs")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// Age the entry past the TTL by backdating its mtime.
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(loader.entryPath("usajobs/search"), old, old); err != nil {
		t.Fatalf("Chtimes error: %v", err)
	}

	if _, ok := loader.Get("usajobs/search"); ok {
		t.Error("Get returned an expired entry")
	}
}

func TestLoaderInvalidate(t *testing.T) {
	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	if err := loader.Put("oauth/flows", []byte("docs")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := loader.Invalidate("oauth/flows"); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	if _, ok := loader.Get("oauth/flows"); ok {
		t.Error("Get returned an invalidated entry")
	}

	// Invalidating a missing entry is fine.
	if err := loader.Invalidate("never/stored"); err != nil {
		t.Errorf("Invalidate on missing entry error: %v", err)
	}
}

func TestLoadFileCaches(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "guide.md")
	if err := os.WriteFile(src, []byte("v1"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	data, err := loader.LoadFile(src)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("LoadFile = %q, want v1", data)
	}

	// A change to the source is not seen until invalidation: the cache
	// serves the memoized copy within the TTL.
	if err := os.WriteFile(src, []byte("v2"), 0644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	data, err = loader.LoadFile(src)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("LoadFile after rewrite = %q, want cached v1", data)
	}

	if err := loader.Invalidate(src); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	data, err = loader.LoadFile(src)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("LoadFile after invalidate = %q, want v2", data)
	}
}

func TestLoadFileMissing(t *testing.T) {
	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	if _, err := loader.LoadFile(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Error("LoadFile on missing file returned nil error")
	}
}
