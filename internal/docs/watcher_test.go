package docs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitForMiss polls until the loader no longer serves a cached entry
// for source, failing the test if it survives the deadline.
func waitForMiss(t *testing.T, loader *Loader, source string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, ok := loader.Get(source); !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("cache entry survived a source edit")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherInvalidatesPageInServiceDir(t *testing.T) {
	root := t.TempDir()
	pageDir := filepath.Join(root, "payments")
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		t.Fatalf("create service dir: %v", err)
	}
	page := filepath.Join(pageDir, "webhooks.md")
	if err := os.WriteFile(page, []byte("# Webhooks v1"), 0644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	if _, err := loader.LoadFile(page); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if _, ok := loader.Get(page); !ok {
		t.Fatal("LoadFile did not cache the page")
	}

	watcher, err := WatchDir(loader, root)
	if err != nil {
		t.Fatalf("WatchDir error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(page, []byte("# Webhooks v2"), 0644); err != nil {
		t.Fatalf("rewrite page: %v", err)
	}
	waitForMiss(t, loader, page)

	data, err := loader.LoadFile(page)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if string(data) != "# Webhooks v2" {
		t.Errorf("LoadFile after edit = %q, want the new content", data)
	}
}

func TestWatcherInvalidatesRemovedPage(t *testing.T) {
	root := t.TempDir()
	pageDir := filepath.Join(root, "oauth")
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		t.Fatalf("create service dir: %v", err)
	}
	page := filepath.Join(pageDir, "flows.md")
	if err := os.WriteFile(page, []byte("# Flows"), 0644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	if _, err := loader.LoadFile(page); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}

	watcher, err := WatchDir(loader, root)
	if err != nil {
		t.Fatalf("WatchDir error: %v", err)
	}
	defer watcher.Close()

	if err := os.Remove(page); err != nil {
		t.Fatalf("remove page: %v", err)
	}
	waitForMiss(t, loader, page)
}

func TestWatcherCoversDirsCreatedAfterStart(t *testing.T) {
	root := t.TempDir()

	loader, err := NewLoader(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	watcher, err := WatchDir(loader, root)
	if err != nil {
		t.Fatalf("WatchDir error: %v", err)
	}
	defer watcher.Close()

	pageDir := filepath.Join(root, "jobsearch")
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		t.Fatalf("create service dir: %v", err)
	}
	page := filepath.Join(pageDir, "search.md")

	// The directory create event is handled asynchronously, so keep
	// re-caching and rewriting until an edit gets invalidated.
	deadline := time.Now().Add(3 * time.Second)
	for {
		if err := os.WriteFile(page, []byte("# Search v1"), 0644); err != nil {
			t.Fatalf("write page: %v", err)
		}
		if _, err := loader.LoadFile(page); err != nil {
			t.Fatalf("LoadFile error: %v", err)
		}
		if err := os.WriteFile(page, []byte("# Search v2"), 0644); err != nil {
			t.Fatalf("rewrite page: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
		if _, ok := loader.Get(page); !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("edits under a directory created after WatchDir were never invalidated")
		}
		if err := loader.Invalidate(page); err != nil {
			t.Fatalf("Invalidate error: %v", err)
		}
	}
}
