package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/pkg/models"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Webhook events</title></head><body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Webhook events</h1>
<p>When a payment succeeds, the provider sends an event to your
configured webhook endpoint. Your handler must read the raw request
body before parsing it, because the signature header is computed over
the exact bytes that were sent. Verify the signature first, then
deduplicate by event identifier, and only then act on the payload.</p>
<p>Events are delivered at least once, so the same event can arrive
more than one time. Store the identifiers of events you have already
processed and skip duplicates silently instead of failing them.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestExtractKeepsArticleDropsChrome(t *testing.T) {
	e := NewExtractor(20)

	page, err := e.Extract("https://docs.example.com/webhooks", samplePage)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if page.Title != "Webhook events" {
		t.Errorf("Title = %q", page.Title)
	}
	if !strings.Contains(page.Text, "Verify the signature first") {
		t.Errorf("Text missing article body: %q", page.Text)
	}
	if strings.Contains(page.Text, "Copyright") {
		t.Errorf("Text contains footer chrome: %q", page.Text)
	}
	if page.Words < 20 {
		t.Errorf("Words = %d, want >= 20", page.Words)
	}
}

func TestExtractRejectsShortPage(t *testing.T) {
	e := NewExtractor(500)

	_, err := e.Extract("https://docs.example.com/stub", samplePage)
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("Extract error = %v, want ErrTooShort", err)
	}
}

func TestPageFileName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://docs.example.com/api/Webhooks", "api_webhooks.md"},
		{"https://docs.example.com/", "index.md"},
		{"https://docs.example.com/guides/oauth-2.0", "guides_oauth_2_0.md"},
	}
	for _, tt := range tests {
		if got := pageFileName(tt.url); got != tt.want {
			t.Errorf("pageFileName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestHarvestWritesPagesAndManifest(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, samplePage)
	}))
	defer srv.Close()

	dir := t.TempDir()
	h := NewHarvester(Config{
		Dir:      dir,
		Delay:    time.Millisecond,
		MaxPages: 10,
		MinWords: 20,
		TTLDays:  7,
	})

	urls := []string{srv.URL + "/webhooks", srv.URL + "/missing", srv.URL + "/checkout"}
	result, err := h.Harvest(context.Background(), models.ServicePayments, urls)
	if err != nil {
		t.Fatalf("Harvest error: %v", err)
	}

	if hits != 3 {
		t.Errorf("server hits = %d, want 3", hits)
	}
	if result.Kept != 2 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 2 kept 1 skipped", result)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "payments"))
	if err != nil {
		t.Fatalf("read docs dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("docs dir has %d files, want 2", len(entries))
	}

	manifest, err := docs.LoadManifest(result.Manifest)
	if err != nil {
		t.Fatalf("LoadManifest error: %v", err)
	}
	if manifest.Service != "payments" || manifest.Pages != 2 || manifest.TTLDays != 7 {
		t.Errorf("manifest = %+v", manifest)
	}
	if manifest.Stale(time.Now()) {
		t.Error("fresh manifest reports stale")
	}
}

func TestHarvestCapsAtMaxPages(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, samplePage)
	}))
	defer srv.Close()

	h := NewHarvester(Config{
		Dir:      t.TempDir(),
		MaxPages: 2,
		MinWords: 20,
		TTLDays:  7,
	})

	urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c", srv.URL + "/d"}
	result, err := h.Harvest(context.Background(), models.ServiceOAuth, urls)
	if err != nil {
		t.Fatalf("Harvest error: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2", hits)
	}
	if result.Kept != 2 {
		t.Errorf("Kept = %d, want 2", result.Kept)
	}
}

func TestHarvestStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePage)
	}))
	defer srv.Close()

	h := NewHarvester(Config{
		Dir:      t.TempDir(),
		Delay:    time.Hour,
		MinWords: 20,
		TTLDays:  7,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := h.Harvest(ctx, models.ServiceDeploy, []string{srv.URL + "/a", srv.URL + "/b"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Harvest error = %v, want context.Canceled", err)
	}
}

func TestHarvestRejectsInvalidService(t *testing.T) {
	h := NewHarvester(Config{Dir: t.TempDir()})
	if _, err := h.Harvest(context.Background(), models.Service("bogus"), []string{"http://x"}); err == nil {
		t.Error("Harvest with invalid service returned nil error")
	}
}
