package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/pkg/models"
)

// Config controls a harvest run.
type Config struct {
	// Dir is the documentation cache root; pages land under
	// Dir/{service}/.
	Dir string
	// Delay is the pause between consecutive page requests.
	Delay time.Duration
	// MaxPages caps how many URLs are fetched per run.
	MaxPages int
	// MinWords is the minimum word count for a page to be kept.
	MinWords int
	// TTLDays is recorded in the manifest for staleness checks.
	TTLDays int
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// Result summarizes a harvest run.
type Result struct {
	Service  models.Service
	Fetched  int
	Kept     int
	Skipped  int
	Manifest string
}

// Harvester fetches, distills, and stores documentation pages for one
// service at a time.
type Harvester struct {
	fetcher   *Fetcher
	extractor *Extractor
	cfg       Config
}

// NewHarvester creates a harvester from a config.
func NewHarvester(cfg Config) *Harvester {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Harvester{
		fetcher:   NewFetcher(timeout),
		extractor: NewExtractor(cfg.MinWords),
		cfg:       cfg,
	}
}

// Harvest fetches each URL in order, waiting the configured delay
// between requests, and writes the kept pages as markdown under the
// service's docs directory. A fresh manifest is written at the end.
// Individual page failures are logged and skipped; only I/O failures
// on the local side abort the run.
func (h *Harvester) Harvest(ctx context.Context, service models.Service, urls []string) (*Result, error) {
	if !service.Valid() {
		return nil, fmt.Errorf("harvest: invalid service %q", service)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("harvest %s: no urls", service)
	}
	if h.cfg.MaxPages > 0 && len(urls) > h.cfg.MaxPages {
		urls = urls[:h.cfg.MaxPages]
	}

	serviceDir := filepath.Join(h.cfg.Dir, string(service))
	if err := os.MkdirAll(serviceDir, 0755); err != nil {
		return nil, fmt.Errorf("create docs directory: %w", err)
	}

	result := &Result{Service: service}
	for i, pageURL := range urls {
		if i > 0 {
			if err := sleepCtx(ctx, h.cfg.Delay); err != nil {
				return nil, err
			}
		}

		html, err := h.fetcher.Get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[scrape] %s: skipping %s: %v", service, pageURL, err)
			result.Skipped++
			continue
		}
		result.Fetched++

		page, err := h.extractor.Extract(pageURL, string(html))
		if err != nil {
			if errors.Is(err, ErrTooShort) || errors.Is(err, ErrNotEnglish) {
				log.Printf("[scrape] %s: dropping %s: %v", service, pageURL, err)
				result.Skipped++
				continue
			}
			return nil, err
		}

		path := filepath.Join(serviceDir, pageFileName(pageURL))
		if err := os.WriteFile(path, []byte(renderPage(page)), 0644); err != nil {
			return nil, fmt.Errorf("write page %s: %w", path, err)
		}
		result.Kept++
	}

	manifest := &docs.Manifest{
		Service:     string(service),
		Source:      urls[0],
		LastUpdated: time.Now().UTC(),
		TTLDays:     h.cfg.TTLDays,
		Pages:       result.Kept,
	}
	manifestPath := docs.ManifestPath(h.cfg.Dir, string(service))
	if err := manifest.Save(manifestPath); err != nil {
		return nil, err
	}
	result.Manifest = manifestPath

	return result, nil
}

// sleepCtx waits for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pageFileName derives a stable markdown file name from a page URL.
func pageFileName(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = strings.Trim(u.Path, "/")
		if name == "" {
			name = "index"
		}
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
	return name + ".md"
}

// renderPage formats a distilled page as markdown.
func renderPage(page *Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", page.Title)
	fmt.Fprintf(&b, "Source: %s\n\n", page.URL)
	b.WriteString(page.Text)
	b.WriteString("\n")
	return b.String()
}
