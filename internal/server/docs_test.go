package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ebarkley/fedscout/internal/docs"
)

func TestDocsEndpoint(t *testing.T) {
	dir := t.TempDir()
	serviceDir := filepath.Join(dir, "payments")
	if err := os.MkdirAll(serviceDir, 0755); err != nil {
		t.Fatal(err)
	}
	page := "# Webhook events\n\nVerify the signature before parsing the payload."
	if err := os.WriteFile(filepath.Join(serviceDir, "webhooks.md"), []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	manifest := &docs.Manifest{
		Service:     "payments",
		LastUpdated: time.Now().UTC(),
		TTLDays:     7,
		Pages:       1,
	}
	if err := manifest.Save(docs.ManifestPath(dir, "payments")); err != nil {
		t.Fatal(err)
	}

	loader, err := docs.NewLoader(filepath.Join(dir, ".cache"), 24*time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}

	s := testServer(t, WithDocs(loader, dir))

	rec := doRequest(t, s, http.MethodGet, "/docs/payments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("docs status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp docsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Service != "payments" || resp.Stale {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Pages) != 1 || resp.Pages[0].Name != "webhooks.md" {
		t.Fatalf("pages = %+v", resp.Pages)
	}
	if resp.Pages[0].Words == 0 {
		t.Error("page word count is zero")
	}
}

func TestDocsEndpointErrors(t *testing.T) {
	dir := t.TempDir()
	loader, err := docs.NewLoader(filepath.Join(dir, ".cache"), 24*time.Hour)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	s := testServer(t, WithDocs(loader, dir))

	rec := doRequest(t, s, http.MethodGet, "/docs/bogus", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown service status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/docs/oauth", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing manifest status = %d, want 404", rec.Code)
	}

	unconfigured := testServer(t)
	rec = doRequest(t, unconfigured, http.MethodGet, "/docs/payments", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unconfigured status = %d, want 404", rec.Code)
	}
}
