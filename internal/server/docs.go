package server

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/pkg/models"
)

type docsPage struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

type docsResponse struct {
	Service     string     `json:"service"`
	LastUpdated time.Time  `json:"last_updated"`
	TTLDays     int        `json:"ttl_days"`
	Stale       bool       `json:"stale"`
	Pages       []docsPage `json:"pages"`
}

// WithDocs exposes the harvested documentation cache at /docs/{service}.
// Pages are read through the TTL loader so repeated requests hit the
// cache.
func WithDocs(loader *docs.Loader, dir string) Option {
	return func(s *Server) {
		s.docsLoader = loader
		s.docsDir = dir
	}
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	if s.docsLoader == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "documentation cache not configured"})
		return
	}

	name := r.PathValue("service")
	service := models.Service(name)
	if !service.Valid() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown service: " + name})
		return
	}

	manifest, err := docs.LoadManifest(docs.ManifestPath(s.docsDir, name))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no documentation harvested for " + name})
		return
	}

	resp := docsResponse{
		Service:     name,
		LastUpdated: manifest.LastUpdated,
		TTLDays:     manifest.TTLDays,
		Stale:       manifest.Stale(s.clock()),
		Pages:       []docsPage{},
	}

	serviceDir := filepath.Join(s.docsDir, name)
	entries, err := os.ReadDir(serviceDir)
	if err != nil && !os.IsNotExist(err) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "read documentation directory"})
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		content, err := s.docsLoader.LoadFile(filepath.Join(serviceDir, entry.Name()))
		if err != nil {
			continue
		}
		resp.Pages = append(resp.Pages, docsPage{
			Name:  entry.Name(),
			Words: len(strings.Fields(string(content))),
		})
	}
	sort.Slice(resp.Pages, func(i, j int) bool { return resp.Pages[i].Name < resp.Pages[j].Name })

	writeJSON(w, http.StatusOK, resp)
}
