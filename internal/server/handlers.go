package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/pkg/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type indexResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Agents        int    `json:"agents"`
	Runners       int    `json:"runners"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type agentInfo struct {
	Service    string   `json:"service"`
	Categories []string `json:"categories"`
}

type analyzeRequest struct {
	Task string `json:"task"`
}

type testRequest struct {
	Prompt string `json:"prompt,omitempty"`
	Model  string `json:"model,omitempty"`
}

type generationResult struct {
	Runner       string `json:"runner"`
	Model        string `json:"model,omitempty"`
	Text         string `json:"text,omitempty"`
	InputTokens  int64  `json:"input_tokens,omitempty"`
	OutputTokens int64  `json:"output_tokens,omitempty"`
	DurationMS   int64  `json:"duration_ms"`
	Error        string `json:"error,omitempty"`
}

type compareRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

// rolePrompts are the canned system prompts behind /test/{role}.
var rolePrompts = map[string]struct {
	system string
	task   string
}{
	"researcher": {
		system: "You research third-party service integrations and produce short implementation plans.",
		task:   "Outline the steps to integrate a payment webhook handler.",
	},
	"reviewer": {
		system: "You review integration code against service requirements and list concrete violations.",
		task:   "Review a webhook handler that parses JSON before verifying the signature.",
	},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Service: "fedscout",
		Endpoints: []string{
			"GET /health",
			"GET /agents",
			"GET /docs/{service}",
			"POST /agents/{name}/analyze",
			"POST /test/{role}",
			"POST /compare",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Agents:        len(s.registry.List()),
		Runners:       len(s.runners),
		UptimeSeconds: s.uptimeSeconds(),
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	researchers := s.registry.List()
	agents := make([]agentInfo, 0, len(researchers))
	for _, res := range researchers {
		agents = append(agents, agentInfo{
			Service:    string(res.Service()),
			Categories: res.Categories(),
		})
	}
	writeJSON(w, http.StatusOK, agents)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	researcher, err := s.registry.Get(models.Service(name))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown agent: " + name})
		return
	}

	var req analyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Task == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "task is required"})
		return
	}

	runID := s.recordRun(models.RunResearch, researcher.Service(), "")

	report, err := researcher.Research(r.Context(), req.Task)
	if err != nil {
		s.completeRun(runID, 0, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.completeRun(runID, report.TokensUsed, nil)

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	canned, ok := rolePrompts[role]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown role: " + role})
		return
	}

	var req testRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = canned.task
	}

	name, runner := s.defaultRunner()
	if runner == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no model runner configured"})
		return
	}

	result := s.generate(r, name, runner, llm.Request{
		Model:  req.Model,
		Prompt: prompt,
		System: canned.system,
	})
	status := http.StatusOK
	if result.Error != "" {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, result)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}
	if len(s.runners) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no model runners configured"})
		return
	}

	names := make([]string, 0, len(s.runners))
	for name := range s.runners {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]generationResult, 0, len(names))
	for _, name := range names {
		results = append(results, s.generate(r, name, s.runners[name], llm.Request{
			Prompt: req.Prompt,
			System: req.System,
		}))
	}
	writeJSON(w, http.StatusOK, results)
}

// generate runs one completion and flattens the outcome for the wire.
func (s *Server) generate(r *http.Request, name string, runner llm.Runner, req llm.Request) generationResult {
	start := s.clock()
	resp, err := runner.Generate(r.Context(), req)
	elapsed := s.clock().Sub(start)

	result := generationResult{Runner: name, DurationMS: elapsed.Milliseconds()}
	if err != nil {
		log.Printf("[server] %s generate failed: %v", name, err)
		result.Error = err.Error()
		return result
	}
	result.Model = resp.Model
	result.Text = resp.Text
	result.InputTokens = resp.InputTokens
	result.OutputTokens = resp.OutputTokens
	if resp.Duration > 0 {
		result.DurationMS = resp.Duration.Milliseconds()
	}
	return result
}

// defaultRunner picks the alphabetically first registered runner.
func (s *Server) defaultRunner() (string, llm.Runner) {
	names := make([]string, 0, len(s.runners))
	for name := range s.runners {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], s.runners[names[0]]
}

// decodeBody parses a JSON request body. An empty body decodes to the
// zero value. Reports failure to the client and returns false on error.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	reader := http.MaxBytesReader(w, r.Body, s.settings.MaxBodyBytes)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload exceeds limit"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unable to read body"})
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}

// recordRun starts a run record when a store is attached. Failures are
// logged, not surfaced; history is advisory.
func (s *Server) recordRun(kind models.RunKind, service models.Service, category string) string {
	if s.store == nil {
		return ""
	}
	run := &models.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Service:   service,
		Category:  category,
		StartedAt: time.Now().UTC(),
	}
	if err := s.store.RecordRun(run); err != nil {
		log.Printf("[server] record run: %v", err)
		return ""
	}
	return run.ID
}

func (s *Server) completeRun(id string, tokens int64, runErr error) {
	if s.store == nil || id == "" {
		return
	}
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	if err := s.store.CompleteRun(id, "", tokens, msg); err != nil {
		log.Printf("[server] complete run: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
