// Package server exposes the FedScout demo HTTP surface: researcher
// listing and analysis, role smoke tests, and model comparison. All
// endpoints are thin pass-throughs over the researcher registry and the
// configured model runners.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/internal/research"
	"github.com/ebarkley/fedscout/internal/state"
)

// Settings configures the HTTP listener.
type Settings struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64
}

// Address returns the host:port the server binds to.
func (s Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s Settings) withDefaults() Settings {
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 15 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 120 * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = 1 << 20
	}
	return s
}

// Server serves the demo HTTP surface.
type Server struct {
	settings   Settings
	registry   *research.Registry
	runners    map[string]llm.Runner
	store      *state.DB
	docsLoader *docs.Loader
	docsDir    string
	clock      func() time.Time

	mu        sync.RWMutex
	server    *http.Server
	listener  net.Listener
	startTime time.Time
}

// Option customizes server construction.
type Option func(*Server)

// WithRunner registers a named model runner. The first runner
// registered is the default for /test.
func WithRunner(name string, runner llm.Runner) Option {
	return func(s *Server) {
		if runner != nil {
			s.runners[name] = runner
		}
	}
}

// WithStore attaches a run-history database; analyze calls are
// recorded when one is present.
func WithStore(store *state.DB) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewServer prepares a demo server over the researcher registry.
func NewServer(settings Settings, registry *research.Registry, opts ...Option) *Server {
	s := &Server{
		settings: settings.withDefaults(),
		registry: registry,
		runners:  make(map[string]llm.Runner),
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler builds the route table. Exposed separately so tests can drive
// the mux without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /agents", s.handleAgents)
	mux.HandleFunc("GET /docs/{service}", s.handleDocs)
	mux.HandleFunc("POST /agents/{name}/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /test/{role}", s.handleTest)
	mux.HandleFunc("POST /compare", s.handleCompare)
	return mux
}

// Start binds the listener and begins serving.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("server already started")
	}

	addr := s.settings.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = listener
	s.startTime = s.clock()

	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
		IdleTimeout:  s.settings.IdleTimeout,
	}
	if ctx != nil {
		server.BaseContext = func(net.Listener) context.Context { return ctx }
	}
	s.server = server

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[server] serve error: %v", err)
		}
	}()
	log.Printf("[server] listening on %s", listener.Addr().String())
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.listener = nil
	s.server = nil
	return nil
}

// Addr returns the bound address once the server has started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) uptimeSeconds() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startTime.IsZero() {
		return 0
	}
	return int64(s.clock().Sub(s.startTime).Seconds())
}
