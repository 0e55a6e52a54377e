package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo HTTP server",
	Long: `Serve the FedScout HTTP surface: agent listing and analysis, the
documentation cache, role smoke tests, and model comparison.

The Ollama runner is always registered; the Anthropic runner is added
when credentials are configured, which enables meaningful /compare
responses. With docs.watch enabled, local edits to harvested
documentation invalidate the cache immediately.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override the listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ollama := buildOllamaRunner(cfg)
	registry, err := buildRegistry(ollama)
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithRunner("ollama", ollama)}
	if claude := buildClaudeRunner(cfg); claude != nil {
		opts = append(opts, server.WithRunner("claude", claude))
		printStatus("✓", "claude runner registered", color.FgGreen)
	}

	db, err := openStateDB()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("run history unavailable: %v", err), color.FgYellow)
	} else {
		defer db.Close()
		opts = append(opts, server.WithStore(db))
	}

	ttl := time.Duration(cfg.Docs.TTLDays) * 24 * time.Hour
	loader, err := docs.NewLoader(filepath.Join(cfg.Docs.CacheDir, ".cache"), ttl)
	if err != nil {
		printStatus("⚠", fmt.Sprintf("docs cache unavailable: %v", err), color.FgYellow)
	} else {
		opts = append(opts, server.WithDocs(loader, cfg.Docs.CacheDir))
		if cfg.Docs.Watch {
			watcher, err := docs.WatchDir(loader, cfg.Docs.CacheDir)
			if err != nil {
				printStatus("⚠", fmt.Sprintf("docs watcher unavailable: %v", err), color.FgYellow)
			} else {
				defer watcher.Close()
				printStatus("✓", "watching "+cfg.Docs.CacheDir, color.FgGreen)
			}
		}
	}

	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}
	srv := server.NewServer(server.Settings{
		Host: cfg.Server.Host,
		Port: port,
	}, registry, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	printStatus("✓", "serving on http://"+srv.Addr(), color.FgGreen)

	<-ctx.Done()
	fmt.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
