package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/agent"
	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/llm"
	"github.com/quietharbor/quietharbor/internal/sentiment"
	"github.com/quietharbor/quietharbor/internal/server"
	"github.com/quietharbor/quietharbor/internal/store"
)

var serveListen string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "HTTP listen address (overrides config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Runs the support service over HTTP: message and classification endpoints,\nconversation history, crisis resources, health probes, and a Prometheus\nmetrics listener. Keyword overrides hot-reload on file change.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.ListenAddr = serveListen
	}

	completer, err := llm.NewOpenAI(cfg)
	if err != nil {
		return err
	}

	detector, err := crisis.Load(cfg.KeywordsPath)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	auditLog, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("failed to open safety log: %w", err)
	}
	defer auditLog.Close()

	ag := agent.New(completer, detector, sentiment.NewDefault(), cfg.Model, nil)
	srv := server.New(cfg, st, ag, auditLog)

	// Start hot-reload watcher for the keyword override file
	reloader, err := server.NewReloader(srv, cfg.KeywordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
		srv.Shutdown()
	}()

	fmt.Fprintf(os.Stderr, "quietharbor API listening on %s\n", cfg.ListenAddr)
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(os.Stderr, "Metrics: %s/metrics\n", cfg.MetricsAddr)
	}
	if reloader != nil {
		fmt.Fprintf(os.Stderr, "Keywords: %s (hot-reload enabled)\n", cfg.KeywordsPath)
	}
	fmt.Fprintln(os.Stderr)

	return srv.Start()
}
