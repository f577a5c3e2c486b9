// Package main is the entry point for the card arbitrage scanner.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fd1az/card-arbitrage/business/arbitrage"
	arbitrageApp "github.com/fd1az/card-arbitrage/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/card-arbitrage/business/arbitrage/di"
	"github.com/fd1az/card-arbitrage/business/listing"
	"github.com/fd1az/card-arbitrage/business/pricing"
	"github.com/fd1az/card-arbitrage/internal/apm"
	"github.com/fd1az/card-arbitrage/internal/config"
	"github.com/fd1az/card-arbitrage/internal/health"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/monolith"
	"github.com/fd1az/card-arbitrage/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	query := flag.String("query", "", "Search query; empty browses the configured category")
	maxListings := flag.Int("max", 0, "Max listings per scan (0 uses the configured limit)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cardarb %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for debugging and scripted scans
	tuiMode := !*cliMode

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	// Run application
	if err := run(ctx, *configPath, tuiMode, *query, *maxListings); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool, query string, maxListings int) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set TUI mode in config so modules know
	cfg.Arbitrage.TUIMode = tuiMode

	// Setup logger (only log to stderr in CLI mode)
	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logLevel, cfg.App.Name, apm.TraceIDFromContext)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, apm.TraceIDFromContext)
		log.Info(ctx, "starting card arbitrage scanner",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	var instruments *metrics.Instruments
	if cfg.Telemetry.Enabled {
		// Set service name env var for OTEL
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		// Initialize tracing with Zipkin (local dev friendly)
		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		// Initialize metrics with Prometheus
		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		instruments, err = metrics.NewInstruments(cfg.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("failed to create instruments: %w", err)
		}

		// Start Prometheus metrics server in background
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	// Start health check server on port 8081
	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	// Create monolith (application container)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Instruments are shared across modules; registered even when nil so
	// factories can resolve them unconditionally.
	mono.Container().Register("instruments", instruments)

	// Define modules in dependency order
	modules := []monolith.Module{
		&listing.Module{},   // Provides the Buyee collector
		&pricing.Module{},   // Sold price evidence + fx
		&arbitrage.Module{}, // Depends on listing and pricing
	}

	// Register all module services
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	if tuiMode {
		// TUI mode: Start modules in background so TUI shows immediately
		startFunc := func() error {
			ui.Send(ui.StartupMsg{Step: "config", Status: "done"})
			if err := mono.StartModules(ctx, modules...); err != nil {
				ui.Send(ui.StartupMsg{Step: "buyee", Status: "failed"})
				return fmt.Errorf("failed to start modules: %w", err)
			}
			for _, step := range []string{"buyee", "ebay", "130point", "fx"} {
				ui.Send(ui.StartupMsg{Step: step, Status: "connected"})
			}
			analyzer := arbitrageDI.GetAnalyzer(mono.Services())
			_, err := analyzer.Run(ctx, query, maxListings)
			return err
		}
		stopFunc := func() {
			reporter := arbitrageDI.GetReporter(mono.Services())
			_ = reporter.Stop()
		}
		return runTUI(ctx, startFunc, stopFunc)
	}

	// CLI mode: Start modules synchronously
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	analyzer := arbitrageDI.GetAnalyzer(mono.Services())
	reporter := arbitrageDI.GetReporter(mono.Services())
	return runCLI(ctx, analyzer, reporter, log, query, maxListings)
}

func runCLI(ctx context.Context, analyzer *arbitrageApp.Analyzer, reporter arbitrageApp.Reporter, log *logger.Logger, query string, maxListings int) error {
	log.Info(ctx, "all modules started, beginning scan")

	results, err := analyzer.Run(ctx, query, maxListings)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	log.Info(ctx, "scan finished", "results", len(results))

	if err := reporter.Stop(); err != nil {
		log.Error(ctx, "error stopping reporter", "error", err)
	}

	return nil
}

func runTUI(ctx context.Context, startFunc func() error, stopFunc func()) error {
	// Channel to receive StartModulesMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// Create and start the TUI program IMMEDIATELY (shows welcome screen)
	p := tea.NewProgram(ui.New(), tea.WithAltScreen())
	ui.Program = p

	// Run the scan in background (non-blocking)
	errCh := make(chan error, 1)
	go func() {
		// Wait for welcome screen to complete (StartModulesMsg signal)
		select {
		case <-startSignal:
			// Welcome complete, start modules
		case <-ctx.Done():
			errCh <- nil
			return
		}

		// Start modules and run the scan (TUI shows progress)
		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}

		// Keep the dashboard up until quit or cancellation
		<-ctx.Done()

		stopFunc()
		errCh <- nil
	}()

	// Run TUI (blocking) - shows immediately with welcome screen
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Check for scan errors
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
