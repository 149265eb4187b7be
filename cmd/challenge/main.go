// Package main runs the challenge model over a portfolio batch.
// Input is either the demo fixture portfolio or a live primary-result feed;
// output is persisted results plus a markdown/CSV report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/feed"
	"simm-challenger/internal/observability"
	"simm-challenger/internal/params"
	"simm-challenger/internal/reporting"
	"simm-challenger/internal/runner"
	"simm-challenger/internal/storage"
	chstore "simm-challenger/internal/storage/clickhouse"
	"simm-challenger/internal/storage/memory"
	"simm-challenger/internal/storage/migrations"
	pgstore "simm-challenger/internal/storage/postgres"
)

func main() {
	paramVersion := flag.String("param-version", params.Version28x2506, "Parameter set version to challenge against")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (empty: in-memory stores)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (empty: in-memory analytics)")
	feedEndpoint := flag.String("feed-endpoint", "", "WebSocket URL of the primary result stream (empty: demo fixtures)")
	maxTrades := flag.Int("max-trades", 100, "Maximum envelopes to collect from the feed")
	collectTimeout := flag.Duration("collect-timeout", 30*time.Second, "How long to drain the feed before evaluating")
	workers := flag.Int("workers", 4, "Worker pool size")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	metricsAddr := flag.String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (empty: disabled)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling run...\n", sig)
		cancel()
	}()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "Metrics server error: %v\n", err)
			}
		}()
	}

	paramStore, resultStore, analyticsStore, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating stores: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ps, err := loadParams(ctx, paramStore, *paramVersion, *postgresDSN == "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading parameters: %v\n", err)
		os.Exit(1)
	}

	batch, err := loadBatch(ctx, *feedEndpoint, *maxTrades, *collectTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("=== Challenge Run ===\nParameters: %s | Trades: %d | Workers: %d\n", ps.Version, len(batch), *workers)

	r := runner.New(runner.Options{
		Params:         ps,
		ResultStore:    resultStore,
		AnalyticsStore: analyticsStore,
		Workers:        *workers,
		Verbose:        *verbose,
	})

	run, err := r.Run(ctx, batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run completed:\n")
	fmt.Printf("  Evaluated: %d\n", run.Evaluated)
	fmt.Printf("  Passed: %d | Warnings: %d | Failed: %d | Breakers: %d\n",
		run.Passed, run.Warnings, run.Failed, run.Breakers)
	if len(run.Errors) > 0 {
		fmt.Printf("  Structural errors: %d\n", len(run.Errors))
		for _, e := range run.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	if len(run.Results) == 0 {
		fmt.Println("No results to report.")
		return
	}

	valuationDate := run.Results[0].ValuationDate
	if err := writeReports(ctx, resultStore, valuationDate, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nChallenge run completed successfully:")
	fmt.Printf("  - %s/REPORT_CHALLENGE.md\n", *outputDir)
	fmt.Printf("  - %s/challenge_checks.csv\n", *outputDir)
}

func createStores(ctx context.Context, postgresDSN, clickhouseDSN string) (
	storage.ParameterStore, storage.ChallengeResultStore, storage.CheckAnalyticsStore, func(), error,
) {
	cleanup := func() {}

	var paramStore storage.ParameterStore
	var resultStore storage.ChallengeResultStore
	if postgresDSN == "" {
		paramStore = memory.NewParameterStore()
		resultStore = memory.NewChallengeResultStore()
	} else {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, cleanup, fmt.Errorf("migrate postgres: %w", err)
		}
		paramStore = pgstore.NewParameterStore(pool)
		resultStore = pgstore.NewChallengeResultStore(pool)
		cleanup = pool.Close
	}

	var analyticsStore storage.CheckAnalyticsStore
	if clickhouseDSN == "" {
		analyticsStore = memory.NewCheckAnalyticsStore()
	} else {
		conn, err := chstore.EnsureDatabase(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, nil, func() {}, fmt.Errorf("connect clickhouse: %w", err)
		}
		if err := migrations.RunClickhouse(ctx, conn); err != nil {
			conn.Close()
			cleanup()
			return nil, nil, nil, func() {}, fmt.Errorf("migrate clickhouse: %w", err)
		}
		analyticsStore = chstore.NewCheckAnalyticsStore(conn)
		pgCleanup := cleanup
		cleanup = func() {
			conn.Close()
			pgCleanup()
		}
	}

	return paramStore, resultStore, analyticsStore, cleanup, nil
}

// loadParams fetches the requested version. In-memory stores start empty, so
// fixture mode seeds the bundled snapshot first.
func loadParams(ctx context.Context, store storage.ParameterStore, version string, seedFixture bool) (*params.Set, error) {
	if seedFixture {
		if err := store.Put(ctx, params.Default()); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("seed fixture parameters: %w", err)
		}
	}

	ps, err := store.Get(ctx, version)
	if errors.Is(err, storage.ErrVersionNotFound) {
		return nil, fmt.Errorf("parameter version %s not loaded (run paramload first)", version)
	}
	return ps, err
}

func loadBatch(ctx context.Context, endpoint string, maxTrades int, timeout time.Duration) ([]*domain.PrimaryEnvelope, error) {
	if endpoint == "" {
		return runner.DemoPortfolio(), nil
	}

	client := feed.NewClient(feed.DefaultConfig(endpoint))
	collectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch, err := client.Subscribe(collectCtx)
	if err != nil {
		return nil, err
	}
	batch := feed.Collect(collectCtx, ch, maxTrades)
	fmt.Printf("Collected %d envelopes from %s\n", len(batch), endpoint)
	return batch, nil
}

func writeReports(ctx context.Context, resultStore storage.ChallengeResultStore, valuationDate, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	gen := reporting.NewGenerator(resultStore)
	report, err := gen.Generate(ctx, valuationDate)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	md := reporting.RenderMarkdown(report)
	if err := os.WriteFile(filepath.Join(outputDir, "REPORT_CHALLENGE.md"), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}

	results, err := resultStore.GetByValuationDate(ctx, valuationDate)
	if err != nil {
		return fmt.Errorf("load results for csv: %w", err)
	}
	csv := reporting.RenderCSV(results)
	if err := os.WriteFile(filepath.Join(outputDir, "challenge_checks.csv"), []byte(csv), 0o644); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
