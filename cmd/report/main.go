// Package main renders a stored challenge run as markdown and CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"simm-challenger/internal/reporting"
	pgstore "simm-challenger/internal/storage/postgres"
)

func main() {
	valuationDate := flag.String("valuation-date", "", "Valuation date to report on (YYYY-MM-DD)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	flag.Parse()

	if *valuationDate == "" || *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --valuation-date and --postgres-dsn are required")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	resultStore := pgstore.NewChallengeResultStore(pool)

	report, err := reporting.NewGenerator(resultStore).Generate(ctx, *valuationDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}
	if report.Summary.TotalTrades == 0 {
		fmt.Fprintf(os.Stderr, "No results stored for %s\n", *valuationDate)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	mdPath := filepath.Join(*outputDir, "REPORT_CHALLENGE.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing markdown: %v\n", err)
		os.Exit(1)
	}

	results, err := resultStore.GetByValuationDate(ctx, *valuationDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading results: %v\n", err)
		os.Exit(1)
	}
	csvPath := filepath.Join(*outputDir, "challenge_checks.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(results)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing csv: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s\n", mdPath)
	fmt.Printf("  - %s\n", csvPath)
	fmt.Printf("  %d trades (%d pass, %d warn, %d fail, %d breakers)\n",
		report.Summary.TotalTrades, report.Summary.Passed,
		report.Summary.Warnings, report.Summary.Failed, report.Summary.Breakers)
}
