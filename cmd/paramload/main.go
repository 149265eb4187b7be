// Package main loads a parameter set into postgres under an explicit version.
// With no input file it loads the bundled fixture snapshot.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"simm-challenger/internal/params"
	"simm-challenger/internal/storage"
	"simm-challenger/internal/storage/migrations"
	pgstore "simm-challenger/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	file := flag.String("file", "", "Parameter set JSON file (empty: bundled fixture)")
	version := flag.String("version", "", "Version override; defaults to the version inside the set")
	flag.Parse()

	if *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required")
		os.Exit(1)
	}

	set, err := loadSet(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading parameter set: %v\n", err)
		os.Exit(1)
	}
	if *version != "" {
		set.Version = *version
	}
	if set.Version == "" {
		fmt.Fprintln(os.Stderr, "Error: parameter set has no version; pass --version")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgres(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
		os.Exit(1)
	}

	store := pgstore.NewParameterStore(pool)
	if err := store.Put(ctx, set); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			fmt.Fprintf(os.Stderr, "Version %s already loaded; versions are immutable\n", set.Version)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error storing parameter set: %v\n", err)
		os.Exit(1)
	}

	versions, err := store.ListVersions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing versions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded parameter set %s\n", set.Version)
	fmt.Printf("Available versions: %v\n", versions)
}

func loadSet(file string) (*params.Set, error) {
	if file == "" {
		return params.Default(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	var set params.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return &set, nil
}
