// Package runner evaluates a portfolio batch against one immutable
// parameter snapshot using a bounded worker pool.
package runner

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"simm-challenger/internal/challenge"
	"simm-challenger/internal/domain"
	"simm-challenger/internal/observability"
	"simm-challenger/internal/params"
	"simm-challenger/internal/storage"
)

const defaultWorkers = 4

// Options for creating a Runner.
type Options struct {
	// Params is the shared parameter snapshot. Workers read it concurrently;
	// it must not be mutated while a batch is running.
	Params *params.Set

	// Optional stores. When nil, results are returned but not persisted.
	ResultStore    storage.ChallengeResultStore
	AnalyticsStore storage.CheckAnalyticsStore

	Workers int
	Verbose bool
}

// Runner coordinates batch evaluation.
type Runner struct {
	ps             *params.Set
	resultStore    storage.ChallengeResultStore
	analyticsStore storage.CheckAnalyticsStore
	workers        int
	verbose        bool
}

// New creates a new Runner.
func New(opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Runner{
		ps:             opts.Params,
		resultStore:    opts.ResultStore,
		analyticsStore: opts.AnalyticsStore,
		workers:        workers,
		verbose:        opts.Verbose,
	}
}

// RunResult summarizes one batch evaluation.
type RunResult struct {
	Evaluated int
	Passed    int
	Warnings  int
	Failed    int
	Breakers  int

	// Per-trade structural failures. A malformed trade never aborts the
	// batch; it is recorded here and skipped.
	Errors []string

	Results []*domain.ChallengeResult
}

// Run evaluates every envelope in the batch. Trades are independent, so they
// fan out over the worker pool; the parameter snapshot is the only shared
// state and is read-only.
func (r *Runner) Run(ctx context.Context, batch []*domain.PrimaryEnvelope) (*RunResult, error) {
	if r.ps == nil {
		return nil, fmt.Errorf("runner: nil parameter set")
	}

	r.log("evaluating %d trades with %d workers (params %s)", len(batch), r.workers, r.ps.Version)
	started := time.Now()

	type outcome struct {
		idx    int
		result *domain.ChallengeResult
		err    error
	}

	jobs := make(chan int)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				env := batch[idx]
				result, err := challenge.Evaluate(env.Trade, env.Primary, env.Market, r.ps)
				select {
				case outcomes <- outcome{idx: idx, result: result, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range batch {
			select {
			case jobs <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	run := &RunResult{}
	indexed := make(map[int]*domain.ChallengeResult, len(batch))
	failed := make(map[int]string)
	for out := range outcomes {
		if out.err != nil {
			tradeID := "?"
			if t := batch[out.idx].Trade; t != nil {
				tradeID = t.TradeID
			}
			failed[out.idx] = fmt.Sprintf("evaluate %s: %v", tradeID, out.err)
			observability.RecordStructuralError()
			continue
		}
		indexed[out.idx] = out.result
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic output order regardless of worker scheduling; errors
	// follow batch position just like results.
	errKeys := make([]int, 0, len(failed))
	for k := range failed {
		errKeys = append(errKeys, k)
	}
	sort.Ints(errKeys)
	for _, k := range errKeys {
		run.Errors = append(run.Errors, failed[k])
	}

	keys := make([]int, 0, len(indexed))
	for k := range indexed {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		result := indexed[k]
		run.Results = append(run.Results, result)
		run.Evaluated++
		observability.RecordEvaluation(string(result.Tier), string(result.OverallStatus))
		for _, check := range result.Checks {
			observability.RecordCheck(string(check.Status))
		}
		if result.FallbackTriggered {
			observability.RecordFallbackMargin(result.FallbackMargin)
		}
		switch result.OverallStatus {
		case domain.StatusPass:
			run.Passed++
		case domain.StatusWarning:
			run.Warnings++
		case domain.StatusFail:
			run.Failed++
		case domain.StatusCircuitBreaker:
			run.Breakers++
		}
	}

	if err := r.persist(ctx, run); err != nil {
		return nil, err
	}
	observability.RecordBatch(len(batch), time.Since(started).Seconds())

	r.log("batch done: %d evaluated (%d pass, %d warn, %d fail, %d breakers), %d errors",
		run.Evaluated, run.Passed, run.Warnings, run.Failed, run.Breakers, len(run.Errors))

	return run, nil
}

func (r *Runner) persist(ctx context.Context, run *RunResult) error {
	if r.resultStore != nil && len(run.Results) > 0 {
		if err := r.resultStore.InsertBulk(ctx, run.Results); err != nil {
			return fmt.Errorf("persist results: %w", err)
		}
	}
	if r.analyticsStore != nil && len(run.Results) > 0 {
		var records []*domain.CheckRecord
		for _, result := range run.Results {
			records = append(records, result.FlattenChecks()...)
		}
		if err := r.analyticsStore.InsertBulk(ctx, records); err != nil {
			return fmt.Errorf("persist check records: %w", err)
		}
	}
	return nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.verbose {
		log.Printf("[runner] "+format, args...)
	}
}
