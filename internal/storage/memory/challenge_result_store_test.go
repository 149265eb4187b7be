package memory

import (
	"context"
	"errors"
	"testing"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

func sampleResult(evaluationID, tradeID, date string) *domain.ChallengeResult {
	return &domain.ChallengeResult{
		EvaluationID:  evaluationID,
		TradeID:       tradeID,
		ValuationDate: date,
		ParamVersion:  "2.8+2506",
		Tier:          domain.TierLinear,
		Checks: []domain.ChallengeCheck{
			{Name: "margin_aggregation", ChallengerValue: 1936.0, PrimaryValue: 1936.0, TolerancePct: 1.0, Status: domain.StatusPass},
		},
		OverallStatus: domain.StatusPass,
		PrimaryMargin: 1936.0,
	}
}

func TestChallengeResultStore_InsertAndGet(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByEvaluationID(ctx, "eval1")
	if err != nil {
		t.Fatalf("GetByEvaluationID failed: %v", err)
	}
	if result.TradeID != "IRS-001" {
		t.Errorf("TradeID mismatch: got %s, want IRS-001", result.TradeID)
	}
	if len(result.Checks) != 1 || result.Checks[0].Name != "margin_aggregation" {
		t.Errorf("checks not preserved: %+v", result.Checks)
	}
}

func TestChallengeResultStore_DuplicateEvaluationID(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31"))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestChallengeResultStore_NotFound(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	_, err := store.GetByEvaluationID(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestChallengeResultStore_InsertBulkAtomic(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Batch containing an existing id must fail whole and store nothing new
	batch := []*domain.ChallengeResult{
		sampleResult("eval2", "IRS-002", "2026-08-31"),
		sampleResult("eval1", "IRS-001", "2026-08-31"),
	}
	err := store.InsertBulk(ctx, batch)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := store.GetByEvaluationID(ctx, "eval2"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("failed bulk insert must not leave partial rows behind")
	}
}

func TestChallengeResultStore_GetByTradeIDOrdered(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval2", "IRS-001", "2026-09-01")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, sampleResult("eval3", "IRS-OTHER", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	results, err := store.GetByTradeID(ctx, "IRS-001")
	if err != nil {
		t.Fatalf("GetByTradeID failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ValuationDate != "2026-08-31" || results[1].ValuationDate != "2026-09-01" {
		t.Errorf("results not ordered by valuation date: %s, %s",
			results[0].ValuationDate, results[1].ValuationDate)
	}
}

func TestChallengeResultStore_GetByValuationDate(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval1", "IRS-002", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, sampleResult("eval2", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, sampleResult("eval3", "IRS-001", "2026-09-01")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	results, err := store.GetByValuationDate(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("GetByValuationDate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].TradeID != "IRS-001" || results[1].TradeID != "IRS-002" {
		t.Errorf("results not ordered by trade id: %s, %s", results[0].TradeID, results[1].TradeID)
	}
}

func TestChallengeResultStore_ReturnsCopies(t *testing.T) {
	store := NewChallengeResultStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleResult("eval1", "IRS-001", "2026-08-31")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByEvaluationID(ctx, "eval1")
	if err != nil {
		t.Fatalf("GetByEvaluationID failed: %v", err)
	}
	result.Checks[0].Status = domain.StatusFail

	again, err := store.GetByEvaluationID(ctx, "eval1")
	if err != nil {
		t.Fatalf("GetByEvaluationID failed: %v", err)
	}
	if again.Checks[0].Status != domain.StatusPass {
		t.Error("mutating a returned result must not affect stored state")
	}
}
