package memory

import (
	"context"
	"testing"

	"simm-challenger/internal/domain"
)

func TestCheckAnalyticsStore_InsertAndQuery(t *testing.T) {
	store := NewCheckAnalyticsStore()
	ctx := context.Background()

	records := []*domain.CheckRecord{
		{EvaluationID: "eval1", TradeID: "IRS-001", ValuationDate: "2026-08-31", CheckName: "margin_aggregation", Status: domain.StatusPass},
		{EvaluationID: "eval1", TradeID: "IRS-001", ValuationDate: "2026-08-31", CheckName: "dv01_sign", Status: domain.StatusPass},
		{EvaluationID: "eval2", TradeID: "BAR-001", ValuationDate: "2026-08-31", CheckName: "pin_risk", Status: domain.StatusCircuitBreaker},
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByTradeID(ctx, "IRS-001")
	if err != nil {
		t.Fatalf("GetByTradeID failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Ordered by check name within one valuation date
	if got[0].CheckName != "dv01_sign" || got[1].CheckName != "margin_aggregation" {
		t.Errorf("records not ordered: %s, %s", got[0].CheckName, got[1].CheckName)
	}
}

func TestCheckAnalyticsStore_CountByStatus(t *testing.T) {
	store := NewCheckAnalyticsStore()
	ctx := context.Background()

	records := []*domain.CheckRecord{
		{EvaluationID: "eval1", TradeID: "t1", ValuationDate: "2026-08-31", CheckName: "a", Status: domain.StatusPass},
		{EvaluationID: "eval1", TradeID: "t1", ValuationDate: "2026-08-31", CheckName: "b", Status: domain.StatusPass},
		{EvaluationID: "eval2", TradeID: "t2", ValuationDate: "2026-08-31", CheckName: "c", Status: domain.StatusFail},
		{EvaluationID: "eval3", TradeID: "t3", ValuationDate: "2026-09-01", CheckName: "d", Status: domain.StatusWarning},
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	counts, err := store.CountByStatus(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[domain.StatusPass] != 2 {
		t.Errorf("expected 2 PASS, got %d", counts[domain.StatusPass])
	}
	if counts[domain.StatusFail] != 1 {
		t.Errorf("expected 1 FAIL, got %d", counts[domain.StatusFail])
	}
	if counts[domain.StatusWarning] != 0 {
		t.Errorf("other dates must not leak into the count, got %d WARNING", counts[domain.StatusWarning])
	}
}
