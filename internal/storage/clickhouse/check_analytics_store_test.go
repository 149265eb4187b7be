package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simm-challenger/internal/domain"
)

func createTestCheckRecord(evaluationID, tradeID, date, check string, status domain.CheckStatus) *domain.CheckRecord {
	return &domain.CheckRecord{
		EvaluationID:    evaluationID,
		TradeID:         tradeID,
		ValuationDate:   date,
		ParamVersion:    "2.8+2506",
		Tier:            domain.TierLinear,
		CheckName:       check,
		ChallengerValue: 1935.99,
		PrimaryValue:    1936.0,
		VariancePct:     -0.0005,
		TolerancePct:    1.0,
		Status:          status,
	}
}

func TestCheckAnalyticsStore_InsertBulkAndGetByTradeID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewCheckAnalyticsStore(conn)

	records := []*domain.CheckRecord{
		createTestCheckRecord("eval-1", "IRS-001", "2026-08-31", "margin_aggregation", domain.StatusPass),
		createTestCheckRecord("eval-1", "IRS-001", "2026-08-31", "dv01_sign", domain.StatusPass),
		createTestCheckRecord("eval-2", "BAR-001", "2026-08-31", "pin_risk", domain.StatusCircuitBreaker),
	}
	require.NoError(t, store.InsertBulk(ctx, records))

	got, err := store.GetByTradeID(ctx, "IRS-001")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by check name within one valuation date
	assert.Equal(t, "dv01_sign", got[0].CheckName)
	assert.Equal(t, "margin_aggregation", got[1].CheckName)
	assert.Equal(t, domain.TierLinear, got[0].Tier)
	assert.Equal(t, 1935.99, got[0].ChallengerValue)
	assert.Equal(t, domain.StatusPass, got[0].Status)
}

func TestCheckAnalyticsStore_InsertBulkEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewCheckAnalyticsStore(conn)

	require.NoError(t, store.InsertBulk(ctx, nil))
}

func TestCheckAnalyticsStore_GetByTradeID_Empty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewCheckAnalyticsStore(conn)

	got, err := store.GetByTradeID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckAnalyticsStore_CountByStatus(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewCheckAnalyticsStore(conn)

	records := []*domain.CheckRecord{
		createTestCheckRecord("eval-1", "t1", "2026-08-31", "a", domain.StatusPass),
		createTestCheckRecord("eval-1", "t1", "2026-08-31", "b", domain.StatusPass),
		createTestCheckRecord("eval-2", "t2", "2026-08-31", "c", domain.StatusFail),
		createTestCheckRecord("eval-3", "t3", "2026-09-01", "d", domain.StatusWarning),
	}
	require.NoError(t, store.InsertBulk(ctx, records))

	counts, err := store.CountByStatus(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counts[domain.StatusPass])
	assert.Equal(t, uint64(1), counts[domain.StatusFail])

	// Other valuation dates must not leak into the count
	assert.Zero(t, counts[domain.StatusWarning])
}
