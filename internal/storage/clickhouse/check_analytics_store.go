package clickhouse

import (
	"context"
	"fmt"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

// CheckAnalyticsStore implements storage.CheckAnalyticsStore using ClickHouse.
type CheckAnalyticsStore struct {
	conn *Conn
}

// NewCheckAnalyticsStore creates a new CheckAnalyticsStore.
func NewCheckAnalyticsStore(conn *Conn) *CheckAnalyticsStore {
	return &CheckAnalyticsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CheckAnalyticsStore = (*CheckAnalyticsStore)(nil)

// InsertBulk adds multiple check records through one prepared batch.
// MergeTree does not enforce uniqueness; the deterministic evaluation_id
// means a re-run writes identical rows, which dedup queries collapse.
func (s *CheckAnalyticsStore) InsertBulk(ctx context.Context, records []*domain.CheckRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO challenge_checks (
			evaluation_id, trade_id, valuation_date, param_version, tier,
			check_name, challenger_value, primary_value, variance_pct,
			tolerance_pct, status, detail
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, rec := range records {
		err := batch.Append(
			rec.EvaluationID, rec.TradeID, rec.ValuationDate, rec.ParamVersion, string(rec.Tier),
			rec.CheckName, rec.ChallengerValue, rec.PrimaryValue, rec.VariancePct,
			rec.TolerancePct, string(rec.Status), rec.Detail,
		)
		if err != nil {
			return fmt.Errorf("append check record: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByTradeID retrieves all check records for a trade.
func (s *CheckAnalyticsStore) GetByTradeID(ctx context.Context, tradeID string) ([]*domain.CheckRecord, error) {
	query := `
		SELECT evaluation_id, trade_id, valuation_date, param_version, tier,
		       check_name, challenger_value, primary_value, variance_pct,
		       tolerance_pct, status, detail
		FROM challenge_checks
		WHERE trade_id = ?
		ORDER BY valuation_date ASC, check_name ASC
	`

	rows, err := s.conn.Query(ctx, query, tradeID)
	if err != nil {
		return nil, fmt.Errorf("query check records: %w", err)
	}
	defer rows.Close()

	var records []*domain.CheckRecord
	for rows.Next() {
		var rec domain.CheckRecord
		var tier, status string
		err := rows.Scan(
			&rec.EvaluationID, &rec.TradeID, &rec.ValuationDate, &rec.ParamVersion, &tier,
			&rec.CheckName, &rec.ChallengerValue, &rec.PrimaryValue, &rec.VariancePct,
			&rec.TolerancePct, &status, &rec.Detail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan check record: %w", err)
		}
		rec.Tier = domain.Tier(tier)
		rec.Status = domain.CheckStatus(status)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check records: %w", err)
	}
	return records, nil
}

// CountByStatus returns per-status check counts for a valuation date.
func (s *CheckAnalyticsStore) CountByStatus(ctx context.Context, valuationDate string) (map[domain.CheckStatus]uint64, error) {
	query := `
		SELECT status, count() AS n
		FROM challenge_checks
		WHERE valuation_date = ?
		GROUP BY status
	`

	rows, err := s.conn.Query(ctx, query, valuationDate)
	if err != nil {
		return nil, fmt.Errorf("count checks by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.CheckStatus]uint64)
	for rows.Next() {
		var status string
		var n uint64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.CheckStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
