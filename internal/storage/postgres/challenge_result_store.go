package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

// ChallengeResultStore implements storage.ChallengeResultStore using
// PostgreSQL. One row per evaluation; the per-check detail rides along as a
// JSONB column because results are read back whole for reporting, while the
// queryable per-check rows live in the analytics store.
type ChallengeResultStore struct {
	pool *Pool
}

// NewChallengeResultStore creates a new ChallengeResultStore.
func NewChallengeResultStore(pool *Pool) *ChallengeResultStore {
	return &ChallengeResultStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ChallengeResultStore = (*ChallengeResultStore)(nil)

const insertResultQuery = `
	INSERT INTO challenge_results (
		evaluation_id, trade_id, valuation_date, param_version, tier,
		overall_status, fallback_triggered, fallback_margin, primary_margin,
		checks
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10
	)
`

const selectResultColumns = `
	evaluation_id, trade_id, valuation_date, param_version, tier,
	overall_status, fallback_triggered, fallback_margin, primary_margin,
	checks
`

// Insert adds a new result. Returns ErrDuplicateKey if evaluation_id exists.
func (s *ChallengeResultStore) Insert(ctx context.Context, r *domain.ChallengeResult) error {
	checks, err := json.Marshal(r.Checks)
	if err != nil {
		return fmt.Errorf("marshal checks: %w", err)
	}

	_, err = s.pool.Exec(ctx, insertResultQuery,
		r.EvaluationID, r.TradeID, r.ValuationDate, r.ParamVersion, string(r.Tier),
		string(r.OverallStatus), r.FallbackTriggered, r.FallbackMargin, r.PrimaryMargin,
		checks,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert challenge result: %w", err)
	}
	return nil
}

// InsertBulk adds multiple results atomically. Fails entire batch on any duplicate.
func (s *ChallengeResultStore) InsertBulk(ctx context.Context, results []*domain.ChallengeResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range results {
		checks, err := json.Marshal(r.Checks)
		if err != nil {
			return fmt.Errorf("marshal checks: %w", err)
		}
		_, err = tx.Exec(ctx, insertResultQuery,
			r.EvaluationID, r.TradeID, r.ValuationDate, r.ParamVersion, string(r.Tier),
			string(r.OverallStatus), r.FallbackTriggered, r.FallbackMargin, r.PrimaryMargin,
			checks,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert challenge result in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByEvaluationID retrieves a result by its ID. Returns ErrNotFound if not exists.
func (s *ChallengeResultStore) GetByEvaluationID(ctx context.Context, evaluationID string) (*domain.ChallengeResult, error) {
	query := `SELECT ` + selectResultColumns + ` FROM challenge_results WHERE evaluation_id = $1`

	row := s.pool.QueryRow(ctx, query, evaluationID)
	result, err := scanResult(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get challenge result: %w", err)
	}
	return result, nil
}

// GetByTradeID retrieves all results for a trade, ordered by valuation date ASC.
func (s *ChallengeResultStore) GetByTradeID(ctx context.Context, tradeID string) ([]*domain.ChallengeResult, error) {
	query := `SELECT ` + selectResultColumns + ` FROM challenge_results WHERE trade_id = $1 ORDER BY valuation_date ASC`
	return s.queryResults(ctx, query, tradeID)
}

// GetByValuationDate retrieves all results for a valuation date.
func (s *ChallengeResultStore) GetByValuationDate(ctx context.Context, valuationDate string) ([]*domain.ChallengeResult, error) {
	query := `SELECT ` + selectResultColumns + ` FROM challenge_results WHERE valuation_date = $1 ORDER BY trade_id ASC`
	return s.queryResults(ctx, query, valuationDate)
}

func (s *ChallengeResultStore) queryResults(ctx context.Context, query string, args ...any) ([]*domain.ChallengeResult, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query challenge results: %w", err)
	}
	defer rows.Close()

	var results []*domain.ChallengeResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challenge result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenge results: %w", err)
	}
	return results, nil
}

func scanResult(row pgx.Row) (*domain.ChallengeResult, error) {
	var r domain.ChallengeResult
	var tier, overall string
	var checks []byte

	err := row.Scan(
		&r.EvaluationID, &r.TradeID, &r.ValuationDate, &r.ParamVersion, &tier,
		&overall, &r.FallbackTriggered, &r.FallbackMargin, &r.PrimaryMargin,
		&checks,
	)
	if err != nil {
		return nil, err
	}
	r.Tier = domain.Tier(tier)
	r.OverallStatus = domain.CheckStatus(overall)
	if err := json.Unmarshal(checks, &r.Checks); err != nil {
		return nil, fmt.Errorf("unmarshal checks: %w", err)
	}
	return &r, nil
}
