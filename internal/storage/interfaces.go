package storage

import (
	"context"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
)

// ParameterStore provides access to versioned parameter-set storage.
// Sets are immutable once stored: a calibration change is a new version,
// never an update of an existing one.
type ParameterStore interface {
	// Put stores a new parameter set. Returns ErrDuplicateKey if the version exists.
	Put(ctx context.Context, set *params.Set) error

	// Get retrieves a parameter set by version. Returns ErrVersionNotFound if absent.
	Get(ctx context.Context, version string) (*params.Set, error)

	// ListVersions returns all stored versions, sorted ascending.
	ListVersions(ctx context.Context) ([]string, error)
}

// ChallengeResultStore provides access to challenge_results storage.
type ChallengeResultStore interface {
	// Insert adds a new result. Returns ErrDuplicateKey if evaluation_id exists.
	Insert(ctx context.Context, r *domain.ChallengeResult) error

	// InsertBulk adds multiple results atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, results []*domain.ChallengeResult) error

	// GetByEvaluationID retrieves a result by its ID. Returns ErrNotFound if not exists.
	GetByEvaluationID(ctx context.Context, evaluationID string) (*domain.ChallengeResult, error)

	// GetByTradeID retrieves all results for a trade, ordered by valuation date ASC.
	GetByTradeID(ctx context.Context, tradeID string) ([]*domain.ChallengeResult, error)

	// GetByValuationDate retrieves all results for a valuation date.
	GetByValuationDate(ctx context.Context, valuationDate string) ([]*domain.ChallengeResult, error)
}

// CheckAnalyticsStore provides access to the flattened per-check rows used
// for portfolio-level analytics.
type CheckAnalyticsStore interface {
	// InsertBulk adds multiple check records.
	InsertBulk(ctx context.Context, records []*domain.CheckRecord) error

	// GetByTradeID retrieves all check records for a trade.
	GetByTradeID(ctx context.Context, tradeID string) ([]*domain.CheckRecord, error)

	// CountByStatus returns per-status check counts for a valuation date.
	CountByStatus(ctx context.Context, valuationDate string) (map[domain.CheckStatus]uint64, error)
}
