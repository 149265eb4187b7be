package reporting

import (
	"time"

	"simm-challenger/internal/domain"
)

// Report is the flat, serializable view of one portfolio challenge run.
type Report struct {
	// Metadata
	GeneratedAt   time.Time
	ValuationDate string
	ParamVersion  string

	Summary Summary

	// Per-tier breakdown (fixed tier order)
	TierBreakdown []TierRow

	// Every trade whose evaluation tripped a circuit breaker
	Breakers []BreakerRow

	// Every FAIL or WARNING check across the portfolio
	FlaggedChecks []FlaggedCheckRow
}

// Summary contains portfolio-level counts and margin totals.
type Summary struct {
	TotalTrades int
	Passed      int
	Warnings    int
	Failed      int
	Breakers    int

	PrimaryMarginTotal  float64
	FallbackMarginTotal float64
}

// TierRow represents one row in the per-tier breakdown table.
type TierRow struct {
	Tier     domain.Tier
	Trades   int
	Passed   int
	Warnings int
	Failed   int
	Breakers int
}

// BreakerRow lists one circuit-break with the check that tripped it.
type BreakerRow struct {
	TradeID        string
	EvaluationID   string
	Tier           domain.Tier
	TrippedBy      string
	Detail         string
	PrimaryMargin  float64
	FallbackMargin float64
}

// FlaggedCheckRow represents one non-passing check.
type FlaggedCheckRow struct {
	TradeID         string
	Tier            domain.Tier
	CheckName       string
	Status          domain.CheckStatus
	ChallengerValue float64
	PrimaryValue    float64
	VariancePct     float64
	TolerancePct    float64
	Detail          string
}
