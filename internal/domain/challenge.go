package domain

// CheckStatus is the outcome of one verification unit.
type CheckStatus string

const (
	StatusPass           CheckStatus = "PASS"
	StatusWarning        CheckStatus = "WARNING"
	StatusFail           CheckStatus = "FAIL"
	StatusCircuitBreaker CheckStatus = "CIRCUIT_BREAKER"
)

// ChallengeCheck is one verification unit: a challenger-computed value
// compared against the primary engine's value under a named tolerance.
// Produced fresh per evaluation; never persisted by the core itself.
type ChallengeCheck struct {
	Name            string
	ChallengerValue float64
	PrimaryValue    float64
	VariancePct     float64 // signed, (challenger - primary) / primary * 100
	TolerancePct    float64
	Status          CheckStatus
	Detail          string // human-readable context for the report
}

// ChallengeResult aggregates the checks for one (Trade, PrimaryResult) pair
// on one valuation date. Immutable after creation.
type ChallengeResult struct {
	EvaluationID  string // deterministic hash of trade|date|version
	TradeID       string
	ValuationDate string
	ParamVersion  string
	Tier          Tier

	Checks        []ChallengeCheck
	OverallStatus CheckStatus

	// Populated iff a circuit breaker fired. When set the primary margin must
	// not be used downstream.
	FallbackTriggered bool
	FallbackMargin    float64

	PrimaryMargin float64
}

// WorstStatus returns the more severe of two statuses.
// Severity order: PASS < WARNING < FAIL < CIRCUIT_BREAKER.
func WorstStatus(a, b CheckStatus) CheckStatus {
	if statusRank(a) >= statusRank(b) {
		return a
	}
	return b
}

func statusRank(s CheckStatus) int {
	switch s {
	case StatusCircuitBreaker:
		return 3
	case StatusFail:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}
