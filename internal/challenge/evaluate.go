package challenge

import (
	"simm-challenger/internal/classifier"
	"simm-challenger/internal/domain"
	"simm-challenger/internal/idhash"
	"simm-challenger/internal/params"
)

// tierFn is one tier's challenge model. Tiers are a closed set dispatched
// through a lookup table of pure functions rather than interface dispatch.
type tierFn func(*domain.Trade, *domain.PrimaryResult, *domain.MarketState, *params.Set) ([]domain.ChallengeCheck, error)

var tierModels = map[domain.Tier]tierFn{
	domain.TierLinear:        challengeLinear,
	domain.TierVanillaOption: challengeVanilla,
	domain.TierCredit:        challengeCredit,
	domain.TierExotic:        challengeExotic,
}

// Evaluate is the sole entry point of the challenge model: classify the
// trade, run the tier's checks against the primary result, aggregate check
// statuses and, if a circuit breaker fired, attach the schedule-based
// fallback margin. Pure and deterministic: the same (trade, primary, market,
// params) tuple always produces an identical ChallengeResult.
//
// Structural errors (SchemaError, NumericDomainError) abort this trade's
// evaluation and are returned to the caller; a batch runner reports them
// per-trade and continues with the rest of the portfolio.
func Evaluate(trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) (*domain.ChallengeResult, error) {
	if trade.TradeID == "" {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "TradeID", Reason: "must not be empty"}
	}
	if primary.TradeID != trade.TradeID {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "PrimaryResult.TradeID",
			Reason: "primary result belongs to trade " + primary.TradeID}
	}
	if trade.Notional < 0 {
		return nil, &domain.NumericDomainError{Op: "Evaluate", Field: "Notional", Value: trade.Notional, Reason: "must be >= 0"}
	}

	tier, err := classifier.Classify(trade, market)
	if err != nil {
		return nil, err
	}

	checks, err := tierModels[tier](trade, primary, market, ps)
	if err != nil {
		return nil, err
	}

	result := &domain.ChallengeResult{
		EvaluationID:  idhash.ComputeEvaluationID(trade.TradeID, market.ValuationDate, ps.Version),
		TradeID:       trade.TradeID,
		ValuationDate: market.ValuationDate,
		ParamVersion:  ps.Version,
		Tier:          tier,
		Checks:        checks,
		OverallStatus: domain.StatusPass,
		PrimaryMargin: primary.TotalMargin,
	}
	for _, check := range checks {
		result.OverallStatus = domain.WorstStatus(result.OverallStatus, check.Status)
	}

	// A fired breaker overrides everything: the overall status is forced to
	// CIRCUIT_BREAKER and the fallback margin replaces the primary figure.
	if result.OverallStatus == domain.StatusCircuitBreaker {
		margin, err := FallbackMargin(trade, ps)
		if err != nil {
			return nil, err
		}
		result.FallbackTriggered = true
		result.FallbackMargin = margin
	}

	return result, nil
}
