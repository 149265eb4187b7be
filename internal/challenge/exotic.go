package challenge

import (
	"fmt"
	"math"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
)

// breakerState is the per-evaluation state of the exotic circuit breaker.
// Transitions only escalate; CIRCUIT_BREAK is terminal for the evaluation
// and the trade is re-evaluated from SAFE on the next valuation date.
type breakerState int

const (
	stateSafe breakerState = iota
	stateWarning
	stateCircuitBreak
)

type breaker struct {
	state breakerState
}

func (b *breaker) warn() {
	if b.state < stateWarning {
		b.state = stateWarning
	}
}

func (b *breaker) trip() {
	b.state = stateCircuitBreak
}

// challengeExotic runs the circuit-breaker triggers for discontinuous and
// path-dependent products. Each trigger is independently sufficient to trip
// the breaker; once tripped the primary margin must not be used downstream
// regardless of how the remaining triggers grade.
func challengeExotic(trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) ([]domain.ChallengeCheck, error) {
	var b breaker
	var checks []domain.ChallengeCheck

	if trade.BarrierStyle != domain.BarrierNone {
		check, err := pinRiskCheck(&b, trade, primary, market, ps)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	// Curvature beyond the full notional is impossible for a well-behaved
	// option and signals formula breakdown near a discontinuity.
	if primary.ReportedCVR != nil {
		check := boundCheck("curvature_sanity", *primary.ReportedCVR, trade.Notional,
			domain.StatusCircuitBreaker, "curvature exceeds notional, formula breakdown near discontinuity")
		if check.Status == domain.StatusCircuitBreaker {
			b.trip()
		}
		checks = append(checks, check)
	}

	if trade.ProductType.IsDigital() {
		check, err := digitalDiscontinuityCheck(&b, trade, market, ps)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	if trade.ProductType == domain.ProductTARF || trade.ProductType == domain.ProductDigitalTARF {
		tarfChecks, err := tarfBehaviorChecks(&b, trade, primary, ps)
		if err != nil {
			return nil, err
		}
		checks = append(checks, tarfChecks...)
	}

	if trade.ProductType == domain.ProductRangeAccrual {
		check, err := rangeObservationCheck(&b, trade, market, ps)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	return checks, nil
}

// pinRiskCheck trips the breaker when spot sits inside the style-specific
// proximity band of a barrier AND reported vega is outsized relative to
// notional. Either condition alone only warrants a warning: Greeks explode
// at the barrier only when both hold.
func pinRiskCheck(b *breaker, trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) (domain.ChallengeCheck, error) {
	if trade.BarrierLevel == nil || *trade.BarrierLevel <= 0 {
		return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "BarrierLevel", Reason: "required for barrier products"}
	}

	dist := math.Abs(market.Spot-*trade.BarrierLevel) / *trade.BarrierLevel
	if trade.BarrierStyle == domain.BarrierKIKO {
		if trade.UpperBarrier == nil || *trade.UpperBarrier <= 0 {
			return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "UpperBarrier", Reason: "required for double-barrier products"}
		}
		upper := math.Abs(market.Spot-*trade.UpperBarrier) / *trade.UpperBarrier
		dist = math.Min(dist, upper)
	}

	threshold := ps.Breaker.BarrierProximity(string(trade.BarrierStyle))
	near := dist <= threshold
	outsizedVega := primary.ReportedVega != nil &&
		*primary.ReportedVega > ps.Breaker.PinVegaNotionalRatio*trade.Notional

	check := domain.ChallengeCheck{
		Name:            "pin_risk",
		ChallengerValue: dist,
		PrimaryValue:    threshold,
		Status:          domain.StatusPass,
	}
	switch {
	case near && outsizedVega:
		b.trip()
		check.Status = domain.StatusCircuitBreaker
		check.Detail = fmt.Sprintf("spot %.2f%% from %s barrier with vega above %.0f%% of notional",
			dist*100, trade.BarrierStyle, ps.Breaker.PinVegaNotionalRatio*100)
	case near:
		b.warn()
		check.Status = domain.StatusWarning
		check.Detail = "spot inside barrier proximity band, vega still within bounds"
	}
	return check, nil
}

// digitalDiscontinuityCheck trips the breaker when spot is within the
// proximity band of any payoff discontinuity: the strike for plain and gold
// digitals and imminent digital-TARF fixings, either boundary for range
// digitals.
func digitalDiscontinuityCheck(b *breaker, trade *domain.Trade, market *domain.MarketState, ps *params.Set) (domain.ChallengeCheck, error) {
	var levels []float64
	if trade.ProductType == domain.ProductRangeDigital {
		if trade.RangeLower == nil || trade.RangeUpper == nil {
			return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "RangeLower/RangeUpper", Reason: "required for range digitals"}
		}
		levels = []float64{*trade.RangeLower, *trade.RangeUpper}
	} else {
		if trade.Strike == nil || *trade.Strike <= 0 {
			return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "Strike", Reason: "required for digital payoffs"}
		}
		levels = []float64{*trade.Strike}
	}

	dist := math.Inf(1)
	for _, level := range levels {
		if level <= 0 {
			return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "RangeLower/RangeUpper", Reason: "must be > 0"}
		}
		dist = math.Min(dist, math.Abs(market.Spot-level)/level)
	}

	check := domain.ChallengeCheck{
		Name:            "digital_discontinuity",
		ChallengerValue: dist,
		PrimaryValue:    ps.Breaker.DigitalProximity,
		Status:          domain.StatusPass,
	}
	if dist <= ps.Breaker.DigitalProximity {
		b.trip()
		check.Status = domain.StatusCircuitBreaker
		check.Detail = fmt.Sprintf("spot %.2f%% from a payoff discontinuity", dist*100)
	}
	return check, nil
}

// tarfBehaviorChecks verifies that a TARF near its accrual target behaves
// like a forward. Residual vega at high completion is a warning; accumulated
// gain overshooting the target on a live trade means the structure terms the
// engine margins do not match the structure that actually traded, which is
// a hard fail.
func tarfBehaviorChecks(b *breaker, trade *domain.Trade, primary *domain.PrimaryResult, ps *params.Set) ([]domain.ChallengeCheck, error) {
	if trade.Target == nil || *trade.Target <= 0 {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "Target", Reason: "required for TARF products"}
	}
	completion := trade.TargetCompletion()

	behavior := domain.ChallengeCheck{
		Name:            "tarf_behavior",
		ChallengerValue: completion,
		PrimaryValue:    ps.Breaker.TARFCompletionRatio,
		Status:          domain.StatusPass,
	}
	if completion > ps.Breaker.TARFCompletionRatio &&
		primary.ReportedVega != nil && primary.ReportedDelta != nil && *primary.ReportedDelta != 0 {
		ratio := math.Abs(*primary.ReportedVega / *primary.ReportedDelta)
		if ratio > ps.Breaker.TARFVegaDeltaRatio {
			b.warn()
			behavior.Status = domain.StatusWarning
			behavior.Detail = fmt.Sprintf("%.0f%% complete but vega/delta %.2f, structure not converging to a forward",
				completion*100, ratio)
		}
	}
	checks := []domain.ChallengeCheck{behavior}

	overshoot := domain.ChallengeCheck{
		Name:            "tarf_overshoot",
		ChallengerValue: completion,
		PrimaryValue:    ps.Breaker.TARFOvershootRatio,
		Status:          domain.StatusPass,
	}
	if completion > ps.Breaker.TARFOvershootRatio && !trade.KnockedOut {
		overshoot.Status = domain.StatusFail
		overshoot.Detail = "accumulated gain exceeds target without knock-out, trade terms are mis-specified"
	}
	checks = append(checks, overshoot)

	return checks, nil
}

// rangeObservationCheck trips the breaker when the observation rate of a
// range accrual sits inside the proximity band of either boundary.
func rangeObservationCheck(b *breaker, trade *domain.Trade, market *domain.MarketState, ps *params.Set) (domain.ChallengeCheck, error) {
	if trade.RangeLower == nil || trade.RangeUpper == nil {
		return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "RangeLower/RangeUpper", Reason: "required for range accruals"}
	}
	if market.ReferenceRate == nil {
		return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "ReferenceRate", Reason: "observation rate required for range accruals"}
	}

	ref := *market.ReferenceRate
	dist := math.Inf(1)
	for _, bound := range []float64{*trade.RangeLower, *trade.RangeUpper} {
		if bound == 0 {
			return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "RangeLower/RangeUpper", Reason: "must be non-zero"}
		}
		dist = math.Min(dist, math.Abs(ref-bound)/math.Abs(bound))
	}

	check := domain.ChallengeCheck{
		Name:            "range_observation",
		ChallengerValue: dist,
		PrimaryValue:    ps.Breaker.RangeProximity,
		Status:          domain.StatusPass,
	}
	if dist <= ps.Breaker.RangeProximity {
		b.trip()
		check.Status = domain.StatusCircuitBreaker
		check.Detail = fmt.Sprintf("observation rate %.2f%% from a range boundary", dist*100)
	}
	return check, nil
}
