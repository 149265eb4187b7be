package challenge

import (
	"fmt"
	"math"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
	"simm-challenger/internal/sensitivity"
)

// Reported risk weights may differ from the table by rounding only.
const riskWeightAbsTolerance = 0.001

// Subadditivity headroom: the correlated aggregation can never exceed the
// simple sum of absolute weighted sensitivities by more than 1%.
const subadditivityHeadroom = 1.01

// challengeLinear verifies swaps, forwards and NDFs: per-bucket risk-weight
// consistency against the parameter table, the subadditivity bound on the
// correlated aggregation, directional sign of the reported delta, and the
// reconciliation of the aggregated margin.
func challengeLinear(trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) ([]domain.ChallengeCheck, error) {
	if len(primary.Delta) == 0 {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "Delta", Reason: "linear tier requires bucketed delta sensitivities"}
	}

	riskClass := params.ClassFX
	if domain.AssetClassOf(trade.ProductType) == domain.AssetClassInterestRate ||
		trade.ProductType == domain.ProductCrossCcySwap {
		riskClass = params.ClassIR
	}

	// Concentration scalar recomputed from the reported sensitivities when
	// the primary engine did not supply one: CR = max(1, sqrt(sum/threshold)).
	var totalAbs float64
	for _, pt := range primary.Delta {
		totalAbs += math.Abs(pt.Value)
	}
	computedCR := 1.0
	if threshold := ps.ConcentrationThreshold(riskClass); threshold > 0 {
		computedCR = math.Max(1.0, math.Sqrt(totalAbs/threshold))
	}

	var checks []domain.ChallengeCheck
	var ws []float64
	var sumAbsWS float64

	for _, pt := range primary.Delta {
		var baseRW float64
		if riskClass == params.ClassIR && pt.Tenor != "" {
			rw, err := ps.IRRiskWeight(trade.Currency, pt.Tenor)
			if err != nil {
				return nil, err
			}
			baseRW = rw
		} else {
			baseRW = ps.FXRiskWeight(trade.Currency)
		}

		expectedRW := baseRW
		label := pt.Tenor
		if label == "" {
			label = pt.Bucket
		}
		if trade.ARRFeature {
			// ARR legs carry a fixed risk-weight add-on on top of the table value.
			expectedRW += ps.ARRAddOn
			checks = append(checks, absoluteCheck(
				fmt.Sprintf("arr_adjustment[%s]", label), expectedRW, pt.ReportedRW, riskWeightAbsTolerance))
		} else {
			checks = append(checks, absoluteCheck(
				fmt.Sprintf("risk_weight[%s]", label), expectedRW, pt.ReportedRW, riskWeightAbsTolerance))
		}

		cr := pt.Concentration
		if cr < 1 {
			cr = computedCR
		}
		w := expectedRW * pt.Value * cr
		ws = append(ws, w)
		sumAbsWS += math.Abs(w)
	}

	// K = sqrt((1-rho) * sum(WS^2) + rho * (sum WS)^2) for a uniform
	// intra-class correlation.
	rho := ps.Correlation(riskClass)
	var sumWS, sumSqWS float64
	for _, w := range ws {
		sumWS += w
		sumSqWS += w * w
	}
	k := math.Sqrt((1-rho)*sumSqWS + rho*sumWS*sumWS)

	checks = append(checks, boundCheck("subadditivity_bound", k, subadditivityHeadroom*sumAbsWS,
		domain.StatusFail, "correlated aggregation exceeds subadditive bound, computation bug in primary engine"))

	signChecks, err := linearSignChecks(trade, primary, ps)
	if err != nil {
		return nil, err
	}
	checks = append(checks, signChecks...)

	checks = append(checks, reconcile("margin_aggregation", k, primary.TotalMargin,
		ps.TolerancePct(params.ToleranceAggregation)))

	return checks, nil
}

// linearSignChecks recomputes the directional sensitivity from trade terms
// and fails on a sign mismatch: a pay-fixed swap reporting positive DV01 or
// a buy-foreign forward reporting negative delta is mispriced, whatever the
// magnitude says.
func linearSignChecks(trade *domain.Trade, primary *domain.PrimaryResult, ps *params.Set) ([]domain.ChallengeCheck, error) {
	reported := aggregateDelta(primary)

	switch trade.ProductType {
	case domain.ProductIRS, domain.ProductBasisSwap, domain.ProductCrossCcySwap:
		if trade.Direction != domain.DirectionPayFixed && trade.Direction != domain.DirectionReceiveFixed {
			return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "Direction", Reason: "swap requires PAY_FIXED or RECEIVE_FIXED"}
		}
		if trade.FixedRate == nil || trade.MaturityYears == nil {
			return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "FixedRate/MaturityYears", Reason: "required for swap DV01"}
		}
		dv01, err := sensitivity.SwapDV01(trade.Notional, *trade.FixedRate, *trade.MaturityYears, trade.Direction)
		if err != nil {
			return nil, err
		}
		checks := []domain.ChallengeCheck{
			signCheck("dv01_sign", dv01, reported),
			reconcile("dv01", dv01, reported, ps.TolerancePct(params.ToleranceGreeks)),
		}
		return checks, nil

	case domain.ProductFXForward, domain.ProductFXSwap, domain.ProductNDF:
		if trade.Direction != domain.DirectionBuyForeign && trade.Direction != domain.DirectionSellForeign {
			return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "Direction", Reason: "forward requires BUY_FOREIGN or SELL_FOREIGN"}
		}
		delta, err := sensitivity.ForwardDelta(trade.Notional, trade.Direction)
		if err != nil {
			return nil, err
		}
		checks := []domain.ChallengeCheck{
			signCheck("delta_sign", delta, reported),
			reconcile("forward_delta", delta, reported, ps.TolerancePct(params.ToleranceGreeks)),
		}
		// A linear forward has exactly zero vega. Non-zero reported vega means
		// the primary engine misclassified or mispriced the trade.
		if primary.ReportedVega != nil {
			checks = append(checks, absoluteCheck("forward_vega", sensitivity.ForwardVega(), *primary.ReportedVega, 1e-9))
		}
		return checks, nil
	}

	return nil, nil
}

func signCheck(name string, model, reported float64) domain.ChallengeCheck {
	check := domain.ChallengeCheck{
		Name:            name,
		ChallengerValue: model,
		PrimaryValue:    reported,
		Status:          domain.StatusPass,
	}
	if model*reported < 0 || (model != 0 && reported == 0) {
		check.Status = domain.StatusFail
		check.Detail = "reported sensitivity has the wrong sign for the trade direction"
	}
	return check
}

// aggregateDelta prefers the engine's reported aggregate and falls back to
// summing the bucketed points.
func aggregateDelta(primary *domain.PrimaryResult) float64 {
	if primary.ReportedDelta != nil {
		return *primary.ReportedDelta
	}
	var sum float64
	for _, pt := range primary.Delta {
		sum += pt.Value
	}
	return sum
}
