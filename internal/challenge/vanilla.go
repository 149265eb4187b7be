package challenge

import (
	"fmt"
	"math"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
	"simm-challenger/internal/sensitivity"
)

// Reported scaling-function values may differ from the formula by rounding only.
const scalingFnAbsTolerance = 0.01

// Reported-to-theoretical gamma ratio band. Outside it the engine's vol
// assumptions have drifted, which is a warning rather than a defect.
const (
	vegaGammaRatioLower = 0.5
	vegaGammaRatioUpper = 2.0
)

// ScalingFunction is the curvature time-scaling factor for an option t days
// from expiry: 0.5 * min(1, 14/t), floored at one day. Saturates at 0.5
// inside two weeks and decays as 7/t beyond.
func ScalingFunction(days int) (float64, error) {
	if days <= 0 {
		return 0, &domain.NumericDomainError{Op: "ScalingFunction", Field: "DaysToExpiry", Value: float64(days), Reason: "must be > 0"}
	}
	t := math.Max(float64(days), 1.0)
	return 0.5 * math.Min(1.0, 14.0/t), nil
}

// challengeVanilla verifies single-exercise continuous-payoff options:
// the scaling function the engine applied, the curvature add-on and its
// bound, the vega-gamma relationship, delta-range sanity, and reconciliation
// of the reported Greeks against closed-form values.
func challengeVanilla(trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) ([]domain.ChallengeCheck, error) {
	if trade.Strike == nil {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "Strike", Reason: "required for vanilla options"}
	}
	if trade.TimeToExpiry == nil {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "TimeToExpiry", Reason: "required for vanilla options"}
	}
	if trade.DaysToExpiry == nil {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "DaysToExpiry", Reason: "required for the scaling function"}
	}
	if trade.OptionType != domain.OptionCall && trade.OptionType != domain.OptionPut {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "OptionType", Reason: "must be CALL or PUT"}
	}

	in := sensitivity.OptionInputs{
		Spot:         market.Spot,
		Strike:       *trade.Strike,
		TimeToExpiry: *trade.TimeToExpiry,
		Volatility:   market.Volatility,
		DomesticRate: market.DomesticRate,
		ForeignYield: market.ForeignYield,
		Notional:     trade.Notional,
	}
	modelDelta, err := sensitivity.Delta(in, trade.OptionType)
	if err != nil {
		return nil, err
	}
	modelVega, err := sensitivity.Vega(in)
	if err != nil {
		return nil, err
	}
	sf, err := ScalingFunction(*trade.DaysToExpiry)
	if err != nil {
		return nil, err
	}

	var checks []domain.ChallengeCheck

	if primary.ReportedSF != nil {
		checks = append(checks, absoluteCheck("scaling_function", sf, *primary.ReportedSF, scalingFnAbsTolerance))
	}

	// CVR = SF(t) * sigma * vega, preferring the engine's own vega so the
	// curvature bound judges its internal consistency rather than vol marks.
	vega := modelVega
	if primary.ReportedVega != nil {
		vega = *primary.ReportedVega
	}
	cvr := sf * market.Volatility * vega
	if primary.ReportedCVR != nil {
		cvr = *primary.ReportedCVR
		checks = append(checks, reconcile("curvature", sf*market.Volatility*vega, *primary.ReportedCVR,
			ps.TolerancePct(params.ToleranceCurvature)))
	}
	cvrBound := trade.Notional * market.Volatility * math.Sqrt(*trade.TimeToExpiry) * 2
	checks = append(checks, boundCheck("curvature_bound", cvr, cvrBound, domain.StatusFail,
		"curvature exceeds twice the first-order exposure"))

	if primary.ReportedVega != nil && primary.ReportedGamma != nil {
		check, err := vegaGammaCheck(*primary.ReportedVega, *primary.ReportedGamma, market.Spot, market.Volatility, *trade.TimeToExpiry)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	if primary.ReportedDelta != nil && trade.Notional > 0 {
		checks = append(checks, deltaRangeCheck(trade.OptionType, *primary.ReportedDelta, trade.Notional))
		checks = append(checks, reconcile("delta", modelDelta, *primary.ReportedDelta,
			ps.TolerancePct(params.ToleranceGreeks)))
	}
	if primary.ReportedVega != nil {
		checks = append(checks, reconcile("vega", modelVega, *primary.ReportedVega,
			ps.TolerancePct(params.ToleranceGreeks)))
	}

	return checks, nil
}

// vegaGammaCheck compares reported gamma against the gamma implied by the
// reported vega. The two Greeks come from the same surface, so a ratio far
// from one means the engine's assumptions have drifted.
func vegaGammaCheck(reportedVega, reportedGamma, spot, vol, timeToExpiry float64) (domain.ChallengeCheck, error) {
	theo, err := sensitivity.TheoreticalGamma(reportedVega, spot, vol, timeToExpiry)
	if err != nil {
		return domain.ChallengeCheck{}, err
	}
	check := domain.ChallengeCheck{
		Name:            "vega_gamma_ratio",
		ChallengerValue: theo,
		PrimaryValue:    reportedGamma,
		Status:          domain.StatusPass,
	}
	if theo == 0 {
		check.Status = domain.StatusWarning
		check.Detail = "reported vega is zero, gamma relationship cannot be derived"
		return check, nil
	}
	ratio := reportedGamma / theo
	if ratio < vegaGammaRatioLower || ratio > vegaGammaRatioUpper {
		check.Status = domain.StatusWarning
		check.Detail = fmt.Sprintf("gamma is %.2fx the vega-implied value, outside [%.1f, %.1f]",
			ratio, vegaGammaRatioLower, vegaGammaRatioUpper)
	}
	return check, nil
}

// deltaRangeCheck fails hard when the reported delta fraction is outside the
// mathematically possible range for a vanilla option.
func deltaRangeCheck(optType domain.OptionType, reportedDelta, notional float64) domain.ChallengeCheck {
	fraction := reportedDelta / notional
	check := domain.ChallengeCheck{
		Name:            "delta_range",
		ChallengerValue: fraction,
		PrimaryValue:    reportedDelta,
		Status:          domain.StatusPass,
	}
	var ok bool
	if optType == domain.OptionPut {
		ok = fraction >= -1 && fraction <= 0
	} else {
		ok = fraction >= 0 && fraction <= 1
	}
	if !ok {
		check.Status = domain.StatusFail
		check.Detail = fmt.Sprintf("delta fraction %.4f impossible for a vanilla %s", fraction, optType)
	}
	return check
}
