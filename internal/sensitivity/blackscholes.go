// Package sensitivity provides independent closed-form sensitivities used as
// ground truth when challenging the primary engine: Black-Scholes Greeks for
// vanilla options, DV01 for swaps, and signed delta for FX forwards.
// All functions are pure and reject out-of-domain inputs instead of
// returning NaN.
package sensitivity

import (
	"math"

	"simm-challenger/internal/domain"
)

// OptionInputs holds the parameters of a single European option.
type OptionInputs struct {
	Spot         float64 // S
	Strike       float64 // K
	TimeToExpiry float64 // T in years
	Volatility   float64 // sigma, decimal
	DomesticRate float64 // r
	ForeignYield float64 // q: foreign rate for FX, 0 for gold
	Notional     float64
}

// validate rejects inputs outside the Black-Scholes domain.
func (in OptionInputs) validate(op string) error {
	switch {
	case in.TimeToExpiry <= 0:
		return &domain.NumericDomainError{Op: op, Field: "TimeToExpiry", Value: in.TimeToExpiry, Reason: "must be > 0"}
	case in.Volatility <= 0:
		return &domain.NumericDomainError{Op: op, Field: "Volatility", Value: in.Volatility, Reason: "must be > 0"}
	case in.Spot <= 0:
		return &domain.NumericDomainError{Op: op, Field: "Spot", Value: in.Spot, Reason: "must be > 0"}
	case in.Strike <= 0:
		return &domain.NumericDomainError{Op: op, Field: "Strike", Value: in.Strike, Reason: "must be > 0"}
	case in.Notional < 0:
		return &domain.NumericDomainError{Op: op, Field: "Notional", Value: in.Notional, Reason: "must be >= 0"}
	}
	return nil
}

// d1 per Black-Scholes: [ln(S/K) + (r - q + sigma^2/2) T] / (sigma sqrt(T)).
func d1(in OptionInputs) float64 {
	return (math.Log(in.Spot/in.Strike) + (in.DomesticRate-in.ForeignYield+0.5*in.Volatility*in.Volatility)*in.TimeToExpiry) /
		(in.Volatility * math.Sqrt(in.TimeToExpiry))
}

// d2 = d1 - sigma sqrt(T).
func d2(in OptionInputs) float64 {
	return d1(in) - in.Volatility*math.Sqrt(in.TimeToExpiry)
}

// Delta returns the option delta scaled by notional.
// Call: e^(-qT) N(d1); put: -e^(-qT) N(-d1).
func Delta(in OptionInputs, optType domain.OptionType) (float64, error) {
	if err := in.validate("Delta"); err != nil {
		return 0, err
	}
	df := math.Exp(-in.ForeignYield * in.TimeToExpiry)
	if optType == domain.OptionPut {
		return -df * normCDF(-d1(in)) * in.Notional, nil
	}
	return df * normCDF(d1(in)) * in.Notional, nil
}

// Vega returns the option vega per 1% vol move, scaled by notional:
// S e^(-qT) sqrt(T) n(d1) * 0.01.
func Vega(in OptionInputs) (float64, error) {
	if err := in.validate("Vega"); err != nil {
		return 0, err
	}
	df := math.Exp(-in.ForeignYield * in.TimeToExpiry)
	return in.Spot * df * math.Sqrt(in.TimeToExpiry) * normPDF(d1(in)) * 0.01 * in.Notional, nil
}

// Gamma returns the option gamma scaled by notional:
// e^(-qT) n(d1) / (S sigma sqrt(T)).
func Gamma(in OptionInputs) (float64, error) {
	if err := in.validate("Gamma"); err != nil {
		return 0, err
	}
	df := math.Exp(-in.ForeignYield * in.TimeToExpiry)
	return df * normPDF(d1(in)) / (in.Spot * in.Volatility * math.Sqrt(in.TimeToExpiry)) * in.Notional, nil
}

// Price returns the Black-Scholes option premium scaled by notional.
func Price(in OptionInputs, optType domain.OptionType) (float64, error) {
	if err := in.validate("Price"); err != nil {
		return 0, err
	}
	dfq := math.Exp(-in.ForeignYield * in.TimeToExpiry)
	dfr := math.Exp(-in.DomesticRate * in.TimeToExpiry)
	v1, v2 := d1(in), d2(in)
	if optType == domain.OptionPut {
		return (in.Strike*dfr*normCDF(-v2) - in.Spot*dfq*normCDF(-v1)) * in.Notional, nil
	}
	return (in.Spot*dfq*normCDF(v1) - in.Strike*dfr*normCDF(v2)) * in.Notional, nil
}

// TheoreticalGamma approximates gamma from a reported vega:
// Gamma ~= Vega / (S^2 sigma sqrt(T)). Vega here is the per-1% figure, so it
// is rescaled to a per-unit-vol figure first.
func TheoreticalGamma(vegaPer1Pct, spot, vol, timeToExpiry float64) (float64, error) {
	if timeToExpiry <= 0 {
		return 0, &domain.NumericDomainError{Op: "TheoreticalGamma", Field: "TimeToExpiry", Value: timeToExpiry, Reason: "must be > 0"}
	}
	if vol <= 0 {
		return 0, &domain.NumericDomainError{Op: "TheoreticalGamma", Field: "Volatility", Value: vol, Reason: "must be > 0"}
	}
	if spot <= 0 {
		return 0, &domain.NumericDomainError{Op: "TheoreticalGamma", Field: "Spot", Value: spot, Reason: "must be > 0"}
	}
	return (vegaPer1Pct / 0.01) / (spot * spot * vol * math.Sqrt(timeToExpiry)), nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
