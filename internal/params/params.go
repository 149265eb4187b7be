// Package params defines the versioned parameter snapshot consumed by every
// evaluation: risk weights, correlations, tolerances, schedule factors and
// circuit-breaker thresholds. A Set is immutable for the duration of a run;
// concurrent evaluations share one snapshot and a parameter change means
// loading a new version, never patching fields in place.
package params

import "fmt"

// Risk class labels used for correlations and concentration thresholds.
const (
	ClassIR   = "IR"
	ClassFX   = "FX"
	ClassCRQ  = "CRQ"
	ClassCRNQ = "CRNQ"
)

// Tolerance class labels. Checks resolve their tolerance through these,
// never through a literal at the call site.
const (
	ToleranceAggregation = "aggregation"
	ToleranceGreeks      = "greeks"
	ToleranceCurvature   = "curvature"
)

// BreakerThresholds holds the exotic circuit-breaker trigger levels.
type BreakerThresholds struct {
	// Distance-to-barrier ratios by barrier style
	BarrierProximityKO   float64 `json:"barrier_proximity_ko"`   // plain KO/KI
	BarrierProximityRKO  float64 `json:"barrier_proximity_rko"`  // reverse variants
	BarrierProximityKIKO float64 `json:"barrier_proximity_kiko"` // double barrier

	PinVegaNotionalRatio float64 `json:"pin_vega_notional_ratio"` // vega > ratio * notional arms pin risk
	DigitalProximity     float64 `json:"digital_proximity"`       // |S-K|/K for digital payoffs
	RangeProximity       float64 `json:"range_proximity"`         // reference rate vs range boundary

	TARFCompletionRatio float64 `json:"tarf_completion_ratio"` // completion above which a TARF must trade like a forward
	TARFVegaDeltaRatio  float64 `json:"tarf_vega_delta_ratio"`
	TARFOvershootRatio  float64 `json:"tarf_overshoot_ratio"` // accumulated gain / target beyond which a live TARF is mis-specified
}

// Set is one immutable, versioned parameter snapshot.
type Set struct {
	Version string `json:"version"` // e.g. "2.8+2506"

	// Interest rate risk weights by volatility group and tenor.
	IRRiskWeightsRegular map[string]float64 `json:"ir_risk_weights_regular"`
	IRRiskWeightsLow     map[string]float64 `json:"ir_risk_weights_low"`
	IRRiskWeightsHigh    map[string]float64 `json:"ir_risk_weights_high"`
	LowVolCurrencies     []string           `json:"low_vol_currencies"`
	HighVolCurrencies    []string           `json:"high_vol_currencies"`

	// FX risk weights.
	FXRiskWeightRegular float64 `json:"fx_risk_weight_regular"`
	FXRiskWeightHighVol float64 `json:"fx_risk_weight_high_vol"`

	// Credit risk weights by bucket, split qualifying / non-qualifying.
	CRQRiskWeights  map[int]float64 `json:"crq_risk_weights"`
	CRNQRiskWeights map[int]float64 `json:"crnq_risk_weights"`

	// Rating tables.
	QualifyingRatings []string `json:"qualifying_ratings"`
	DistressedRatings []string `json:"distressed_ratings"`

	// Uniform intra-class correlations and concentration thresholds.
	Correlations            map[string]float64 `json:"correlations"`
	ConcentrationThresholds map[string]float64 `json:"concentration_thresholds"`

	// Reconciliation tolerances by tolerance class, in percent.
	TolerancesPct map[string]float64 `json:"tolerances_pct"`

	// Schedule-based fallback factors by asset class.
	ScheduleFactors map[string]float64 `json:"schedule_factors"`

	Breaker BreakerThresholds `json:"breaker"`

	ARRAddOn         float64 `json:"arr_add_on"`         // risk-weight add-on for ARR-referencing legs
	RecoveryRate     float64 `json:"recovery_rate"`      // default recovery for JTD when the trade carries none
	JTDCoverageRatio float64 `json:"jtd_coverage_ratio"` // margin must cover at least this share of JTD
}

// IRRiskWeight resolves the tenor risk weight for a currency's volatility
// group. Unknown tenors are an error, not a silent default: a missing tenor
// means the caller's bucketing disagrees with the parameter version.
func (s *Set) IRRiskWeight(currency, tenor string) (float64, error) {
	table := s.IRRiskWeightsRegular
	if contains(s.LowVolCurrencies, currency) {
		table = s.IRRiskWeightsLow
	} else if contains(s.HighVolCurrencies, currency) {
		table = s.IRRiskWeightsHigh
	}
	rw, ok := table[tenor]
	if !ok {
		return 0, fmt.Errorf("params %s: no IR risk weight for tenor %q", s.Version, tenor)
	}
	return rw, nil
}

// FXRiskWeight resolves the FX risk weight for a currency.
func (s *Set) FXRiskWeight(currency string) float64 {
	if contains(s.HighVolCurrencies, currency) {
		return s.FXRiskWeightHighVol
	}
	return s.FXRiskWeightRegular
}

// CreditRiskWeight resolves the bucket risk weight for the qualifying or
// non-qualifying table.
func (s *Set) CreditRiskWeight(qualifying bool, bucket int) (float64, error) {
	table := s.CRNQRiskWeights
	label := "CRNQ"
	if qualifying {
		table = s.CRQRiskWeights
		label = "CRQ"
	}
	rw, ok := table[bucket]
	if !ok {
		return 0, fmt.Errorf("params %s: no %s risk weight for bucket %d", s.Version, label, bucket)
	}
	return rw, nil
}

// Correlation returns the uniform intra-class correlation for a risk class.
func (s *Set) Correlation(riskClass string) float64 {
	return s.Correlations[riskClass]
}

// ConcentrationThreshold returns the concentration threshold for a risk class.
func (s *Set) ConcentrationThreshold(riskClass string) float64 {
	return s.ConcentrationThresholds[riskClass]
}

// TolerancePct returns the reconciliation tolerance for a tolerance class.
func (s *Set) TolerancePct(class string) float64 {
	return s.TolerancesPct[class]
}

// ScheduleFactor returns the fallback factor for an asset class.
func (s *Set) ScheduleFactor(assetClass string) (float64, error) {
	f, ok := s.ScheduleFactors[assetClass]
	if !ok {
		return 0, fmt.Errorf("params %s: no schedule factor for asset class %q", s.Version, assetClass)
	}
	return f, nil
}

// IsQualifyingRating reports whether a rating maps to Credit Qualifying.
func (s *Set) IsQualifyingRating(rating string) bool {
	return contains(s.QualifyingRatings, rating)
}

// IsDistressedRating reports whether a rating is CCC or below.
func (s *Set) IsDistressedRating(rating string) bool {
	return contains(s.DistressedRatings, rating)
}

// BarrierProximity returns the pin-risk distance threshold for a barrier style.
func (b BreakerThresholds) BarrierProximity(style string) float64 {
	switch style {
	case "RKO", "RKI":
		return b.BarrierProximityRKO
	case "KIKO":
		return b.BarrierProximityKIKO
	default:
		return b.BarrierProximityKO
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
