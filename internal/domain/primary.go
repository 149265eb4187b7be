package domain

// SensitivityPoint is one bucketed delta sensitivity as reported by the
// primary engine, carrying the risk weight and concentration factor the
// engine claims to have applied.
type SensitivityPoint struct {
	Tenor         string  // "2W" .. "30Y" for IR; empty for FX/credit
	Bucket        string  // currency or parameter-table bucket label
	Value         float64 // s_k
	ReportedRW    float64 // RW_k the primary engine used
	Concentration float64 // CR_k >= 1; 0 means not reported, challenger recomputes
}

// PrimaryResult is the margin output of the primary engine for one trade.
// It is the object under challenge: treated as an opaque, untrusted input
// and never corrected in place.
type PrimaryResult struct {
	TradeID string

	Delta         []SensitivityPoint
	ReportedDelta *float64 // aggregate delta (options, forwards)
	ReportedVega  *float64
	ReportedGamma *float64
	ReportedCVR   *float64 // curvature risk add-on
	ReportedSF    *float64 // scaling function value the engine applied

	// Credit classification as reported
	ReportedQualifying *bool
	ReportedBucket     int
	DefaultProbability *float64
	RecoveryRate       *float64

	TotalMargin float64
}

// PrimaryEnvelope bundles one trade with its primary margin result and the
// market snapshot it was computed under, as delivered by the primary
// engine's result stream.
type PrimaryEnvelope struct {
	Trade   *Trade
	Primary *PrimaryResult
	Market  *MarketState
}
