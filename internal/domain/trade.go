package domain

// Trade represents one derivative trade as supplied by the upstream feed.
// Immutable once constructed: every tier model consumes it read-only.
// Optional fields are pointers so "not supplied" is distinguishable from zero.
type Trade struct {
	TradeID     string      // deterministic upstream identifier
	ProductType ProductType // closed tagged variant, drives tier dispatch
	Notional    float64     // in domestic currency terms
	Currency    string      // domestic currency code
	Underlying  string      // currency pair (e.g. "EUR/USD") or commodity

	// Option fields
	OptionType   OptionType // CALL or PUT when the product is an option
	Strike       *float64
	TimeToExpiry *float64 // years
	DaysToExpiry *int     // calendar days, used by the scaling function

	// Barrier fields
	BarrierStyle BarrierStyle
	BarrierLevel *float64
	UpperBarrier *float64 // second barrier for KIKO / range structures

	// Linear fields
	Direction     Direction
	FixedRate     *float64 // swap fixed leg rate
	MaturityYears *float64 // swap maturity
	ARRFeature    bool     // alternative-reference-rate leg carries a RW add-on

	// Credit fields
	ReferenceEntity string
	CreditRating    string
	SectorBucket    int // parameter-table bucket (sovereigns, financials, ...)

	// Path-dependent fields
	Target          *float64 // TARF accrual target
	AccumulatedGain *float64 // TARF gain accrued to date
	KnockedOut      bool     // TARF already terminated
	RangeLower      *float64 // range accrual lower bound
	RangeUpper      *float64 // range accrual upper bound
	DaysToWindow    *int     // time option: days until exercise window opens
}

// TargetCompletion returns accumulated gain over target, or 0 when the trade
// carries no target.
func (t *Trade) TargetCompletion() float64 {
	if t.Target == nil || t.AccumulatedGain == nil || *t.Target == 0 {
		return 0
	}
	return *t.AccumulatedGain / *t.Target
}
