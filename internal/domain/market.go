package domain

// MarketState is the per-valuation-date market snapshot for one trade.
// Supplied by the upstream feed; not owned or mutated by the challenger.
type MarketState struct {
	ValuationDate string // ISO date (YYYY-MM-DD)

	Spot          float64 // underlying spot / FX rate
	Volatility    float64 // implied vol, decimal (0.12 = 12%)
	DomesticRate  float64 // domestic risk-free rate, decimal
	ForeignYield  float64 // foreign rate / dividend / storage yield; 0 for gold
	ReferenceRate *float64 // CMS or other observation rate for range structures
}
