package domain

import "fmt"

// SchemaError reports a Trade or MarketState missing a field the classified
// tier requires. Raised before any numeric work; nothing is defaulted.
type SchemaError struct {
	TradeID string
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for trade %s: field %s: %s", e.TradeID, e.Field, e.Reason)
}

// NumericDomainError reports inputs outside the domain of a closed-form
// formula (T <= 0, sigma <= 0, negative notional). The evaluation of the
// single trade aborts; NaN or Inf must never reach a ChallengeCheck.
type NumericDomainError struct {
	Op     string // formula that rejected the input
	Field  string
	Value  float64
	Reason string
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("%s: %s=%g out of numeric domain: %s", e.Op, e.Field, e.Value, e.Reason)
}
