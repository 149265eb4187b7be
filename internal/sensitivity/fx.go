package sensitivity

import "simm-challenger/internal/domain"

// ForwardDelta returns the FX delta of a forward: the notional in foreign
// currency terms, signed by direction. Forwards are linear, so their vega is
// identically zero; a primary engine reporting non-zero vega on a forward
// has misclassified or mispriced the trade.
func ForwardDelta(notional float64, direction domain.Direction) (float64, error) {
	if notional < 0 {
		return 0, &domain.NumericDomainError{Op: "ForwardDelta", Field: "Notional", Value: notional, Reason: "must be >= 0"}
	}
	if direction == domain.DirectionSellForeign {
		return -notional, nil
	}
	return notional, nil
}

// ForwardVega is zero for any linear forward. Kept as a named function so the
// linear tier compares against the model value rather than a literal.
func ForwardVega() float64 { return 0 }
