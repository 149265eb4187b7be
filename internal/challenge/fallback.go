package challenge

import (
	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
)

// FallbackMargin is the conservative schedule-based margin used in place of
// the primary result once a circuit breaker has fired:
// Notional * asset-class schedule factor.
func FallbackMargin(trade *domain.Trade, ps *params.Set) (float64, error) {
	if trade.Notional < 0 {
		return 0, &domain.NumericDomainError{Op: "FallbackMargin", Field: "Notional", Value: trade.Notional, Reason: "must be >= 0"}
	}
	factor, err := ps.ScheduleFactor(string(domain.AssetClassOf(trade.ProductType)))
	if err != nil {
		return 0, err
	}
	return trade.Notional * factor, nil
}
