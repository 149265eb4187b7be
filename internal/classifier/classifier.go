// Package classifier routes a trade to one of the four challenge tiers.
// The rule table is static but the outcome is state-dependent: moneyness,
// target completion and window distance shift with the market, so a trade
// must be reclassified on every valuation date, never cached for its life.
package classifier

import (
	"simm-challenger/internal/domain"
)

// Moneyness band within which a single-exercise option is still treated as
// vanilla. Outside the band the Greeks stop resembling textbook values and
// the exotic breaker takes over.
const (
	moneynessLower = 0.7
	moneynessUpper = 1.3
)

// A generic TARF trades like a strip of vanillas early in its life and like
// a forward near its target; past this completion it is routed to the
// exotic tier for behavioral checks.
const tarfExoticCompletion = 0.5

// A time option inside this many days of its exercise window opening is
// treated as exotic.
const timeOptionWindowDays = 14

// Classify maps a trade plus live market state to a challenge tier.
// Returns a SchemaError when the trade lacks a field its product requires.
func Classify(trade *domain.Trade, market *domain.MarketState) (domain.Tier, error) {
	p := trade.ProductType

	switch {
	case p.IsLinear():
		return domain.TierLinear, nil

	case p.IsCredit():
		if trade.CreditRating == "" {
			return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "CreditRating", Reason: "required for credit products"}
		}
		return domain.TierCredit, nil

	// Discontinuous or path-dependent payoffs never qualify as vanilla.
	case p.IsDigital(), p == domain.ProductBarrier, p == domain.ProductRangeAccrual:
		return domain.TierExotic, nil

	case p == domain.ProductTARF:
		if trade.Target == nil {
			return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "Target", Reason: "required for TARF products"}
		}
		if trade.TargetCompletion() >= tarfExoticCompletion {
			return domain.TierExotic, nil
		}
		return domain.TierVanillaOption, nil

	case p == domain.ProductTimeOption:
		if trade.DaysToWindow == nil {
			return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "DaysToWindow", Reason: "required for time options"}
		}
		if *trade.DaysToWindow <= timeOptionWindowDays {
			return domain.TierExotic, nil
		}
		return classifyVanilla(trade, market)

	case p == domain.ProductFXOption, p == domain.ProductGoldOption, p == domain.ProductSwaption:
		return classifyVanilla(trade, market)
	}

	return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "ProductType", Reason: "unknown product type " + string(p)}
}

// classifyVanilla resolves a single-exercise continuous-payoff option:
// vanilla while moneyness stays in band and no knock feature is attached,
// exotic once the live state has drifted into a discontinuity zone.
func classifyVanilla(trade *domain.Trade, market *domain.MarketState) (domain.Tier, error) {
	if trade.Strike == nil {
		return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "Strike", Reason: "required for option products"}
	}
	if *trade.Strike <= 0 {
		return "", &domain.SchemaError{TradeID: trade.TradeID, Field: "Strike", Reason: "must be > 0"}
	}
	if trade.BarrierStyle != domain.BarrierNone {
		return domain.TierExotic, nil
	}
	moneyness := market.Spot / *trade.Strike
	if moneyness < moneynessLower || moneyness > moneynessUpper {
		return domain.TierExotic, nil
	}
	return domain.TierVanillaOption, nil
}
