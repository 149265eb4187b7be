package runner

import "simm-challenger/internal/domain"

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

// DemoPortfolio returns a small mixed portfolio covering all four tiers,
// including one deliberate circuit-break and one warning, for fixture-mode
// runs without a live feed.
func DemoPortfolio() []*domain.PrimaryEnvelope {
	usd := func(spot, vol float64) *domain.MarketState {
		return &domain.MarketState{
			ValuationDate: "2026-08-31",
			Spot:          spot,
			Volatility:    vol,
			DomesticRate:  0.045,
			ForeignYield:  0.025,
		}
	}

	return []*domain.PrimaryEnvelope{
		// 100M 5Y pay-fixed USD IRS, margin consistent with the 5Y weight
		{
			Trade: &domain.Trade{
				TradeID:       "DEMO-IRS-001",
				ProductType:   domain.ProductIRS,
				Notional:      100e6,
				Currency:      "USD",
				Direction:     domain.DirectionPayFixed,
				FixedRate:     fptr(0.045),
				MaturityYears: fptr(5),
			},
			Primary: &domain.PrimaryResult{
				TradeID: "DEMO-IRS-001",
				Delta: []domain.SensitivityPoint{
					{Tenor: "5Y", Bucket: "USD", Value: -43_900, ReportedRW: 0.0441, Concentration: 1.0},
				},
				ReportedDelta: fptr(-43_900),
				TotalMargin:   1_936.0,
			},
			Market: usd(1.0, 0.0),
		},
		// EUR/USD ATM call, three months out
		{
			Trade: &domain.Trade{
				TradeID:      "DEMO-OPT-001",
				ProductType:  domain.ProductFXOption,
				Notional:     10e6,
				Currency:     "USD",
				Underlying:   "EUR/USD",
				OptionType:   domain.OptionCall,
				Strike:       fptr(1.0850),
				TimeToExpiry: fptr(0.25),
				DaysToExpiry: iptr(91),
			},
			Primary: &domain.PrimaryResult{
				TradeID:       "DEMO-OPT-001",
				ReportedDelta: fptr(5_417_205),
				ReportedVega:  fptr(21_370),
				ReportedGamma: fptr(3.0e7),
				ReportedSF:    fptr(0.076923),
				ReportedCVR:   fptr(197.0),
				TotalMargin:   250_000,
			},
			Market: usd(1.0850, 0.12),
		},
		// Distressed single-name CDS with thin margin: JTD coverage warning
		{
			Trade: &domain.Trade{
				TradeID:         "DEMO-CDS-001",
				ProductType:     domain.ProductCDS,
				Notional:        10e6,
				Currency:        "USD",
				ReferenceEntity: "DISTRESSED-CORP",
				CreditRating:    "CCC",
				SectorBucket:    8,
			},
			Primary: &domain.PrimaryResult{
				TradeID:            "DEMO-CDS-001",
				ReportedQualifying: bptr(false),
				ReportedBucket:     8,
				DefaultProbability: fptr(0.30),
				TotalMargin:        500_000,
			},
			Market: usd(1.0, 0.0),
		},
		// KO barrier pinned against the barrier with outsized vega: breaker
		{
			Trade: &domain.Trade{
				TradeID:      "DEMO-BAR-001",
				ProductType:  domain.ProductBarrier,
				Notional:     10e6,
				Currency:     "USD",
				OptionType:   domain.OptionCall,
				Strike:       fptr(0.95),
				BarrierStyle: domain.BarrierKO,
				BarrierLevel: fptr(1.0),
			},
			Primary: &domain.PrimaryResult{
				TradeID:      "DEMO-BAR-001",
				ReportedVega: fptr(6e6),
				TotalMargin:  400_000,
			},
			Market: usd(0.985, 0.12),
		},
		// TARF near completion, still carrying option-like vega
		{
			Trade: &domain.Trade{
				TradeID:         "DEMO-TARF-001",
				ProductType:     domain.ProductTARF,
				Notional:        10e6,
				Currency:        "USD",
				Target:          fptr(100_000),
				AccumulatedGain: fptr(90_000),
			},
			Primary: &domain.PrimaryResult{
				TradeID:       "DEMO-TARF-001",
				ReportedDelta: fptr(1e6),
				ReportedVega:  fptr(600_000),
				TotalMargin:   200_000,
			},
			Market: usd(1.0, 0.12),
		},
		// Digital comfortably away from the strike
		{
			Trade: &domain.Trade{
				TradeID:     "DEMO-DIG-001",
				ProductType: domain.ProductDigital,
				Notional:    5e6,
				Currency:    "USD",
				OptionType:  domain.OptionCall,
				Strike:      fptr(1.0),
			},
			Primary: &domain.PrimaryResult{
				TradeID:     "DEMO-DIG-001",
				TotalMargin: 100_000,
			},
			Market: usd(1.05, 0.12),
		},
	}
}
