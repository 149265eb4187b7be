package classifier

import (
	"errors"
	"testing"

	"simm-challenger/internal/domain"
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

func TestClassify_LinearProducts(t *testing.T) {
	market := &domain.MarketState{Spot: 1.0850}
	for _, p := range []domain.ProductType{
		domain.ProductIRS, domain.ProductBasisSwap, domain.ProductCrossCcySwap,
		domain.ProductFXForward, domain.ProductFXSwap, domain.ProductNDF,
	} {
		tier, err := Classify(&domain.Trade{TradeID: "t1", ProductType: p}, market)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if tier != domain.TierLinear {
			t.Errorf("%s: expected LINEAR, got %s", p, tier)
		}
	}
}

func TestClassify_CreditProducts(t *testing.T) {
	market := &domain.MarketState{}
	trade := &domain.Trade{TradeID: "t1", ProductType: domain.ProductCDS, CreditRating: "BBB"}
	tier, err := Classify(trade, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierCredit {
		t.Errorf("expected CREDIT, got %s", tier)
	}

	// Missing rating is a schema error, not a silent default
	_, err = Classify(&domain.Trade{TradeID: "t2", ProductType: domain.ProductCDSIndex}, market)
	var se *domain.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestClassify_DigitalsAlwaysExotic(t *testing.T) {
	market := &domain.MarketState{Spot: 1.0}
	for _, p := range []domain.ProductType{
		domain.ProductDigital, domain.ProductRangeDigital, domain.ProductGoldDigital,
		domain.ProductDigitalTARF, domain.ProductBarrier, domain.ProductRangeAccrual,
	} {
		tier, err := Classify(&domain.Trade{TradeID: "t1", ProductType: p}, market)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if tier != domain.TierExotic {
			t.Errorf("%s: expected EXOTIC, got %s", p, tier)
		}
	}
}

func TestClassify_VanillaOptionInBand(t *testing.T) {
	market := &domain.MarketState{Spot: 1.0850}
	trade := &domain.Trade{
		TradeID:     "t1",
		ProductType: domain.ProductFXOption,
		OptionType:  domain.OptionCall,
		Strike:      ptrFloat64(1.0850),
	}
	tier, err := Classify(trade, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierVanillaOption {
		t.Errorf("expected VANILLA_OPTION, got %s", tier)
	}
}

func TestClassify_MoneynessDriftReclassifies(t *testing.T) {
	trade := &domain.Trade{
		TradeID:     "t1",
		ProductType: domain.ProductFXOption,
		OptionType:  domain.OptionCall,
		Strike:      ptrFloat64(1.0),
	}

	// Deep out of band: spot/strike = 0.65 < 0.7
	tier, err := Classify(trade, &domain.MarketState{Spot: 0.65})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierExotic {
		t.Errorf("moneyness 0.65: expected EXOTIC, got %s", tier)
	}

	// Same trade back in band on a later valuation date
	tier, err = Classify(trade, &domain.MarketState{Spot: 0.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierVanillaOption {
		t.Errorf("moneyness 0.95: expected VANILLA_OPTION, got %s", tier)
	}
}

func TestClassify_OptionWithBarrierIsExotic(t *testing.T) {
	trade := &domain.Trade{
		TradeID:      "t1",
		ProductType:  domain.ProductFXOption,
		OptionType:   domain.OptionCall,
		Strike:       ptrFloat64(1.0),
		BarrierStyle: domain.BarrierKO,
	}
	tier, err := Classify(trade, &domain.MarketState{Spot: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierExotic {
		t.Errorf("expected EXOTIC for knock-feature option, got %s", tier)
	}
}

func TestClassify_TARFByCompletion(t *testing.T) {
	market := &domain.MarketState{Spot: 1.0}

	early := &domain.Trade{
		TradeID:         "t1",
		ProductType:     domain.ProductTARF,
		Target:          ptrFloat64(100_000),
		AccumulatedGain: ptrFloat64(20_000),
	}
	tier, err := Classify(early, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierVanillaOption {
		t.Errorf("completion 0.2: expected VANILLA_OPTION, got %s", tier)
	}

	late := &domain.Trade{
		TradeID:         "t2",
		ProductType:     domain.ProductTARF,
		Target:          ptrFloat64(100_000),
		AccumulatedGain: ptrFloat64(60_000),
	}
	tier, err = Classify(late, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierExotic {
		t.Errorf("completion 0.6: expected EXOTIC, got %s", tier)
	}

	// TARF without a target cannot be classified
	_, err = Classify(&domain.Trade{TradeID: "t3", ProductType: domain.ProductTARF}, market)
	var se *domain.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestClassify_TimeOptionByWindow(t *testing.T) {
	market := &domain.MarketState{Spot: 1.0}

	near := &domain.Trade{
		TradeID:      "t1",
		ProductType:  domain.ProductTimeOption,
		Strike:       ptrFloat64(1.0),
		DaysToWindow: ptrInt(10),
	}
	tier, err := Classify(near, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierExotic {
		t.Errorf("window 10d: expected EXOTIC, got %s", tier)
	}

	far := &domain.Trade{
		TradeID:      "t2",
		ProductType:  domain.ProductTimeOption,
		Strike:       ptrFloat64(1.0),
		DaysToWindow: ptrInt(90),
	}
	tier, err = Classify(far, market)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != domain.TierVanillaOption {
		t.Errorf("window 90d: expected VANILLA_OPTION, got %s", tier)
	}
}

func TestClassify_MissingStrikeIsSchemaError(t *testing.T) {
	trade := &domain.Trade{TradeID: "t1", ProductType: domain.ProductFXOption}
	_, err := Classify(trade, &domain.MarketState{Spot: 1.0})
	var se *domain.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Field != "Strike" {
		t.Errorf("expected Strike field, got %s", se.Field)
	}
}
