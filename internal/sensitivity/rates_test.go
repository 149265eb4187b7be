package sensitivity

import (
	"math"
	"testing"

	"simm-challenger/internal/domain"
)

func TestSwapDV01_PayFixed(t *testing.T) {
	// 100M 5Y pay-fixed at 3.5%:
	// ModDuration = (1 - 1.035^-5) / 0.035 ≈ 4.51505
	// DV01 = -100e6 * 4.51505 * 0.0001 ≈ -45,150.5
	dv01, err := SwapDV01(100e6, 0.035, 5, domain.DirectionPayFixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(dv01-(-45_150.5)) > 1.0 {
		t.Errorf("expected DV01 ≈ -45150.5, got %f", dv01)
	}
}

func TestSwapDV01_ReceiveFixedFlipsSign(t *testing.T) {
	pay, err := SwapDV01(100e6, 0.035, 5, domain.DirectionPayFixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, err := SwapDV01(100e6, 0.035, 5, domain.DirectionReceiveFixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != -pay {
		t.Errorf("receive-fixed DV01 %f should be the negation of pay-fixed %f", rec, pay)
	}
}

func TestSwapDV01_RejectsBadInputs(t *testing.T) {
	if _, err := SwapDV01(-1, 0.035, 5, domain.DirectionPayFixed); err == nil {
		t.Error("expected error for negative notional")
	}
	if _, err := SwapDV01(100e6, 0, 5, domain.DirectionPayFixed); err == nil {
		t.Error("expected error for zero fixed rate")
	}
	if _, err := SwapDV01(100e6, 0.035, 0, domain.DirectionPayFixed); err == nil {
		t.Error("expected error for zero maturity")
	}
}

func TestForwardDelta_Direction(t *testing.T) {
	buy, err := ForwardDelta(25e6, domain.DirectionBuyForeign)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buy != 25e6 {
		t.Errorf("expected buy-foreign delta 25e6, got %f", buy)
	}

	sell, err := ForwardDelta(25e6, domain.DirectionSellForeign)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sell != -25e6 {
		t.Errorf("expected sell-foreign delta -25e6, got %f", sell)
	}

	if _, err := ForwardDelta(-1, domain.DirectionBuyForeign); err == nil {
		t.Error("expected error for negative notional")
	}
}

func TestForwardVega_Zero(t *testing.T) {
	if v := ForwardVega(); v != 0 {
		t.Errorf("forward vega must be exactly zero, got %f", v)
	}
}
