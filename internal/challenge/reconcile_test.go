package challenge

import (
	"math"
	"math/rand"
	"testing"

	"simm-challenger/internal/domain"
)

func TestReconcile_ToleranceBands(t *testing.T) {
	// 5% tolerance: PASS within 5, WARNING within 10, FAIL beyond
	cases := []struct {
		name       string
		challenger float64
		primary    float64
		want       domain.CheckStatus
	}{
		{"exact match", 100.0, 100.0, domain.StatusPass},
		{"within tolerance", 104.0, 100.0, domain.StatusPass},
		{"at tolerance", 105.0, 100.0, domain.StatusPass},
		{"warning band", 108.0, 100.0, domain.StatusWarning},
		{"at twice tolerance", 110.0, 100.0, domain.StatusWarning},
		{"beyond warning", 111.0, 100.0, domain.StatusFail},
		{"negative variance fail", 80.0, 100.0, domain.StatusFail},
	}
	for _, c := range cases {
		check := reconcile("margin", c.challenger, c.primary, 5.0)
		if check.Status != c.want {
			t.Errorf("%s: expected %s, got %s (variance %.2f%%)", c.name, c.want, check.Status, check.VariancePct)
		}
	}
}

func TestReconcile_SignedVariance(t *testing.T) {
	check := reconcile("margin", 90.0, 100.0, 5.0)
	if math.Abs(check.VariancePct-(-10.0)) > 1e-9 {
		t.Errorf("expected variance -10%%, got %f", check.VariancePct)
	}
}

func TestReconcile_ZeroPrimary(t *testing.T) {
	// Zero baseline: exact agreement passes, anything else fails outright
	if got := reconcile("vega", 0, 0, 5.0).Status; got != domain.StatusPass {
		t.Errorf("zero vs zero: expected PASS, got %s", got)
	}
	if got := reconcile("vega", 10.0, 0, 5.0).Status; got != domain.StatusFail {
		t.Errorf("nonzero vs zero: expected FAIL, got %s", got)
	}
}

func TestReconcile_NearZeroPrimary(t *testing.T) {
	// Noise-level primary against noise-level challenger must not blow up
	// into an astronomical relative variance; both sit inside the absolute
	// zero band and agree.
	check := reconcile("vega", 1e-9, 1e-12, 5.0)
	if check.Status != domain.StatusPass {
		t.Errorf("noise vs noise: expected PASS, got %s (variance %.2f%%)", check.Status, check.VariancePct)
	}

	// A genuinely nonzero challenger against a near-zero primary still fails
	if got := reconcile("vega", 10.0, 1e-12, 5.0).Status; got != domain.StatusFail {
		t.Errorf("nonzero vs near-zero: expected FAIL, got %s", got)
	}

	// A primary just outside the band keeps the relative grading
	if got := reconcile("vega", 100.0, 100.0, 5.0).Status; got != domain.StatusPass {
		t.Errorf("normal magnitudes: expected PASS, got %s", got)
	}
}

func TestAbsoluteCheck(t *testing.T) {
	if got := absoluteCheck("risk_weight", 0.0441, 0.0445, 0.001).Status; got != domain.StatusPass {
		t.Errorf("deviation 0.0004: expected PASS, got %s", got)
	}
	if got := absoluteCheck("risk_weight", 0.0441, 0.0519, 0.001).Status; got != domain.StatusFail {
		t.Errorf("deviation 0.0078: expected FAIL, got %s", got)
	}
}

func TestScalingFunction(t *testing.T) {
	// Saturates at 0.5 inside two weeks
	for _, days := range []int{1, 7, 14} {
		sf, err := ScalingFunction(days)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sf != 0.5 {
			t.Errorf("SF(%d): expected 0.5, got %f", days, sf)
		}
	}

	// Beyond 14 days it decays as 7/t: SF(30) = 0.5 * 14/30 ≈ 0.2333
	sf, err := ScalingFunction(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sf-0.23333333) > 1e-4 {
		t.Errorf("SF(30): expected ≈0.2333, got %f", sf)
	}

	if _, err := ScalingFunction(0); err == nil {
		t.Error("SF(0): expected NumericDomainError")
	}
	if _, err := ScalingFunction(-5); err == nil {
		t.Error("SF(-5): expected NumericDomainError")
	}
}

func checkSubadditivity(t *testing.T, ws []float64, rho float64) {
	t.Helper()
	var sumWS, sumSq, sumAbs float64
	for _, w := range ws {
		sumWS += w
		sumSq += w * w
		sumAbs += math.Abs(w)
	}
	k := math.Sqrt((1-rho)*sumSq + rho*sumWS*sumWS)
	if k > 1.01*sumAbs {
		t.Errorf("ws=%v rho=%.2f: K=%f exceeds bound %f", ws, rho, k, 1.01*sumAbs)
	}
}

func TestSubadditivityHoldsForArbitraryWeights(t *testing.T) {
	// K = sqrt((1-rho) sum WS^2 + rho (sum WS)^2) can never exceed
	// 1.01 * sum |WS| for rho in [0,1], whatever the signs of the weights.
	sets := [][]float64{
		{1936.0},
		{100, 200, 300},
		{-100, 200, -300},
		{1e6, -1e6},
		{0.001, -0.002, 0.003, -0.004},
	}
	for _, ws := range sets {
		for _, rho := range []float64{0, 0.5, 0.97, 1.0} {
			checkSubadditivity(t, ws, rho)
		}
	}
}

func TestSubadditivityHoldsForRandomWeights(t *testing.T) {
	// Signed weights across nine orders of magnitude, random bucket counts,
	// random correlation. Fixed seed keeps failures reproducible.
	rng := rand.New(rand.NewSource(2506))
	for i := 0; i < 10_000; i++ {
		ws := make([]float64, 1+rng.Intn(8))
		for j := range ws {
			ws[j] = (rng.Float64()*2 - 1) * math.Pow(10, float64(rng.Intn(9)-2))
		}
		checkSubadditivity(t, ws, rng.Float64())
	}
}
