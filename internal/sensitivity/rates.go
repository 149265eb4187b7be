package sensitivity

import (
	"math"

	"simm-challenger/internal/domain"
)

// SwapDV01 returns the DV01 of a par interest rate swap:
// -Notional * ModifiedDuration * 0.0001, with
// ModifiedDuration ~= (1 - (1+r)^-n) / r. Pay-fixed positions lose value as
// rates rise (negative DV01); the sign flips for receive-fixed.
func SwapDV01(notional, fixedRate, maturityYears float64, direction domain.Direction) (float64, error) {
	if notional < 0 {
		return 0, &domain.NumericDomainError{Op: "SwapDV01", Field: "Notional", Value: notional, Reason: "must be >= 0"}
	}
	if maturityYears <= 0 {
		return 0, &domain.NumericDomainError{Op: "SwapDV01", Field: "MaturityYears", Value: maturityYears, Reason: "must be > 0"}
	}
	if fixedRate <= 0 {
		return 0, &domain.NumericDomainError{Op: "SwapDV01", Field: "FixedRate", Value: fixedRate, Reason: "must be > 0"}
	}

	modDuration := (1 - math.Pow(1+fixedRate, -maturityYears)) / fixedRate
	dv01 := -notional * modDuration * 0.0001

	if direction == domain.DirectionReceiveFixed {
		return -dv01, nil
	}
	return dv01, nil
}
