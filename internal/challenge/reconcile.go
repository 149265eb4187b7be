// Package challenge implements the four-tier verification of primary-engine
// margin output: linear aggregation, vanilla-option curvature, credit
// classification and the exotic circuit breaker, plus the reconciliation
// and fallback logic shared between tiers. Evaluation is pure: no I/O, no
// shared mutable state, deterministic for fixed inputs.
package challenge

import (
	"fmt"
	"math"

	"simm-challenger/internal/domain"
)

// floatTolerance is the absolute band below which a value counts as zero.
// A relative variance against a baseline this small is numeric noise.
const floatTolerance = 1e-9

// reconcile compares a challenger-computed scalar against the primary
// engine's value under a percentage tolerance band:
// PASS within tolerance, WARNING within twice the tolerance, FAIL beyond.
func reconcile(name string, challenger, primary, tolerancePct float64) domain.ChallengeCheck {
	check := domain.ChallengeCheck{
		Name:            name,
		ChallengerValue: challenger,
		PrimaryValue:    primary,
		TolerancePct:    tolerancePct,
	}

	if math.Abs(primary) < floatTolerance {
		// No meaningful relative variance against a near-zero baseline.
		// The challenger is graded absolutely instead: agreement within
		// the same band passes, anything larger fails outright.
		if math.Abs(challenger-primary) <= floatTolerance {
			check.Status = domain.StatusPass
			return check
		}
		check.Status = domain.StatusFail
		check.Detail = "primary reported zero, challenger did not"
		return check
	}

	check.VariancePct = (challenger - primary) / primary * 100
	abs := math.Abs(check.VariancePct)
	switch {
	case abs <= tolerancePct:
		check.Status = domain.StatusPass
	case abs <= 2*tolerancePct:
		check.Status = domain.StatusWarning
	default:
		check.Status = domain.StatusFail
	}
	return check
}

// absoluteCheck compares two values under an absolute tolerance. Used where
// the quantity is already dimensionless and small (risk weights, scaling
// function values) and a percentage band would be meaningless.
// Binary outcome: PASS or FAIL, no warning band.
func absoluteCheck(name string, challenger, primary, absTolerance float64) domain.ChallengeCheck {
	check := domain.ChallengeCheck{
		Name:            name,
		ChallengerValue: challenger,
		PrimaryValue:    primary,
		Status:          domain.StatusPass,
	}
	if math.Abs(challenger-primary) > absTolerance {
		check.Status = domain.StatusFail
		check.Detail = fmt.Sprintf("absolute deviation %.6f exceeds %.6f", math.Abs(challenger-primary), absTolerance)
	}
	return check
}

// boundCheck asserts value <= bound. The bound occupies the primary slot so
// reports show how much headroom remained.
func boundCheck(name string, value, bound float64, failStatus domain.CheckStatus, detail string) domain.ChallengeCheck {
	check := domain.ChallengeCheck{
		Name:            name,
		ChallengerValue: value,
		PrimaryValue:    bound,
		Status:          domain.StatusPass,
	}
	if value > bound {
		check.Status = failStatus
		check.Detail = detail
	}
	return check
}
