package challenge

import (
	"fmt"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/params"
)

// challengeCredit verifies single-name and index CDS: the qualifying vs
// non-qualifying rating split, the bucket-specific risk weight, and for
// distressed names whether the reported margin covers jump-to-default risk.
// Misclassification alone can distort margin by a factor of two to four, so
// the classification check is a hard FAIL, never graded on variance.
func challengeCredit(trade *domain.Trade, primary *domain.PrimaryResult, market *domain.MarketState, ps *params.Set) ([]domain.ChallengeCheck, error) {
	if trade.CreditRating == "" {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "CreditRating", Reason: "required for credit products"}
	}
	if trade.SectorBucket == 0 {
		return nil, &domain.SchemaError{TradeID: trade.TradeID, Field: "SectorBucket", Reason: "required for bucket risk-weight lookup"}
	}

	qualifying := ps.IsQualifyingRating(trade.CreditRating)

	var checks []domain.ChallengeCheck

	classCheck := domain.ChallengeCheck{
		Name:            "credit_classification",
		ChallengerValue: boolToFloat(qualifying),
		Status:          domain.StatusPass,
	}
	switch {
	case primary.ReportedQualifying == nil:
		classCheck.Status = domain.StatusFail
		classCheck.Detail = "primary engine did not report a CRQ/CRNQ classification"
	case *primary.ReportedQualifying != qualifying:
		classCheck.PrimaryValue = boolToFloat(*primary.ReportedQualifying)
		classCheck.Status = domain.StatusFail
		classCheck.Detail = fmt.Sprintf("rating %s maps to qualifying=%t, engine reported %t",
			trade.CreditRating, qualifying, *primary.ReportedQualifying)
	default:
		classCheck.PrimaryValue = boolToFloat(*primary.ReportedQualifying)
	}
	checks = append(checks, classCheck)

	expectedRW, err := ps.CreditRiskWeight(qualifying, trade.SectorBucket)
	if err != nil {
		return nil, err
	}

	bucketCheck := domain.ChallengeCheck{
		Name:            "bucket_assignment",
		ChallengerValue: float64(trade.SectorBucket),
		PrimaryValue:    float64(primary.ReportedBucket),
		Status:          domain.StatusPass,
	}
	if primary.ReportedBucket != trade.SectorBucket {
		bucketCheck.Status = domain.StatusFail
		bucketCheck.Detail = fmt.Sprintf("trade belongs to bucket %d, engine margined bucket %d",
			trade.SectorBucket, primary.ReportedBucket)
	}
	checks = append(checks, bucketCheck)

	// Bucket risk weights differ materially between buckets and between the
	// qualifying and non-qualifying tables, so the comparison is always
	// bucket-specific.
	for _, pt := range primary.Delta {
		checks = append(checks, absoluteCheck(
			fmt.Sprintf("bucket_risk_weight[%d]", trade.SectorBucket), expectedRW, pt.ReportedRW, riskWeightAbsTolerance))
	}

	if ps.IsDistressedRating(trade.CreditRating) {
		check, err := jtdCoverageCheck(trade, primary, ps)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	return checks, nil
}

// jtdCoverageCheck warns when the reported margin cannot absorb an abrupt
// default of a distressed name: JTD = Notional * (1 - Recovery) * PD.
func jtdCoverageCheck(trade *domain.Trade, primary *domain.PrimaryResult, ps *params.Set) (domain.ChallengeCheck, error) {
	if primary.DefaultProbability == nil {
		return domain.ChallengeCheck{}, &domain.SchemaError{TradeID: trade.TradeID, Field: "DefaultProbability", Reason: "required for distressed-rating JTD coverage"}
	}
	recovery := ps.RecoveryRate
	if primary.RecoveryRate != nil {
		recovery = *primary.RecoveryRate
	}
	jtd := trade.Notional * (1 - recovery) * *primary.DefaultProbability

	required := ps.JTDCoverageRatio * jtd
	check := domain.ChallengeCheck{
		Name:            "jtd_coverage",
		ChallengerValue: required,
		PrimaryValue:    primary.TotalMargin,
		Status:          domain.StatusPass,
	}
	if primary.TotalMargin < required {
		check.Status = domain.StatusWarning
		check.Detail = "margin likely insufficient for default jump risk"
	}
	return check, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
