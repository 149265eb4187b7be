package domain

// CheckRecord is one ChallengeCheck flattened to a standalone analytics row:
// the evaluation context is denormalized onto every check so columnar
// queries never need a join.
type CheckRecord struct {
	EvaluationID  string
	TradeID       string
	ValuationDate string
	ParamVersion  string
	Tier          Tier

	CheckName       string
	ChallengerValue float64
	PrimaryValue    float64
	VariancePct     float64
	TolerancePct    float64
	Status          CheckStatus
	Detail          string
}

// FlattenChecks expands a result into one CheckRecord per check.
func (r *ChallengeResult) FlattenChecks() []*CheckRecord {
	records := make([]*CheckRecord, 0, len(r.Checks))
	for _, check := range r.Checks {
		records = append(records, &CheckRecord{
			EvaluationID:    r.EvaluationID,
			TradeID:         r.TradeID,
			ValuationDate:   r.ValuationDate,
			ParamVersion:    r.ParamVersion,
			Tier:            r.Tier,
			CheckName:       check.Name,
			ChallengerValue: check.ChallengerValue,
			PrimaryValue:    check.PrimaryValue,
			VariancePct:     check.VariancePct,
			TolerancePct:    check.TolerancePct,
			Status:          check.Status,
			Detail:          check.Detail,
		})
	}
	return records
}
