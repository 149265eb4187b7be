package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

// Generator produces reports from stored challenge results.
type Generator struct {
	resultStore storage.ChallengeResultStore
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(resultStore storage.ChallengeResultStore) *Generator {
	return &Generator{
		resultStore: resultStore,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report for one valuation date.
func (g *Generator) Generate(ctx context.Context, valuationDate string) (*Report, error) {
	results, err := g.resultStore.GetByValuationDate(ctx, valuationDate)
	if err != nil {
		return nil, fmt.Errorf("load results for %s: %w", valuationDate, err)
	}

	report := &Report{
		GeneratedAt:   g.now(),
		ValuationDate: valuationDate,
	}
	if len(results) > 0 {
		report.ParamVersion = results[0].ParamVersion
	}

	report.Summary = generateSummary(results)
	report.TierBreakdown = generateTierBreakdown(results)
	report.Breakers = generateBreakers(results)
	report.FlaggedChecks = generateFlaggedChecks(results)

	return report, nil
}

func generateSummary(results []*domain.ChallengeResult) Summary {
	var s Summary
	s.TotalTrades = len(results)
	for _, r := range results {
		switch r.OverallStatus {
		case domain.StatusPass:
			s.Passed++
		case domain.StatusWarning:
			s.Warnings++
		case domain.StatusFail:
			s.Failed++
		case domain.StatusCircuitBreaker:
			s.Breakers++
		}
		s.PrimaryMarginTotal += r.PrimaryMargin
		if r.FallbackTriggered {
			s.FallbackMarginTotal += r.FallbackMargin
		}
	}
	return s
}

// tierOrder fixes the breakdown row order regardless of input.
var tierOrder = []domain.Tier{
	domain.TierLinear,
	domain.TierVanillaOption,
	domain.TierCredit,
	domain.TierExotic,
}

func generateTierBreakdown(results []*domain.ChallengeResult) []TierRow {
	byTier := make(map[domain.Tier]*TierRow)
	for _, r := range results {
		row, ok := byTier[r.Tier]
		if !ok {
			row = &TierRow{Tier: r.Tier}
			byTier[r.Tier] = row
		}
		row.Trades++
		switch r.OverallStatus {
		case domain.StatusPass:
			row.Passed++
		case domain.StatusWarning:
			row.Warnings++
		case domain.StatusFail:
			row.Failed++
		case domain.StatusCircuitBreaker:
			row.Breakers++
		}
	}

	var rows []TierRow
	for _, tier := range tierOrder {
		if row, ok := byTier[tier]; ok {
			rows = append(rows, *row)
		}
	}
	return rows
}

func generateBreakers(results []*domain.ChallengeResult) []BreakerRow {
	var rows []BreakerRow
	for _, r := range results {
		if !r.FallbackTriggered {
			continue
		}
		row := BreakerRow{
			TradeID:        r.TradeID,
			EvaluationID:   r.EvaluationID,
			Tier:           r.Tier,
			PrimaryMargin:  r.PrimaryMargin,
			FallbackMargin: r.FallbackMargin,
		}
		for _, check := range r.Checks {
			if check.Status == domain.StatusCircuitBreaker {
				row.TrippedBy = check.Name
				row.Detail = check.Detail
				break
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TradeID < rows[j].TradeID })
	return rows
}

func generateFlaggedChecks(results []*domain.ChallengeResult) []FlaggedCheckRow {
	var rows []FlaggedCheckRow
	for _, r := range results {
		for _, check := range r.Checks {
			if check.Status == domain.StatusPass {
				continue
			}
			rows = append(rows, FlaggedCheckRow{
				TradeID:         r.TradeID,
				Tier:            r.Tier,
				CheckName:       check.Name,
				Status:          check.Status,
				ChallengerValue: check.ChallengerValue,
				PrimaryValue:    check.PrimaryValue,
				VariancePct:     check.VariancePct,
				TolerancePct:    check.TolerancePct,
				Detail:          check.Detail,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TradeID != rows[j].TradeID {
			return rows[i].TradeID < rows[j].TradeID
		}
		return rows[i].CheckName < rows[j].CheckName
	})
	return rows
}
