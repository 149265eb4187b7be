package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Challenge Model Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Valuation Date: %s | Parameter Version: %s\n\n", r.ValuationDate, r.ParamVersion))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", r.Summary.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Passed | %d |\n", r.Summary.Passed))
	sb.WriteString(fmt.Sprintf("| Warnings | %d |\n", r.Summary.Warnings))
	sb.WriteString(fmt.Sprintf("| Failed | %d |\n", r.Summary.Failed))
	sb.WriteString(fmt.Sprintf("| Circuit Breakers | %d |\n", r.Summary.Breakers))
	sb.WriteString(fmt.Sprintf("| Primary Margin Total | %.2f |\n", r.Summary.PrimaryMarginTotal))
	sb.WriteString(fmt.Sprintf("| Fallback Margin Total | %.2f |\n", r.Summary.FallbackMarginTotal))
	sb.WriteString("\n")

	// Tier Breakdown
	sb.WriteString("## Tier Breakdown\n\n")
	if len(r.TierBreakdown) > 0 {
		sb.WriteString("| Tier | Trades | Passed | Warnings | Failed | Breakers |\n")
		sb.WriteString("|------|--------|--------|----------|--------|----------|\n")
		for _, row := range r.TierBreakdown {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %d |\n",
				row.Tier, row.Trades, row.Passed, row.Warnings, row.Failed, row.Breakers))
		}
	} else {
		sb.WriteString("No trades evaluated.\n")
	}
	sb.WriteString("\n")

	// Circuit Breakers
	sb.WriteString("## Circuit Breakers\n\n")
	if len(r.Breakers) > 0 {
		sb.WriteString("| Trade | Tier | Tripped By | Primary Margin | Fallback Margin | Detail |\n")
		sb.WriteString("|-------|------|------------|----------------|-----------------|--------|\n")
		for _, row := range r.Breakers {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %.2f | %s |\n",
				row.TradeID, row.Tier, row.TrippedBy,
				row.PrimaryMargin, row.FallbackMargin, row.Detail))
		}
		sb.WriteString("\n**Primary margins above must not be used downstream; the schedule fallback applies.**\n")
	} else {
		sb.WriteString("No circuit breakers tripped.\n")
	}
	sb.WriteString("\n")

	// Flagged Checks
	sb.WriteString("## Flagged Checks\n\n")
	if len(r.FlaggedChecks) > 0 {
		sb.WriteString("| Trade | Tier | Check | Status | Challenger | Primary | Variance% | Tolerance% | Detail |\n")
		sb.WriteString("|-------|------|-------|--------|------------|---------|-----------|------------|--------|\n")
		for _, row := range r.FlaggedChecks {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %.4f | %.4f | %.4f | %.2f | %s |\n",
				row.TradeID, row.Tier, row.CheckName, row.Status,
				row.ChallengerValue, row.PrimaryValue, row.VariancePct, row.TolerancePct, row.Detail))
		}
	} else {
		sb.WriteString("No flagged checks. All verifications passed.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
