package reporting

import (
	"fmt"
	"strings"

	"simm-challenger/internal/domain"
)

// RenderCSV renders every check of every result as one flat CSV string,
// one row per check.
func RenderCSV(results []*domain.ChallengeResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("evaluation_id,trade_id,valuation_date,param_version,tier,check_name,")
	sb.WriteString("challenger_value,primary_value,variance_pct,tolerance_pct,status,detail\n")

	// Rows
	for _, r := range results {
		for _, rec := range r.FlattenChecks() {
			sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%.6f,%.6f,%.6f,%.6f,%s,%s\n",
				rec.EvaluationID,
				rec.TradeID,
				rec.ValuationDate,
				rec.ParamVersion,
				rec.Tier,
				rec.CheckName,
				rec.ChallengerValue,
				rec.PrimaryValue,
				rec.VariancePct,
				rec.TolerancePct,
				rec.Status,
				sanitizeCSVField(rec.Detail),
			))
		}
	}

	return sb.String()
}

// sanitizeCSVField keeps free-text details from breaking the row format.
func sanitizeCSVField(s string) string {
	s = strings.ReplaceAll(s, ",", ";")
	return strings.ReplaceAll(s, "\n", " ")
}
