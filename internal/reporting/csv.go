package reporting

import (
	"fmt"
	"sort"
	"strings"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/metrics"
)

// Risk level per score bucket, lowest bucket first.
var riskLevels = [metrics.NumBuckets]string{
	"Critical", "Very High", "High", "High", "Moderate",
	"Moderate", "Low", "Low", "Very Low", "Minimal",
}

// RiskLevel returns the narrative risk label for a score.
func RiskLevel(score int) string {
	return riskLevels[metrics.BucketIndex(score)]
}

// RenderCSV renders wallet scores as CSV, sorted by wallet id.
func RenderCSV(records []domain.ScoreRecord) string {
	sorted := make([]domain.ScoreRecord, len(records))
	copy(sorted, records)
	sortRecords(sorted)

	var sb strings.Builder
	sb.WriteString("wallet_id,credit_score,score_range,risk_level\n")
	for _, r := range sorted {
		sb.WriteString(fmt.Sprintf("%s,%d,%s,%s\n",
			r.Wallet,
			r.Score,
			metrics.BucketLabel(metrics.BucketIndex(r.Score)),
			RiskLevel(r.Score),
		))
	}
	return sb.String()
}

func sortRecords(records []domain.ScoreRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Wallet < records[j].Wallet
	})
}
