// Package metrics computes distribution statistics over a run's wallet
// scores: mean, median, fixed-width buckets and risk-tier counts.
package metrics

import (
	"fmt"
	"sort"

	"defi-credit-lab/internal/domain"
)

const (
	// NumBuckets fixed 100-point score buckets span [0, 1000].
	NumBuckets  = 10
	bucketWidth = 100

	// HighRiskThreshold marks wallets scoring below it as high-risk.
	HighRiskThreshold = 300
	// ExcellentThreshold marks wallets scoring above it as excellent.
	ExcellentThreshold = 800
)

// BucketLabel returns the label of bucket i, e.g. "300-400" for i=3.
func BucketLabel(i int) string {
	return fmt.Sprintf("%d-%d", i*bucketWidth, (i+1)*bucketWidth)
}

// BucketIndex maps a score in [0, 1000] to its bucket. Buckets are
// lower-inclusive half-open ranges except the last: 1000 belongs to
// "900-1000". Reports that re-derive buckets from the score map must use
// this same binning or cross-tool output diverges.
func BucketIndex(score int) int {
	if score >= NumBuckets*bucketWidth {
		return NumBuckets - 1
	}
	if score < 0 {
		return 0
	}
	return score / bucketWidth
}

// Analyze summarizes the full set of score records. Order-independent:
// any permutation of records yields the same analysis.
func Analyze(records []domain.ScoreRecord) domain.ScoreAnalysis {
	analysis := domain.ScoreAnalysis{
		TotalWallets: len(records),
		Distribution: make([]domain.BucketCount, NumBuckets),
	}
	for i := range analysis.Distribution {
		analysis.Distribution[i].Label = BucketLabel(i)
	}

	if len(records) == 0 {
		return analysis
	}

	scores := make([]int, len(records))
	sum := 0
	for i, r := range records {
		scores[i] = r.Score
		sum += r.Score

		analysis.Distribution[BucketIndex(r.Score)].Count++
		if r.Score < HighRiskThreshold {
			analysis.HighRiskWallets++
		}
		if r.Score > ExcellentThreshold {
			analysis.ExcellentWallets++
		}
	}

	sort.Ints(scores)
	analysis.AverageScore = float64(sum) / float64(len(scores))
	analysis.MedianScore = median(scores)

	return analysis
}

// median of sorted ints; for even n, the mean of the middle pair.
func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}
