package domain

// ScoreRecord is one wallet's final credit score. Immutable once computed.
type ScoreRecord struct {
	Wallet string
	Score  int // always within [0, 1000]
}

// BucketCount is one row of the score distribution: a fixed 100-point range
// and the number of wallets whose score falls in it.
type BucketCount struct {
	Label string // e.g. "300-400"
	Count int
}

// ScoreAnalysis summarizes the score distribution of one run. Derived
// entirely from the score records; holds no independent state.
type ScoreAnalysis struct {
	TotalWallets int
	AverageScore float64
	MedianScore  float64

	// Distribution holds the ten fixed buckets in ascending order.
	// Buckets are half-open [lo, hi) except the last, which includes 1000.
	Distribution []BucketCount

	HighRiskWallets  int // score < 300
	ExcellentWallets int // score > 800
}

// DistributionMap returns the distribution as a label -> count map, the
// shape used in the serialized results document.
func (a ScoreAnalysis) DistributionMap() map[string]int {
	m := make(map[string]int, len(a.Distribution))
	for _, b := range a.Distribution {
		m[b.Label] = b.Count
	}
	return m
}
