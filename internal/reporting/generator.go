package reporting

import (
	"fmt"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/metrics"
	"defi-credit-lab/internal/preprocess"
	"defi-credit-lab/internal/schema"
)

// RangeAnalysis describes the behavior of wallets in one score bucket,
// re-derived from the original transaction dataset.
type RangeAnalysis struct {
	Label           string
	WalletCount     int
	AvgTransactions float64
	AvgUniqueAssets float64
	CommonBehaviors []string
	RiskPatterns    []string
}

// AnalyzeBehaviors groups wallets by score bucket and summarizes their
// transaction behavior. Buckets with no wallets are omitted. Returns nil
// when the dataset has no detectable wallet column; the markdown report
// then simply skips the behavioral section.
func AnalyzeBehaviors(ts *domain.TransactionSet, records []domain.ScoreRecord) []RangeAnalysis {
	fields, err := schema.Detect(ts)
	if err != nil {
		return nil
	}

	type walletStats struct {
		transactions int
		assets       map[string]struct{}
	}
	stats := make(map[string]*walletStats)
	for _, row := range ts.Rows {
		wallet, ok := preprocess.WalletID(row, fields.Wallet)
		if !ok {
			continue
		}
		ws := stats[wallet]
		if ws == nil {
			ws = &walletStats{assets: make(map[string]struct{})}
			stats[wallet] = ws
		}
		ws.transactions++
		if fields.HasAsset() {
			if v, ok := row[fields.Asset]; ok && v != nil {
				ws.assets[fmt.Sprintf("%v", v)] = struct{}{}
			}
		}
	}

	type bucketAccum struct {
		wallets      int
		transactions int
		assets       int
	}
	accums := make([]bucketAccum, metrics.NumBuckets)
	for _, r := range records {
		ws, ok := stats[r.Wallet]
		if !ok {
			continue
		}
		b := &accums[metrics.BucketIndex(r.Score)]
		b.wallets++
		b.transactions += ws.transactions
		assets := len(ws.assets)
		if assets < 1 {
			assets = 1
		}
		b.assets += assets
	}

	var out []RangeAnalysis
	for i, b := range accums {
		if b.wallets == 0 {
			continue
		}
		avgTx := float64(b.transactions) / float64(b.wallets)
		avgAssets := float64(b.assets) / float64(b.wallets)
		out = append(out, RangeAnalysis{
			Label:           metrics.BucketLabel(i),
			WalletCount:     b.wallets,
			AvgTransactions: avgTx,
			AvgUniqueAssets: avgAssets,
			CommonBehaviors: commonBehaviors(avgTx, avgAssets),
			RiskPatterns:    riskPatterns(i),
		})
	}
	return out
}

// commonBehaviors narrates activity and diversification for a bucket.
func commonBehaviors(avgTx, avgAssets float64) []string {
	var behaviors []string

	switch {
	case avgTx < 5:
		behaviors = append(behaviors, "Low activity users (< 5 transactions)")
	case avgTx > 50:
		behaviors = append(behaviors, "High activity users (> 50 transactions)")
	default:
		behaviors = append(behaviors, fmt.Sprintf("Moderate activity users (~%.1f transactions)", avgTx))
	}

	switch {
	case avgAssets < 2:
		behaviors = append(behaviors, "Single-asset focused")
	case avgAssets > 5:
		behaviors = append(behaviors, "Highly diversified portfolios")
	default:
		behaviors = append(behaviors, fmt.Sprintf("Moderate diversification (~%.1f assets)", avgAssets))
	}

	return behaviors
}

// riskPatterns returns the canned risk narrative for bucket i.
func riskPatterns(bucket int) []string {
	lower := bucket * 100
	switch {
	case lower < 200:
		return []string{
			"High liquidation risk",
			"Poor repayment history",
			"Potential bot activity",
			"Exploitative behavior patterns",
		}
	case lower < 400:
		return []string{
			"Moderate risk indicators",
			"Inconsistent repayment patterns",
			"Some liquidation events",
		}
	case lower < 600:
		return []string{
			"Generally stable behavior",
			"Minor risk indicators",
			"Room for improvement in consistency",
		}
	case lower < 800:
		return []string{
			"Good financial discipline",
			"Consistent repayment behavior",
			"Low risk profile",
		}
	default:
		return []string{
			"Excellent credit behavior",
			"Perfect repayment history",
			"No liquidation events",
			"Responsible usage patterns",
		}
	}
}
