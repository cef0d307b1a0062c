// Package scoring maps a wallet feature vector to an integer credit score
// in [0, 1000]. The function is pure and total: any feature vector produced
// by the feature engine yields a score, with no error conditions.
package scoring

import "defi-credit-lab/internal/domain"

// Point caps per component. These are the authoritative contract; the
// Weights table below documents the intended relative emphasis.
const (
	VolumeCap      = 250
	RepaymentCap   = 300 // nominal: an uncapped repayment rate can exceed it
	RiskCap        = 200
	ConsistencyCap = 150
	DiversityCap   = 100

	ResponsibilityBonus = 50

	// Wallets averaging more than this many transactions per day are
	// treated as bots and have their score halved.
	BotActivityThreshold = 100.0
)

// Weights documents the model's nominal component weighting. The score
// formula hardcodes the point caps above; this table is kept as a reference
// constant for future recalibration, matching the model card.
var Weights = map[string]float64{
	"transaction_volume":   0.25,
	"repayment_behavior":   0.30,
	"risk_indicators":      0.20,
	"activity_consistency": 0.15,
	"portfolio_diversity":  0.10,
}

// Score computes the credit score for one wallet. Deterministic: equal
// feature vectors always produce equal scores.
func Score(f domain.WalletFeatures) int {
	score := 0.0

	// 1. Transaction volume, 5 points per transaction up to the cap.
	score += min(float64(VolumeCap), float64(f.TotalTransactions)*5)

	// 2. Repayment behavior. Deliberately uncapped before summation: a
	// repayment rate above 1.0 inflates this beyond its nominal cap and is
	// only reined in by the final clamp.
	score += f.RepaymentRate * float64(RepaymentCap)

	// 3. Risk: liquidations eat into the full risk allowance.
	score += max(0, float64(RiskCap)-f.LiquidationRatio*float64(RiskCap))

	// 4. Activity consistency: share of account lifetime with activity.
	if f.AccountAgeDays > 0 {
		ratio := float64(f.ActiveDays) / float64(f.AccountAgeDays)
		score += min(float64(ConsistencyCap), ratio*float64(ConsistencyCap))
	}

	// 5. Portfolio diversity, 20 points per distinct asset up to the cap.
	score += min(float64(DiversityCap), float64(f.UniqueAssets)*20)

	// Responsibility bonus: fully repaid, never liquidated.
	if f.RepaymentRate >= 1.0 && f.LiquidationRatio == 0 {
		score += ResponsibilityBonus
	}

	// Bot penalty halves the running total, bonus included.
	if f.AvgTransactionsPerDay > BotActivityThreshold {
		score *= 0.5
	}

	final := int(score) // truncation, matching the reference model
	if final > 1000 {
		final = 1000
	}
	if final < 0 {
		final = 0
	}
	return final
}
