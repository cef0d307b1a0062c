package domain

// WalletFeatures is the fixed-shape feature vector computed per wallet from
// its own transaction subset. Produced once per scoring run, never mutated.
type WalletFeatures struct {
	TotalTransactions int // row count for this wallet, always >= 1

	// Action mix. Counts combine exact matches against canonical labels
	// with case-insensitive substring reclassification; a value can land
	// in two counters (see features.computeActionCounts).
	UniqueActions int
	Deposits      int
	Borrows       int
	Repays        int
	Liquidations  int
	Redeems       int

	// Risk ratios over total transactions.
	LiquidationRatio float64
	BorrowRatio      float64

	// Repays / borrows. Exactly 1.0 when the wallet never borrowed.
	// May exceed 1.0; the scoring function does not cap it per-component.
	RepaymentRate float64

	// Activity consistency. All three degrade to (1, 1, TotalTransactions)
	// when no parseable timestamp exists for the wallet.
	ActiveDays            int
	AccountAgeDays        int
	AvgTransactionsPerDay float64

	// Distinct asset values; 1 when no asset column was detected.
	UniqueAssets int
}
