package pipeline

import (
	"context"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/storage"
)

// FixtureTransactions returns a small demo dataset covering the behavioral
// spectrum: a responsible borrower, a liquidated wallet, a deposit-only
// wallet and a bot-like high-frequency wallet.
func FixtureTransactions() []domain.Record {
	var rows []domain.Record

	// Responsible borrower: deposits, borrows fully repaid, two assets,
	// active across two weeks.
	alice := "0xa1c0ffee254729296a45a3885639AC7E10F9d549"
	day := int64(1704067200) // 2024-01-01 00:00:00 UTC
	actions := []string{"deposit", "deposit", "borrow", "repay", "deposit", "borrow", "repay", "deposit"}
	assets := []string{"USDC", "USDC", "DAI", "DAI", "USDC", "DAI", "DAI", "DAI"}
	for i, action := range actions {
		rows = append(rows, domain.Record{
			"userWallet": alice,
			"action":     action,
			"timestamp":  float64(day + int64(i)*86400*2),
			"reserve":    assets[i],
			"amount":     "1000.50",
		})
	}

	// Liquidated wallet: borrows without repaying, one liquidation call.
	bob := "0xdEADBEeF00000000000000000000000000000001"
	for i, action := range []string{"deposit", "borrow", "borrow", "liquidationcall"} {
		rows = append(rows, domain.Record{
			"userWallet": bob,
			"action":     action,
			"timestamp":  float64(day + int64(i)*86400),
			"reserve":    "WETH",
			"amount":     250.0,
		})
	}

	// Deposit-only wallet, single asset, single day.
	carol := "0xCafeBabe00000000000000000000000000000002"
	for i := 0; i < 3; i++ {
		rows = append(rows, domain.Record{
			"userWallet": carol,
			"action":     "deposit",
			"timestamp":  float64(day + int64(i)*3600),
			"reserve":    "USDT",
			"amount":     "42",
		})
	}

	// Bot-like wallet: hundreds of same-day deposits.
	bot := "0x0000000000000000000000000000000000000b0b"
	for i := 0; i < 120; i++ {
		rows = append(rows, domain.Record{
			"userWallet": bot,
			"action":     "deposit",
			"timestamp":  float64(day + int64(i)*60),
			"reserve":    "USDC",
			"amount":     1.0,
		})
	}

	return rows
}

// LoadFixtures populates a transaction store with the demo dataset.
func LoadFixtures(ctx context.Context, store storage.TransactionStore) error {
	return store.InsertBulk(ctx, FixtureTransactions())
}
