package features

import (
	"testing"
	"time"

	"defi-credit-lab/internal/domain"
)

var allFields = domain.FieldMap{
	Wallet:    "wallet",
	Action:    "action",
	Timestamp: "timestamp",
	Asset:     "asset",
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func row(wallet, action string, ts time.Time, asset string) domain.Record {
	return domain.Record{"wallet": wallet, "action": action, "timestamp": ts, "asset": asset}
}

func TestCompute_ActionCountsDoubleCount(t *testing.T) {
	// Canonical lowercase labels hit both the exact tally and the substring
	// reclassification, so each transaction counts twice.
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "deposit", day(1), "USDC"),
			row("w1", "borrow", day(1), "USDC"),
			row("w1", "repay", day(1), "USDC"),
			row("w1", "liquidationcall", day(1), "USDC"),
			row("w1", "redeemunderlying", day(1), "USDC"),
		},
	}

	f := Compute(ts, allFields)["w1"]

	if f.Deposits != 2 {
		t.Errorf("expected 2 deposits, got %d", f.Deposits)
	}
	if f.Borrows != 2 {
		t.Errorf("expected 2 borrows, got %d", f.Borrows)
	}
	if f.Repays != 2 {
		t.Errorf("expected 2 repays, got %d", f.Repays)
	}
	if f.Liquidations != 2 {
		t.Errorf("expected 2 liquidations, got %d", f.Liquidations)
	}
	// redeemunderlying matches no substring family, counts once.
	if f.Redeems != 1 {
		t.Errorf("expected 1 redeem, got %d", f.Redeems)
	}
	if f.UniqueActions != 5 {
		t.Errorf("expected 5 unique actions, got %d", f.UniqueActions)
	}
}

func TestCompute_SubstringReclassification(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "Deposit", day(1), "USDC"),
			row("w1", "LiquidationCall", day(1), "USDC"),
			row("w1", "RepayBorrow", day(1), "USDC"),
		},
	}

	f := Compute(ts, allFields)["w1"]

	// None of these match the exact lowercase labels, so each counts once
	// via the substring chain. "RepayBorrow" contains both "repay" and
	// "borrow" but the chain stops at the first match.
	if f.Deposits != 1 {
		t.Errorf("expected 1 deposit, got %d", f.Deposits)
	}
	if f.Liquidations != 1 {
		t.Errorf("expected 1 liquidation, got %d", f.Liquidations)
	}
	if f.Repays != 1 {
		t.Errorf("expected 1 repay, got %d", f.Repays)
	}
	if f.Borrows != 0 {
		t.Errorf("expected 0 borrows, got %d", f.Borrows)
	}
}

func TestCompute_RepaymentRateWithoutBorrows(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "deposit", day(1), "USDC"),
		},
	}

	f := Compute(ts, allFields)["w1"]
	if f.RepaymentRate != 1.0 {
		t.Errorf("expected repayment rate 1.0 with no borrows, got %v", f.RepaymentRate)
	}
}

func TestCompute_RepaymentRateExceedsOne(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "borrow", day(1), "USDC"),
			row("w1", "repay", day(2), "USDC"),
			row("w1", "repay", day(3), "USDC"),
			row("w1", "repay", day(4), "USDC"),
		},
	}

	// Double counting makes this 6 repays over 2 borrows.
	f := Compute(ts, allFields)["w1"]
	if f.RepaymentRate != 3.0 {
		t.Errorf("expected repayment rate 3.0, got %v", f.RepaymentRate)
	}
}

func TestCompute_NoActionColumn(t *testing.T) {
	fields := domain.FieldMap{Wallet: "wallet", Timestamp: "timestamp"}
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "timestamp"},
		Rows: []domain.Record{
			{"wallet": "w1", "timestamp": day(1)},
			{"wallet": "w1", "timestamp": day(2)},
		},
	}

	f := Compute(ts, fields)["w1"]

	if f.Deposits != 2 {
		t.Errorf("expected all transactions counted as deposits, got %d", f.Deposits)
	}
	if f.UniqueActions != 1 {
		t.Errorf("expected 1 unique action, got %d", f.UniqueActions)
	}
	if f.RepaymentRate != 1.0 {
		t.Errorf("expected repayment rate 1.0, got %v", f.RepaymentRate)
	}
}

func TestCompute_NoTimestampColumn(t *testing.T) {
	fields := domain.FieldMap{Wallet: "wallet", Action: "action"}
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action"},
		Rows: []domain.Record{
			{"wallet": "w1", "action": "deposit"},
			{"wallet": "w1", "action": "deposit"},
			{"wallet": "w1", "action": "deposit"},
		},
	}

	f := Compute(ts, fields)["w1"]

	if f.ActiveDays != 1 || f.AccountAgeDays != 1 {
		t.Errorf("expected degraded activity (1, 1), got (%d, %d)", f.ActiveDays, f.AccountAgeDays)
	}
	if f.AvgTransactionsPerDay != 3.0 {
		t.Errorf("expected 3 transactions per day, got %v", f.AvgTransactionsPerDay)
	}
}

func TestCompute_ActivityDayMath(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "deposit", day(1), "USDC"),
			row("w1", "deposit", day(1).Add(6*time.Hour), "USDC"),
			row("w1", "deposit", day(5), "USDC"),
			row("w1", "deposit", day(10), "USDC"),
		},
	}

	f := Compute(ts, allFields)["w1"]

	if f.ActiveDays != 3 {
		t.Errorf("expected 3 active days, got %d", f.ActiveDays)
	}
	// Age spans Jan 1 through Jan 10 inclusive.
	if f.AccountAgeDays != 10 {
		t.Errorf("expected account age 10, got %d", f.AccountAgeDays)
	}
	if f.AvgTransactionsPerDay != 0.4 {
		t.Errorf("expected 0.4 transactions per day, got %v", f.AvgTransactionsPerDay)
	}
}

func TestCompute_UniqueAssets(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "deposit", day(1), "USDC"),
			row("w1", "deposit", day(1), "DAI"),
			row("w1", "deposit", day(1), "USDC"),
		},
	}

	f := Compute(ts, allFields)["w1"]
	if f.UniqueAssets != 2 {
		t.Errorf("expected 2 unique assets, got %d", f.UniqueAssets)
	}
}

func TestCompute_NoAssetColumnDefaultsToOne(t *testing.T) {
	fields := domain.FieldMap{Wallet: "wallet", Action: "action"}
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action"},
		Rows: []domain.Record{
			{"wallet": "w1", "action": "deposit"},
		},
	}

	f := Compute(ts, fields)["w1"]
	if f.UniqueAssets != 1 {
		t.Errorf("expected 1 unique asset by default, got %d", f.UniqueAssets)
	}
}

func TestCompute_PartitionsByWallet(t *testing.T) {
	ts := &domain.TransactionSet{
		Columns: []string{"wallet", "action", "timestamp", "asset"},
		Rows: []domain.Record{
			row("w1", "deposit", day(1), "USDC"),
			row("w2", "borrow", day(1), "DAI"),
			row("w1", "deposit", day(2), "USDC"),
		},
	}

	got := Compute(ts, allFields)

	if len(got) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(got))
	}
	if got["w1"].TotalTransactions != 2 {
		t.Errorf("w1: expected 2 transactions, got %d", got["w1"].TotalTransactions)
	}
	if got["w2"].TotalTransactions != 1 {
		t.Errorf("w2: expected 1 transaction, got %d", got["w2"].TotalTransactions)
	}
}
