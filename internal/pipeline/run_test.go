package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"defi-credit-lab/internal/ingestion"
	"defi-credit-lab/internal/reporting"
	"defi-credit-lab/internal/storage/memory"
)

const (
	fixtureAlice = "0xa1c0ffee254729296a45a3885639AC7E10F9d549"
	fixtureBob   = "0xdEADBEeF00000000000000000000000000000001"
	fixtureCarol = "0xCafeBabe00000000000000000000000000000002"
	fixtureBot   = "0x0000000000000000000000000000000000000b0b"
)

func fixtureRunner(t *testing.T, dir string) *Runner {
	t.Helper()

	store := memory.NewTransactionStore()
	if err := LoadFixtures(context.Background(), store); err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	source := &ingestion.StoreSource{Store: store}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return NewRunner(source, filepath.Join(dir, "wallet_scores.json")).
		WithClock(func() time.Time { return now })
}

func TestRunner_FixtureScores(t *testing.T) {
	runner := fixtureRunner(t, t.TempDir())

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]int{
		fixtureAlice: 710, // fully repaid borrower, two assets
		fixtureBob:   290, // liquidated, nothing repaid
		fixtureCarol: 735, // deposit-only, debt free
		fixtureBot:   485, // would score 970, halved for bot activity
	}
	if len(results.WalletScores) != len(want) {
		t.Fatalf("expected %d wallets, got %d", len(want), len(results.WalletScores))
	}
	for wallet, score := range want {
		if got := results.WalletScores[wallet]; got != score {
			t.Errorf("%s: expected score %d, got %d", wallet, score, got)
		}
	}
}

func TestRunner_FixtureAnalysis(t *testing.T) {
	runner := fixtureRunner(t, t.TempDir())

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	a := results.Analysis
	if a.TotalWallets != 4 {
		t.Errorf("expected 4 wallets, got %d", a.TotalWallets)
	}
	if a.AverageScore != 555.0 {
		t.Errorf("expected average 555, got %v", a.AverageScore)
	}
	if a.MedianScore != 597.5 {
		t.Errorf("expected median 597.5, got %v", a.MedianScore)
	}
	if a.HighRiskWallets != 1 {
		t.Errorf("expected 1 high-risk wallet, got %d", a.HighRiskWallets)
	}
	if a.ExcellentWallets != 0 {
		t.Errorf("expected 0 excellent wallets, got %d", a.ExcellentWallets)
	}
	if got := a.ScoreDistribution["700-800"]; got != 2 {
		t.Errorf("expected 2 wallets in 700-800, got %d", got)
	}
	if got := a.ScoreDistribution["200-300"]; got != 1 {
		t.Errorf("expected 1 wallet in 200-300, got %d", got)
	}
}

func TestRunner_FieldMappings(t *testing.T) {
	runner := fixtureRunner(t, t.TempDir())

	results, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	m := results.FieldMappings
	if m.UserField == nil || *m.UserField != "userWallet" {
		t.Errorf("expected user_field userWallet, got %v", m.UserField)
	}
	if m.ActionField == nil || *m.ActionField != "action" {
		t.Errorf("expected action_field action, got %v", m.ActionField)
	}
	if m.TimestampField == nil || *m.TimestampField != "timestamp" {
		t.Errorf("expected timestamp_field timestamp, got %v", m.TimestampField)
	}
	if m.ReserveField == nil || *m.ReserveField != "reserve" {
		t.Errorf("expected reserve_field reserve, got %v", m.ReserveField)
	}
	if results.ModelVersion != ModelVersion {
		t.Errorf("expected model version %q, got %q", ModelVersion, results.ModelVersion)
	}
}

func TestRunner_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "wallet_scores.csv")
	runner := fixtureRunner(t, dir).WithCSV(csvPath)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	loaded, err := reporting.LoadResults(filepath.Join(dir, "wallet_scores.json"))
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if loaded.TotalWalletsScored != 4 {
		t.Errorf("expected 4 wallets in written document, got %d", loaded.TotalWalletsScored)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 { // header + 4 wallets
		t.Errorf("expected 5 csv lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], fixtureBot) {
		t.Errorf("expected bot wallet first in sorted csv, got %q", lines[1])
	}
}

func TestRunner_CreatesOutputDir(t *testing.T) {
	dir := t.TempDir()
	store := memory.NewTransactionStore()
	if err := LoadFixtures(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(dir, "out", "nested", "wallet_scores.json")
	runner := NewRunner(&ingestion.StoreSource{Store: store}, nested)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(nested); err != nil {
		t.Errorf("expected output file at %s: %v", nested, err)
	}
}

func TestRunner_Deterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	resultsA, err := fixtureRunner(t, dirA).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	resultsB, err := fixtureRunner(t, dirB).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(resultsA.WalletScores) != len(resultsB.WalletScores) {
		t.Fatal("runs scored different wallet sets")
	}
	for wallet, score := range resultsA.WalletScores {
		if resultsB.WalletScores[wallet] != score {
			t.Errorf("%s: %d vs %d across runs", wallet, score, resultsB.WalletScores[wallet])
		}
	}
	if !resultsA.Timestamp.Equal(resultsB.Timestamp) {
		t.Error("fixed clock should produce identical timestamps")
	}
}
