package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"defi-credit-lab/internal/ingestion"
	"defi-credit-lab/internal/pipeline"
	"defi-credit-lab/internal/storage/memory"
	pgstore "defi-credit-lab/internal/storage/postgres"
)

func main() {
	output := flag.String("output", "wallet_scores.json", "Output path for the results document")
	csvPath := flag.String("csv", "", "Also write per-wallet scores CSV to this path")
	postgresDSN := flag.String("postgres-dsn", "", "Read transactions from PostgreSQL instead of a file (or set POSTGRES_DSN)")
	useFixtures := flag.Bool("use-fixtures", false, "Score the embedded demo dataset")
	debug := flag.Bool("debug", false, "Verbose logging")
	flag.Parse()

	_ = godotenv.Load()
	if *postgresDSN == "" {
		*postgresDSN = os.Getenv("POSTGRES_DSN")
	}

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	source, cleanup, err := buildSource(ctx, *useFixtures, *postgresDSN, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	runner := pipeline.NewRunner(source, *output).WithLogger(log)
	if *csvPath != "" {
		runner = runner.WithCSV(*csvPath)
	}

	results, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoring pipeline: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Scoring complete:")
	fmt.Printf("  Total wallets scored: %d\n", results.TotalWalletsScored)
	fmt.Printf("  Average score: %.2f\n", results.Analysis.AverageScore)
	fmt.Printf("  Median score: %.2f\n", results.Analysis.MedianScore)
	fmt.Printf("  High-risk wallets (< 300): %d\n", results.Analysis.HighRiskWallets)
	fmt.Printf("  Excellent wallets (> 800): %d\n", results.Analysis.ExcellentWallets)
	fmt.Printf("  Results written to %s\n", *output)
}

// buildSource picks the transaction source by mode: embedded fixtures,
// PostgreSQL, or a JSON file given as the positional argument.
func buildSource(ctx context.Context, useFixtures bool, postgresDSN, inputFile string) (ingestion.TransactionSource, func(), error) {
	noop := func() {}

	if useFixtures {
		store := memory.NewTransactionStore()
		if err := pipeline.LoadFixtures(ctx, store); err != nil {
			return nil, noop, fmt.Errorf("load fixtures: %w", err)
		}
		return ingestion.StoreSource{Store: store}, noop, nil
	}

	if postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return ingestion.StoreSource{Store: pgstore.NewTransactionStore(pool)}, pool.Close, nil
	}

	if inputFile == "" {
		return nil, noop, fmt.Errorf("usage: score [flags] <transactions.json> (or --postgres-dsn / --use-fixtures)")
	}
	return ingestion.FileSource{Path: inputFile}, noop, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
