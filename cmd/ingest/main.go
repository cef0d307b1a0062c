package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"defi-credit-lab/internal/ingestion"
	"defi-credit-lab/internal/storage/migrations"
	pgstore "defi-credit-lab/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (or set POSTGRES_DSN)")
	flag.Parse()

	_ = godotenv.Load()
	if *postgresDSN == "" {
		*postgresDSN = os.Getenv("POSTGRES_DSN")
	}

	inputFile := flag.Arg(0)
	if *postgresDSN == "" || inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest --postgres-dsn <dsn> <transactions.json>")
		os.Exit(1)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	ts, err := ingestion.Load(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		os.Exit(1)
	}
	log.Info("loaded transactions", zap.String("file", inputFile), zap.Int("rows", ts.Len()))

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
		os.Exit(1)
	}

	store := pgstore.NewTransactionStore(pool)
	if err := store.InsertBulk(ctx, ts.Rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error inserting transactions: %v\n", err)
		os.Exit(1)
	}

	total, err := store.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error counting transactions: %v\n", err)
		os.Exit(1)
	}
	log.Info("ingest complete", zap.Int("inserted", ts.Len()), zap.Int("total_stored", total))
}
