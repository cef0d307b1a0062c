package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"defi-credit-lab/internal/ingestion"
	"defi-credit-lab/internal/reporting"
)

func main() {
	resultsPath := flag.String("results", "wallet_scores.json", "Results document from a scoring run")
	transactionsPath := flag.String("transactions", "", "Original transactions JSON, for behavioral analysis")
	outputDir := flag.String("output-dir", "docs", "Output directory for ANALYSIS.md")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	results, err := reporting.LoadResults(*resultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading results: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run the score command first to produce a results document")
		os.Exit(1)
	}

	// Behavioral analysis needs the original dataset; without it the
	// report still renders, just without the per-range section.
	var behaviors []reporting.RangeAnalysis
	if *transactionsPath != "" {
		ts, err := ingestion.Load(*transactionsPath)
		if err != nil {
			log.Warn("could not load original transactions, skipping behavioral analysis", zap.Error(err))
		} else {
			behaviors = reporting.AnalyzeBehaviors(ts, results.ScoreRecords())
		}
	}

	markdown := reporting.RenderAnalysisMarkdown(results, behaviors)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(*outputDir, "ANALYSIS.md")
	if err := os.WriteFile(outPath, []byte(markdown), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Analysis report generated:")
	fmt.Printf("  - %s\n", outPath)
}
