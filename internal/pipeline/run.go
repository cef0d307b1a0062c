// Package pipeline orchestrates a full scoring run: load, detect,
// preprocess, engineer features, score, aggregate, write outputs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/features"
	"defi-credit-lab/internal/ingestion"
	"defi-credit-lab/internal/metrics"
	"defi-credit-lab/internal/preprocess"
	"defi-credit-lab/internal/reporting"
	"defi-credit-lab/internal/schema"
	"defi-credit-lab/internal/scoring"
)

// ModelVersion tags every results document for reproducibility.
const ModelVersion = "1.0"

// Runner executes scoring runs. The whole dataset is loaded into memory and
// the wallet set is scored in one synchronous pass.
type Runner struct {
	source     ingestion.TransactionSource
	outputPath string
	csvPath    string // empty disables the CSV export
	clock      func() time.Time
	log        *zap.Logger
}

// NewRunner creates a runner writing the results document to outputPath.
func NewRunner(source ingestion.TransactionSource, outputPath string) *Runner {
	return &Runner{
		source:     source,
		outputPath: outputPath,
		clock:      func() time.Time { return time.Now().UTC() },
		log:        zap.NewNop(),
	}
}

// WithClock sets a custom clock for deterministic output.
func (r *Runner) WithClock(clock func() time.Time) *Runner {
	r.clock = clock
	return r
}

// WithLogger sets the run logger.
func (r *Runner) WithLogger(log *zap.Logger) *Runner {
	r.log = log
	return r
}

// WithCSV additionally writes the per-wallet scores CSV to path.
func (r *Runner) WithCSV(path string) *Runner {
	r.csvPath = path
	return r
}

// Run executes one scoring run and returns the results document. Load and
// detection failures abort; per-row and per-value degradations are absorbed
// and only reflected in the run log.
func (r *Runner) Run(ctx context.Context) (*reporting.Results, error) {
	ts, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	r.log.Info("loaded transactions", zap.Int("rows", ts.Len()), zap.Int("columns", len(ts.Columns)))

	fields, err := schema.Detect(ts)
	if err != nil {
		return nil, fmt.Errorf("detect schema: %w", err)
	}
	r.log.Info("detected fields",
		zap.String("wallet", fields.Wallet),
		zap.String("action", fields.Action),
		zap.String("timestamp", fields.Timestamp),
		zap.String("asset", fields.Asset))

	cleaned, stats := preprocess.Run(ts, fields)
	r.log.Info("preprocessed transactions",
		zap.Int("rows_in", stats.RowsIn),
		zap.Int("rows_dropped", stats.RowsDropped),
		zap.Int("bad_timestamps", stats.BadTimestamps),
		zap.Int("bad_amounts", stats.BadAmounts))

	vectors := features.Compute(cleaned, fields)

	records := scoreAll(vectors)
	analysis := metrics.Analyze(records)

	results := reporting.BuildResults(r.clock(), ModelVersion, fields, analysis, records)

	if err := r.writeOutputs(results, records); err != nil {
		return nil, err
	}

	r.log.Info("scoring complete",
		zap.Int("total_wallets", analysis.TotalWallets),
		zap.Float64("average_score", analysis.AverageScore),
		zap.Float64("median_score", analysis.MedianScore),
		zap.Int("high_risk_wallets", analysis.HighRiskWallets),
		zap.Int("excellent_wallets", analysis.ExcellentWallets))

	return results, nil
}

// scoreAll maps feature vectors to score records in sorted wallet order.
func scoreAll(vectors map[string]domain.WalletFeatures) []domain.ScoreRecord {
	wallets := make([]string, 0, len(vectors))
	for w := range vectors {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)

	records := make([]domain.ScoreRecord, len(wallets))
	for i, w := range wallets {
		records[i] = domain.ScoreRecord{Wallet: w, Score: scoring.Score(vectors[w])}
	}
	return records
}

func (r *Runner) writeOutputs(results *reporting.Results, records []domain.ScoreRecord) error {
	if dir := filepath.Dir(r.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := results.WriteJSON(r.outputPath); err != nil {
		return err
	}
	r.log.Info("wrote results", zap.String("path", r.outputPath))

	if r.csvPath != "" {
		if err := os.WriteFile(r.csvPath, []byte(reporting.RenderCSV(records)), 0o644); err != nil {
			return fmt.Errorf("write csv %s: %w", r.csvPath, err)
		}
		r.log.Info("wrote csv", zap.String("path", r.csvPath))
	}
	return nil
}
