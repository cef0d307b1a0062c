// Package reporting renders a scoring run's outputs: the results JSON
// document, the scores CSV, and the narrative ANALYSIS.md.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"defi-credit-lab/internal/domain"
)

// FieldMappings carries the detected column per role in the results
// document. Nil means the role was not detected.
type FieldMappings struct {
	UserField      *string `json:"user_field"`
	ActionField    *string `json:"action_field"`
	TimestampField *string `json:"timestamp_field"`
	ReserveField   *string `json:"reserve_field"`
}

// Analysis is the aggregate block of the results document.
type Analysis struct {
	TotalWallets      int            `json:"total_wallets"`
	AverageScore      float64        `json:"average_score"`
	MedianScore       float64        `json:"median_score"`
	ScoreDistribution map[string]int `json:"score_distribution"`
	HighRiskWallets   int            `json:"high_risk_wallets"`
	ExcellentWallets  int            `json:"excellent_wallets"`
}

// Results is the flat output document of one scoring run. It is the only
// artifact that outlives the run.
type Results struct {
	Timestamp          time.Time      `json:"timestamp"`
	ModelVersion       string         `json:"model_version"`
	TotalWalletsScored int            `json:"total_wallets_scored"`
	FieldMappings      FieldMappings  `json:"field_mappings"`
	Analysis           Analysis       `json:"analysis"`
	WalletScores       map[string]int `json:"wallet_scores"`
}

// BuildResults assembles the results document from a run's artifacts.
func BuildResults(now time.Time, version string, fields domain.FieldMap, analysis domain.ScoreAnalysis, records []domain.ScoreRecord) *Results {
	scores := make(map[string]int, len(records))
	for _, r := range records {
		scores[r.Wallet] = r.Score
	}

	return &Results{
		Timestamp:          now,
		ModelVersion:       version,
		TotalWalletsScored: len(records),
		FieldMappings: FieldMappings{
			UserField:      optional(fields.Wallet),
			ActionField:    optional(fields.Action),
			TimestampField: optional(fields.Timestamp),
			ReserveField:   optional(fields.Asset),
		},
		Analysis: Analysis{
			TotalWallets:      analysis.TotalWallets,
			AverageScore:      analysis.AverageScore,
			MedianScore:       analysis.MedianScore,
			ScoreDistribution: analysis.DistributionMap(),
			HighRiskWallets:   analysis.HighRiskWallets,
			ExcellentWallets:  analysis.ExcellentWallets,
		},
		WalletScores: scores,
	}
}

// WriteJSON writes the results document, indented, to path.
func (r *Results) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}

// LoadResults reads a results document written by a previous run.
func LoadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", path, err)
	}
	return &results, nil
}

// ScoreRecords rebuilds sorted score records from the wallet score map.
func (r *Results) ScoreRecords() []domain.ScoreRecord {
	records := make([]domain.ScoreRecord, 0, len(r.WalletScores))
	for wallet, score := range r.WalletScores {
		records = append(records, domain.ScoreRecord{Wallet: wallet, Score: score})
	}
	sortRecords(records)
	return records
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
