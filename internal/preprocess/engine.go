// Package preprocess cleans a raw transaction set ahead of feature
// engineering: timestamps are parsed, amount-like columns are coerced to
// numbers, and rows without a wallet identifier are dropped. Every
// per-value failure degrades to a missing value instead of an error.
package preprocess

import (
	"strings"

	"defi-credit-lab/internal/domain"
)

// Stats summarizes what preprocessing changed, for the run log.
type Stats struct {
	RowsIn         int
	RowsDropped    int // rows missing a wallet identifier
	BadTimestamps  int // timestamp values that failed both parse attempts
	CoercedAmounts int // amount/value cells converted to float64
	BadAmounts     int // amount/value cells that failed numeric coercion
}

// Run cleans the transaction set in place of a copy: timestamp values are
// replaced with time.Time (or removed when unparseable), amount-like values
// with float64, and wallet-less rows are filtered out. The input set is not
// modified.
func Run(ts *domain.TransactionSet, fields domain.FieldMap) (*domain.TransactionSet, Stats) {
	stats := Stats{RowsIn: ts.Len()}
	amountCols := amountColumns(ts.Columns)

	cleaned := &domain.TransactionSet{
		Columns: append([]string(nil), ts.Columns...),
		Rows:    make([]domain.Record, 0, len(ts.Rows)),
	}

	for _, row := range ts.Rows {
		if !hasWallet(row, fields.Wallet) {
			stats.RowsDropped++
			continue
		}

		out := make(domain.Record, len(row))
		for k, v := range row {
			out[k] = v
		}

		if fields.HasTimestamp() {
			if raw, ok := out[fields.Timestamp]; ok && raw != nil {
				if t, ok := ParseTimestamp(raw); ok {
					out[fields.Timestamp] = t
				} else {
					delete(out, fields.Timestamp)
					stats.BadTimestamps++
				}
			}
		}

		for _, col := range amountCols {
			raw, ok := out[col]
			if !ok || raw == nil {
				continue
			}
			if f, ok := ParseNumeric(raw); ok {
				out[col] = f
				stats.CoercedAmounts++
			} else {
				delete(out, col)
				stats.BadAmounts++
			}
		}

		cleaned.Rows = append(cleaned.Rows, out)
	}

	return cleaned, stats
}

// WalletID extracts the wallet identifier from a row as a trimmed string.
// The second return is false when the value is missing or empty.
func WalletID(row domain.Record, walletCol string) (string, bool) {
	v, ok := row[walletCol]
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return "", false
	}
	return s, true
}

func hasWallet(row domain.Record, walletCol string) bool {
	_, ok := WalletID(row, walletCol)
	return ok
}

// amountColumns returns columns whose name contains "amount" or "value",
// case-insensitively.
func amountColumns(columns []string) []string {
	var out []string
	for _, col := range columns {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "amount") || strings.Contains(lower, "value") {
			out = append(out, col)
		}
	}
	return out
}
