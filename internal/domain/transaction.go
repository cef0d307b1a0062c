package domain

import "sort"

// Record is a single raw transaction event as decoded from the input
// document. Keys are source column names; a missing field is simply absent.
type Record map[string]any

// TransactionSet is an ordered, in-memory tabular view over raw transaction
// records. Columns preserves source order: the order keys first appear when
// scanning rows front to back.
type TransactionSet struct {
	Columns []string
	Rows    []Record
}

// NewTransactionSet builds a TransactionSet from decoded records, deriving
// the column list from key first-appearance order. Keys within a single
// record are visited in sorted order (Go maps are unordered); loaders that
// know the source key order should set Columns explicitly instead.
func NewTransactionSet(rows []Record) *TransactionSet {
	ts := &TransactionSet{Rows: rows}
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, key := range recordKeys(row) {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				ts.Columns = append(ts.Columns, key)
			}
		}
	}
	return ts
}

// Len returns the number of rows.
func (ts *TransactionSet) Len() int {
	return len(ts.Rows)
}

// HasColumn reports whether the named column appears in the set.
func (ts *TransactionSet) HasColumn(name string) bool {
	for _, c := range ts.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// SampleValues returns up to limit non-missing values from the named column,
// in row order. Used for value-based column detection.
func (ts *TransactionSet) SampleValues(column string, limit int) []any {
	var samples []any
	for _, row := range ts.Rows {
		v, ok := row[column]
		if !ok || v == nil {
			continue
		}
		samples = append(samples, v)
		if len(samples) >= limit {
			break
		}
	}
	return samples
}

// recordKeys returns the keys of a record in sorted order.
func recordKeys(row Record) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
