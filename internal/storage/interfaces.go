package storage

import (
	"context"

	"defi-credit-lab/internal/domain"
)

// TransactionStore provides access to raw ingested transaction records.
// Records are stored as-is; schema detection and cleaning happen at scoring
// time, never at ingest time, so heterogeneous datasets can coexist.
type TransactionStore interface {
	// InsertBulk appends records atomically, preserving order.
	InsertBulk(ctx context.Context, records []domain.Record) error

	// GetAll retrieves every record in insertion order.
	GetAll(ctx context.Context) ([]domain.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
