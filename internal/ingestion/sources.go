package ingestion

import (
	"context"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/storage"
)

// TransactionSource provides a raw transaction dataset for a scoring run.
type TransactionSource interface {
	// Fetch returns the full dataset. The run is batch: everything is
	// loaded into memory before any scoring happens.
	Fetch(ctx context.Context) (*domain.TransactionSet, error)
}

// FileSource reads a dataset from a JSON document on disk.
type FileSource struct {
	Path string
}

// Fetch loads and decodes the file.
func (s FileSource) Fetch(_ context.Context) (*domain.TransactionSet, error) {
	return Load(s.Path)
}

// StoreSource reads a dataset previously ingested into a TransactionStore.
type StoreSource struct {
	Store storage.TransactionStore
}

// Fetch retrieves all stored records in ingest order. Column order falls
// back to sorted keys: JSONB round-trips do not preserve key order.
func (s StoreSource) Fetch(ctx context.Context) (*domain.TransactionSet, error) {
	records, err := s.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewTransactionSet(records), nil
}

// Compile-time interface checks.
var (
	_ TransactionSource = FileSource{}
	_ TransactionSource = StoreSource{}
)
