package memory

import (
	"context"
	"sync"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/storage"
)

// TransactionStore is an in-memory implementation of
// storage.TransactionStore. Records are defensively copied on the way in
// and out so callers cannot mutate stored state.
type TransactionStore struct {
	mu   sync.RWMutex
	rows []domain.Record
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk appends records atomically, preserving order.
func (s *TransactionStore) InsertBulk(_ context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.rows = append(s.rows, copyRecord(r))
	}
	return nil
}

// GetAll retrieves every record in insertion order.
func (s *TransactionStore) GetAll(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, len(s.rows))
	for i, r := range s.rows {
		out[i] = copyRecord(r)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *TransactionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

func copyRecord(r domain.Record) domain.Record {
	out := make(domain.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
