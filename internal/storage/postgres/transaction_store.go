package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"defi-credit-lab/internal/domain"
	"defi-credit-lab/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// Each record is stored verbatim as a JSONB payload; the bigserial id
// preserves ingest order so datasets read back in document order.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// InsertBulk appends records atomically, preserving order.
func (s *TransactionStore) InsertBulk(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO transactions (payload) VALUES ($1)`

	for _, record := range records {
		if record == nil {
			return storage.ErrInvalidInput
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal transaction payload: %w", err)
		}
		if _, err := tx.Exec(ctx, query, payload); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetAll retrieves every record in insertion order.
func (s *TransactionStore) GetAll(ctx context.Context) ([]domain.Record, error) {
	query := `
		SELECT payload
		FROM transactions
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		var record domain.Record
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("unmarshal transaction payload: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *TransactionStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
