// Package ingestion locates and decodes transaction datasets. The input
// document is either a flat array of records, an object holding such an
// array under a recognized key, or, failing those, the first array-valued
// member in document order.
package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"defi-credit-lab/internal/domain"
)

// ErrNoTransactionData is returned when no transaction sequence can be
// located in the input document. Fatal: nothing can be scored.
var ErrNoTransactionData = errors.New("could not find transaction data in document")

// Keys tried, in order, when the document is an object.
var recognizedKeys = []string{"transactions", "data", "records", "events"}

// Load reads and decodes a transaction dataset from a JSON file.
func Load(path string) (*domain.TransactionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transactions file %s: %w", path, err)
	}
	ts, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ts, nil
}

// Decode locates the transaction sequence in a JSON document and builds a
// TransactionSet. Column order follows key first-appearance order in the
// raw document, so downstream first-match detection is deterministic.
func Decode(data []byte) (*domain.TransactionSet, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		return fromRawRecords(arr)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: document is neither array nor object", ErrNoTransactionData)
	}

	for _, key := range recognizedKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &arr); err == nil {
			return fromRawRecords(arr)
		}
	}

	// Last resort: first non-empty array-valued member in document order.
	raw, ok := firstArrayMember(data)
	if !ok {
		return nil, ErrNoTransactionData
	}
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTransactionData, err)
	}
	return fromRawRecords(arr)
}

// fromRawRecords decodes array elements into records and derives the
// column list by scanning each element's keys in appearance order.
func fromRawRecords(elems []json.RawMessage) (*domain.TransactionSet, error) {
	ts := &domain.TransactionSet{Rows: make([]domain.Record, 0, len(elems))}
	seen := make(map[string]struct{})

	for i, elem := range elems {
		var record domain.Record
		if err := json.Unmarshal(elem, &record); err != nil {
			return nil, fmt.Errorf("transaction record %d is not an object: %w", i, err)
		}
		ts.Rows = append(ts.Rows, record)

		keys, err := objectKeys(elem)
		if err != nil {
			return nil, fmt.Errorf("scan keys of record %d: %w", i, err)
		}
		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				ts.Columns = append(ts.Columns, key)
			}
		}
	}

	return ts, nil
}

// objectKeys returns a JSON object's keys in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)

		// Skip the value, whatever its shape.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// firstArrayMember walks a top-level object's members in document order and
// returns the raw value of the first one holding a non-empty array.
func firstArrayMember(data []byte) (json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil { // member key
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}

		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
			return raw, true
		}
	}
	return nil, false
}
