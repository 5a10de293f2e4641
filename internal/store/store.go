// Package store provides the durable key-value port the repositories persist
// their records through. Values are JSON documents addressed by record name.
package store

import (
	"encoding/json"
	"fmt"
)

// Store is a synchronous mapping from record names to JSON-serializable values.
// There are no transactions: every Set replaces the whole record.
type Store interface {
	// Get decodes the record into dst. It reports false when the record
	// has never been written.
	Get(key string, dst any) (bool, error)

	// Set encodes value and replaces the record.
	Set(key string, value any) error
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %q: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dst any) error {
	err := json.Unmarshal(data, dst)
	if err != nil {
		return fmt.Errorf("failed to decode record %q: %w", key, err)
	}
	return nil
}
