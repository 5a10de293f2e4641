package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps one row per record in the records table.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key string, dst any) (bool, error) {
	var value string
	query := `SELECT value FROM records WHERE name = $1`

	err := s.db.Get(&value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, decode(key, []byte(value), dst)
}

func (s *SQLStore) Set(key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}

	query := `INSERT INTO records (name, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err = s.db.Exec(query, key, string(data), time.Now())
	return err
}
