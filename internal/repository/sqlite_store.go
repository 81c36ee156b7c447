package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type sqliteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM session_store WHERE key = ?"
	row := s.db.QueryRowContext(ctx, query, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set is an upsert; re-saving the same value is safe (last write wins).
func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	query := "DELETE FROM session_store WHERE key = ?"
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

// DeleteMany removes the keys in one transaction so a partially cleared
// session is never observable.
func (s *sqliteStore) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	query := fmt.Sprintf("DELETE FROM session_store WHERE key IN (%s)", placeholders)

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("could not delete keys: %w", err)
	}

	return tx.Commit()
}
