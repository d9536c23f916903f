// ABOUTME: Settings persistence with transactional multi-key upsert
// ABOUTME: Settings are singleton key/value rows; absence means the default applies

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetSetting returns the value stored for a key.
// Returns ErrNotFound if no row exists for the key; callers substitute their
// documented default in that case.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %q: %w", key, err)
	}

	return value.String, nil
}

// UpsertSettings applies all key/value pairs in a single transaction.
// Each pair is inserted or, if the key already exists, overwritten. If any
// pair fails (including an empty key) the transaction is rolled back and no
// pair is persisted.
func (s *SQLiteStore) UpsertSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning settings transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("preparing settings upsert: %w", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if k == "" {
			return ErrEmptyKey
		}
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("upserting setting %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settings transaction: %w", err)
	}

	s.logger.Debug("upserted settings", "count", len(values))
	return nil
}
