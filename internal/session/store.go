// Package session persists operator credentials in the local sqlite database
// and manages the OAuth2 login lifecycle against the platform.
package session

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sonatafm/podium/internal/shared"
)

const (
	keyAccessToken   = "auth_token"
	keyRefreshToken  = "refresh_token"
	keyCurrentUserID = "current_user_id"
)

// Store reads and writes session rows in the sessions table.
type Store struct {
	db *sql.DB
}

// NewStore creates a session store over the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value for key. A missing row reports [shared.ErrNotFound].
func (s *Store) Get(key string) (string, error) {
	query := `SELECT value FROM sessions WHERE key = ?`

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: session key %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session key: %w", err)
	}

	return value, nil
}

// Set upserts a session row.
func (s *Store) Set(key, value string) error {
	query := `
		INSERT INTO sessions (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store session key: %w", err)
	}

	return nil
}

// Delete removes a session row. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete session key: %w", err)
	}

	return nil
}

// Clear drops every credential row.
func (s *Store) Clear() error {
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyCurrentUserID} {
		if err := s.Delete(key); err != nil {
			return err
		}
	}

	return nil
}
