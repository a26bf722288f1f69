// Package session owns browser sessions for the frontend: the durable
// credential store and the login/logout/resolution lifecycle around it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists exactly one bearer credential per browser session,
// surviving frontend restarts. It is the only durable state this
// process owns; everything else lives in the backend.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Credential returns the stored bearer token for the session, or ""
// when the session holds none.
func (s *Store) Credential(ctx context.Context, sessionID string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM sessions WHERE id = ?`, sessionID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return token, nil
}

// SetCredential stores the bearer token for the session, replacing any
// previous one.
func (s *Store) SetCredential(ctx context.Context, sessionID, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token`,
		sessionID, token, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	slog.InfoContext(ctx, "Credential stored", "session_id", sessionID)
	return nil
}

// DeleteCredential removes the session's bearer token. Deleting an
// absent credential is not an error.
func (s *Store) DeleteCredential(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
