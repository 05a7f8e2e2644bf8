package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps session state in a single portal_sessions table so
// that wizard progress survives server restarts.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// DB exposes the underlying handle for the migrator.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Load(ctx context.Context, username string) (State, error) {
	var draftJSON, markersJSON []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT draft, markers
		FROM portal_sessions
		WHERE username = $1
	`, username).Scan(&draftJSON, &markersJSON)
	if err == sql.ErrNoRows {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to load session for %q: %w", username, err)
	}

	state := NewState()
	if err := json.Unmarshal(draftJSON, &state.Draft); err != nil {
		return State{}, fmt.Errorf("failed to decode draft for %q: %w", username, err)
	}
	if err := json.Unmarshal(markersJSON, &state.Markers); err != nil {
		return State{}, fmt.Errorf("failed to decode markers for %q: %w", username, err)
	}

	return state, nil
}

func (s *PostgresStore) Save(ctx context.Context, username string, state State) error {
	draftJSON, err := json.Marshal(state.Draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	markers := state.Markers
	if markers == nil {
		markers = []string{}
	}
	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("failed to encode markers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO portal_sessions (username, draft, markers, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (username)
		DO UPDATE SET draft = $2, markers = $3, updated_at = NOW()
	`, username, draftJSON, markersJSON)
	if err != nil {
		return fmt.Errorf("failed to save session for %q: %w", username, err)
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM portal_sessions
		WHERE username = $1
	`, username)
	if err != nil {
		return fmt.Errorf("failed to reset session for %q: %w", username, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
