// Package db persists finished debate sessions and their transcripts. The
// debate engine itself never touches this; the CLI hands it completed results.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voletro/consilium/internal/debate"
	"github.com/voletro/consilium/internal/spec"
)

// Store provides persistence for debate sessions.
type Store struct {
	db *sql.DB
}

// NewStore creates a store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SessionRecord is a stored debate session.
type SessionRecord struct {
	SessionID   string
	CreatedAt   string
	Requirement string
	Degraded    bool
	LastError   string
	Spec        spec.ProjectSpec
}

// SaveResult stores a debate result and its transcript in one transaction.
func (s *Store) SaveResult(ctx context.Context, requirement string, res debate.Result) error {
	specJSON, err := json.Marshal(res.Spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `INSERT INTO sessions(session_id, created_at, requirement, degraded, last_error, spec_json)
		VALUES(?, ?, ?, ?, ?, ?)`,
		res.SessionID, createdAt, requirement, boolToInt(res.Degraded), res.LastError, string(specJSON)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert session: %w", err)
	}
	for i, entry := range res.Transcript {
		if _, err := tx.ExecContext(ctx, `INSERT INTO transcript_entries(session_id, seq, speaker, summary, content)
			VALUES(?, ?, ?, ?, ?)`,
			res.SessionID, i, entry.Speaker, entry.Summary, entry.Content); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert transcript entry %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save session: %w", err)
	}
	return nil
}

// ListSessions returns stored sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id, created_at, requirement, degraded, last_error, spec_json
		FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetSession returns one stored session by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT session_id, created_at, requirement, degraded, last_error, spec_json
		FROM sessions WHERE session_id=?`, sessionID)
	return scanSession(row)
}

// Transcript returns the stored transcript for a session in order.
func (s *Store) Transcript(ctx context.Context, sessionID string) ([]debate.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT speaker, summary, content
		FROM transcript_entries WHERE session_id=? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []debate.Entry
	for rows.Next() {
		var e debate.Entry
		if err := rows.Scan(&e.Speaker, &e.Summary, &e.Content); err != nil {
			return nil, fmt.Errorf("scan transcript entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var rec SessionRecord
	var degraded int
	var lastErr sql.NullString
	var specJSON string
	if err := row.Scan(&rec.SessionID, &rec.CreatedAt, &rec.Requirement, &degraded, &lastErr, &specJSON); err != nil {
		return SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	rec.Degraded = degraded != 0
	rec.LastError = lastErr.String
	if err := json.Unmarshal([]byte(specJSON), &rec.Spec); err != nil {
		return SessionRecord{}, fmt.Errorf("decode stored spec: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
