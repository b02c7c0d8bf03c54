// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/vibes-tui/internal/model"
)

// Errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoSession       = errors.New("message has no session")
	ErrClosed          = errors.New("store is closed")
)

// =============================================================================
// SESSION DOCUMENT
// =============================================================================

// Session is one chat's metadata document.
type Session struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Favorite    bool      `json:"favorite,omitempty"`
	StylePrompt string    `json:"stylePrompt,omitempty"`
	UserPrompt  string    `json:"userPrompt,omitempty"`
}

// DisplayTitle returns the title or model.DefaultTitle.
func (s Session) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return model.DefaultTitle
}

// Path returns the session's chat URL path.
func (s Session) Path() string {
	return SessionPath(s.ID, s.DisplayTitle())
}

// =============================================================================
// STORE
// =============================================================================

// Store is a local document database of sessions and their messages.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("session store opened")
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// =============================================================================
// SESSIONS
// =============================================================================

// NewSession returns an unsaved session with a fresh ID.
func NewSession() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
}

// PutSession inserts or replaces a session document. A missing ID or
// creation time is filled in.
func (s *Store) PutSession(ctx context.Context, sess *Session) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}

	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, favorite, title, doc)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			favorite   = excluded.favorite,
			title      = excluded.title,
			doc        = excluded.doc`,
		sess.ID, sess.CreatedAt.UnixNano(), boolToInt(sess.Favorite), sess.Title, string(doc))
	if err != nil {
		return fmt.Errorf("put session %s: %w", sess.ID, err)
	}
	return nil
}

// GetSession loads one session.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var doc string
	err = db.QueryRowContext(ctx, `SELECT doc FROM sessions WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return decodeSession(doc)
}

// ListSessions returns sessions newest first, optionally favorites only.
func (s *Store) ListSessions(ctx context.Context, justFavorites bool) ([]Session, error) {
	query := `SELECT doc FROM sessions ORDER BY created_at DESC`
	if justFavorites {
		query = `SELECT doc FROM sessions WHERE favorite = 1 ORDER BY created_at DESC`
	}
	return s.querySessions(ctx, query)
}

// SearchSessions returns sessions whose title contains query, newest first.
func (s *Store) SearchSessions(ctx context.Context, query string) ([]Session, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return s.querySessions(ctx,
		`SELECT doc FROM sessions WHERE lower(title) LIKE ? ESCAPE '\' ORDER BY created_at DESC`,
		pattern)
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]Session, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess, err := decodeSession(doc)
		if err != nil {
			// One bad document shouldn't hide the rest of the list.
			log.Warn().Err(err).Msg("skipping unreadable session document")
			continue
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

// ToggleFavorite flips a session's favorite flag and returns the new value.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return false, err
	}
	sess.Favorite = !sess.Favorite
	if err := s.PutSession(ctx, sess); err != nil {
		return false, err
	}
	log.Debug().Str("session", id).Bool("favorite", sess.Favorite).Msg("favorite toggled")
	return sess.Favorite, nil
}

// DeleteSession removes a session and all its messages.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// PutMessage inserts or replaces a message document. Its session must
// already exist.
func (s *Store) PutMessage(ctx context.Context, msg *model.Message) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if msg.SessionID == "" {
		return ErrNoSession
	}

	doc, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, created_at, doc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		msg.ID, msg.SessionID, msg.Timestamp.UnixNano(), string(doc))
	if err != nil {
		return fmt.Errorf("put message %s: %w", msg.ID, err)
	}
	return nil
}

// Messages returns a session's messages in the order they were first
// stored.
func (s *Store) Messages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT doc FROM messages WHERE session_id = ? ORDER BY rowid`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*model.Message
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg := &model.Message{}
		if err := json.Unmarshal([]byte(doc), msg); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("skipping unreadable message document")
			continue
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// LoadConversation rebuilds the in-memory conversation for a session.
func (s *Store) LoadConversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.Messages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	conv := model.NewConversation(sess.ID)
	conv.Title = sess.Title
	conv.CreatedAt = sess.CreatedAt
	conv.Messages = msgs
	return conv, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeSession(doc string) (*Session, error) {
	sess := &Session{}
	if err := json.Unmarshal([]byte(doc), sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
