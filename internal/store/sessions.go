package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session ties a user to an active conversation under an opaque id.
type Session struct {
	ID             int64
	SessionID      string
	UserID         int64
	ConversationID int64
	CreatedAt      time.Time
	ExpiresAt      *time.Time
	IsActive       bool
	Metadata       string
}

// CreateSession opens a session for a user/conversation pair. ttl <= 0
// means the session never expires.
func (s *Store) CreateSession(ctx context.Context, userID, conversationID int64, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	sessionID := uuid.NewString()

	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, conversation_id, created_at, expires_at, is_active)
		 VALUES (?, ?, ?, ?, ?, 1)`,
		sessionID, userID, conversationID, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("store: create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create session id: %w", err)
	}

	return &Session{
		ID:             id,
		SessionID:      sessionID,
		UserID:         userID,
		ConversationID: conversationID,
		CreatedAt:      now,
		ExpiresAt:      expiresAt,
		IsActive:       true,
	}, nil
}

// GetSession retrieves an active, unexpired session by its opaque id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, user_id, conversation_id, created_at, expires_at, is_active,
		        COALESCE(metadata, '')
		 FROM sessions WHERE session_id = ? AND is_active = 1`, sessionID)

	var sess Session
	err := row.Scan(&sess.ID, &sess.SessionID, &sess.UserID, &sess.ConversationID,
		&sess.CreatedAt, &sess.ExpiresAt, &sess.IsActive, &sess.Metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan session: %w", err)
	}

	if sess.ExpiresAt != nil && time.Now().UTC().After(*sess.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// EndSession deactivates a session. Unknown ids are a no-op.
func (s *Store) EndSession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET is_active = 0 WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("store: end session: %w", err)
	}
	return nil
}
