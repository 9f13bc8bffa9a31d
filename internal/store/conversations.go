package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Conversation is one support session's container for messages.
type Conversation struct {
	ID             int64
	UserID         int64
	Title          string
	StartedAt      time.Time
	EndedAt        *time.Time
	IsActive       bool
	SentimentScore *float64
	CrisisDetected bool
}

// StartConversation opens a new conversation for a user. An empty title
// gets the default "Conversation YYYY-MM-DD HH:MM" stamp.
func (s *Store) StartConversation(ctx context.Context, userID int64, title string) (*Conversation, error) {
	now := time.Now().UTC()
	if title == "" {
		title = "Conversation " + now.Format("2006-01-02 15:04")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, title, started_at, is_active, crisis_detected)
		 VALUES (?, ?, ?, 1, 0)`,
		userID, title, now)
	if err != nil {
		return nil, fmt.Errorf("store: start conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: start conversation id: %w", err)
	}
	return &Conversation{
		ID:        id,
		UserID:    userID,
		Title:     title,
		StartedAt: now,
		IsActive:  true,
	}, nil
}

// GetConversation retrieves a conversation by id.
func (s *Store) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, COALESCE(title, ''), started_at, ended_at, is_active,
		        sentiment_score, crisis_detected
		 FROM conversations WHERE id = ?`, id)

	var c Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.StartedAt, &c.EndedAt,
		&c.IsActive, &c.SentimentScore, &c.CrisisDetected)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan conversation: %w", err)
	}
	return &c, nil
}

// EndConversation marks a conversation inactive and stamps ended_at.
// Ending an already-ended or unknown conversation is a no-op.
func (s *Store) EndConversation(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET is_active = 0, ended_at = ? WHERE id = ? AND is_active = 1`,
		now, id); err != nil {
		return fmt.Errorf("store: end conversation: %w", err)
	}
	return nil
}

// MarkCrisisDetected flags the conversation once a crisis-level message
// is seen. The flag is sticky for the conversation's lifetime.
func (s *Store) MarkCrisisDetected(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET crisis_detected = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: mark crisis: %w", err)
	}
	return nil
}

// UserConversations lists a user's conversations, most recent first.
func (s *Store) UserConversations(ctx context.Context, userID int64) ([]Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, COALESCE(title, ''), started_at, ended_at, is_active,
		        sentiment_score, crisis_detected
		 FROM conversations WHERE user_id = ? ORDER BY started_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list conversations: %w", err)
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.StartedAt, &c.EndedAt,
			&c.IsActive, &c.SentimentScore, &c.CrisisDetected); err != nil {
			return nil, fmt.Errorf("store: scan conversation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
