package store

import (
	"context"
	"fmt"
	"time"

	"github.com/quietharbor/quietharbor/internal/model"
)

// Message is one stored conversation turn.
type Message struct {
	ID             int64
	ConversationID int64
	Role           model.Role
	Content        string
	CreatedAt      time.Time
	SentimentScore *float64
	CrisisLevel    model.Severity
}

// AddMessage appends a turn to a conversation, recording its sentiment
// score and crisis level. A crisis-level user turn also flips the
// conversation's crisis flag.
func (s *Store) AddMessage(ctx context.Context, conversationID int64, role model.Role, content string, sentimentScore *float64, crisisLevel model.Severity) (*Message, error) {
	if crisisLevel == "" {
		crisisLevel = model.SeverityNone
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, created_at, sentiment_score, crisis_level)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		conversationID, string(role), content, now, sentimentScore, string(crisisLevel))
	if err != nil {
		return nil, fmt.Errorf("store: add message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: add message id: %w", err)
	}

	if crisisLevel != model.SeverityNone {
		if err := s.MarkCrisisDetected(ctx, conversationID); err != nil {
			return nil, err
		}
	}

	return &Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      now,
		SentimentScore: sentimentScore,
		CrisisLevel:    crisisLevel,
	}, nil
}

// Messages lists a conversation's turns in chronological order.
// limit <= 0 means no limit.
func (s *Store) Messages(ctx context.Context, conversationID int64, limit int) ([]Message, error) {
	query := `SELECT id, conversation_id, role, content, created_at, sentiment_score, crisis_level
	          FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC`
	args := []any{conversationID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var role, level string
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content,
			&m.CreatedAt, &m.SentimentScore, &level); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		m.Role = model.Role(role)
		m.CrisisLevel = model.ParseSeverity(level)
		out = append(out, m)
	}
	return out, rows.Err()
}

// History returns a conversation's turns as role/content pairs in the
// shape the completion API expects. limit <= 0 means no limit.
func (s *Store) History(ctx context.Context, conversationID int64, limit int) ([]model.Turn, error) {
	messages, err := s.Messages(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}
	turns := make([]model.Turn, len(messages))
	for i, m := range messages {
		turns[i] = model.Turn{Role: m.Role, Content: m.Content}
	}
	return turns, nil
}

// CrisisCounts returns the number of stored user turns per crisis level.
// Used by the metrics collector on scrape.
func (s *Store) CrisisCounts(ctx context.Context) (map[model.Severity]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT crisis_level, COUNT(*) FROM messages WHERE role = 'user' GROUP BY crisis_level`)
	if err != nil {
		return nil, fmt.Errorf("store: crisis counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Severity]int64)
	for rows.Next() {
		var level string
		var n int64
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("store: scan crisis count: %w", err)
		}
		counts[model.ParseSeverity(level)] = n
	}
	return counts, rows.Err()
}
