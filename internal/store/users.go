package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a registered participant.
type User struct {
	ID         int64
	Username   string
	Email      string
	CreatedAt  time.Time
	LastActive time.Time
	IsActive   bool
}

// CreateUser inserts a new user. Username must be unique.
func (s *Store) CreateUser(ctx context.Context, username, email string) (*User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, created_at, last_active, is_active)
		 VALUES (?, ?, ?, ?, 1)`,
		username, nullIfEmpty(email), now, now)
	if err != nil {
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create user id: %w", err)
	}
	return &User{
		ID:         id,
		Username:   username,
		Email:      email,
		CreatedAt:  now,
		LastActive: now,
		IsActive:   true,
	}, nil
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, COALESCE(email, ''), created_at, last_active, is_active
		 FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// GetOrCreateUser returns the existing user with the given username or
// creates one. Matching the conversation manager's contract: lookups
// refresh last_active.
func (s *Store) GetOrCreateUser(ctx context.Context, username, email string) (*User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return s.CreateUser(ctx, username, email)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_active = ? WHERE id = ?`, now, user.ID); err != nil {
		return nil, fmt.Errorf("store: touch user: %w", err)
	}
	user.LastActive = now
	return user, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.LastActive, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan user: %w", err)
	}
	return &u, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
