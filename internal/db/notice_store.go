package db

import (
	"context"
	"fmt"
	"time"
)

// Notice is a persisted GM broadcast.
type Notice struct {
	ID        int64
	UserID    string
	Message   string
	CreatedAt time.Time
}

// NoticeStore records GM notices broadcast through the /n chat command.
type NoticeStore struct {
	db *DB
}

// NewNoticeStore creates a notice store.
func NewNoticeStore(db *DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// Record inserts a notice.
func (s *NoticeStore) Record(ctx context.Context, userID, message string) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO gm_notices (user_id, message) VALUES ($1, $2)`,
		userID, message,
	)
	if err != nil {
		return fmt.Errorf("recording notice from %q: %w", userID, err)
	}
	return nil
}

// Recent returns up to limit latest notices, newest first.
func (s *NoticeStore) Recent(ctx context.Context, limit int) ([]Notice, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT id, user_id, message, created_at
		 FROM gm_notices ORDER BY id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying notices: %w", err)
	}
	defer rows.Close()

	var out []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notice: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notices: %w", err)
	}
	return out, nil
}
