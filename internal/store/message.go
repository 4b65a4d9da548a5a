// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"broadcasthub/internal/models"
)

// MessageStore handles the message history table.
type MessageStore struct {
	db *sql.DB
}

// NewMessageStore creates a new MessageStore with the given database connection.
func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Insert persists a message for history and returns its assigned id.
func (s *MessageStore) Insert(ctx context.Context, m models.Message) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages
			(content, media_type, media_url, media_caption,
			 label_id, label_name, label_color, verification_code, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, m.Content, string(m.MediaType), m.MediaURL, m.MediaCaption,
		m.LabelID, m.LabelName, m.LabelColor, m.VerificationCode, string(m.Status),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return id, nil
}

// Recent returns the latest message records, newest first.
func (s *MessageStore) Recent(ctx context.Context, limit int) ([]models.MessageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, media_type, media_url, media_caption,
		       label_id, label_name, label_color, verification_code, status, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	var records []models.MessageRecord
	for rows.Next() {
		var rec models.MessageRecord
		var mediaType, status string
		if err := rows.Scan(
			&rec.ID, &rec.Content, &mediaType, &rec.MediaURL, &rec.MediaCaption,
			&rec.LabelID, &rec.LabelName, &rec.LabelColor,
			&rec.VerificationCode, &status, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		rec.MediaType = models.MediaType(mediaType)
		rec.Status = models.MessageStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateStatus changes the status of a persisted message.
func (s *MessageStore) UpdateStatus(ctx context.Context, id int64, status models.MessageStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE messages SET status = $1 WHERE id = $2
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("update message status: id %d not found", id)
	}
	return nil
}
