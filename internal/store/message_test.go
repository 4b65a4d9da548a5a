// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"testing"

	"broadcasthub/internal/models"
)

func TestMessageStore_InsertAndRecent(t *testing.T) {
	db := testDB(t)
	s := NewMessageStore(db)
	ctx := context.Background()

	const code = "store-test-code"
	t.Cleanup(func() { cleanMessages(t, db, code) })

	var lastID int64
	for i := 0; i < 12; i++ {
		id, err := s.Insert(ctx, models.Message{
			Content:          fmt.Sprintf("history entry %d", i),
			MediaType:        models.MediaText,
			VerificationCode: code,
			Status:           models.StatusSent,
		})
		if err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		lastID = id
	}

	records, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("Recent returned %d records, want 10", len(records))
	}
	// Newest first: the last inserted row leads.
	if records[0].ID != lastID {
		t.Errorf("records[0].ID = %d, want %d", records[0].ID, lastID)
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records out of order at %d", i)
		}
	}
}

func TestMessageStore_UpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewMessageStore(db)
	ctx := context.Background()

	const code = "store-test-cancel"
	t.Cleanup(func() { cleanMessages(t, db, code) })

	id, err := s.Insert(ctx, models.Message{
		Content:          "to be cancelled",
		MediaType:        models.MediaText,
		VerificationCode: code,
		Status:           models.StatusFailed,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	records, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	for _, rec := range records {
		if rec.ID == id && rec.Status != models.StatusCancelled {
			t.Errorf("status = %q, want cancelled", rec.Status)
		}
	}

	if err := s.UpdateStatus(ctx, -1, models.StatusCancelled); err == nil {
		t.Error("UpdateStatus of missing id succeeded")
	}
}
