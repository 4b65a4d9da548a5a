// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dispatch implements the message send workflow: optional media
// upload, a single pass-or-fail call to the delivery webhook, and exactly
// one terminal history record per attempt. No retry is performed — the
// operator resubmits manually.
package dispatch

import (
	"context"
	"log/slog"

	"broadcasthub/internal/models"
	"broadcasthub/internal/storage"
)

// historyLimit caps how many records History returns.
const historyLimit = 10

// HistoryStore is the message-history surface the dispatcher needs.
// Satisfied by *store.MessageStore.
type HistoryStore interface {
	Insert(ctx context.Context, m models.Message) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.MessageRecord, error)
	UpdateStatus(ctx context.Context, id int64, status models.MessageStatus) error
}

// Deliverer submits a composed message to the delivery endpoint.
// Satisfied by *webhook.DeliveryClient.
type Deliverer interface {
	Deliver(ctx context.Context, m models.Message) error
}

// ObjectStore is the object-store surface the dispatcher needs.
// Satisfied by *storage.Client.
type ObjectStore interface {
	storage.Uploader
	BucketAvailable(ctx context.Context) bool
}

// Dispatcher coordinates send attempts and the send history.
type Dispatcher struct {
	history  HistoryStore
	delivery Deliverer
	objects  ObjectStore // nil when object storage is not configured
}

// New creates a dispatcher. objects may be nil; media uploads are then
// skipped entirely.
func New(history HistoryStore, delivery Deliverer, objects ObjectStore) *Dispatcher {
	return &Dispatcher{history: history, delivery: delivery, objects: objects}
}

// Send attempts delivery of a composed message.
//
// For non-text messages with a staged file and available storage, the
// media is uploaded first under RequiredAttach: an upload failure returns
// MediaUploadError and blocks the dispatch — nothing reaches the
// endpoint and no history record is written. Text messages never touch
// storage.
//
// Once the delivery attempt reaches a terminal outcome, exactly one
// history record is persisted: status sent on endpoint success, failed
// otherwise. History persistence is best-effort and never changes the
// reported outcome — delivery already happened (or didn't).
func (d *Dispatcher) Send(ctx context.Context, m models.Message, media *storage.StagedFile) error {
	if m.VerificationCode == "" {
		return &models.ValidationError{Field: "verification_code", Reason: "verification code is required"}
	}
	if !m.MediaType.Valid() {
		return &models.ValidationError{Field: "media_type", Reason: "unknown media type"}
	}
	if m.MediaType == models.MediaText && m.Content == "" {
		return &models.ValidationError{Field: "content", Reason: "content is required for text messages"}
	}

	if m.MediaType != models.MediaText {
		var uploader storage.Uploader
		if d.objects != nil && d.objects.BucketAvailable(ctx) {
			uploader = d.objects
		}
		url, err := storage.Attach(ctx, uploader, storage.RequiredAttach, storage.MediaFolder(string(m.MediaType)), media)
		if err != nil {
			return err
		}
		if url != nil {
			m.MediaURL = url
		}
	}

	if err := d.delivery.Deliver(ctx, m); err != nil {
		m.Status = models.StatusFailed
		if _, insErr := d.history.Insert(ctx, m); insErr != nil {
			slog.Error("failed to record failed delivery", "error", insErr)
		}
		return err
	}

	m.Status = models.StatusSent
	if _, err := d.history.Insert(ctx, m); err != nil {
		slog.Error("delivery succeeded but history record failed", "error", err)
	}
	return nil
}

// History returns the most recent send records, newest first. limit is
// clamped to 10; zero or negative means 10.
func (d *Dispatcher) History(ctx context.Context, limit int) ([]models.MessageRecord, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	records, err := d.history.Recent(ctx, limit)
	if err != nil {
		return nil, &models.FetchError{Op: "message history", Err: err}
	}
	return records, nil
}

// MarkCancelled flags a history record as cancelled.
func (d *Dispatcher) MarkCancelled(ctx context.Context, id int64) error {
	if err := d.history.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		return &models.PersistenceError{Op: "message status", Err: err}
	}
	return nil
}
