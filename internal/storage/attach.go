// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"broadcasthub/internal/models"
)

// StagedFile is a file received from the operator and held in memory
// until a save or send decides whether to upload it.
type StagedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Uploader is the subset of Client used by the attach flow.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// AttachPolicy controls how an upload failure affects the enclosing
// workflow. Broadcast photo saves are best-effort: the save proceeds
// without a photo. Message media is required: a failure blocks dispatch.
type AttachPolicy int

const (
	BestEffortAttach AttachPolicy = iota
	RequiredAttach
)

// ObjectKey builds a storage key under folder with a random name, keeping
// the original file extension.
func ObjectKey(folder, filename string) string {
	return folder + "/" + uuid.New().String() + filepath.Ext(filename)
}

// Attach uploads a staged file and returns its public URL. A nil file or
// nil uploader yields (nil, nil): nothing staged, or storage unavailable —
// the caller proceeds without media either way. On upload failure the
// policy decides: BestEffortAttach logs and returns (nil, nil);
// RequiredAttach returns a MediaUploadError.
func Attach(ctx context.Context, up Uploader, policy AttachPolicy, folder string, f *StagedFile) (*string, error) {
	if f == nil || up == nil {
		return nil, nil
	}

	key := ObjectKey(folder, f.Filename)
	err := up.Upload(ctx, key, f.ContentType, bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		if policy == RequiredAttach {
			return nil, &models.MediaUploadError{Key: key, Err: err}
		}
		slog.Warn("best-effort upload failed, continuing without file",
			"key", key, "error", err)
		return nil, nil
	}

	url := up.FileURL(key)
	return &url, nil
}
