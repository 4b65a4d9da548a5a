// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"broadcasthub/internal/models"
)

// fakeUploader records uploads and optionally fails them.
type fakeUploader struct {
	uploads []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeUploader) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestAttach_Success(t *testing.T) {
	up := &fakeUploader{}
	f := &StagedFile{Filename: "banner.png", ContentType: "image/png", Data: []byte("png")}

	url, err := Attach(context.Background(), up, RequiredAttach, BroadcastPhotoFolder, f)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if url == nil {
		t.Fatal("Attach returned nil URL on success")
	}
	if !strings.HasPrefix(*url, "https://cdn.example.com/broadcast-photos/") {
		t.Errorf("url = %q, want broadcast-photos prefix", *url)
	}
	if !strings.HasSuffix(*url, ".png") {
		t.Errorf("url = %q, extension not preserved", *url)
	}
}

func TestAttach_NothingStaged(t *testing.T) {
	up := &fakeUploader{}
	url, err := Attach(context.Background(), up, RequiredAttach, BroadcastPhotoFolder, nil)
	if err != nil || url != nil {
		t.Fatalf("Attach(nil file) = (%v, %v), want (nil, nil)", url, err)
	}
	if len(up.uploads) != 0 {
		t.Error("upload attempted with nothing staged")
	}
}

func TestAttach_StorageUnavailable(t *testing.T) {
	f := &StagedFile{Filename: "clip.mp4", ContentType: "video/mp4", Data: []byte("vid")}

	// Both policies proceed without media when storage is unavailable.
	for _, policy := range []AttachPolicy{BestEffortAttach, RequiredAttach} {
		url, err := Attach(context.Background(), nil, policy, MediaFolder("video"), f)
		if err != nil || url != nil {
			t.Fatalf("Attach(nil uploader, policy %d) = (%v, %v), want (nil, nil)", policy, url, err)
		}
	}
}

func TestAttach_BestEffortSwallowsFailure(t *testing.T) {
	up := &fakeUploader{err: errors.New("bucket gone")}
	f := &StagedFile{Filename: "banner.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	url, err := Attach(context.Background(), up, BestEffortAttach, BroadcastPhotoFolder, f)
	if err != nil {
		t.Fatalf("best-effort attach surfaced error: %v", err)
	}
	if url != nil {
		t.Errorf("url = %q after failed upload, want nil", *url)
	}
}

func TestAttach_RequiredFailureIsMediaUploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("bucket gone")}
	f := &StagedFile{Filename: "doc.pdf", ContentType: "application/pdf", Data: []byte("pdf")}

	_, err := Attach(context.Background(), up, RequiredAttach, MediaFolder("document"), f)
	var uploadErr *models.MediaUploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("err = %v, want MediaUploadError", err)
	}
	if !strings.HasPrefix(uploadErr.Key, "message-document/") {
		t.Errorf("key = %q, want message-document prefix", uploadErr.Key)
	}
}

func TestObjectKey_RandomWithExtension(t *testing.T) {
	a := ObjectKey(BroadcastPhotoFolder, "photo.jpeg")
	b := ObjectKey(BroadcastPhotoFolder, "photo.jpeg")
	if a == b {
		t.Error("two keys for the same filename collided")
	}
	if !strings.HasSuffix(a, ".jpeg") {
		t.Errorf("key %q lost the extension", a)
	}
	if ext := ObjectKey("f", "noext"); strings.Contains(ext[len("f/"):], ".") {
		t.Errorf("key %q grew an extension from nothing", ext)
	}
}
