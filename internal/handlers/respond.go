// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API consumed by the console
// front end.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"broadcasthub/internal/models"
	"broadcasthub/internal/storage"
)

// maxUploadSize is the maximum allowed file upload size (50 MB).
const maxUploadSize = 50 << 20

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps a domain error to an HTTP status and writes a JSON
// error body. Unrecognized errors become a generic 500; their detail is
// logged, not leaked.
func writeError(w http.ResponseWriter, err error) {
	var (
		vErr   *models.ValidationError
		dupErr *models.DuplicatePeriodError
		fErr   *models.FetchError
		pErr   *models.PersistenceError
		uErr   *models.MediaUploadError
		delErr *models.DeliveryError
		impErr *models.ImportError
	)

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
	case errors.As(err, &dupErr):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":         dupErr.Error(),
			"period":        string(dupErr.Period),
			"conflict_id":   dupErr.ConflictID,
			"conflict_name": dupErr.ConflictName,
		})
	case errors.As(err, &fErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": fErr.Error()})
	case errors.As(err, &uErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": uErr.Error()})
	case errors.As(err, &delErr):
		body := map[string]any{"error": delErr.Error()}
		if delErr.Status != 0 {
			body["endpoint_status"] = delErr.Status
		}
		writeJSON(w, http.StatusBadGateway, body)
	case errors.As(err, &impErr):
		body := map[string]any{"error": impErr.Error()}
		if impErr.Status != 0 {
			body["endpoint_status"] = impErr.Status
		}
		writeJSON(w, http.StatusBadGateway, body)
	case errors.As(err, &pErr):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": pErr.Error()})
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// stagedFileFromForm extracts the named multipart file into a StagedFile.
// Returns (nil, nil) when the field is absent; a missing optional file is
// not an error. The request body must already be limited and parsed.
func stagedFileFromForm(r *http.Request, field string) (*storage.StagedFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.ValidationError{Field: field, Reason: "invalid file upload"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", field, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &storage.StagedFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// parseUploadForm limits the body and parses the multipart form, mapping
// an oversized body to a ValidationError.
func parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return &models.ValidationError{Field: "file", Reason: "upload too large or malformed"}
	}
	return nil
}
