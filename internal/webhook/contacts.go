// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"broadcasthub/internal/models"
	"broadcasthub/internal/storage"
)

// ImportClient posts contact spreadsheets to the external import
// endpoint. The endpoint's response is opaque: success means "request
// accepted", with no partial-row reporting.
type ImportClient struct {
	url    string
	client *http.Client
}

// NewImportClient creates an import client for the given endpoint URL.
func NewImportClient(url string) *ImportClient {
	return &ImportClient{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Import submits the file and verification code as a single multipart
// request. Missing inputs fail with ValidationError before any network
// call is made.
func (c *ImportClient) Import(ctx context.Context, file *storage.StagedFile, verificationCode string) error {
	if file == nil || len(file.Data) == 0 {
		return &models.ValidationError{Field: "file", Reason: "a contact file is required"}
	}
	if verificationCode == "" {
		return &models.ValidationError{Field: "verification_code", Reason: "verification code is required"}
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", file.Filename)
	if err != nil {
		return fmt.Errorf("import form file: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("import write file: %w", err)
	}
	if err := form.WriteField("verification_code", verificationCode); err != nil {
		return fmt.Errorf("import write code: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("import close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return fmt.Errorf("import request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return &models.ImportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &models.ImportError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
