// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"broadcasthub/internal/models"
)

// LabelsClient fetches the classification labels from the external labels
// endpoint. Labels are never cached — every screen mount re-fetches.
type LabelsClient struct {
	url    string
	client *http.Client
}

// NewLabelsClient creates a labels client for the given endpoint URL.
func NewLabelsClient(url string) *LabelsClient {
	return &LabelsClient{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch retrieves the label set. Order is as returned by the endpoint.
// Network failures, non-2xx responses, and malformed (non-array) payloads
// all surface as FetchError.
func (c *LabelsClient) Fetch(ctx context.Context) ([]models.Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("labels request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &models.FetchError{Op: "labels", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.FetchError{
			Op:  "labels",
			Err: fmt.Errorf("endpoint returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.FetchError{Op: "labels", Err: err}
	}

	var labels []models.Label
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, &models.FetchError{Op: "labels", Err: err}
	}
	return labels, nil
}
