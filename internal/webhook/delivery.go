// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package webhook implements the outbound HTTP clients for the three
// external endpoints the console depends on: message delivery, label
// lookup, and contact import. The console performs no delivery itself —
// each client makes a single pass-or-fail request.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"broadcasthub/internal/models"
)

// defaultTimeout bounds every outbound webhook call so a hung remote
// cannot hold a request open indefinitely.
const defaultTimeout = 30 * time.Second

// DeliveryClient posts composed messages to the external delivery endpoint.
type DeliveryClient struct {
	url    string
	client *http.Client
}

// NewDeliveryClient creates a delivery client for the given endpoint URL.
func NewDeliveryClient(url string) *DeliveryClient {
	return &DeliveryClient{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// deliveryPayload is the wire format the delivery endpoint expects.
type deliveryPayload struct {
	Content          string  `json:"content"`
	MediaType        string  `json:"media_type"`
	MediaURL         *string `json:"media_url"`
	MediaCaption     *string `json:"media_caption"`
	LabelID          *string `json:"label_id"`
	LabelName        *string `json:"label_name"`
	LabelColor       *string `json:"label_color"`
	VerificationCode string  `json:"verification_code"`
}

// Deliver submits a message as a single JSON request. A non-2xx response
// or transport failure returns a DeliveryError carrying the endpoint's
// status and body text.
func (c *DeliveryClient) Deliver(ctx context.Context, m models.Message) error {
	payload, err := json.Marshal(deliveryPayload{
		Content:          m.Content,
		MediaType:        string(m.MediaType),
		MediaURL:         m.MediaURL,
		MediaCaption:     m.MediaCaption,
		LabelID:          m.LabelID,
		LabelName:        m.LabelName,
		LabelColor:       m.LabelColor,
		VerificationCode: m.VerificationCode,
	})
	if err != nil {
		return fmt.Errorf("delivery marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &models.DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &models.DeliveryError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
