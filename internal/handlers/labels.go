// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"broadcasthub/internal/models"
)

// LabelFetcher retrieves contact labels from the labels endpoint.
// Satisfied by *webhook.LabelsClient.
type LabelFetcher interface {
	Fetch(ctx context.Context) ([]models.Label, error)
}

// Labels groups the label HTTP handlers.
type Labels struct {
	fetcher LabelFetcher
}

// NewLabels creates a new Labels handler group.
func NewLabels(fetcher LabelFetcher) *Labels {
	return &Labels{fetcher: fetcher}
}

// List fetches the labels available for message targeting.
func (l *Labels) List(w http.ResponseWriter, r *http.Request) {
	labels, err := l.fetcher.Fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}
