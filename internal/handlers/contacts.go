// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"broadcasthub/internal/storage"
)

// ContactImporter forwards a contact sheet to the import endpoint.
// Satisfied by *webhook.ImportClient.
type ContactImporter interface {
	Import(ctx context.Context, file *storage.StagedFile, verificationCode string) error
}

// Contacts groups the contact import HTTP handlers.
type Contacts struct {
	importer ContactImporter
}

// NewContacts creates a new Contacts handler group.
func NewContacts(importer ContactImporter) *Contacts {
	return &Contacts{importer: importer}
}

// Import relays the uploaded contact sheet to the import endpoint. The
// file is streamed through, never persisted locally.
func (c *Contacts) Import(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		writeError(w, err)
		return
	}

	file, err := stagedFileFromForm(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.importer.Import(r.Context(), file, r.FormValue("verification_code")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
