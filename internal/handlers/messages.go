// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"broadcasthub/internal/dispatch"
	"broadcasthub/internal/models"
)

// Messages groups the ad-hoc message HTTP handlers.
type Messages struct {
	dispatcher *dispatch.Dispatcher
}

// NewMessages creates a new Messages handler group.
func NewMessages(dispatcher *dispatch.Dispatcher) *Messages {
	return &Messages{dispatcher: dispatcher}
}

// Send composes a message from the multipart form and hands it to the
// dispatcher. A media file may ride along under the "media" field; it is
// required to upload successfully for non-text messages.
func (m *Messages) Send(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		writeError(w, err)
		return
	}

	msg := models.Message{
		Content:          r.FormValue("content"),
		MediaType:        models.MediaType(r.FormValue("media_type")),
		VerificationCode: r.FormValue("verification_code"),
		Status:           models.StatusPending,
	}
	if msg.MediaType == "" {
		msg.MediaType = models.MediaText
	}
	if v := r.FormValue("media_caption"); v != "" {
		msg.MediaCaption = &v
	}
	if v := r.FormValue("label_id"); v != "" {
		msg.LabelID = &v
	}
	if v := r.FormValue("label_name"); v != "" {
		msg.LabelName = &v
	}
	if v := r.FormValue("label_color"); v != "" {
		msg.LabelColor = &v
	}

	caption := ""
	if msg.MediaCaption != nil {
		caption = *msg.MediaCaption
	}
	if err := validateMessageLengths(msg.Content, caption); err != nil {
		writeError(w, err)
		return
	}

	media, err := stagedFileFromForm(r, "media")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := m.dispatcher.Send(r.Context(), msg, media); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(models.StatusSent)})
}

// History returns the most recent send records, newest first, capped at
// ten.
func (m *Messages) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, &models.ValidationError{Field: "limit", Reason: "must be an integer"})
			return
		}
		limit = parsed
	}

	records, err := m.dispatcher.History(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": records})
}

// Cancel flags a history record as cancelled.
func (m *Messages) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, &models.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := m.dispatcher.MarkCancelled(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
