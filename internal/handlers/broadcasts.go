// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"broadcasthub/internal/broadcast"
	"broadcasthub/internal/models"
)

// Broadcasts groups the broadcast template HTTP handlers.
type Broadcasts struct {
	manager *broadcast.Manager
}

// NewBroadcasts creates a new Broadcasts handler group.
func NewBroadcasts(manager *broadcast.Manager) *Broadcasts {
	return &Broadcasts{manager: manager}
}

// List refetches the group list and returns it together with the object
// storage availability flag the console uses to gate photo controls.
func (b *Broadcasts) List(w http.ResponseWriter, r *http.Request) {
	groups, err := b.manager.Refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"groups":            groups,
		"storage_available": b.manager.StorageAvailable(r.Context()),
	})
}

// ByPeriod returns the group holding the given period, or null. The path
// segment accepts either a raw period (3d, 7d, 15d, mensal) or a console
// filter id (broadcast3, broadcast7, broadcast15, broadcastMensal).
func (b *Broadcasts) ByPeriod(w http.ResponseWriter, r *http.Request) {
	period, ok := models.PeriodFromFilter(chi.URLParam(r, "period"))
	if !ok {
		writeError(w, &models.ValidationError{Field: "period", Reason: "unknown period"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period": period,
		"group":  b.manager.SelectByPeriod(period),
	})
}

// editRequest is the body of an edit-session open request. id selects an
// existing group; period sets the target for a blank one.
type editRequest struct {
	ID     int64  `json:"id"`
	Period string `json:"period"`
}

// Edit opens an edit session and returns the working copy. Opening a new
// session discards the previous one's unsaved changes.
func (b *Broadcasts) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &models.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	period, ok := models.PeriodFromFilter(req.Period)
	if !ok && req.Period != "" {
		writeError(w, &models.ValidationError{Field: "period", Reason: "unknown period"})
		return
	}

	var existing *models.BroadcastGroup
	if req.ID != 0 {
		if existing = b.manager.Get(req.ID); existing == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "broadcast group not found"})
			return
		}
	}

	working := b.manager.BeginEdit(existing, period)
	writeJSON(w, http.StatusOK, working)
}

// CancelEdit discards the open edit session.
func (b *Broadcasts) CancelEdit(w http.ResponseWriter, r *http.Request) {
	b.manager.CancelEdit()
	w.WriteHeader(http.StatusNoContent)
}

// Save persists the submitted group. The request is multipart so a photo
// can ride along; the photo is optional and uploaded best-effort.
func (b *Broadcasts) Save(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		writeError(w, err)
		return
	}

	period, ok := models.PeriodFromFilter(r.FormValue("period"))
	if !ok {
		writeError(w, &models.ValidationError{Field: "period", Reason: "unknown period"})
		return
	}

	var id int64
	if raw := r.FormValue("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, &models.ValidationError{Field: "id", Reason: "must be an integer"})
			return
		}
		id = parsed
	}

	edited := models.BroadcastGroup{
		ID:          id,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Template:    r.FormValue("template"),
	}
	if id != 0 {
		// Carry the stored photo forward; Save only replaces it on a
		// successful new upload.
		if current := b.manager.Get(id); current != nil {
			edited.PhotoURL = current.PhotoURL
		}
	}

	if err := validateGroup(edited.Name, edited.Template); err != nil {
		writeError(w, err)
		return
	}

	photo, err := stagedFileFromForm(r, "photo")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := b.manager.Save(r.Context(), edited, photo, period); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": b.manager.Groups()})
}

// Delete removes a group by id.
func (b *Broadcasts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, &models.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := b.manager.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": b.manager.Groups()})
}

// StorageStatus reports whether the object store bucket is reachable.
func (b *Broadcasts) StorageStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"available": b.manager.StorageAvailable(r.Context()),
	})
}
