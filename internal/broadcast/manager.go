// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package broadcast implements the broadcast group manager: the working
// list of scheduled broadcast groups, the one-group-per-period rule, and
// the single edit session the console operates on.
package broadcast

import (
	"context"
	"sync"

	"broadcasthub/internal/models"
	"broadcasthub/internal/storage"
)

// Store is the table-store surface the manager needs. Satisfied by
// *store.BroadcastStore.
type Store interface {
	List(ctx context.Context) ([]models.BroadcastGroup, error)
	Create(ctx context.Context, g *models.BroadcastGroup) (*models.BroadcastGroup, error)
	Update(ctx context.Context, g *models.BroadcastGroup) error
	Delete(ctx context.Context, id int64) error
}

// ObjectStore is the object-store surface the manager needs. Satisfied by
// *storage.Client.
type ObjectStore interface {
	storage.Uploader
	BucketAvailable(ctx context.Context) bool
}

// Manager owns the last-fetched group list and at most one edit session.
// The list is only ever replaced wholesale after a refetch, never mutated
// incrementally by two flows at once.
type Manager struct {
	mu      sync.Mutex
	store   Store
	objects ObjectStore // nil when object storage is not configured

	groups  []models.BroadcastGroup
	editing *models.BroadcastGroup
}

// NewManager creates a manager over the given stores. objects may be nil;
// photo uploads are then skipped and StorageAvailable reports false.
func NewManager(store Store, objects ObjectStore) *Manager {
	return &Manager{store: store, objects: objects}
}

// Refresh refetches the full group list, newest first, and replaces the
// cached copy. On failure the previous list is retained and a FetchError
// is returned.
func (m *Manager) Refresh(ctx context.Context) ([]models.BroadcastGroup, error) {
	groups, err := m.store.List(ctx)
	if err != nil {
		return nil, &models.FetchError{Op: "broadcast groups", Err: err}
	}

	m.mu.Lock()
	m.groups = groups
	m.mu.Unlock()
	return groups, nil
}

// Groups returns a copy of the last-fetched group list.
func (m *Manager) Groups() []models.BroadcastGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BroadcastGroup, len(m.groups))
	copy(out, m.groups)
	return out
}

// SelectByPeriod is a pure lookup over the last-fetched list. Returns nil
// when no group carries the period.
func (m *Manager) SelectByPeriod(period models.PeriodType) *models.BroadcastGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.groups {
		if m.groups[i].PeriodType == period {
			g := m.groups[i]
			return &g
		}
	}
	return nil
}

// Get returns the cached group with the given id, or nil.
func (m *Manager) Get(id int64) *models.BroadcastGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.groups {
		if m.groups[i].ID == id {
			g := m.groups[i]
			return &g
		}
	}
	return nil
}

// BeginEdit opens an edit session and returns the working copy. Passing
// nil starts a blank group (id 0) targeting the active filter's period.
// Starting a new session while one is open discards the previous
// session's unsaved changes.
func (m *Manager) BeginEdit(existing *models.BroadcastGroup, activePeriod models.PeriodType) models.BroadcastGroup {
	m.mu.Lock()
	defer m.mu.Unlock()

	var working models.BroadcastGroup
	if existing != nil {
		working = *existing
	} else {
		working = models.BroadcastGroup{PeriodType: activePeriod}
	}
	m.editing = &working
	return working
}

// CancelEdit closes the edit session, discarding unsaved changes.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	m.editing = nil
	m.mu.Unlock()
}

// Editing returns a copy of the open edit session's working group, or nil
// when no session is open.
func (m *Manager) Editing() *models.BroadcastGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		return nil
	}
	g := *m.editing
	return &g
}

// Save persists the edited group under the active filter's period type.
//
// The duplicate-period rule is checked against the last-fetched list
// before anything is written: a different group already holding the
// period fails the save with DuplicatePeriodError and no store call. A
// staged photo is uploaded best-effort — on failure the save proceeds
// with the prior photo URL. Store failures return PersistenceError and
// leave the edit session open for a retry; on success the list is
// refetched and the session closes.
func (m *Manager) Save(ctx context.Context, edited models.BroadcastGroup, photo *storage.StagedFile, activePeriod models.PeriodType) error {
	m.mu.Lock()
	edited.PeriodType = activePeriod
	if activePeriod != "" {
		for _, g := range m.groups {
			if g.PeriodType == activePeriod && g.ID != edited.ID {
				m.mu.Unlock()
				return &models.DuplicatePeriodError{
					Period:       activePeriod,
					ConflictID:   g.ID,
					ConflictName: g.Name,
				}
			}
		}
	}
	m.mu.Unlock()

	var uploader storage.Uploader
	if m.objects != nil && m.objects.BucketAvailable(ctx) {
		uploader = m.objects
	}
	if url, err := storage.Attach(ctx, uploader, storage.BestEffortAttach, storage.BroadcastPhotoFolder, photo); err == nil && url != nil {
		edited.PhotoURL = url
	}

	if edited.ID != 0 {
		if err := m.store.Update(ctx, &edited); err != nil {
			return &models.PersistenceError{Op: "broadcast group", Err: err}
		}
	} else {
		if _, err := m.store.Create(ctx, &edited); err != nil {
			return &models.PersistenceError{Op: "broadcast group", Err: err}
		}
	}

	groups, err := m.store.List(ctx)
	if err != nil {
		// The write landed but the refetch failed; the session stays
		// open and the stale list is retained.
		return &models.FetchError{Op: "broadcast groups", Err: err}
	}

	m.mu.Lock()
	m.groups = groups
	m.editing = nil
	m.mu.Unlock()
	return nil
}

// Delete removes a group. On store success it is dropped from the cached
// list immediately; on failure the list is unchanged.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return &models.PersistenceError{Op: "broadcast group", Err: err}
	}

	m.mu.Lock()
	kept := m.groups[:0]
	for _, g := range m.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	m.groups = kept
	if m.editing != nil && m.editing.ID == id {
		m.editing = nil
	}
	m.mu.Unlock()
	return nil
}

// StorageAvailable probes the object store. The result gates photo upload
// controls in the console; it never blocks text-only operations.
func (m *Manager) StorageAvailable(ctx context.Context) bool {
	if m.objects == nil {
		return false
	}
	return m.objects.BucketAvailable(ctx)
}
