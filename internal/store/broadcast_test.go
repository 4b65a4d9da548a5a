// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"broadcasthub/internal/models"
)

func TestBroadcastStore_CreateListDelete(t *testing.T) {
	db := testDB(t)
	s := NewBroadcastStore(db)
	ctx := context.Background()

	t.Cleanup(func() { cleanGroups(t, db, "store-test-group") })

	created, err := s.Create(ctx, &models.BroadcastGroup{
		Name:        "store-test-group",
		Description: "created by tests",
		Template:    "Hello {name}",
		PeriodType:  models.PeriodSevenDays,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create returned id 0")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create returned zero created_at")
	}

	groups, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, g := range groups {
		if g.ID == created.ID {
			found = true
			if g.PeriodType != models.PeriodSevenDays {
				t.Errorf("period_type = %q, want 7d", g.PeriodType)
			}
			if g.PhotoURL != nil {
				t.Errorf("photo_url = %v, want nil", *g.PhotoURL)
			}
		}
	}
	if !found {
		t.Fatalf("created group %d not in List result", created.ID)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	g, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if g != nil {
		t.Error("group still present after delete")
	}
}

func TestBroadcastStore_Update(t *testing.T) {
	db := testDB(t)
	s := NewBroadcastStore(db)
	ctx := context.Background()

	t.Cleanup(func() { cleanGroups(t, db, "store-test-update", "store-test-updated") })

	created, err := s.Create(ctx, &models.BroadcastGroup{Name: "store-test-update"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	photo := "https://cdn.example.com/broadcast-photos/x.png"
	created.Name = "store-test-updated"
	created.PhotoURL = &photo
	created.PeriodType = models.PeriodMonthly
	if err := s.Update(ctx, created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "store-test-updated" {
		t.Errorf("name = %q after update", got.Name)
	}
	if got.PhotoURL == nil || *got.PhotoURL != photo {
		t.Errorf("photo_url = %v, want %q", got.PhotoURL, photo)
	}
	if got.PeriodType != models.PeriodMonthly {
		t.Errorf("period_type = %q, want mensal", got.PeriodType)
	}

	s.Delete(ctx, created.ID)
}

func TestBroadcastStore_UpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewBroadcastStore(db)

	err := s.Update(context.Background(), &models.BroadcastGroup{ID: -1, Name: "ghost"})
	if err == nil {
		t.Fatal("Update of missing group succeeded")
	}
}

func TestBroadcastStore_PeriodUniqueIndex(t *testing.T) {
	db := testDB(t)
	s := NewBroadcastStore(db)
	ctx := context.Background()

	t.Cleanup(func() { cleanGroups(t, db, "store-test-uniq-a", "store-test-uniq-b") })

	a, err := s.Create(ctx, &models.BroadcastGroup{Name: "store-test-uniq-a", PeriodType: models.PeriodFifteenDays})
	if err != nil {
		t.Skipf("skipping: could not create 15d group (already present?): %v", err)
	}
	defer s.Delete(ctx, a.ID)

	if _, err := s.Create(ctx, &models.BroadcastGroup{Name: "store-test-uniq-b", PeriodType: models.PeriodFifteenDays}); err == nil {
		t.Error("second 15d group accepted despite unique index")
		cleanGroups(t, db, "store-test-uniq-b")
	}
}
