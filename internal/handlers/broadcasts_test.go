package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"broadcasthub/internal/broadcast"
	"broadcasthub/internal/models"
)

// fakeGroupStore is an in-memory broadcast.Store.
type fakeGroupStore struct {
	groups map[int64]models.BroadcastGroup
	nextID int64
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[int64]models.BroadcastGroup)}
}

func (f *fakeGroupStore) List(context.Context) ([]models.BroadcastGroup, error) {
	out := make([]models.BroadcastGroup, 0, len(f.groups))
	for id := f.nextID; id >= 1; id-- {
		if g, ok := f.groups[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroupStore) Create(_ context.Context, g *models.BroadcastGroup) (*models.BroadcastGroup, error) {
	f.nextID++
	created := *g
	created.ID = f.nextID
	f.groups[created.ID] = created
	return &created, nil
}

func (f *fakeGroupStore) Update(_ context.Context, g *models.BroadcastGroup) error {
	if _, ok := f.groups[g.ID]; !ok {
		return fmt.Errorf("id %d not found", g.ID)
	}
	f.groups[g.ID] = *g
	return nil
}

func (f *fakeGroupStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return fmt.Errorf("id %d not found", id)
	}
	delete(f.groups, id)
	return nil
}

// groupForm builds a multipart save request body.
func groupForm(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "promo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(photo)); err != nil {
			t.Fatalf("copy photo: %v", err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func newBroadcastsHandler(t *testing.T) (*Broadcasts, *fakeGroupStore) {
	t.Helper()
	st := newFakeGroupStore()
	manager := broadcast.NewManager(st, nil)
	if _, err := manager.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return NewBroadcasts(manager), st
}

func broadcastsRouter(h *Broadcasts) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/broadcasts", h.List)
	r.Get("/api/broadcasts/period/{period}", h.ByPeriod)
	r.Post("/api/broadcasts/edit", h.Edit)
	r.Post("/api/broadcasts/edit/cancel", h.CancelEdit)
	r.Post("/api/broadcasts/save", h.Save)
	r.Delete("/api/broadcasts/{id}", h.Delete)
	return r
}

func saveGroup(t *testing.T, router http.Handler, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := groupForm(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts/save", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestBroadcastsSave(t *testing.T) {
	h, st := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	rr := saveGroup(t, router, map[string]string{
		"name":     "Weekly promo",
		"template": "Hello {{name}}",
		"period":   "7d",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(st.groups) != 1 {
		t.Fatalf("stored groups = %d, want 1", len(st.groups))
	}

	var resp struct {
		Groups []models.BroadcastGroup `json:"groups"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Groups) != 1 || resp.Groups[0].PeriodType != models.PeriodSevenDays {
		t.Errorf("groups = %+v", resp.Groups)
	}
}

func TestBroadcastsSave_DuplicatePeriod(t *testing.T) {
	h, st := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	if rr := saveGroup(t, router, map[string]string{
		"name": "First", "template": "t", "period": "3d",
	}); rr.Code != http.StatusOK {
		t.Fatalf("first save: %d", rr.Code)
	}

	rr := saveGroup(t, router, map[string]string{
		"name": "Second", "template": "t", "period": "3d",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	var resp map[string]any
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["conflict_name"] != "First" {
		t.Errorf("conflict_name = %v", resp["conflict_name"])
	}
	if len(st.groups) != 1 {
		t.Errorf("stored groups = %d, duplicate was persisted", len(st.groups))
	}
}

func TestBroadcastsSave_Validation(t *testing.T) {
	h, _ := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	cases := []map[string]string{
		{"name": "", "template": "t", "period": "3d"},
		{"name": "n", "template": "", "period": "3d"},
		{"name": "n", "template": "t", "period": "weekly"},
	}
	for i, fields := range cases {
		if rr := saveGroup(t, router, fields); rr.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rr.Code)
		}
	}
}

func TestBroadcastsByPeriod(t *testing.T) {
	h, _ := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	saveGroup(t, router, map[string]string{
		"name": "Monthly", "template": "t", "period": "mensal",
	})

	// Both the raw period and the console filter id resolve.
	for _, path := range []string{"/api/broadcasts/period/mensal", "/api/broadcasts/period/broadcastMensal"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, rr.Code)
		}
		var resp struct {
			Group *models.BroadcastGroup `json:"group"`
		}
		json.Unmarshal(rr.Body.Bytes(), &resp)
		if resp.Group == nil || resp.Group.Name != "Monthly" {
			t.Errorf("%s: group = %+v", path, resp.Group)
		}
	}

	// Unheld period returns null, not an error.
	req := httptest.NewRequest(http.MethodGet, "/api/broadcasts/period/broadcast15", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"group":null`) {
		t.Errorf("unheld period: status %d body %s", rr.Code, rr.Body.String())
	}
}

func TestBroadcastsEditSession(t *testing.T) {
	h, _ := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	saveGroup(t, router, map[string]string{
		"name": "Promo", "template": "t", "period": "15d",
	})

	// Blank edit session takes the requested period.
	req := httptest.NewRequest(http.MethodPost, "/api/broadcasts/edit", strings.NewReader(`{"period":"broadcast3"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("edit blank: %d", rr.Code)
	}
	var working models.BroadcastGroup
	json.Unmarshal(rr.Body.Bytes(), &working)
	if working.ID != 0 || working.PeriodType != models.PeriodThreeDays {
		t.Errorf("working = %+v", working)
	}

	// Editing an unknown id is a 404.
	req = httptest.NewRequest(http.MethodPost, "/api/broadcasts/edit", strings.NewReader(`{"id":999}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("edit missing: %d, want 404", rr.Code)
	}

	// Cancel always succeeds.
	req = httptest.NewRequest(http.MethodPost, "/api/broadcasts/edit/cancel", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("cancel: %d, want 204", rr.Code)
	}
}

func TestBroadcastsDelete(t *testing.T) {
	h, st := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	saveGroup(t, router, map[string]string{
		"name": "Doomed", "template": "t", "period": "7d",
	})
	var id int64
	for gid := range st.groups {
		id = gid
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/broadcasts/%d", id), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d", rr.Code)
	}
	if len(st.groups) != 0 {
		t.Errorf("stored groups = %d after delete", len(st.groups))
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/broadcasts/notanumber", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: %d, want 400", rr.Code)
	}
}

func TestBroadcastsList(t *testing.T) {
	h, _ := newBroadcastsHandler(t)
	router := broadcastsRouter(h)

	saveGroup(t, router, map[string]string{
		"name": "A", "template": "t", "period": "3d",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/broadcasts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d", rr.Code)
	}
	var resp struct {
		Groups           []models.BroadcastGroup `json:"groups"`
		StorageAvailable bool                    `json:"storage_available"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Errorf("groups = %d", len(resp.Groups))
	}
	if resp.StorageAvailable {
		t.Error("storage reported available with no object store configured")
	}
}
