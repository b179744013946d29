package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/services"
	"github.com/myvocabin/myvocabin/server/internal/store/sqlite"
)

type entriesFixture struct {
	router *mux.Router
	svc    *services.CaptureService
}

func newEntriesFixture(t *testing.T, userID string) *entriesFixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := services.NewCaptureService(sqlite.NewWithDB(db), nil, zerolog.Nop())
	h := NewEntriesHandler(svc, &staticAuthorizer{userID: userID}, zerolog.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/api/vocab/entries", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/vocab/entries/{entryId}", h.Delete).Methods(http.MethodDelete)
	return &entriesFixture{router: r, svc: svc}
}

func (f *entriesFixture) capture(t *testing.T, userID, term, ctxText string) *model.Entry {
	t.Helper()
	res, err := f.svc.Capture(context.Background(), userID, model.CaptureRequest{Term: term, Context: ctxText})
	if err != nil {
		t.Fatalf("capture %q: %v", term, err)
	}
	return res.Entry
}

func (f *entriesFixture) do(method, target string, withAuth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if withAuth {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Entries []*model.Entry `json:"entries"`
	Count   int            `json:"count"`
}

func TestEntriesList(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	f.capture(t, "u1", "check", "restaurant")
	f.capture(t, "u1", "table", "furniture shop")
	f.capture(t, "u2", "check", "other user")

	w := f.do(http.MethodGet, "/api/vocab/entries", true)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Entries) != 2 {
		t.Fatalf("want 2 entries for u1, got %d", resp.Count)
	}
	// newest first
	if resp.Entries[0].Term != "table" {
		t.Fatalf("order: first is %q", resp.Entries[0].Term)
	}
}

func TestEntriesList_Unauthorized(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	if w := f.do(http.MethodGet, "/api/vocab/entries", false); w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestEntriesList_BadLimit(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	for _, limit := range []string{"0", "-3", "ten"} {
		w := f.do(http.MethodGet, "/api/vocab/entries?limit="+limit, true)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: want 400, got %d", limit, w.Code)
		}
	}
}

func TestEntriesList_EmptyIsArray(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	w := f.do(http.MethodGet, "/api/vocab/entries", true)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["entries"]) != "[]" {
		t.Fatalf("want [] for empty list, got %s", raw["entries"])
	}
}

func TestEntriesSearch(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	f.capture(t, "u1", "check", "restaurant")
	f.capture(t, "u1", "table", "furniture shop")

	w := f.do(http.MethodGet, "/api/vocab/entries?q=furniture", true)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Entries[0].Term != "table" {
		t.Fatalf("search result: %+v", resp)
	}
}

func TestEntriesDelete(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	e := f.capture(t, "u1", "check", "restaurant")

	if w := f.do(http.MethodDelete, "/api/vocab/entries/"+e.ID, true); w.Code != http.StatusOK {
		t.Fatalf("delete: want 200, got %d (%s)", w.Code, w.Body.String())
	}
	// second delete of the same id is a 404
	if w := f.do(http.MethodDelete, "/api/vocab/entries/"+e.ID, true); w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: want 404, got %d", w.Code)
	}
}

func TestEntriesDelete_OtherUsersEntry(t *testing.T) {
	f := newEntriesFixture(t, "u1")
	e := f.capture(t, "u2", "check", "restaurant")

	if w := f.do(http.MethodDelete, "/api/vocab/entries/"+e.ID, true); w.Code != http.StatusNotFound {
		t.Fatalf("want 404 for foreign entry, got %d", w.Code)
	}
	// still present for its owner
	lst, err := f.svc.ListEntries(context.Background(), "u2", 0)
	if err != nil || len(lst) != 1 {
		t.Fatalf("foreign entry was removed: n=%d err=%v", len(lst), err)
	}
}
