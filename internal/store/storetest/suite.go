package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()

	// Create
	tisch := "Tisch"
	e, err := s.Entries().Create(ctx, &model.Entry{
		UserID:        userID,
		Term:          "table",
		Lang:          "en",
		Context:       "furniture shop",
		TranslationDE: &tisch,
		SynonymsEN:    []string{"desk", "counter"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatalf("Create: missing id or timestamps: %+v", e)
	}

	// Case-insensitive uniqueness
	_, err = s.Entries().Create(ctx, &model.Entry{UserID: userID, Term: "TABLE", Lang: "EN"})
	if !store.IsConflict(err) {
		t.Fatalf("Create duplicate: want conflict, got %v", err)
	}

	// Same term for another user is fine
	otherUser := "u-" + uuid.New().String()
	if _, err := s.Entries().Create(ctx, &model.Entry{UserID: otherUser, Term: "table", Lang: "en"}); err != nil {
		t.Fatalf("Create other-user: %v", err)
	}

	// Case-insensitive read
	got, err := s.Entries().GetByTermFold(ctx, userID, "Table", "EN")
	if err != nil {
		t.Fatalf("GetByTermFold: %v", err)
	}
	if got.ID != e.ID || got.Term != "table" {
		t.Fatalf("GetByTermFold: got %+v", got)
	}
	if got.TranslationDE == nil || *got.TranslationDE != "Tisch" {
		t.Fatalf("GetByTermFold: translation lost: %+v", got)
	}
	if len(got.SynonymsEN) != 2 {
		t.Fatalf("GetByTermFold: synonyms lost: %+v", got.SynonymsEN)
	}

	if _, err := s.Entries().GetByTermFold(ctx, userID, "chair", "en"); !store.IsNotFound(err) {
		t.Fatalf("GetByTermFold missing: want not-found, got %v", err)
	}

	// Patch only context; translation and synonyms stay
	newCtx := "kitchen catalog"
	upd, err := s.Entries().Update(ctx, userID, e.ID, model.EntryPatch{Context: &newCtx})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Context != newCtx {
		t.Fatalf("Update: context not applied: %+v", upd)
	}
	if upd.TranslationDE == nil || *upd.TranslationDE != "Tisch" || len(upd.SynonymsEN) != 2 {
		t.Fatalf("Update: untouched fields changed: %+v", upd)
	}
	if upd.UpdatedAt.Before(upd.CreatedAt) {
		t.Fatalf("Update: updated_at not bumped")
	}

	// Fill translation gap on a bare entry
	bare, err := s.Entries().Create(ctx, &model.Entry{UserID: userID, Term: "check", Lang: "en"})
	if err != nil {
		t.Fatalf("Create bare: %v", err)
	}
	rechnung := "Rechnung"
	upd2, err := s.Entries().Update(ctx, userID, bare.ID, model.EntryPatch{
		TranslationDE: &rechnung,
		SynonymsEN:    []string{"bill", "tab"},
	})
	if err != nil {
		t.Fatalf("Update bare: %v", err)
	}
	if upd2.TranslationDE == nil || *upd2.TranslationDE != "Rechnung" || len(upd2.SynonymsEN) != 2 {
		t.Fatalf("Update bare: enrichment not stored: %+v", upd2)
	}

	// List is owner-scoped, newest first
	lst, err := s.Entries().List(ctx, userID, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lst) != 2 {
		t.Fatalf("List: want 2 entries, got %d", len(lst))
	}
	for _, it := range lst {
		if it.UserID != userID {
			t.Fatalf("List leaked foreign entry: %+v", it)
		}
	}

	// Search hits term, context and translation
	for q, wantID := range map[string]string{
		"table":    e.ID,
		"kitchen":  e.ID,
		"Rechnung": bare.ID,
	} {
		hits, err := s.Entries().Search(ctx, userID, q, 10)
		if err != nil {
			t.Fatalf("Search %q: %v", q, err)
		}
		if len(hits) != 1 || hits[0].ID != wantID {
			t.Fatalf("Search %q: got %d hits", q, len(hits))
		}
	}

	// Delete is owner-scoped
	if err := s.Entries().Delete(ctx, otherUser, e.ID); !store.IsNotFound(err) {
		t.Fatalf("Delete foreign-owner: want not-found, got %v", err)
	}
	if err := s.Entries().Delete(ctx, userID, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Entries().Delete(ctx, userID, e.ID); !store.IsNotFound(err) {
		t.Fatalf("Delete twice: want not-found, got %v", err)
	}
}
