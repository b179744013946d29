package sqlite

import (
	"context"
	"testing"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
	"github.com/myvocabin/myvocabin/server/internal/store/storetest"
)

func makeLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeLiteStore)
}

func TestSQLiteStore_ConflictKeepsFirstCasing(t *testing.T) {
	s := makeLiteStore(t)
	ctx := context.Background()

	first, err := s.Entries().Create(ctx, &model.Entry{UserID: "u1", Term: "Check", Lang: "en"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = s.Entries().Create(ctx, &model.Entry{UserID: "u1", Term: "check", Lang: "EN"})
	if !store.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}

	got, err := s.Entries().GetByTermFold(ctx, "u1", "CHECK", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != first.ID || got.Term != "Check" {
		t.Fatalf("first capture's casing lost: %+v", got)
	}
}

func TestSQLiteStore_PingAndClose(t *testing.T) {
	s := makeLiteStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
