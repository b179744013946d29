package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// conflictStore always reports a uniqueness violation on insert and then
// fails the re-read, simulating the conflicting row being deleted between
// insert and read.
type conflictStore struct {
	readErr error
}

func (s *conflictStore) Entries() store.Entries         { return s }
func (s *conflictStore) Ping(ctx context.Context) error { return nil }
func (s *conflictStore) Close() error                   { return nil }

func (s *conflictStore) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	return nil, fmt.Errorf("entry (%s,%s): %w", e.Term, e.Lang, model.ErrConflict)
}

func (s *conflictStore) GetByTermFold(ctx context.Context, userID, term, lang string) (*model.Entry, error) {
	return nil, s.readErr
}

func (s *conflictStore) Update(ctx context.Context, userID, entryID string, p model.EntryPatch) (*model.Entry, error) {
	return nil, errors.New("unexpected update")
}

func (s *conflictStore) List(ctx context.Context, userID string, limit int) ([]*model.Entry, error) {
	return nil, nil
}

func (s *conflictStore) Search(ctx context.Context, userID, query string, limit int) ([]*model.Entry, error) {
	return nil, nil
}

func (s *conflictStore) Delete(ctx context.Context, userID, entryID string) error { return nil }

func TestCapture_VanishedConflictSurfacesOriginalError(t *testing.T) {
	svc := NewCaptureService(&conflictStore{readErr: model.ErrNotFound}, nil, zerolog.Nop())

	_, err := svc.Capture(context.Background(), "u1", model.CaptureRequest{Term: "table", Lang: "en"})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want the original conflict error, got %v", err)
	}
}

func TestCapture_ReadFailurePropagates(t *testing.T) {
	readErr := errors.New("connection reset")
	svc := NewCaptureService(&conflictStore{readErr: readErr}, nil, zerolog.Nop())

	_, err := svc.Capture(context.Background(), "u1", model.CaptureRequest{Term: "table", Lang: "en"})
	if !errors.Is(err, readErr) {
		t.Fatalf("want read error, got %v", err)
	}
}
