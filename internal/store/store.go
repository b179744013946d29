package store

import (
	"context"
	"errors"

	"github.com/myvocabin/myvocabin/server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Entries() Entries
	Ping(ctx context.Context) error
	Close() error
}

// Entries is the per-user entry table. Every operation is scoped to the
// owning user; no call can read or mutate another user's rows.
type Entries interface {
	// Create inserts a new entry and returns it with ID and timestamps
	// assigned. A violation of the (user, term, lang) case-insensitive
	// uniqueness constraint is reported as an error wrapping
	// model.ErrConflict.
	Create(ctx context.Context, e *model.Entry) (*model.Entry, error)

	// GetByTermFold fetches the entry matching term and lang
	// case-insensitively, or model.ErrNotFound.
	GetByTermFold(ctx context.Context, userID, term, lang string) (*model.Entry, error)

	// Update applies a patch as a single statement and returns the updated
	// row. Nil patch fields are left untouched; updated_at is bumped.
	Update(ctx context.Context, userID, entryID string, p model.EntryPatch) (*model.Entry, error)

	// List returns the user's entries, newest first.
	List(ctx context.Context, userID string, limit int) ([]*model.Entry, error)

	// Search matches query against term, context and translation.
	Search(ctx context.Context, userID, query string, limit int) ([]*model.Entry, error)

	// Delete removes an entry by id, or model.ErrNotFound.
	Delete(ctx context.Context, userID, entryID string) error
}

// IsConflict reports whether err marks a uniqueness-constraint violation.
func IsConflict(err error) bool { return errors.Is(err, model.ErrConflict) }

// IsNotFound reports whether err marks a missing row.
func IsNotFound(err error) bool { return errors.Is(err, model.ErrNotFound) }
