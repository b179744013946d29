// Package sqlite provides the cgo-free sqlite store used by the local build
// target and by unit tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	sqlite3 "modernc.org/sqlite"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// Open opens (or creates) a SQLite database at the given path, enables WAL
// journal mode and applies the schema. Pass ":memory:" for an ephemeral
// database.
func Open(path string) (*sql.DB, error) {
	dsn := "file::memory:?mode=memory&cache=shared"
	if path != ":memory:" {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// keep the single connection alive or the database vanishes
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, stmt := range store.SQLiteDDLStatements() {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

// NewWithDB constructs a sqlite store backed by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Entries() store.Entries         { return &entries{db: s.db} }
func (s *liteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *liteStore) Close() error                   { return s.db.Close() }

type entries struct{ db *sql.DB }

const entryColumns = `entry_id, user_id, term, lang, context, translation_de, synonyms_en, created_at, updated_at`

// timeLayout keeps trailing fractional zeros so stored timestamps order
// correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (e *entries) Create(ctx context.Context, m *model.Entry) (*model.Entry, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	syn, err := json.Marshal(normalize(m.SynonymsEN))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	_, err = e.db.ExecContext(ctx, `
        INSERT INTO entries (entry_id, user_id, term, lang, context, translation_de, synonyms_en, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.Term, m.Lang, m.Context, m.TranslationDE, string(syn),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("entry (%s,%s): %w", m.Term, m.Lang, model.ErrConflict)
		}
		return nil, err
	}

	out := *m
	out.ID = id
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (e *entries) GetByTermFold(ctx context.Context, userID, term, lang string) (*model.Entry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=? AND lower(term)=lower(?) AND lower(lang)=lower(?)
    `, userID, term, lang)
	return scanEntry(row)
}

func (e *entries) Update(ctx context.Context, userID, entryID string, p model.EntryPatch) (*model.Entry, error) {
	var syn interface{}
	if len(p.SynonymsEN) > 0 {
		b, err := json.Marshal(p.SynonymsEN)
		if err != nil {
			return nil, err
		}
		syn = string(b)
	}

	res, err := e.db.ExecContext(ctx, `
        UPDATE entries SET
            context        = COALESCE(?, context),
            translation_de = COALESCE(?, translation_de),
            synonyms_en    = COALESCE(?, synonyms_en),
            updated_at     = ?
        WHERE user_id=? AND entry_id=?
    `, p.Context, p.TranslationDE, syn, time.Now().UTC().Format(timeLayout), userID, entryID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("entry %s: %w", entryID, model.ErrNotFound)
	}

	row := e.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE user_id=? AND entry_id=?`, userID, entryID)
	return scanEntry(row)
}

func (e *entries) List(ctx context.Context, userID string, limit int) ([]*model.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := e.db.QueryContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=?
        ORDER BY created_at DESC
        LIMIT ?
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Search is a LIKE-based fallback; the postgres driver serves real
// full-text queries for cloud targets.
func (e *entries) Search(ctx context.Context, userID, query string, limit int) ([]*model.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	pat := "%" + query + "%"
	rows, err := e.db.QueryContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=?
          AND (term LIKE ? COLLATE NOCASE
               OR context LIKE ? COLLATE NOCASE
               OR coalesce(translation_de,'') LIKE ? COLLATE NOCASE)
        ORDER BY created_at DESC
        LIMIT ?
    `, userID, pat, pat, pat, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (e *entries) Delete(ctx context.Context, userID, entryID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM entries WHERE user_id=? AND entry_id=?`, userID, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", entryID, model.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*model.Entry, error) {
	var out model.Entry
	var syn string
	var created, updated string
	err := row.Scan(&out.ID, &out.UserID, &out.Term, &out.Lang, &out.Context,
		&out.TranslationDE, &syn, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if syn != "" {
		if err := json.Unmarshal([]byte(syn), &out.SynonymsEN); err != nil {
			return nil, fmt.Errorf("decode synonyms: %w", err)
		}
	}
	if out.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if out.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &out, nil
}

func scanEntries(rows *sql.Rows) ([]*model.Entry, error) {
	defer func() { _ = rows.Close() }()
	var res []*model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func normalize(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// isUniqueViolation reports SQLITE_CONSTRAINT_UNIQUE / _PRIMARYKEY.
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code() == 2067 || se.Code() == 1555
	}
	return false
}
