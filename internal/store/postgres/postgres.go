package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Entries() store.Entries         { return &entries{db: s.db} }
func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *pgStore) Close() error                   { return s.db.Close() }

type entries struct{ db *sql.DB }

const entryColumns = `entry_id, user_id, term, lang, context, translation_de, synonyms_en, created_at, updated_at`

func (e *entries) Create(ctx context.Context, m *model.Entry) (*model.Entry, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	syn, err := marshalSynonyms(m.SynonymsEN)
	if err != nil {
		return nil, err
	}

	var created, updated time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO entries (entry_id, user_id, term, lang, context, translation_de, synonyms_en)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at
    `, id, m.UserID, m.Term, m.Lang, m.Context, m.TranslationDE, syn)
	if err := row.Scan(&created, &updated); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("entry (%s,%s): %w", m.Term, m.Lang, model.ErrConflict)
		}
		return nil, err
	}

	out := *m
	out.ID = id
	out.CreatedAt = created
	out.UpdatedAt = updated
	return &out, nil
}

func (e *entries) GetByTermFold(ctx context.Context, userID, term, lang string) (*model.Entry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=$1 AND lower(term)=lower($2) AND lower(lang)=lower($3)
    `, userID, term, lang)
	return scanEntry(row)
}

func (e *entries) Update(ctx context.Context, userID, entryID string, p model.EntryPatch) (*model.Entry, error) {
	syn, err := marshalSynonyms(p.SynonymsEN)
	if err != nil {
		return nil, err
	}
	if len(p.SynonymsEN) == 0 {
		syn = nil
	}

	row := e.db.QueryRowContext(ctx, `
        UPDATE entries SET
            context        = COALESCE($3, context),
            translation_de = COALESCE($4, translation_de),
            synonyms_en    = COALESCE($5, synonyms_en),
            updated_at     = now()
        WHERE user_id=$1 AND entry_id=$2
        RETURNING `+entryColumns+`
    `, userID, entryID, p.Context, p.TranslationDE, syn)
	return scanEntry(row)
}

func (e *entries) List(ctx context.Context, userID string, limit int) ([]*model.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := e.db.QueryContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=$1
        ORDER BY created_at DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (e *entries) Search(ctx context.Context, userID, query string, limit int) ([]*model.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := e.db.QueryContext(ctx, `
        SELECT `+entryColumns+`
        FROM entries
        WHERE user_id=$1
          AND to_tsvector('simple', term || ' ' || coalesce(context,'') || ' ' || coalesce(translation_de,''))
              @@ plainto_tsquery('simple', $2)
        ORDER BY created_at DESC
        LIMIT $3
    `, userID, query, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (e *entries) Delete(ctx context.Context, userID, entryID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM entries WHERE user_id=$1 AND entry_id=$2`, userID, entryID)
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
	var syn []byte
	err := row.Scan(&out.ID, &out.UserID, &out.Term, &out.Lang, &out.Context,
		&out.TranslationDE, &syn, &out.CreatedAt, &out.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(syn) > 0 {
		if err := json.Unmarshal(syn, &out.SynonymsEN); err != nil {
			return nil, fmt.Errorf("decode synonyms: %w", err)
		}
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

func marshalSynonyms(s []string) ([]byte, error) {
	if s == nil {
		s = []string{}
	}
	return json.Marshal(s)
}
