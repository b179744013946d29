package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/enrich"
	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// Enricher is the slice of internal/enrich the capture path needs.
type Enricher interface {
	Supports(lang string) bool
	Enrich(ctx context.Context, term string) enrich.Enrichment
}

// CaptureService orchestrates the insert-or-merge capture protocol: attempt
// create; on a conflict, re-read the existing entry and fill its gaps.
type CaptureService struct {
	store    store.Store
	enricher Enricher
	log      zerolog.Logger
}

func NewCaptureService(s store.Store, e Enricher, log zerolog.Logger) *CaptureService {
	return &CaptureService{store: s, enricher: e, log: log}
}

// Capture records a term for userID. Repeated captures of the same
// (term, lang) converge on a single entry: context follows the newest
// capture, translation and synonyms are only ever filled, never replaced.
func (s *CaptureService) Capture(ctx context.Context, userID string, req model.CaptureRequest) (*model.CaptureResult, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, fmt.Errorf("term is required: %w", model.ErrValidation)
	}
	lang := req.Lang
	if lang == "" {
		lang = "en"
	}

	// Enrichment is best-effort and source-language-only; a failed or
	// skipped lookup stores the capture bare.
	var enr enrich.Enrichment
	if s.enricher != nil && s.enricher.Supports(lang) {
		enr = s.enricher.Enrich(ctx, term)
	}

	created, err := s.store.Entries().Create(ctx, &model.Entry{
		UserID:        userID,
		Term:          term,
		Lang:          lang,
		Context:       req.Context,
		TranslationDE: enr.TranslationDE,
		SynonymsEN:    enr.SynonymsEN,
	})
	if err == nil {
		return &model.CaptureResult{Entry: created}, nil
	}
	if !store.IsConflict(err) {
		return nil, err
	}

	return s.merge(ctx, userID, term, lang, req.Context, enr, err)
}

// merge is the dedup path: the insert lost to an existing entry (or to a
// concurrent capture), so read it back and apply whatever the new capture
// can add.
func (s *CaptureService) merge(ctx context.Context, userID, term, lang, captureCtx string, enr enrich.Enrichment, conflictErr error) (*model.CaptureResult, error) {
	existing, err := s.store.Entries().GetByTermFold(ctx, userID, term, lang)
	if err != nil {
		if store.IsNotFound(err) {
			// The conflicting row vanished between insert and read. That is
			// a real inconsistency; report the original conflict rather
			// than retrying.
			return nil, conflictErr
		}
		return nil, err
	}

	patch := buildPatch(existing, captureCtx, enr)
	if patch.IsEmpty() {
		return &model.CaptureResult{Entry: existing, Dedup: true}, nil
	}

	updated, err := s.store.Entries().Update(ctx, userID, existing.ID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("user_id", userID).
		Str("entry_id", existing.ID).
		Bool("context", patch.Context != nil).
		Bool("translation", patch.TranslationDE != nil).
		Bool("synonyms", len(patch.SynonymsEN) > 0).
		Msg("merged duplicate capture")
	return &model.CaptureResult{Entry: updated, Dedup: true, Updated: true}, nil
}

// buildPatch decides what a duplicate capture may change: context follows
// the newest non-empty value, translation and synonyms only fill gaps.
func buildPatch(existing *model.Entry, captureCtx string, enr enrich.Enrichment) model.EntryPatch {
	var p model.EntryPatch
	if captureCtx != "" && captureCtx != existing.Context {
		p.Context = &captureCtx
	}
	if existing.TranslationDE == nil && enr.TranslationDE != nil {
		p.TranslationDE = enr.TranslationDE
	}
	if len(existing.SynonymsEN) == 0 && len(enr.SynonymsEN) > 0 {
		p.SynonymsEN = enr.SynonymsEN
	}
	return p
}

// ListEntries returns the user's entries, newest first.
func (s *CaptureService) ListEntries(ctx context.Context, userID string, limit int) ([]*model.Entry, error) {
	return s.store.Entries().List(ctx, userID, limit)
}

// SearchEntries matches query against term, context and translation.
func (s *CaptureService) SearchEntries(ctx context.Context, userID, query string, limit int) ([]*model.Entry, error) {
	return s.store.Entries().Search(ctx, userID, query, limit)
}

// DeleteEntry removes one of the user's entries.
func (s *CaptureService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.store.Entries().Delete(ctx, userID, entryID)
}
