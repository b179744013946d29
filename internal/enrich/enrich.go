// Package enrich provides best-effort translation and synonym augmentation
// for captured terms. Providers are advisory: every failure degrades to an
// absent result, never to an error the capture path can see.
package enrich

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/config"
)

// ErrUnavailable is returned by providers when no result could be obtained.
// Callers of Enricher never see it; the chain converts it to an absent value.
var ErrUnavailable = errors.New("enrichment unavailable")

// Translator produces a single translation of term from source to target
// language, or ErrUnavailable.
type Translator interface {
	Translate(ctx context.Context, term, sourceLang, targetLang string) (string, error)
}

// SynonymProvider produces an ordered list of related terms, possibly empty.
type SynonymProvider interface {
	Synonyms(ctx context.Context, term string) ([]string, error)
}

// Enrichment is the best-effort result attached to a capture.
type Enrichment struct {
	TranslationDE *string
	SynonymsEN    []string
}

// Enricher runs the translation chain and the synonym lookup concurrently
// and swallows all provider failures.
type Enricher struct {
	translator Translator
	synonyms   SynonymProvider
	sourceLang string
	targetLang string
	timeout    time.Duration
	log        zerolog.Logger
}

// New wires the provider stack from configuration: DeepL first when a key
// is configured, the keyless MyMemory fallback always, Datamuse for
// synonyms.
func New(cfg *config.Config, log zerolog.Logger) *Enricher {
	var translators []Translator
	if cfg.DeepLKey != "" {
		translators = append(translators, NewDeepL(cfg.DeepLURL, cfg.DeepLKey))
	}
	translators = append(translators, NewMyMemory(cfg.MyMemoryURL))

	return &Enricher{
		translator: NewTranslatorChain(translators...),
		synonyms:   NewDatamuse(cfg.DatamuseURL, cfg.MaxSynonyms),
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		timeout:    time.Duration(cfg.EnrichTimeoutSeconds) * time.Second,
		log:        log,
	}
}

// Supports reports whether entries in lang are enriched at all. Only the
// configured source language qualifies; everything else is stored bare.
func (e *Enricher) Supports(lang string) bool {
	return strings.EqualFold(lang, e.sourceLang)
}

// Enrich looks up translation and synonyms concurrently. Both lookups share
// a deadline so a hung provider cannot hold the capture open indefinitely.
func (e *Enricher) Enrich(ctx context.Context, term string) Enrichment {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var out Enrichment
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		t, err := e.translator.Translate(ctx, term, e.sourceLang, e.targetLang)
		if err != nil {
			e.log.Debug().Err(err).Str("term", term).Msg("translation unavailable")
			return
		}
		out.TranslationDE = &t
	}()
	go func() {
		defer wg.Done()
		syn, err := e.synonyms.Synonyms(ctx, term)
		if err != nil {
			e.log.Debug().Err(err).Str("term", term).Msg("synonyms unavailable")
			return
		}
		out.SynonymsEN = syn
	}()
	wg.Wait()

	return out
}
