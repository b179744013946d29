package enrich

import (
	"context"
	"fmt"
)

// TranslatorChain tries providers in order. Each failure silently advances
// to the next; exhausting the chain yields ErrUnavailable.
type TranslatorChain struct {
	providers []Translator
}

func NewTranslatorChain(providers ...Translator) *TranslatorChain {
	return &TranslatorChain{providers: providers}
}

func (c *TranslatorChain) Translate(ctx context.Context, term, sourceLang, targetLang string) (string, error) {
	for _, p := range c.providers {
		if ctx.Err() != nil {
			break
		}
		t, err := p.Translate(ctx, term, sourceLang, targetLang)
		if err == nil && t != "" {
			return t, nil
		}
	}
	return "", fmt.Errorf("all translators failed: %w", ErrUnavailable)
}
