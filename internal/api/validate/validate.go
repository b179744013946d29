package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// langRx matches short language codes like "en", "EN", "pt-br".
var langRx = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z]{2,4})?$`)

const (
	maxTermBytes    = 2000
	maxContextBytes = 4000
)

// Term validates a captured term: non-empty after trimming and within the
// storage limit. Casing and inner whitespace are preserved by the caller.
func Term(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("term is required")
	}
	if len(v) > maxTermBytes {
		return fmt.Errorf("term exceeds %d bytes", maxTermBytes)
	}
	return nil
}

// Lang validates an optional language code. Empty is allowed; the handler
// defaults it.
func Lang(v string) error {
	if v == "" {
		return nil
	}
	if !langRx.MatchString(v) {
		return fmt.Errorf("invalid language code %q", v)
	}
	return nil
}

// Context validates the free-text provenance field.
func Context(v string) error {
	if len(v) > maxContextBytes {
		return fmt.Errorf("context exceeds %d bytes", maxContextBytes)
	}
	return nil
}
