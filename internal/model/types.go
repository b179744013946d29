package model

import "time"

// Entry is one captured vocabulary item owned by a single user. The
// (UserID, Term, Lang) tuple is unique case-insensitively; Term keeps the
// casing of the first capture.
type Entry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Term          string    `json:"term"`
	Lang          string    `json:"lang"`
	Context       string    `json:"context"`
	TranslationDE *string   `json:"translation_de"`
	SynonymsEN    []string  `json:"synonyms_en"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntryPatch carries the fields a duplicate capture may fill in on an
// existing entry. Nil fields are left untouched.
type EntryPatch struct {
	Context       *string
	TranslationDE *string
	SynonymsEN    []string
}

// IsEmpty reports whether the patch would change nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Context == nil && p.TranslationDE == nil && len(p.SynonymsEN) == 0
}

// CaptureRequest is the payload a client sends to record a term.
type CaptureRequest struct {
	Term    string `json:"term"`
	Lang    string `json:"lang"`
	Context string `json:"context"`
}

// CaptureResult reports the outcome of a capture: the live entry plus
// whether the capture collided with an existing one and whether the
// collision caused a merge.
type CaptureResult struct {
	Entry   *Entry
	Dedup   bool
	Updated bool
}
