package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Datamuse looks up related English words via the means-like query.
type Datamuse struct {
	client *resty.Client
	max    int
}

type datamuseWord struct {
	Word string `json:"word"`
}

func NewDatamuse(baseURL string, max int) *Datamuse {
	if max <= 0 {
		max = 8
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &Datamuse{client: c, max: max}
}

func (d *Datamuse) Synonyms(ctx context.Context, term string) ([]string, error) {
	var out []datamuseWord
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParam("ml", term).
		SetQueryParam("max", strconv.Itoa(d.max)).
		SetResult(&out).
		Get("/words")
	if err != nil {
		return nil, fmt.Errorf("datamuse: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("datamuse status %d: %w", resp.StatusCode(), ErrUnavailable)
	}

	syn := make([]string, 0, len(out))
	for _, w := range out {
		if w.Word != "" {
			syn = append(syn, w.Word)
		}
	}
	return syn, nil
}
