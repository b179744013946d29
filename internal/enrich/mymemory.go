package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// MyMemory is the keyless fallback translator. It is rate-limited upstream,
// which is acceptable for a fallback that only runs when DeepL is not
// configured or fails.
type MyMemory struct {
	client *resty.Client
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

func NewMyMemory(baseURL string) *MyMemory {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &MyMemory{client: c}
}

func (m *MyMemory) Translate(ctx context.Context, term, sourceLang, targetLang string) (string, error) {
	var out myMemoryResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParam("q", term).
		SetQueryParam("langpair", strings.ToLower(sourceLang)+"|"+strings.ToLower(targetLang)).
		SetResult(&out).
		Get("/get")
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("mymemory status %d: %w", resp.StatusCode(), ErrUnavailable)
	}
	if out.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("mymemory empty result: %w", ErrUnavailable)
	}
	return out.ResponseData.TranslatedText, nil
}
