package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DeepL is the credentialed primary translator (free-tier API endpoint,
// quota-bound).
type DeepL struct {
	client *resty.Client
	key    string
}

type deepLResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func NewDeepL(baseURL, key string) *DeepL {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &DeepL{client: c, key: key}
}

func (d *DeepL) Translate(ctx context.Context, term, sourceLang, targetLang string) (string, error) {
	var out deepLResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"auth_key":    d.key,
			"text":        term,
			"source_lang": strings.ToUpper(sourceLang),
			"target_lang": strings.ToUpper(targetLang),
		}).
		SetResult(&out).
		Post("/v2/translate")
	if err != nil {
		return "", fmt.Errorf("deepl: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("deepl status %d: %w", resp.StatusCode(), ErrUnavailable)
	}
	if len(out.Translations) == 0 || out.Translations[0].Text == "" {
		return "", fmt.Errorf("deepl empty result: %w", ErrUnavailable)
	}
	return out.Translations[0].Text, nil
}
