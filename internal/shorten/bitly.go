// Package shorten maps long URLs to short redirect URLs via Bitly.
package shorten

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/postpan/internal/privacy"
)

const (
	bitlyBaseURL = "https://api-ssl.bitly.com"
	bitlyTimeout = 30 * time.Second
)

// Bitly shortens URLs with the v3 shorten endpoint.
type Bitly struct {
	token   string
	client  *http.Client
	baseURL string
}

// New returns a Bitly shortener, or nil when token is empty. A nil
// shortener means links pass through unchanged.
func New(token string, timeout time.Duration) *Bitly {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = bitlyTimeout
	}
	return &Bitly{
		token:   token,
		client:  &http.Client{Timeout: timeout},
		baseURL: bitlyBaseURL,
	}
}

// Shorten returns the short URL for longURL.
func (b *Bitly) Shorten(ctx context.Context, longURL string) (string, error) {
	if longURL == "" {
		return "", errors.New("bitly: empty url")
	}

	q := url.Values{}
	q.Set("longUrl", longURL)
	q.Set("access_token", b.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/v3/shorten?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", privacy.Scrub(fmt.Errorf("bitly: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bitly: HTTP %d", resp.StatusCode)
	}

	var result shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("bitly: decode: %w", err)
	}
	// v3 reports errors in the body with HTTP 200.
	if result.StatusCode != 0 && result.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bitly: status %d: %s", result.StatusCode, result.StatusTxt)
	}

	var data shortenData
	if err := json.Unmarshal(result.Data, &data); err != nil || data.URL == "" {
		return "", fmt.Errorf("bitly: no short url for %s", longURL)
	}
	return data.URL, nil
}

// shortenResponse carries data as raw JSON: Bitly sends [] instead of an
// object on failure.
type shortenResponse struct {
	StatusCode int             `json:"status_code"`
	StatusTxt  string          `json:"status_txt"`
	Data       json.RawMessage `json:"data"`
}

type shortenData struct {
	URL     string `json:"url"`
	LongURL string `json:"long_url"`
	Hash    string `json:"hash"`
}
