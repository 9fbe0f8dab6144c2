package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/privacy"
)

const (
	newsSourceName = "news"
	newsBaseURL    = "https://newsapi.org"
	newsTimeout    = 30 * time.Second
	newsPageSize   = 100
	newsUserAgent  = "postpan/1.0"
	newsDateLayout = "2006-01-02"
)

const newsFields = FieldTitle | FieldURL | FieldText

// NewsSource searches articles via NewsAPI's /v2/everything endpoint.
type NewsSource struct {
	apiKey           string
	matchDescription bool
	client           *http.Client
	baseURL          string
}

// NewNews creates a NewsAPI source. When matchDescription is set, terms
// are matched against the description as well as the title.
func NewNews(apiKey string, matchDescription bool, timeout time.Duration) (*NewsSource, error) {
	if apiKey == "" {
		return nil, errors.New("news: api key is required")
	}
	if timeout <= 0 {
		timeout = newsTimeout
	}
	return &NewsSource{
		apiKey:           apiKey,
		matchDescription: matchDescription,
		client:           &http.Client{Timeout: timeout},
		baseURL:          newsBaseURL,
	}, nil
}

func (ns *NewsSource) Name() string {
	return newsSourceName
}

func (ns *NewsSource) Fields() Fields {
	return newsFields
}

func (ns *NewsSource) Fetch(ctx context.Context, terms match.Terms, day time.Time) ([]Item, error) {
	if terms.Len() == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", terms.Query())
	q.Set("from", day.Format(newsDateLayout))
	q.Set("sortBy", "popularity")
	q.Set("pageSize", fmt.Sprint(newsPageSize))
	q.Set("apiKey", ns.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ns.baseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", newsUserAgent)

	resp, err := ns.client.Do(req)
	if err != nil {
		return nil, privacy.Scrub(fmt.Errorf("news: search: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("news: status %d: %s", resp.StatusCode, newsErrorMessage(body))
	}

	var result newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("news: decode: %w", err)
	}

	return ns.itemsFromArticles(result.Articles, terms, day), nil
}

func (ns *NewsSource) itemsFromArticles(articles []newsArticle, terms match.Terms, day time.Time) []Item {
	var items []Item
	for _, a := range articles {
		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil || publishedAt.Before(day) {
			continue
		}

		texts := []string{a.Title}
		if ns.matchDescription {
			texts = append(texts, a.Description)
		}
		if !terms.MatchAny(texts...) {
			continue
		}

		items = append(items, Item{
			Source:      newsSourceName,
			Title:       a.Title,
			URL:         a.URL,
			Text:        a.Description,
			PublishedAt: publishedAt,
		})
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

// newsErrorMessage extracts NewsAPI's error message, falling back to the raw body.
func newsErrorMessage(body []byte) string {
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return string(body)
}

type newsResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
