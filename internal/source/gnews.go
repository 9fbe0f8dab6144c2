package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/postpan/internal/match"
)

const (
	gnewsSourceName = "gnews"
	gnewsBaseURL    = "https://news.google.com"
	gnewsTimeout    = 30 * time.Second
	gnewsUserAgent  = "Mozilla/5.0 (compatible; postpan/1.0)"
)

const gnewsFields = FieldTitle | FieldURL

// GoogleNewsSource searches the Google News RSS feed.
type GoogleNewsSource struct {
	lang    string
	region  string
	timeout time.Duration
	baseURL string
}

// NewGoogleNews creates a Google News source for lang (e.g. "en") in
// the US edition.
func NewGoogleNews(lang string, timeout time.Duration) (*GoogleNewsSource, error) {
	if lang == "" {
		return nil, errors.New("gnews: language is required")
	}
	if timeout <= 0 {
		timeout = gnewsTimeout
	}
	return &GoogleNewsSource{
		lang:    lang,
		region:  "US",
		timeout: timeout,
		baseURL: gnewsBaseURL,
	}, nil
}

func (gs *GoogleNewsSource) Name() string {
	return gnewsSourceName
}

func (gs *GoogleNewsSource) Fields() Fields {
	return gnewsFields
}

// gnewsTransport injects a User-Agent header into every request.
type gnewsTransport struct {
	base http.RoundTripper
}

func (t *gnewsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", gnewsUserAgent)
	return t.base.RoundTrip(req)
}

func (gs *GoogleNewsSource) Fetch(ctx context.Context, terms match.Terms, day time.Time) ([]Item, error) {
	if terms.Len() == 0 {
		return nil, nil
	}

	fp := gofeed.NewParser()
	fp.Client = &http.Client{
		Timeout:   gs.timeout,
		Transport: &gnewsTransport{base: http.DefaultTransport},
	}
	feed, err := fp.ParseURLWithContext(gs.searchURL(terms), ctx)
	if err != nil {
		return nil, fmt.Errorf("gnews: %w", err)
	}

	return itemsFromFeed(feed, terms, day), nil
}

func (gs *GoogleNewsSource) searchURL(terms match.Terms) string {
	q := url.Values{}
	q.Set("q", terms.Query())
	q.Set("hl", gs.lang+"-"+gs.region)
	q.Set("gl", gs.region)
	q.Set("ceid", gs.region+":"+gs.lang)
	return gs.baseURL + "/rss/search?" + q.Encode()
}

func itemsFromFeed(feed *gofeed.Feed, terms match.Terms, day time.Time) []Item {
	var items []Item
	for _, it := range feed.Items {
		publishedAt := itemPublishedTime(it)
		if publishedAt.IsZero() || publishedAt.Before(day) {
			continue
		}
		if !terms.Match(it.Title) {
			continue
		}
		items = append(items, Item{
			Source:      gnewsSourceName,
			Title:       it.Title,
			URL:         it.Link,
			PublishedAt: publishedAt,
		})
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

func itemPublishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}
