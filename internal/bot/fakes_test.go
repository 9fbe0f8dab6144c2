package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/source"
	"github.com/ppiankov/postpan/internal/twitter"
)

var (
	testNow = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	testDay = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
)

type fakeSource struct {
	name   string
	fields source.Fields
	items  []source.Item
	err    error
	days   []time.Time
}

func (f *fakeSource) Name() string          { return f.name }
func (f *fakeSource) Fields() source.Fields { return f.fields }

func (f *fakeSource) Fetch(_ context.Context, _ match.Terms, day time.Time) ([]source.Item, error) {
	f.days = append(f.days, day)
	return f.items, f.err
}

func newsSource(items ...source.Item) *fakeSource {
	return &fakeSource{name: "news", fields: source.FieldTitle | source.FieldURL | source.FieldText, items: items}
}

func twitterSource(items ...source.Item) *fakeSource {
	return &fakeSource{name: "twitter", fields: source.FieldID | source.FieldText | source.FieldUser | source.FieldFollowers, items: items}
}

type fakeShortener struct {
	calls []string
	fail  string
}

func (f *fakeShortener) Shorten(_ context.Context, longURL string) (string, error) {
	f.calls = append(f.calls, longURL)
	if f.fail != "" && strings.Contains(longURL, f.fail) {
		return "", errors.New("bitly: HTTP 500")
	}
	return "http://bit.ly/" + strings.TrimPrefix(longURL, "https://example.com/"), nil
}

// recordingPublisher records every outbound call in order.
type recordingPublisher struct {
	calls     []string
	updates   []twitter.StatusUpdate
	retweets  []string
	uploads   []string
	failText  string
	failMedia bool
}

func (p *recordingPublisher) UpdateStatus(_ context.Context, u twitter.StatusUpdate) (twitter.Tweet, error) {
	p.calls = append(p.calls, "update")
	if p.failText != "" && strings.Contains(u.Text, p.failText) {
		return twitter.Tweet{}, &twitter.APIError{Status: 403, Body: "duplicate"}
	}
	p.updates = append(p.updates, u)
	return twitter.Tweet{ID: "posted", Text: u.Text}, nil
}

func (p *recordingPublisher) Retweet(_ context.Context, id string) error {
	p.calls = append(p.calls, "retweet")
	p.retweets = append(p.retweets, id)
	return nil
}

func (p *recordingPublisher) UploadMedia(_ context.Context, path string) (string, error) {
	p.calls = append(p.calls, "upload")
	if p.failMedia {
		return "", errors.New("upload: HTTP 400")
	}
	p.uploads = append(p.uploads, path)
	return "media-1", nil
}

func article(title, url string, at time.Time) source.Item {
	return source.Item{Source: "news", Title: title, URL: url, PublishedAt: at}
}

func post(id, user string, followers int) source.Item {
	return source.Item{Source: "twitter", ID: id, User: user, Text: "post " + id, Followers: followers, PublishedAt: testNow}
}
