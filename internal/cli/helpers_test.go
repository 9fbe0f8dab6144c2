package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/source"
	"github.com/ppiankov/postpan/internal/twitter"
)

type stubSource struct {
	name   string
	fields source.Fields
	items  []source.Item
	err    error
}

func (s *stubSource) Name() string          { return s.name }
func (s *stubSource) Fields() source.Fields { return s.fields }

func (s *stubSource) Fetch(_ context.Context, _ match.Terms, _ time.Time) ([]source.Item, error) {
	return s.items, s.err
}

type stubPublisher struct {
	texts    []string
	retweets []string
	fail     bool
}

func (p *stubPublisher) UpdateStatus(_ context.Context, u twitter.StatusUpdate) (twitter.Tweet, error) {
	if p.fail {
		return twitter.Tweet{}, &twitter.APIError{Status: 503, Body: "over capacity"}
	}
	p.texts = append(p.texts, u.Text)
	return twitter.Tweet{ID: "1", Text: u.Text}, nil
}

func (p *stubPublisher) Retweet(_ context.Context, id string) error {
	p.retweets = append(p.retweets, id)
	return nil
}

func (p *stubPublisher) UploadMedia(_ context.Context, _ string) (string, error) {
	return "m1", nil
}

// gnewsToday returns a gnews-shaped source with items published now.
func gnewsToday(titles ...string) *stubSource {
	src := &stubSource{name: "gnews", fields: source.FieldTitle | source.FieldURL}
	for i, title := range titles {
		src.items = append(src.items, source.Item{
			Source:      "gnews",
			Title:       title,
			URL:         "https://news.example.com/" + string(rune('a'+i)),
			PublishedAt: time.Now(),
		})
	}
	return src
}

// withConfig writes config.yaml into a temp dir and points --config at it.
func withConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	old := configDir
	configDir = dir
	t.Cleanup(func() { configDir = old })
	return dir
}

// stubWiring replaces the source, publisher, and shortener constructors.
func stubWiring(t *testing.T, src source.Source, pub bot.Publisher) {
	t.Helper()
	oldSource, oldPublisher, oldShortener := newSource, newPublisher, newShortener
	t.Cleanup(func() {
		newSource, newPublisher, newShortener = oldSource, oldPublisher, oldShortener
	})
	newSource = func(*config.Config) (source.Source, error) { return src, nil }
	newPublisher = func(*config.Config) (bot.Publisher, error) { return pub, nil }
	newShortener = func(*config.Config) bot.Shortener { return nil }
}

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(LogLevelEnv, "")
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}
