package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/source"
)

var testDay = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func newsList(items ...source.Item) bot.List {
	return bot.List{
		Source: "news",
		Fields: source.FieldTitle | source.FieldURL | source.FieldText,
		Items:  items,
		Day:    testDay,
	}
}

func twitterList(items ...source.Item) bot.List {
	return bot.List{
		Source: "twitter",
		Fields: source.FieldID | source.FieldText | source.FieldUser | source.FieldFollowers,
		Items:  items,
		Day:    testDay,
	}
}

func article(title, url string) source.Item {
	return source.Item{Source: "news", Title: title, URL: url, PublishedAt: testDay.Add(9 * time.Hour)}
}

func post(id, user string) source.Item {
	return source.Item{Source: "twitter", ID: id, User: user, Text: "hello from " + user, Followers: 120, PublishedAt: testDay.Add(time.Hour)}
}

func TestNewInput_Link(t *testing.T) {
	list := newsList(article("Go 1.25", "http://bit.ly/a"), article("", "http://bit.ly/b"))
	in := NewInput(list, []string{"go"}, config.Tweet{StatusType: config.StatusLink})

	if in.PlanError != "" {
		t.Fatalf("plan error: %s", in.PlanError)
	}
	if len(in.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(in.Entries))
	}
	if in.Entries[0].Post != "http://bit.ly/a Go 1.25" {
		t.Errorf("post = %q", in.Entries[0].Post)
	}
	if !in.Entries[1].Skipped() || in.Entries[1].Missing != source.FieldTitle {
		t.Errorf("entry 1 = %+v, want skipped for empty title", in.Entries[1])
	}
}

func TestNewInput_RetweetDescribed(t *testing.T) {
	in := NewInput(twitterList(post("42", "gopher")), nil, config.Tweet{StatusType: config.StatusRetweet})
	if in.Entries[0].Post != "retweet 42" {
		t.Errorf("post = %q, want retweet 42", in.Entries[0].Post)
	}
}

func TestNewInput_SingleMessage(t *testing.T) {
	in := NewInput(newsList(article("a", "u")), nil, config.Tweet{StatusType: config.StatusSingleMsg, Status: "daily roundup"})
	if in.Single != "daily roundup" {
		t.Errorf("single = %q", in.Single)
	}
	if in.Entries[0].Post != "" {
		t.Errorf("entries should not carry posts for single_msg, got %q", in.Entries[0].Post)
	}
}

func TestNewInput_SchemaMismatch(t *testing.T) {
	in := NewInput(newsList(article("a", "u")), nil, config.Tweet{StatusType: config.StatusReply, Status: "hi"})
	if !strings.Contains(in.PlanError, "set bot.search_on to twitter") {
		t.Errorf("plan error = %q", in.PlanError)
	}
	if len(in.Entries) != 1 || in.Entries[0].Post != "" {
		t.Errorf("entries = %+v", in.Entries)
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "terminal", "json", "markdown"} {
		if _, err := New(format, false); err != nil {
			t.Errorf("New(%q): %v", format, err)
		}
	}
	if _, err := New("html", false); err == nil {
		t.Error("expected error for unknown format")
	}
}
