package bot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/twitter"
)

func newTestDispatcher(pub Publisher) (*Dispatcher, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	return NewDispatcher(pub, log), hook
}

func TestSend_RetweetOnly(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)

	list := twitterList(post("42", "gopher", 10))
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusRetweet, Status: "ignored", Image: "banner.png"}, list)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !slices.Equal(pub.calls, []string{"retweet"}) {
		t.Errorf("calls = %v, want only [retweet]", pub.calls)
	}
	if !slices.Equal(pub.retweets, []string{"42"}) {
		t.Errorf("retweets = %v, want [42]", pub.retweets)
	}
	if report.Posted != 1 || report.Planned != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestSend_ReplyOnNewsListMakesNoCalls(t *testing.T) {
	pub := &recordingPublisher{}
	d, hook := newTestDispatcher(pub)

	list := newsList(article("Go", "http://bit.ly/a", testNow))
	_, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusReply, Status: "hi"}, list)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("error = %v, want ErrSchemaMismatch", err)
	}
	if len(pub.calls) != 0 {
		t.Errorf("calls = %v, want none", pub.calls)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Errorf("last log = %+v, want error entry", e)
	}
}

func TestSend_UnknownStatusTypeMakesNoCalls(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)

	_, err := d.Send(context.Background(), config.Tweet{StatusType: "broadcast"}, twitterList(post("1", "u", 1)))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if len(pub.calls) != 0 {
		t.Errorf("calls = %v, want none", pub.calls)
	}
}

func TestSend_LinkWithImage(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)

	list := newsList(
		article("Go 1.25", "http://bit.ly/a", testNow),
		article("Go tips", "http://bit.ly/b", testNow),
	)
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusLink, Image: "banner.png"}, list)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !slices.Equal(pub.calls, []string{"upload", "update", "update"}) {
		t.Errorf("calls = %v, want one upload before the posts", pub.calls)
	}
	if !slices.Equal(pub.uploads, []string{"banner.png"}) {
		t.Errorf("uploads = %v, want [banner.png]", pub.uploads)
	}
	if pub.updates[0].Text != "http://bit.ly/a Go 1.25" || pub.updates[1].Text != "http://bit.ly/b Go tips" {
		t.Errorf("texts = %q, %q", pub.updates[0].Text, pub.updates[1].Text)
	}
	for i, u := range pub.updates {
		if !slices.Equal(u.MediaIDs, []string{"media-1"}) {
			t.Errorf("updates[%d] media ids = %v, want the shared upload", i, u.MediaIDs)
		}
	}
	if pub.updates[0].InReplyToID != "" {
		t.Error("link posts are not replies")
	}
	if report.Posted != 2 {
		t.Errorf("posted = %d, want 2", report.Posted)
	}
}

func TestSend_ReplyVersusAt(t *testing.T) {
	list := twitterList(post("42", "gopher", 10))

	replyPub := &recordingPublisher{}
	d, _ := newTestDispatcher(replyPub)
	if _, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusReply, Status: "thanks"}, list); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if u := replyPub.updates[0]; u.Text != ".@gopher thanks" || u.InReplyToID != "42" {
		t.Errorf("reply update = %+v", u)
	}

	atPub := &recordingPublisher{}
	d, _ = newTestDispatcher(atPub)
	if _, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusAt, Status: "thanks"}, list); err != nil {
		t.Fatalf("at: %v", err)
	}
	if u := atPub.updates[0]; u.Text != ".@gopher thanks" || u.InReplyToID != "" {
		t.Errorf("at update = %+v, want new status without reply id", u)
	}
}

func TestSend_SingleMessageExactlyOnce(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)

	list := twitterList(post("1", "a", 1), post("2", "b", 2), post("3", "c", 3))
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusSingleMsg, Status: strings.Repeat("s", 200)}, list)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(pub.updates) != 1 || len(pub.updates[0].Text) != 140 {
		t.Errorf("updates = %d (len %d), want one 140-char post", len(pub.updates), len(pub.updates[0].Text))
	}
	if report.Posted != 1 {
		t.Errorf("posted = %d", report.Posted)
	}
}

func TestSend_PerItemFailureContinues(t *testing.T) {
	pub := &recordingPublisher{failText: "Go b"}
	d, _ := newTestDispatcher(pub)

	list := newsList(
		article("Go a", "http://bit.ly/a", testNow),
		article("Go b", "http://bit.ly/b", testNow),
		article("Go c", "http://bit.ly/c", testNow),
	)
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusLink}, list)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	if report.Posted != 2 || report.Failed != 1 {
		t.Errorf("report = %+v, want 2 posted 1 failed", report)
	}
	if len(pub.calls) != 3 {
		t.Errorf("calls = %v, want all three attempted", pub.calls)
	}
}

func TestSend_ImageUploadedOncePerDispatch(t *testing.T) {
	tests := []struct {
		name    string
		st      config.StatusType
		list    List
		uploads int
	}{
		{"link", config.StatusLink, newsList(
			article("Go a", "http://bit.ly/a", testNow),
			article("Go b", "http://bit.ly/b", testNow),
			article("Go c", "http://bit.ly/c", testNow),
		), 1},
		{"reply", config.StatusReply, twitterList(post("1", "a", 1), post("2", "b", 2)), 1},
		{"single_msg", config.StatusSingleMsg, twitterList(post("1", "a", 1), post("2", "b", 2)), 1},
		{"rt", config.StatusRetweet, twitterList(post("1", "a", 1), post("2", "b", 2)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			d, _ := newTestDispatcher(pub)

			if _, err := d.Send(context.Background(), config.Tweet{StatusType: tt.st, Status: "hi", Image: "img.png"}, tt.list); err != nil {
				t.Fatalf("send: %v", err)
			}
			if len(pub.uploads) != tt.uploads {
				t.Errorf("uploads = %d, want %d (calls %v)", len(pub.uploads), tt.uploads, pub.calls)
			}
		})
	}
}

func TestSend_ImageUploadFailureAbortsDispatch(t *testing.T) {
	pub := &recordingPublisher{failMedia: true}
	d, hook := newTestDispatcher(pub)

	list := newsList(
		article("Go a", "http://bit.ly/a", testNow),
		article("Go b", "http://bit.ly/b", testNow),
	)
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusLink, Image: "missing.png"}, list)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	if !slices.Equal(pub.calls, []string{"upload"}) {
		t.Errorf("calls = %v, want only the failed upload", pub.calls)
	}
	if report.Posted != 0 || report.Planned != 2 {
		t.Errorf("report = %+v", report)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Errorf("last log = %+v, want error entry", e)
	}
}

func TestSend_EmptyList(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)

	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusLink}, newsList())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(pub.calls) != 0 || report.Planned != 0 {
		t.Errorf("calls=%v report=%+v", pub.calls, report)
	}
}

func TestSend_UsesLatestTweetConfig(t *testing.T) {
	pub := &recordingPublisher{}
	d, _ := newTestDispatcher(pub)
	list := twitterList(post("42", "gopher", 10))

	first := config.Tweet{StatusType: config.StatusAt, Status: "first"}
	if _, err := d.Send(context.Background(), first, list); err != nil {
		t.Fatalf("first send: %v", err)
	}

	pub.updates = nil
	second := config.Tweet{StatusType: config.StatusReply, Status: "second"}
	if _, err := d.Send(context.Background(), second, list); err != nil {
		t.Fatalf("second send: %v", err)
	}
	if len(pub.updates) != 1 || pub.updates[0].Text != ".@gopher second" || pub.updates[0].InReplyToID != "42" {
		t.Errorf("updates = %+v, want the second configuration only", pub.updates)
	}
}

func TestDryRunPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewDryRun(&buf)
	d, _ := newTestDispatcher(pub)

	img := filepath.Join(t.TempDir(), "banner.png")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	list := twitterList(post("42", "gopher", 10))
	report, err := d.Send(context.Background(), config.Tweet{StatusType: config.StatusReply, Status: "hi", Image: img}, list)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ".@gopher hi") || !strings.Contains(out, "reply to 42") || !strings.Contains(out, "with image") {
		t.Errorf("output = %q", out)
	}
	if report.Posted != 1 {
		t.Errorf("posted = %d", report.Posted)
	}

	buf.Reset()
	if err := pub.Retweet(context.Background(), "7"); err != nil || !strings.Contains(buf.String(), "retweet 7") {
		t.Errorf("retweet output = %q err = %v", buf.String(), err)
	}

	if _, err := pub.UploadMedia(context.Background(), filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("expected error for missing image")
	}
}

var _ Publisher = (*twitter.Client)(nil)
