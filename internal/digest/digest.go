// Package digest renders a candidate list together with the posts the
// configured status type would produce.
package digest

import (
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/source"
)

// Entry pairs one candidate with its planned post.
type Entry struct {
	source.Item
	Post    string        // message or "retweet <id>"; empty when skipped
	Missing source.Fields // set when the candidate was skipped
}

// Skipped reports whether the candidate will not be posted.
func (e Entry) Skipped() bool {
	return e.Missing != 0
}

// Input is the full input for a formatter.
type Input struct {
	Source     string
	Fields     source.Fields
	Day        time.Time
	Terms      []string
	StatusType config.StatusType
	Shortened  bool
	Entries    []Entry
	Single     string // single_msg text, posted once regardless of entries
	PlanError  string // why nothing would be posted
}

// Formatter writes a formatted candidate report to w.
type Formatter interface {
	Format(w io.Writer, input Input) error
}

// NewInput plans tweet against list and pairs every candidate with the
// post it would produce.
func NewInput(list bot.List, terms []string, tweet config.Tweet) Input {
	in := Input{
		Source:     list.Source,
		Fields:     list.Fields,
		Day:        list.Day,
		Terms:      terms,
		StatusType: tweet.StatusType,
		Shortened:  list.Shortened,
		Entries:    make([]Entry, len(list.Items)),
	}
	for i, it := range list.Items {
		in.Entries[i].Item = it
	}

	plan, err := bot.NewPlan(tweet, list)
	if err != nil {
		in.PlanError = err.Error()
		return in
	}

	if plan.StatusType == config.StatusSingleMsg {
		in.Single = bot.Message(plan.Actions[0])
		return in
	}

	skipped := make(map[int]source.Fields, len(plan.Skipped))
	for _, s := range plan.Skipped {
		skipped[s.Index] = s.Missing
	}
	next := 0
	for i := range in.Entries {
		if missing, ok := skipped[i]; ok {
			in.Entries[i].Missing = missing
			continue
		}
		in.Entries[i].Post = describe(plan.Actions[next])
		next++
	}
	return in
}

func describe(a bot.Action) string {
	if r, ok := a.(bot.Repost); ok {
		return "retweet " + r.ID
	}
	return bot.Message(a)
}

// New returns the formatter for format: terminal, json, or markdown.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "terminal":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want terminal, json, or markdown)", format)
	}
}

func headline(it source.Item) string {
	switch {
	case it.Title != "":
		return it.Title
	case it.User != "":
		return fmt.Sprintf("@%s (%d followers): %s", it.User, it.Followers, it.Text)
	default:
		return it.Text
	}
}

func formatDay(d time.Time) string {
	if d.IsZero() {
		return "today"
	}
	return d.Format("2006-01-02")
}
