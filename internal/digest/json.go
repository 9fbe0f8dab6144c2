package digest

import (
	"encoding/json"
	"io"
	"time"
)

type jsonReport struct {
	Meta       jsonMeta    `json:"meta"`
	Candidates []jsonEntry `json:"candidates"`
	Single     string      `json:"single_message,omitempty"`
	PlanError  string      `json:"plan_error,omitempty"`
}

type jsonMeta struct {
	Source     string   `json:"source"`
	Fields     string   `json:"fields"`
	Day        string   `json:"day"`
	Terms      []string `json:"terms"`
	StatusType string   `json:"status_type"`
	Shortened  bool     `json:"shortened"`
}

type jsonEntry struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	ID          string `json:"id,omitempty"`
	Text        string `json:"text,omitempty"`
	User        string `json:"user,omitempty"`
	Followers   int    `json:"followers,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Post        string `json:"post,omitempty"`
	Skipped     string `json:"skipped,omitempty"`
}

// JSONFormatter formats a candidate report as JSON.
type JSONFormatter struct{}

// NewJSON creates a JSON formatter.
func NewJSON() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the report as JSON to w.
func (f *JSONFormatter) Format(w io.Writer, input Input) error {
	terms := input.Terms
	if terms == nil {
		terms = []string{}
	}
	out := jsonReport{
		Meta: jsonMeta{
			Source:     input.Source,
			Fields:     input.Fields.String(),
			Day:        formatDay(input.Day),
			Terms:      terms,
			StatusType: string(input.StatusType),
			Shortened:  input.Shortened,
		},
		Candidates: toJSONEntries(input.Entries),
		Single:     input.Single,
		PlanError:  input.PlanError,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONEntries(entries []Entry) []jsonEntry {
	result := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			Title:     e.Title,
			URL:       e.URL,
			ID:        e.ID,
			Text:      e.Text,
			User:      e.User,
			Followers: e.Followers,
			Post:      e.Post,
		}
		if !e.PublishedAt.IsZero() {
			je.PublishedAt = e.PublishedAt.UTC().Format(time.RFC3339)
		}
		if e.Skipped() {
			je.Skipped = "empty " + e.Missing.String()
		}
		result = append(result, je)
	}
	return result
}
