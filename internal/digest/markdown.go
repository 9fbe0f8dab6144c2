package digest

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter formats a candidate report as Markdown.
type MarkdownFormatter struct{}

// NewMarkdown creates a Markdown formatter.
func NewMarkdown() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to w.
func (f *MarkdownFormatter) Format(w io.Writer, input Input) error {
	fmt.Fprintf(w, "# postpan candidates\n\n")
	fmt.Fprintf(w, "%s, %d candidates for %s", input.Source, len(input.Entries), formatDay(input.Day))
	if len(input.Terms) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(input.Terms, ", "))
	}
	fmt.Fprintf(w, "\n\nStatus type: `%s`\n\n", input.StatusType)

	if input.PlanError != "" {
		fmt.Fprintf(w, "> **Nothing will be posted:** %s\n\n", input.PlanError)
	}

	if input.Single != "" {
		fmt.Fprintf(w, "## Single message\n\n%s\n\n", input.Single)
	}

	if len(input.Entries) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return nil
	}

	fmt.Fprintf(w, "## Candidates (%d)\n\n", len(input.Entries))
	for i, e := range input.Entries {
		f.writeEntry(w, i+1, e)
	}
	return nil
}

func (f *MarkdownFormatter) writeEntry(w io.Writer, n int, e Entry) {
	title := headline(e.Item)
	if e.URL != "" {
		title = fmt.Sprintf("[%s](%s)", title, e.URL)
	}
	fmt.Fprintf(w, "%d. %s", n, title)

	switch {
	case e.Skipped():
		fmt.Fprintf(w, " _(skipped: empty %s)_", e.Missing)
	case e.Post != "":
		fmt.Fprintf(w, "\n   - `%s`", e.Post)
	}
	fmt.Fprintln(w)
}
