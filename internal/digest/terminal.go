package digest

import (
	"fmt"
	"io"
	"strings"
)

// TerminalFormatter formats a candidate report for terminal output.
type TerminalFormatter struct {
	color bool
}

// NewTerminal creates a terminal formatter. Set color=true for ANSI colors.
func NewTerminal(color bool) *TerminalFormatter {
	return &TerminalFormatter{color: color}
}

// Format writes the report to w.
func (f *TerminalFormatter) Format(w io.Writer, input Input) error {
	header := fmt.Sprintf("postpan: %s, %d candidates for %s", input.Source, len(input.Entries), formatDay(input.Day))
	if len(input.Terms) > 0 {
		header += " (" + strings.Join(input.Terms, ", ") + ")"
	}
	fmt.Fprintln(w, f.bold(header))
	fmt.Fprintln(w, f.dim(fmt.Sprintf("fields: %s  status_type: %s  shortened: %t", input.Fields, input.StatusType, input.Shortened)))
	fmt.Fprintln(w)

	if input.PlanError != "" {
		fmt.Fprintln(w, f.red(f.bold("Nothing will be posted: "+input.PlanError)))
		fmt.Fprintln(w)
	}

	if input.Single != "" {
		fmt.Fprintln(w, f.green(f.bold("--- Single message ---")))
		fmt.Fprintf(w, "  %s\n\n", input.Single)
	}

	if len(input.Entries) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return nil
	}

	fmt.Fprintln(w, f.bold(fmt.Sprintf("--- Candidates (%d) ---", len(input.Entries))))
	fmt.Fprintln(w)
	for i, e := range input.Entries {
		f.writeEntry(w, i+1, e)
	}
	return nil
}

func (f *TerminalFormatter) writeEntry(w io.Writer, n int, e Entry) {
	fmt.Fprintf(w, "  %s %s\n", f.bold(fmt.Sprintf("[%d]", n)), headline(e.Item))
	if e.URL != "" {
		fmt.Fprintf(w, "      %s\n", f.dim(e.URL))
	}
	if e.ID != "" {
		fmt.Fprintf(w, "      %s\n", f.dim("id "+e.ID))
	}
	switch {
	case e.Skipped():
		fmt.Fprintf(w, "      %s\n", f.yellow("skipped: empty "+e.Missing.String()))
	case e.Post != "":
		fmt.Fprintf(w, "      %s\n", f.green("-> "+e.Post))
	}
	fmt.Fprintln(w)
}

// ANSI helpers, no-op when color=false.

func (f *TerminalFormatter) bold(s string) string {
	return f.ansi("1", s)
}

func (f *TerminalFormatter) green(s string) string {
	return f.ansi("32", s)
}

func (f *TerminalFormatter) yellow(s string) string {
	return f.ansi("33", s)
}

func (f *TerminalFormatter) red(s string) string {
	return f.ansi("31", s)
}

func (f *TerminalFormatter) dim(s string) string {
	return f.ansi("2", s)
}

func (f *TerminalFormatter) ansi(code, s string) string {
	if !f.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
