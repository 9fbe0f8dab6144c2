// Package match decides whether candidate text mentions any search term.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Terms is an ordered set of search terms with a fixed case policy.
// The zero value matches nothing.
type Terms struct {
	raw           []string
	needles       []string
	caseSensitive bool
}

// NewTerms builds a term set. Blank terms are dropped and duplicates
// (after case folding, when case-insensitive) collapse to the first one.
func NewTerms(terms []string, caseSensitive bool) Terms {
	t := Terms{caseSensitive: caseSensitive}
	seen := make(map[string]bool)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		needle := t.fold(term)
		if seen[needle] {
			continue
		}
		seen[needle] = true
		t.raw = append(t.raw, term)
		t.needles = append(t.needles, needle)
	}
	return t
}

// Matches reports whether any term occurs in text, case-sensitively.
func Matches(terms []string, text string) bool {
	return NewTerms(terms, true).Match(text)
}

// Match reports whether at least one term is a substring of text.
// There are no word boundaries: "cat" matches "concatenate".
func (t Terms) Match(text string) bool {
	if len(t.needles) == 0 {
		return false
	}
	haystack := t.fold(text)
	for _, needle := range t.needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// MatchAny reports whether any of the texts matches.
func (t Terms) MatchAny(texts ...string) bool {
	for _, text := range texts {
		if t.Match(text) {
			return true
		}
	}
	return false
}

// Query joins the terms as an upstream search disjunction: "a OR b".
func (t Terms) Query() string {
	return strings.Join(t.raw, " OR ")
}

// List returns the terms as configured.
func (t Terms) List() []string {
	return append([]string(nil), t.raw...)
}

// Len returns the number of distinct terms.
func (t Terms) Len() int {
	return len(t.raw)
}

// CaseSensitive reports the case policy.
func (t Terms) CaseSensitive() bool {
	return t.caseSensitive
}

func (t Terms) fold(s string) string {
	if t.caseSensitive {
		return s
	}
	return cases.Fold().String(s)
}
