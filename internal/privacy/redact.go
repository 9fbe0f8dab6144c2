// Package privacy keeps credentials out of errors and logs.
package privacy

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const redactedPlaceholder = "[REDACTED]"

// DefaultPatterns match credentials that upstream APIs take as query
// parameters. net/http transport errors quote the full request URL.
var DefaultPatterns = []string{
	`(?i)access_token=[^&\s"]+`,
	`(?i)apikey=[^&\s"]+`,
	`(?i)oauth_signature=[^&\s",]+`,
}

var defaultRedact = mustCompile(DefaultPatterns)

// Compile compiles a list of regex pattern strings into compiled regexps.
// Returns an error if any pattern is invalid.
func Compile(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile redact pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func mustCompile(patterns []string) []*regexp.Regexp {
	compiled, err := Compile(patterns)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Apply replaces all matches of the compiled patterns in text with [REDACTED].
func Apply(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, redactedPlaceholder)
	}
	return text
}

// Scrub returns err with credential query parameters masked in its
// message. errors.Is still sees the original chain. errors.As for a
// *url.Error yields a copy with the URL masked; walking the chain by hand
// with errors.Unwrap reaches the original values.
func Scrub(err error) error {
	if err == nil {
		return nil
	}
	msg := Apply(err.Error(), defaultRedact)
	if msg == err.Error() {
		return err
	}
	return &scrubbedError{msg: msg, err: err}
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }

// As hands out a masked copy of a wrapped *url.Error.
func (e *scrubbedError) As(target any) bool {
	t, ok := target.(**url.Error)
	if !ok {
		return false
	}
	var ue *url.Error
	if !errors.As(e.err, &ue) {
		return false
	}
	*t = &url.Error{
		Op:  ue.Op,
		URL: Apply(ue.URL, defaultRedact),
		Err: Scrub(ue.Err),
	}
	return true
}

// Secrets masks literal secret values, such as resolved API tokens.
type Secrets struct {
	values []string
}

// NewSecrets ignores empty and very short values, which would mask
// ordinary text.
func NewSecrets(values ...string) *Secrets {
	s := &Secrets{}
	for _, v := range values {
		if len(strings.TrimSpace(v)) >= 4 {
			s.values = append(s.values, v)
		}
	}
	return s
}

// Apply masks every known secret and credential parameter in text.
func (s *Secrets) Apply(text string) string {
	for _, v := range s.values {
		text = strings.ReplaceAll(text, v, redactedPlaceholder)
	}
	return Apply(text, defaultRedact)
}
