package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/source"
)

var (
	// ErrInvalidConfig marks a configuration the bot cannot act on.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemaMismatch marks a status type that needs fields the built
	// list does not carry.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrShorten marks a list that could not be fully shortened.
	ErrShorten = errors.New("link shortening failed")

	// ErrUpstream marks failed calls to an external API.
	ErrUpstream = errors.New("upstream unavailable")
)

// SchemaError reports which fields a status type needs and which
// search_on values would provide them.
type SchemaError struct {
	StatusType config.StatusType
	Source     string
	Have       source.Fields
	Missing    source.Fields
	Suggest    []string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("status type %q needs %s, but the %q list only has %s",
		e.StatusType, e.Missing, e.Source, e.Have)
	if len(e.Suggest) > 0 {
		msg += fmt.Sprintf("; set bot.search_on to %s", strings.Join(e.Suggest, " or "))
	}
	return msg
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
