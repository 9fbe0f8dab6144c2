package bot

import (
	"time"

	"github.com/ppiankov/postpan/internal/source"
)

// List is the candidate list produced by one Build call. It is a value:
// each build returns a new one.
type List struct {
	Source    string
	Fields    source.Fields
	Items     []source.Item
	Day       time.Time // start of the day used for freshness
	BuiltAt   time.Time
	Shortened bool
}

// Len returns the number of candidates.
func (l List) Len() int {
	return len(l.Items)
}
