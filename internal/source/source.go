package source

import (
	"context"
	"strings"
	"time"

	"github.com/ppiankov/postpan/internal/match"
)

// MaxItems caps every candidate list.
const MaxItems = 10

// Item is a single candidate fetched from a source. Which fields are
// populated depends on the source; see Fields.
type Item struct {
	Source      string    // source identifier: "news", "twitter", "gnews"
	Title       string    // article headline
	URL         string    // article link, possibly shortened later
	ID          string    // post ID on the social network
	Text        string    // article description or post body
	User        string    // author screen name
	Followers   int       // author follower count
	PublishedAt time.Time // publication timestamp
}

// Fields is the set of Item fields a source populates.
type Fields uint8

const (
	FieldTitle Fields = 1 << iota
	FieldURL
	FieldID
	FieldText
	FieldUser
	FieldFollowers
)

var fieldNames = []struct {
	f    Fields
	name string
}{
	{FieldTitle, "title"},
	{FieldURL, "url"},
	{FieldID, "id"},
	{FieldText, "text"},
	{FieldUser, "user"},
	{FieldFollowers, "followers"},
}

// Has reports whether every field in want is present.
func (f Fields) Has(want Fields) bool {
	return f&want == want
}

// Missing returns the fields in want that f lacks.
func (f Fields) Missing(want Fields) Fields {
	return want &^ f
}

func (f Fields) String() string {
	var names []string
	for _, fn := range fieldNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ", ")
}

// Source fetches candidate items from a search endpoint.
type Source interface {
	// Name returns the source identifier (e.g. "news").
	Name() string

	// Fields returns the schema of items this source produces.
	Fields() Fields

	// Fetch returns items matching terms that were published on day,
	// the start of the current calendar day.
	Fetch(ctx context.Context, terms match.Terms, day time.Time) ([]Item, error)
}

var schemas = []struct {
	name   string
	fields Fields
}{
	{newsSourceName, newsFields},
	{twitterSourceName, twitterFields},
	{gnewsSourceName, gnewsFields},
}

// FieldsOf returns the schema of the named source.
func FieldsOf(name string) (Fields, bool) {
	for _, s := range schemas {
		if s.name == name {
			return s.fields, true
		}
	}
	return 0, false
}

// ForFields returns the source names whose schema covers want.
func ForFields(want Fields) []string {
	var names []string
	for _, s := range schemas {
		if s.fields.Has(want) {
			names = append(names, s.name)
		}
	}
	return names
}
