// Package bot builds candidate lists and publishes them according to the
// configured status type.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/source"
)

// Shortener maps a long URL to a short one. *shorten.Bitly implements it.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// Builder runs a source, applies freshness and the item cap, and shortens
// links when a shortener is configured.
type Builder struct {
	src       source.Source
	terms     match.Terms
	shortener Shortener
	loc       *time.Location
	now       func() time.Time
	log       logrus.FieldLogger
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithShortener enables link shortening. A nil shortener leaves links as is.
func WithShortener(s Shortener) BuilderOption {
	return func(b *Builder) { b.shortener = s }
}

// WithLocation sets the timezone that defines the current day.
func WithLocation(loc *time.Location) BuilderOption {
	return func(b *Builder) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// NewBuilder creates a list builder for src and terms.
func NewBuilder(src source.Source, terms match.Terms, log logrus.FieldLogger, opts ...BuilderOption) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := &Builder{
		src:   src,
		terms: terms,
		loc:   time.UTC,
		now:   time.Now,
		log:   log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Terms returns the search terms the builder matches against.
func (b *Builder) Terms() match.Terms {
	return b.terms
}

// Build fetches and selects today's candidates. A failed search is logged
// and yields an empty list; a failed shortening fails the whole build.
func (b *Builder) Build(ctx context.Context) (List, error) {
	now := b.now()
	day := source.StartOfDay(now, b.loc)
	list := List{
		Source:  b.src.Name(),
		Fields:  b.src.Fields(),
		Day:     day,
		BuiltAt: now,
	}
	log := b.log.WithField("source", list.Source)

	items, err := b.src.Fetch(ctx, b.terms, day)
	if err != nil {
		log.WithError(err).Warn("candidate search failed, continuing with an empty list")
		return list, nil
	}

	fetched := len(items)
	items = source.Take(source.FreshSince(items, day), source.MaxItems)

	if b.shortener != nil && list.Fields.Has(source.FieldURL) && len(items) > 0 {
		shortened, err := b.shortenAll(ctx, items)
		if err != nil {
			log.WithError(err).Error("link shortening failed, nothing will be posted")
			return List{}, err
		}
		items = shortened
		list.Shortened = true
	}

	list.Items = items
	log.WithFields(logrus.Fields{
		"terms":          b.terms.Len(),
		"case_sensitive": b.terms.CaseSensitive(),
		"fetched":        fetched,
		"kept":           len(items),
		"shortened":      list.Shortened,
	}).Info("candidate list built")
	return list, nil
}

// shortenAll returns copies of items with shortened URLs. Either every
// URL is shortened or an error is returned and items are untouched.
func (b *Builder) shortenAll(ctx context.Context, items []source.Item) ([]source.Item, error) {
	out := make([]source.Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.URL == "" {
			continue
		}
		short, err := b.shortener.Shorten(ctx, it.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d (%s): %v", ErrShorten, i, it.URL, err)
		}
		out[i].URL = short
	}
	return out, nil
}
