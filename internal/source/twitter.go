package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/twitter"
)

const (
	twitterSourceName  = "twitter"
	twitterSearchCount = 100
	twitterNoRetweets  = "-filter:retweets"
)

const twitterFields = FieldID | FieldText | FieldUser | FieldFollowers

// Searcher runs a social search. *twitter.Client implements it.
type Searcher interface {
	Search(ctx context.Context, p twitter.SearchParams) ([]twitter.Tweet, error)
}

// TwitterSource finds today's original posts that mention a term and
// ranks them by author reach.
type TwitterSource struct {
	searcher Searcher
	lang     string
}

// NewTwitter creates a Twitter source restricted to lang.
func NewTwitter(searcher Searcher, lang string) (*TwitterSource, error) {
	if searcher == nil {
		return nil, errors.New("twitter: searcher is required")
	}
	return &TwitterSource{searcher: searcher, lang: lang}, nil
}

func (ts *TwitterSource) Name() string {
	return twitterSourceName
}

func (ts *TwitterSource) Fields() Fields {
	return twitterFields
}

func (ts *TwitterSource) Fetch(ctx context.Context, terms match.Terms, day time.Time) ([]Item, error) {
	if terms.Len() == 0 {
		return nil, nil
	}

	tweets, err := ts.searcher.Search(ctx, twitter.SearchParams{
		Query: twitterQuery(terms),
		Lang:  ts.lang,
		Count: twitterSearchCount,
	})
	if err != nil {
		return nil, fmt.Errorf("twitter: %w", err)
	}

	return itemsFromTweets(tweets, day), nil
}

func twitterQuery(terms match.Terms) string {
	return "(" + terms.Query() + ") " + twitterNoRetweets
}

// itemsFromTweets keeps original posts from day, ranked by follower count.
func itemsFromTweets(tweets []twitter.Tweet, day time.Time) []Item {
	var items []Item
	for _, tw := range tweets {
		if tw.IsReply() || tw.Retweeted {
			continue
		}
		items = append(items, Item{
			Source:      twitterSourceName,
			ID:          tw.ID,
			Text:        tw.Text,
			User:        tw.User.ScreenName,
			Followers:   tw.User.FollowersCount,
			PublishedAt: tw.CreatedAt,
		})
	}

	items = FreshOn(items, day)
	SortByFollowers(items)
	return Take(items, MaxItems)
}
