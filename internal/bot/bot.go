package bot

import (
	"context"

	"github.com/ppiankov/postpan/internal/config"
)

// Bot ties one list builder to one dispatcher.
type Bot struct {
	builder    *Builder
	dispatcher *Dispatcher
}

// New creates a bot from its two stages.
func New(builder *Builder, dispatcher *Dispatcher) *Bot {
	return &Bot{builder: builder, dispatcher: dispatcher}
}

// CreateList builds a fresh candidate list.
func (b *Bot) CreateList(ctx context.Context) (List, error) {
	return b.builder.Build(ctx)
}

// SendTweets publishes list according to tweet.
func (b *Bot) SendTweets(ctx context.Context, tweet config.Tweet, list List) (Report, error) {
	return b.dispatcher.Send(ctx, tweet, list)
}

// Run builds a list and publishes it in one pass. When the build fails
// nothing is sent.
func (b *Bot) Run(ctx context.Context, tweet config.Tweet) (List, Report, error) {
	list, err := b.CreateList(ctx)
	if err != nil {
		return List{}, Report{StatusType: tweet.StatusType}, err
	}
	report, err := b.SendTweets(ctx, tweet, list)
	return list, report, err
}
