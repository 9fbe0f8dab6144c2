package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/match"
	"github.com/ppiankov/postpan/internal/privacy"
	"github.com/ppiankov/postpan/internal/shorten"
	"github.com/ppiankov/postpan/internal/source"
	"github.com/ppiankov/postpan/internal/twitter"
)

// Replaced in tests.
var (
	newSource    = buildSource
	newPublisher = buildPublisher
	newShortener = buildShortener
)

func twitterCredentials(cfg *config.Config) twitter.Credentials {
	return twitter.Credentials{
		ConsumerKey:    cfg.Credentials.ConsumerKey,
		ConsumerSecret: cfg.Credentials.ConsumerSecret,
		AccessKey:      cfg.Credentials.AccessKey,
		AccessSecret:   cfg.Credentials.AccessSecret,
	}
}

func buildSource(cfg *config.Config) (source.Source, error) {
	timeout := cfg.HTTP.Timeout.Duration

	switch cfg.Bot.SearchOn {
	case config.SearchOnNews:
		return source.NewNews(cfg.Credentials.NewsAPIKey, cfg.Bot.MatchDescription, timeout)
	case config.SearchOnGoogleNews:
		return source.NewGoogleNews(cfg.Bot.Language, timeout)
	case config.SearchOnTwitter:
		client, err := twitter.NewClient(twitterCredentials(cfg), timeout)
		if err != nil {
			return nil, err
		}
		return source.NewTwitter(client, cfg.Bot.Language)
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Bot.SearchOn)
	}
}

func buildPublisher(cfg *config.Config) (bot.Publisher, error) {
	return twitter.NewClient(twitterCredentials(cfg), cfg.HTTP.Timeout.Duration)
}

// buildShortener returns nil when no Bitly token is configured.
func buildShortener(cfg *config.Config) bot.Shortener {
	if b := shorten.New(cfg.Credentials.BitlyToken, cfg.HTTP.Timeout.Duration); b != nil {
		return b
	}
	return nil
}

func newBuilder(cfg *config.Config, src source.Source, log logrus.FieldLogger, withShortener bool) *bot.Builder {
	opts := []bot.BuilderOption{bot.WithLocation(cfg.Location())}
	if withShortener {
		if sh := newShortener(cfg); sh != nil {
			opts = append(opts, bot.WithShortener(sh))
		}
	}
	terms := match.NewTerms(cfg.Bot.SearchTerms, cfg.Bot.CaseSensitive)
	return bot.NewBuilder(src, terms, log, opts...)
}

// setup builds the logger shared by every stage and loads the config. The
// logger is returned even when loading fails.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	log, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, log, fmt.Errorf("load config: %w", err)
	}
	c := cfg.Credentials
	log.AddHook(privacy.NewHook(c.ConsumerKey, c.ConsumerSecret, c.AccessKey, c.AccessSecret, c.BitlyToken, c.NewsAPIKey))
	return cfg, log, nil
}
