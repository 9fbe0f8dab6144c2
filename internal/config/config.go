package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "config.yaml"
	DefaultSearchOn    = SearchOnNews
	DefaultLanguage    = "en"
	DefaultTimezone    = "UTC"
	DefaultHTTPTimeout = 30 * time.Second

	DefaultConsumerKeyEnv    = "TWITTER_CONSUMER_KEY"
	DefaultConsumerSecretEnv = "TWITTER_CONSUMER_SECRET"
	DefaultAccessKeyEnv      = "TWITTER_ACCESS_KEY"
	DefaultAccessSecretEnv   = "TWITTER_ACCESS_SECRET"
	DefaultBitlyTokenEnv     = "BITLY_ACCESS_TOKEN"
	DefaultNewsAPIKeyEnv     = "NEWS_API_KEY"
)

// ErrInvalid marks a config file that was read and parsed but failed
// validation.
var ErrInvalid = errors.New("invalid configuration")

// Candidate sources selectable with bot.search_on.
const (
	SearchOnNews       = "news"
	SearchOnTwitter    = "twitter"
	SearchOnGoogleNews = "gnews"
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	Bot         BotConfig         `yaml:"bot"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Tweet       Tweet             `yaml:"tweet"`
	HTTP        HTTPConfig        `yaml:"http"`
}

type BotConfig struct {
	SearchTerms      []string `yaml:"search_terms"`
	SearchOn         string   `yaml:"search_on"`
	CaseSensitive    bool     `yaml:"case_sensitive"`
	MatchDescription bool     `yaml:"match_description"`
	Language         string   `yaml:"language"`
	Timezone         string   `yaml:"timezone"`
}

// CredentialsConfig names the environment variables holding each token.
// Values are resolved at load time and never written back.
type CredentialsConfig struct {
	ConsumerKeyEnv    string `yaml:"consumer_key_env"`
	ConsumerSecretEnv string `yaml:"consumer_secret_env"`
	AccessKeyEnv      string `yaml:"access_key_env"`
	AccessSecretEnv   string `yaml:"access_secret_env"`
	BitlyTokenEnv     string `yaml:"bitly_access_token_env"`
	NewsAPIKeyEnv     string `yaml:"news_api_key_env"`

	// Resolved from env vars at load time.
	ConsumerKey    string `yaml:"-"`
	ConsumerSecret string `yaml:"-"`
	AccessKey      string `yaml:"-"`
	AccessSecret   string `yaml:"-"`
	BitlyToken     string `yaml:"-"`
	NewsAPIKey     string `yaml:"-"`
}

// HasTwitter reports whether all four OAuth tokens are present.
func (c CredentialsConfig) HasTwitter() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessKey != "" && c.AccessSecret != ""
}

type HTTPConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// Location returns the timezone used to decide what "today" means.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Bot.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads config.yaml from dir, applies defaults, resolves env vars, and validates.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config dir is required")
	}

	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	LoadEnv(dir)
	resolveEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.SearchOn == "" {
		cfg.Bot.SearchOn = DefaultSearchOn
	}
	if cfg.Bot.Language == "" {
		cfg.Bot.Language = DefaultLanguage
	}
	if cfg.Bot.Timezone == "" {
		cfg.Bot.Timezone = DefaultTimezone
	}
	if cfg.Tweet.StatusType == "" {
		cfg.Tweet.StatusType = DefaultStatusType
	}
	if cfg.HTTP.Timeout.Duration == 0 {
		cfg.HTTP.Timeout.Duration = DefaultHTTPTimeout
	}

	c := &cfg.Credentials
	if c.ConsumerKeyEnv == "" {
		c.ConsumerKeyEnv = DefaultConsumerKeyEnv
	}
	if c.ConsumerSecretEnv == "" {
		c.ConsumerSecretEnv = DefaultConsumerSecretEnv
	}
	if c.AccessKeyEnv == "" {
		c.AccessKeyEnv = DefaultAccessKeyEnv
	}
	if c.AccessSecretEnv == "" {
		c.AccessSecretEnv = DefaultAccessSecretEnv
	}
	if c.BitlyTokenEnv == "" {
		c.BitlyTokenEnv = DefaultBitlyTokenEnv
	}
	if c.NewsAPIKeyEnv == "" {
		c.NewsAPIKeyEnv = DefaultNewsAPIKeyEnv
	}
}

func resolveEnv(cfg *Config) {
	c := &cfg.Credentials
	c.ConsumerKey = os.Getenv(c.ConsumerKeyEnv)
	c.ConsumerSecret = os.Getenv(c.ConsumerSecretEnv)
	c.AccessKey = os.Getenv(c.AccessKeyEnv)
	c.AccessSecret = os.Getenv(c.AccessSecretEnv)
	c.BitlyToken = strings.TrimSpace(os.Getenv(c.BitlyTokenEnv))
	c.NewsAPIKey = os.Getenv(c.NewsAPIKeyEnv)
}

func validate(cfg *Config) error {
	terms := 0
	for _, t := range cfg.Bot.SearchTerms {
		if strings.TrimSpace(t) != "" {
			terms++
		}
	}
	if terms == 0 {
		return errors.New("bot.search_terms: at least one search term is required")
	}

	switch cfg.Bot.SearchOn {
	case SearchOnNews:
		if cfg.Credentials.NewsAPIKey == "" {
			return fmt.Errorf("bot.search_on: news requires a news API key in $%s", cfg.Credentials.NewsAPIKeyEnv)
		}
	case SearchOnTwitter, SearchOnGoogleNews:
		// valid
	default:
		return fmt.Errorf("bot.search_on: unknown source %q (want news, twitter, or gnews)", cfg.Bot.SearchOn)
	}

	if _, err := time.LoadLocation(cfg.Bot.Timezone); err != nil {
		return fmt.Errorf("bot.timezone: %w", err)
	}

	if err := validateTweet(&cfg.Tweet); err != nil {
		return err
	}

	if cfg.HTTP.Timeout.Duration < 0 {
		return fmt.Errorf("http.timeout: must be positive, got %s", cfg.HTTP.Timeout.Duration)
	}

	return nil
}
