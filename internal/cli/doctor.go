package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/source"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and credentials",
	RunE:  doctorAction,
}

func doctorAction(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	// Config dir
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		printCheck(out, false, "config directory %s", configDir)
		ok = false
	} else {
		printCheck(out, true, "config directory %s", configDir)
	}

	// Config file
	cfg, err := config.Load(configDir)
	if err != nil {
		printCheck(out, false, "config.yaml: %v", err)
		return fmt.Errorf("some checks failed")
	}
	printCheck(out, true, "config.yaml (%d search terms, search_on %s, status_type %s)",
		len(cfg.Bot.SearchTerms), cfg.Bot.SearchOn, cfg.Tweet.StatusType)

	// Status type against the source schema
	if cfg.Tweet.StatusType != config.StatusSingleMsg {
		have, _ := source.FieldsOf(cfg.Bot.SearchOn)
		need := bot.Required(cfg.Tweet.StatusType)
		if missing := have.Missing(need); missing != 0 {
			printCheck(out, false, "status_type %s needs %s, which %s lists do not carry; use search_on %s",
				cfg.Tweet.StatusType, missing, cfg.Bot.SearchOn, strings.Join(source.ForFields(need), " or "))
			ok = false
		} else {
			printCheck(out, true, "status_type %s works with %s lists", cfg.Tweet.StatusType, cfg.Bot.SearchOn)
		}
	}

	// Status text
	if strings.TrimSpace(cfg.Tweet.Status) != "" && !cfg.Tweet.StatusType.UsesStatusText() {
		printInfo(out, "tweet.status is ignored for %s", cfg.Tweet.StatusType)
	}

	// Twitter credentials, needed to publish and to search twitter
	if cfg.Credentials.HasTwitter() {
		printCheck(out, true, "twitter credentials")
	} else {
		printCheck(out, false, "twitter credentials: set $%s, $%s, $%s, $%s",
			cfg.Credentials.ConsumerKeyEnv, cfg.Credentials.ConsumerSecretEnv,
			cfg.Credentials.AccessKeyEnv, cfg.Credentials.AccessSecretEnv)
		ok = false
	}

	// Bitly (optional)
	if cfg.Credentials.BitlyToken == "" {
		printInfo(out, "no bitly token in $%s, links are posted unshortened", cfg.Credentials.BitlyTokenEnv)
	} else {
		printCheck(out, true, "bitly token")
	}

	// Image
	if cfg.Tweet.Image != "" {
		if cfg.Tweet.StatusType == config.StatusRetweet {
			printInfo(out, "tweet.image is ignored for rt")
		} else if info, err := os.Stat(cfg.Tweet.Image); err != nil {
			printCheck(out, false, "image: %v", err)
			ok = false
		} else if info.IsDir() {
			printCheck(out, false, "image: %s is a directory", cfg.Tweet.Image)
			ok = false
		} else {
			printCheck(out, true, "image %s", cfg.Tweet.Image)
		}
	}

	if !ok {
		return fmt.Errorf("some checks failed")
	}
	fmt.Fprintln(out, "\nAll checks passed.")
	return nil
}

func printCheck(w io.Writer, pass bool, format string, args ...any) {
	mark := "FAIL"
	if pass {
		mark = " OK "
	}
	fmt.Fprintf(w, "[%s] %s\n", mark, fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "[INFO] %s\n", fmt.Sprintf(format, args...))
}
