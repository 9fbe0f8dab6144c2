package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config directory with example files",
	RunE:  initAction,
}

func initAction(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := cmd.OutOrStdout()
	created := 0

	files := []struct {
		name string
		data string
		perm os.FileMode
	}{
		{config.DefaultConfigFile, exampleConfig, 0o644},
		{config.EnvFile + ".example", exampleEnv, 0o600},
	}
	for _, f := range files {
		wrote, err := writeIfNotExists(out, filepath.Join(configDir, f.name), []byte(f.data), f.perm)
		if err != nil {
			return err
		}
		if wrote {
			created++
		}
	}

	if created == 0 {
		fmt.Fprintf(out, "Config directory %s already initialized.\n", configDir)
	} else {
		fmt.Fprintf(out, "Initialized %s with %d config files.\n", configDir, created)
	}
	return nil
}

// writeIfNotExists writes data to path if the file does not exist.
// Returns true if the file was created.
func writeIfNotExists(out io.Writer, path string, data []byte, perm os.FileMode) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "  exists: %s\n", path)
		return false, nil
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(out, "  created: %s\n", path)
	return true, nil
}

const exampleConfig = `# postpan configuration

bot:
  search_terms:
    - "golang"
    - "go 1.25"
  # news (NewsAPI), gnews (Google News RSS), or twitter
  search_on: news
  case_sensitive: false
  # also match news article descriptions, not only titles
  match_description: false
  language: en
  # defines "today" for freshness
  timezone: UTC

tweet:
  # link, single_msg, reply, at, or rt
  status_type: link
  # text for single_msg, reply, and at
  status: ""
  # optional image attached to every post except rt
  image: ""

credentials:
  consumer_key_env: TWITTER_CONSUMER_KEY
  consumer_secret_env: TWITTER_CONSUMER_SECRET
  access_key_env: TWITTER_ACCESS_KEY
  access_secret_env: TWITTER_ACCESS_SECRET
  # leave the variable unset to post original links
  bitly_access_token_env: BITLY_ACCESS_TOKEN
  news_api_key_env: NEWS_API_KEY

http:
  timeout: 30s
`

const exampleEnv = `# Copy to .env and fill in. Existing environment variables take precedence.
TWITTER_CONSUMER_KEY=
TWITTER_CONSUMER_SECRET=
TWITTER_ACCESS_KEY=
TWITTER_ACCESS_SECRET=
BITLY_ACCESS_TOKEN=
NEWS_API_KEY=
`
