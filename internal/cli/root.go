// Package cli provides the command-line interface for postpan.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// DefaultConfigDir holds config.yaml and an optional .env.
const DefaultConfigDir = ".postpan"

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "postpan",
	Short:         "Post search results to Twitter on a schedule",
	Long:          "postpan searches news, Google News, or Twitter for configured terms, picks today's top candidates, and publishes them as links, mentions, replies, retweets, or a single status.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "postpan %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", DefaultConfigDir, "config directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	rootCmd.AddCommand(initCmd, listCmd, runCmd, doctorCmd, versionCmd)
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
