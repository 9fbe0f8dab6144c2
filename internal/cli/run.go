package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/bot"
	"github.com/ppiankov/postpan/internal/config"
)

var (
	runDryRun bool
	runStrict bool
	runEvery  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build today's candidate list and publish it",
	RunE:  runAction,
}

// runOnceAction is replaced in tests.
var runOnceAction = runBotAction

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print posts instead of publishing them")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "exit non-zero when any post, search, or shortening fails")
	runCmd.Flags().StringVar(&runEvery, "every", "", "repeat the run on an interval (e.g. 6h) until interrupted")
}

func runAction(cmd *cobra.Command, args []string) error {
	every, err := parseRunEvery(runEvery)
	if err != nil {
		return err
	}
	if every == 0 {
		return runOnceAction(cmd, args)
	}
	return runWatch(commandContext(cmd), every, func() error {
		return runOnceAction(cmd, args)
	})
}

func parseRunEvery(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse --every: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("--every must be positive, got %s", d)
	}
	return d, nil
}

// runWatch calls runOnce immediately and then on every tick until ctx is
// done. Config is reloaded and a new list is built on each call.
func runWatch(ctx context.Context, every time.Duration, runOnce func() error) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := runOnce(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func runBotAction(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		if log != nil && !runStrict && errors.Is(err, config.ErrInvalid) {
			log.WithError(err).Error("configuration rejected, nothing was posted")
			return nil
		}
		return err
	}

	src, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	var pub bot.Publisher
	if runDryRun {
		pub = bot.NewDryRun(cmd.OutOrStdout())
	} else {
		pub, err = newPublisher(cfg)
		if err != nil {
			return fmt.Errorf("create publisher: %w", err)
		}
	}

	b := bot.New(newBuilder(cfg, src, log, true), bot.NewDispatcher(pub, log))
	list, report, err := b.Run(commandContext(cmd), cfg.Tweet)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d candidates, %d posted, %d failed, %d skipped (%s)\n",
		src.Name(), list.Len(), report.Posted, report.Failed, report.Skipped, cfg.Tweet.StatusType)

	if err == nil {
		return nil
	}
	if !runStrict && recoverable(err) {
		log.WithError(err).Warn("run finished with errors")
		return nil
	}
	return err
}

// recoverable reports whether err leaves the process healthy enough to
// try again on the next run.
func recoverable(err error) bool {
	return errors.Is(err, bot.ErrUpstream) ||
		errors.Is(err, bot.ErrSchemaMismatch) ||
		errors.Is(err, bot.ErrShorten) ||
		errors.Is(err, bot.ErrInvalidConfig)
}
