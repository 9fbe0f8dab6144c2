package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/postpan/internal/digest"
)

var (
	listFormat  string
	listShorten bool
	noColor     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Build today's candidate list and show what would be posted",
	RunE:  listAction,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format: terminal, json, markdown")
	listCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	listCmd.Flags().BoolVar(&listShorten, "shorten", false, "shorten links through Bitly as run would")
}

func listAction(cmd *cobra.Command, _ []string) error {
	formatter, err := digest.New(listFormat, !noColor)
	if err != nil {
		return err
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	src, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	builder := newBuilder(cfg, src, log, listShorten)
	list, err := builder.Build(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("build list: %w", err)
	}

	input := digest.NewInput(list, builder.Terms().List(), cfg.Tweet)
	return formatter.Format(cmd.OutOrStdout(), input)
}
