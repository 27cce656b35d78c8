package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/output"
	"github.com/sempervent/gi/internal/tui"
)

func newPickCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively select templates to combine",
		Long: `Browse the template index in an interactive picker, toggle the ones
you want with space, and confirm with enter. The selection then runs
through the same combine flow as 'gi <templates...>'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, flags)
		},
	}

	addOutputFlags(cmd, &flags)
	return cmd
}

func runPick(cmd *cobra.Command, flags generateFlags) error {
	if !isInteractive() {
		return fmt.Errorf("gi pick needs an interactive terminal; pass template names instead")
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	fetcher := newFetcher(cfg, flags.fromURL)
	idx, err := fetcher.Index(cmd.Context(), flags.updateIndex)
	if err != nil {
		return output.IndexUnavailableError(err.Error())
	}

	names := idx.Names()
	sort.Strings(names)

	selected, err := tui.PickTemplates(names)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println(output.DimStyle.Render("Nothing selected"))
		return nil
	}

	return generateFromNames(cmd.Context(), selected, cfg, flags)
}
