package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/fetch"
	"github.com/sempervent/gi/internal/output"
)

func newShowCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "show <template>",
		Short: "Print a single template",
		Long:  "Print the raw contents of one template to stdout. Aliases and case-insensitive names are resolved the same way as during generation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")
	return cmd
}

func runShow(cmd *cobra.Command, name string, noCache bool) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	canonical := newResolver().Normalize(name)
	fetcher := newFetcher(cfg, "")
	content, err := fetcher.Template(cmd.Context(), canonical, noCache)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return output.TemplateNotFoundError(canonical)
		}
		return err
	}

	if jsonOutput {
		return output.PrintJSON(output.ShowResponse{
			TimestampedResponse: output.NewTimestamped(),
			Template:            canonical,
			Content:             content,
			Lines:               strings.Count(content, "\n"),
		})
	}

	fmt.Print(content)
	return nil
}
