package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/output"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh the template index",
		Long:  "Fetch a fresh template index from the source repository, replacing the cached copy.",
		Args:  cobra.NoArgs,
		RunE:  runUpdate,
	}
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	fetcher := newFetcher(cfg, "")
	idx, err := fetcher.Index(cmd.Context(), true)
	if err != nil {
		return output.IndexUnavailableError(err.Error())
	}

	if jsonOutput {
		return output.PrintJSON(output.UpdateResponse{
			TimestampedResponse: output.NewTimestamped(),
			Source:              idx.Source,
			TemplateCount:       len(idx.Templates),
			FetchedAt:           idx.FetchedAt.UTC().Format(time.RFC3339),
		})
	}

	fmt.Println(output.SuccessStyle.Render("✓ Template index updated"))
	fmt.Printf("  Source: %s\n", output.DimStyle.Render(idx.Source))
	fmt.Printf("  Templates: %s\n", output.DimStyle.Render(strconv.Itoa(len(idx.Templates))))
	return nil
}
