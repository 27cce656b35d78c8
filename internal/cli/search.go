package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/output"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search templates by name",
		Long:  "Search the template index for names containing the query, case-insensitively.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0])
		},
	}
	return cmd
}

func runSearch(cmd *cobra.Command, query string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	fetcher := newFetcher(cfg, "")
	matches, err := fetcher.SearchTemplates(cmd.Context(), query)
	if err != nil {
		return output.IndexUnavailableError(err.Error())
	}

	idx, err := fetcher.Index(cmd.Context(), false)
	if err != nil {
		return output.IndexUnavailableError(err.Error())
	}

	cached := cachedSet()
	items := make([]output.TemplateItem, 0, len(matches))
	for _, name := range matches {
		item := output.TemplateItem{Name: name, Category: "language", Cached: cached[name]}
		if strings.HasPrefix(name, "Global/") {
			item.Category = "global"
		}
		if info, ok := idx.Lookup(name); ok {
			item.Size = info.Size
		}
		items = append(items, item)
	}

	if jsonOutput {
		return output.PrintJSON(output.SearchResponse{
			TimestampedResponse: output.NewTimestamped(),
			Query:               query,
			Templates:           items,
			Count:               len(items),
		})
	}

	if len(items) == 0 {
		fmt.Println(output.WarnStyle.Render(fmt.Sprintf("No templates match %q", query)))
		fmt.Println(output.DimStyle.Render("  Try a shorter query or run 'gi list'"))
		return nil
	}

	fmt.Println(output.TitleStyle.Render(fmt.Sprintf("Matches for %q", query)))
	fmt.Println()
	renderTemplateTable(items)
	fmt.Println()
	fmt.Println(output.DimStyle.Render(fmt.Sprintf("%d match(es)", len(items))))
	return nil
}
