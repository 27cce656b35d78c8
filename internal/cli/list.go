package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/cache"
	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/fetch"
	"github.com/sempervent/gi/internal/output"
)

func newListCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available templates",
		Long:  "List every template the source repository offers, grouped into languages and Global extras.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, update)
		},
	}

	cmd.Flags().BoolVarP(&update, "update", "u", false, "Refresh the template index before listing")
	return cmd
}

func runList(cmd *cobra.Command, update bool) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	fetcher := newFetcher(cfg, "")
	idx, err := fetcher.Index(cmd.Context(), update)
	if err != nil {
		return output.IndexUnavailableError(err.Error())
	}

	cached := cachedSet()
	items := templateItems(idx, cached)

	if jsonOutput {
		return output.PrintJSON(output.ListResponse{
			TimestampedResponse: output.NewTimestamped(),
			Templates:           items,
			Count:               len(items),
		})
	}

	languages, global := splitByCategory(items)

	fmt.Println(output.TitleStyle.Render("Templates"))
	fmt.Println()
	renderTemplateTable(languages)
	if len(global) > 0 {
		fmt.Println()
		fmt.Println(output.TitleStyle.Render("Global"))
		fmt.Println()
		renderTemplateTable(global)
	}
	fmt.Println()
	fmt.Println(output.DimStyle.Render(fmt.Sprintf("%d templates · %s", len(items), idx.Source)))
	return nil
}

// cachedSet returns the names of locally cached templates. Cache trouble
// only loses the "cached" column, never the listing.
func cachedSet() map[string]bool {
	names, err := cache.List()
	if err != nil {
		slog.Debug("listing cache", "error", err)
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func templateItems(idx *fetch.Index, cached map[string]bool) []output.TemplateItem {
	items := make([]output.TemplateItem, 0, len(idx.Templates))
	for _, t := range idx.Templates {
		name := strings.TrimSuffix(t.Path, ".gitignore")
		category := "language"
		if strings.HasPrefix(t.Path, "Global/") {
			category = "global"
		}
		items = append(items, output.TemplateItem{
			Name:     name,
			Category: category,
			Size:     t.Size,
			Cached:   cached[name],
		})
	}
	return items
}

func splitByCategory(items []output.TemplateItem) (languages, global []output.TemplateItem) {
	for _, it := range items {
		if it.Category == "global" {
			global = append(global, it)
		} else {
			languages = append(languages, it)
		}
	}
	return languages, global
}

func renderTemplateTable(items []output.TemplateItem) {
	table := output.NewStyledTableWriter(os.Stdout, "Name", "Size", "Cached")
	for _, it := range items {
		cachedMark := ""
		if it.Cached {
			cachedMark = "✓"
		}
		table.AddRow(it.Name, formatSize(it.Size), cachedMark)
	}
	table.Render()
}
