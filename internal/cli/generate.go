package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sempervent/gi/internal/combine"
	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/detect"
	"github.com/sempervent/gi/internal/fetch"
	"github.com/sempervent/gi/internal/names"
	"github.com/sempervent/gi/internal/output"
)

type generateFlags struct {
	output       string
	appendMode   bool
	force        bool
	noCache      bool
	updateIndex  bool
	fromURL      string
	noAutoDetect bool
	noHeader     bool
	dryRun       bool
}

func runGenerate(ctx context.Context, args []string, flags generateFlags) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return output.ConfigLoadError(err.Error())
	}

	requested := requestedTemplates(args, cfg, flags.noAutoDetect, nil)
	resolved := newResolver().Resolve(requested)
	if len(resolved) == 0 {
		return output.NoTemplatesError()
	}

	return generateFromNames(ctx, resolved, cfg, flags)
}

// generateFromNames is the combine flow shared by the root command and
// gi pick: fetch every template, merge, and write the output file.
// Names must already be canonical.
func generateFromNames(ctx context.Context, resolved []string, cfg *config.Config, flags generateFlags) error {
	fetcher := newFetcher(cfg, flags.fromURL)
	quiet := jsonOutput || flags.dryRun

	if flags.updateIndex {
		if _, err := fetcher.Index(ctx, true); err != nil {
			slog.Warn("index refresh failed", "error", err)
			if !quiet {
				fmt.Println(output.WarnStyle.Render("⚠ index refresh failed, continuing with cached data"))
			}
		}
	}

	if !quiet {
		fmt.Println(output.TitleStyle.Render(fmt.Sprintf("Fetching %d template(s)", len(resolved))))
	}

	results := fetcher.FetchAll(ctx, resolved, cfg.Fetch.Concurrency, flags.noCache)

	set := combine.NewTemplateSet()
	var failed []string
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Name)
			slog.Debug("template fetch failed", "template", res.Name, "error", res.Err)
			if !quiet {
				reason := "fetch failed"
				if errors.Is(res.Err, fetch.ErrNotFound) {
					reason = "not found"
				}
				fmt.Printf("  %s %s %s\n", output.ErrorStyle.Render("✗"), res.Name, output.DimStyle.Render("("+reason+")"))
			}
			continue
		}
		set.Add(res.Name, res.Content)
		if !quiet {
			fmt.Printf("  %s %s\n", output.SuccessStyle.Render("✓"), res.Name)
		}
	}

	if set.Len() == 0 {
		return output.AllFetchesFailedError(len(resolved))
	}

	strategy := combine.StrategyReplace
	existing := ""
	if flags.appendMode {
		strategy = combine.StrategyAppend
		var err error
		existing, err = ReadExisting(flags.output)
		if err != nil {
			return err
		}
	}

	content := combine.Combine(set, existing, combine.Options{
		Strategy:  strategy,
		Header:    !flags.noHeader && cfg.Output.Header,
		SourceURL: fetcher.BaseURL(),
	})

	resp := output.WriteResponse{
		TimestampedResponse: output.NewTimestamped(),
		Output:              flags.output,
		Templates:           set.Names(),
		Failed:              failed,
		Sections:            set.Len(),
		Lines:               strings.Count(content, "\n"),
		Appended:            flags.appendMode,
		DryRun:              flags.dryRun,
	}

	if flags.dryRun {
		if jsonOutput {
			resp.Content = content
			return output.PrintJSON(resp)
		}
		fmt.Print(content)
		return nil
	}

	written, err := SafeWrite(flags.output, content, flags.force || flags.appendMode)
	if err != nil {
		return err
	}

	if !written {
		if jsonOutput || !isInteractive() {
			return output.OutputExistsError(flags.output)
		}
		ok, err := confirmOverwrite(flags.output, content)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(output.DimStyle.Render("Kept existing " + flags.output))
			return nil
		}
		if _, err := SafeWrite(flags.output, content, true); err != nil {
			return err
		}
	}

	if jsonOutput {
		return output.PrintJSON(resp)
	}

	verb := "Wrote"
	if flags.appendMode {
		verb = "Updated"
	}
	fmt.Println()
	fmt.Println(output.SuccessStyle.Render(fmt.Sprintf("✓ %s %s", verb, flags.output)))
	fmt.Printf("  Templates: %s\n", output.DimStyle.Render(strings.Join(set.Names(), ", ")))
	fmt.Printf("  Lines: %s\n", output.DimStyle.Render(strconv.Itoa(resp.Lines)))
	if len(failed) > 0 {
		fmt.Printf("  %s\n", output.WarnStyle.Render("Skipped: "+strings.Join(failed, ", ")))
	}
	return nil
}

// requestedTemplates merges CLI args, auto-detection, and configured
// defaults. Auto-detection only fills in when nothing was requested
// explicitly; configured default templates join every run.
func requestedTemplates(args []string, cfg *config.Config, noAutoDetect bool, lookPath detect.LookPathFunc) []string {
	requested := names.Parse(strings.Join(args, " "))
	if len(requested) == 0 && cfg.AutoDetect && !noAutoDetect {
		requested = detect.AutoTemplates(lookPath)
	}
	return append(requested, cfg.DefaultTemplates...)
}

// newResolver loads user alias overrides when present. A broken overrides
// file degrades to the builtin aliases with a warning rather than
// blocking generation.
func newResolver() *names.Resolver {
	overrides, err := names.LoadOverrides(config.AliasesPath())
	if err != nil {
		slog.Warn("ignoring alias overrides", "path", config.AliasesPath(), "error", err)
		return names.NewResolver(nil)
	}
	return names.NewResolver(overrides)
}

func newFetcher(cfg *config.Config, fromURL string) *fetch.Fetcher {
	base := cfg.SourceURL
	if fromURL != "" {
		base = fromURL
	}
	return fetch.New(fetch.Options{
		BaseURL: base,
		Timeout: cfg.Timeout(),
		MaxAge:  cfg.MaxAge(),
	})
}

// confirmOverwrite previews the pending change as a diff and asks
// before replacing an existing file.
func confirmOverwrite(path, content string) (bool, error) {
	existing, err := ReadExisting(path)
	if err != nil {
		return false, err
	}
	diff := output.ComputeDiff(path, existing, "generated", content)
	if diff.UnifiedDiff != "" {
		fmt.Println()
		fmt.Print(output.FormatDiff(diff.UnifiedDiff, output.ColorEnabled(os.Stdout)))
		fmt.Println()
	}
	return output.ConfirmDestructive(fmt.Sprintf("Overwrite %s?", path)), nil
}
