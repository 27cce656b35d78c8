package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/cache"
	"github.com/sempervent/gi/internal/config"
	"github.com/sempervent/gi/internal/detect"
	"github.com/sempervent/gi/internal/fetch"
	"github.com/sempervent/gi/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose cache, config, and network health",
		Long: `Check everything gi depends on: the cache directory and index, the
config file, and connectivity to the template source. Useful when fetches
fail or generated output looks stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, offline)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the network connectivity probe")
	return cmd
}

func runDoctor(cmd *cobra.Command, offline bool) error {
	var checks []output.DoctorCheck

	cfg, err := config.LoadOrDefault()
	if err != nil {
		checks = append(checks, output.DoctorCheck{Name: "config", OK: false, Detail: err.Error()})
		cfg = config.Default()
	} else if _, statErr := os.Stat(config.DefaultPath()); statErr == nil {
		checks = append(checks, output.DoctorCheck{Name: "config", OK: true, Detail: config.DefaultPath()})
	} else {
		checks = append(checks, output.DoctorCheck{Name: "config", OK: true, Detail: "using defaults (no config file)"})
	}

	checks = append(checks, cacheChecks(cfg)...)

	if !offline {
		checks = append(checks, networkCheck(cmd, cfg))
	}

	host := detect.Host()
	healthy := true
	for _, c := range checks {
		if !c.OK {
			healthy = false
		}
	}

	if jsonOutput {
		return output.PrintJSON(output.DoctorResponse{
			TimestampedResponse: output.NewTimestamped(),
			Healthy:             healthy,
			Checks:              checks,
			Platform:            host.Platform,
			Kernel:              host.Kernel,
			Arch:                host.Arch,
		})
	}

	fmt.Println(output.TitleStyle.Render("gi doctor"))
	fmt.Printf("  Platform: %s\n", output.DimStyle.Render(platformLine(host)))
	fmt.Println()
	for _, c := range checks {
		mark := output.SuccessStyle.Render("✓")
		if !c.OK {
			mark = output.ErrorStyle.Render("✗")
		}
		line := fmt.Sprintf("  %s %s", mark, c.Name)
		if c.Detail != "" {
			line += " " + output.DimStyle.Render("("+c.Detail+")")
		}
		fmt.Println(line)
	}
	fmt.Println()
	if healthy {
		fmt.Println(output.SuccessStyle.Render("All checks passed"))
	} else {
		fmt.Println(output.ErrorStyle.Render("Some checks failed"))
	}
	return nil
}

func cacheChecks(cfg *config.Config) []output.DoctorCheck {
	var checks []output.DoctorCheck

	dir, err := cache.Dir()
	if err != nil {
		return append(checks, output.DoctorCheck{Name: "cache directory", OK: false, Detail: err.Error()})
	}
	checks = append(checks, output.DoctorCheck{Name: "cache directory", OK: true, Detail: dir})

	if idx, err := fetch.CachedIndex(); err != nil {
		checks = append(checks, output.DoctorCheck{Name: "template index", OK: false, Detail: "not cached; run 'gi update'"})
	} else {
		age := time.Since(idx.FetchedAt).Round(time.Minute)
		detail := fmt.Sprintf("%d templates, fetched %s ago", len(idx.Templates), age)
		if path, err := cache.IndexPath(); err == nil && cache.IsStale(path, cfg.MaxAge()) {
			detail += ", stale"
		}
		checks = append(checks, output.DoctorCheck{Name: "template index", OK: true, Detail: detail})
	}

	if names, err := cache.List(); err == nil {
		checks = append(checks, output.DoctorCheck{
			Name:   "cached templates",
			OK:     true,
			Detail: fmt.Sprintf("%d files", len(names)),
		})
	}
	return checks
}

// networkCheck fetches a known-good template bypassing the cache, proving
// both connectivity and that the source URL still serves templates.
func networkCheck(cmd *cobra.Command, cfg *config.Config) output.DoctorCheck {
	fetcher := newFetcher(cfg, "")
	start := time.Now()
	if _, err := fetcher.Template(cmd.Context(), "Python", true); err != nil {
		return output.DoctorCheck{Name: "network", OK: false, Detail: err.Error()}
	}
	return output.DoctorCheck{
		Name:   "network",
		OK:     true,
		Detail: fmt.Sprintf("%s in %s", fetcher.BaseURL(), time.Since(start).Round(time.Millisecond)),
	}
}

func platformLine(h detect.HostInfo) string {
	line := h.Platform
	if h.Version != "" {
		line += " " + h.Version
	}
	line += " (" + h.Arch + ")"
	return line
}
