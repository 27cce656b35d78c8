// Package cli implements the gi command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/output"
)

// Build metadata, overridden at release time via -ldflags.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

var (
	jsonOutput bool
	verbose    bool
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		printError(err)
		os.Exit(1)
	}
}

// NewRootCmd builds the gi command tree. The root command itself is the
// generator: `gi python node` fetches, merges, and writes .gitignore.
func NewRootCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "gi [templates...]",
		Short: "Generate .gitignore files from github/gitignore templates",
		Long: `gi fetches .gitignore templates from the github/gitignore repository,
merges them into one deduplicated file, and writes the result.

Template names are case-insensitive and common aliases work: py, node,
vscode, macos. Run without arguments to auto-detect templates from your
operating system and installed toolchains.

Examples:
  gi python node          # Python + Node into ./.gitignore
  gi py,node -o backend/.gitignore
  gi rust --append        # add Rust to an existing file
  gi                      # auto-detect OS and toolchains
  gi --dry-run go         # print instead of writing
  gi list                 # browse available templates`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args, flags)
		},
	}

	addOutputFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.noAutoDetect, "no-auto-detect", false, "Skip OS/toolchain auto-detection when no templates are given")

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newPickCmd(),
		newUpdateCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addOutputFlags registers the flags shared by the root generator and
// gi pick, which feed the same combine flow.
func addOutputFlags(cmd *cobra.Command, flags *generateFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".gitignore", "Output file path")
	cmd.Flags().BoolVarP(&flags.appendMode, "append", "a", false, "Merge into the existing file instead of replacing it")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file without prompting")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Bypass the template cache")
	cmd.Flags().BoolVar(&flags.updateIndex, "update-index", false, "Refresh the template index first")
	cmd.Flags().StringVar(&flags.fromURL, "from", "", "Fetch templates from an alternate raw URL base")
	cmd.Flags().BoolVar(&flags.noHeader, "no-header", false, "Omit the generated attribution header")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the result to stdout instead of writing")
}

func initLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func printError(err error) {
	color := output.ColorEnabled(os.Stderr)

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		if jsonOutput {
			_ = output.PrintJSON(cliErr.Response())
			return
		}
		fmt.Fprintln(os.Stderr, cliErr.Format(color))
		return
	}

	if jsonOutput {
		_ = output.PrintJSON(output.NewError(err.Error()))
		return
	}
	if color {
		fmt.Fprintln(os.Stderr, output.ErrorStyle.Render("✗ "+err.Error()))
	} else {
		fmt.Fprintln(os.Stderr, "✗ "+err.Error())
	}
}
