package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sempervent/gi/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	if jsonOutput {
		return output.PrintJSON(output.VersionResponse{
			Version:   Version,
			Commit:    Commit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		})
	}

	fmt.Printf("gi %s\n", Version)
	if Commit != "" {
		fmt.Printf("  commit: %s\n", output.DimStyle.Render(Commit))
	}
	if BuildDate != "" {
		fmt.Printf("  built:  %s\n", output.DimStyle.Render(BuildDate))
	}
	fmt.Printf("  go:     %s (%s/%s)\n", output.DimStyle.Render(runtime.Version()), runtime.GOOS, runtime.GOARCH)
	return nil
}
