// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/version"
)

var versionShort bool

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit, build date, Go toolchain and " +
		"platform of the running mia binary. The version is what 'mia update' " +
		"compares against the latest release; use --short to print only it.",
	Example: `  # Display version information
  mia version

  # Print only the version number
  mia version --short`,
	Args:    cobra.NoArgs,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func init() {
	VersionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

func validateVersion(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), info.Version)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return nil
}
