// Package update implements the update command, which replaces the running
// binary with the latest published release.
package update

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/release"
	"github.com/azuyamat/mia/internal/version"
)

// Flag variables for the update command.
var (
	updateCheck  bool
	updateAPIURL string
)

// executablePath locates the binary to replace.
var executablePath = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// UpdateCmd updates mia to the latest release.
var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update mia to the latest release",
	Long: "Update mia to the latest release.\n\n" +
		"Looks up the newest release on GitHub, prints its notes, and when it is " +
		"newer than the running version downloads the build for this platform " +
		"and replaces the current executable. Use --check to only report " +
		"whether an update is available.",
	Example: `  # Check for a newer release
  mia update --check

  # Install the latest release
  mia update`,
	Args:    cobra.NoArgs,
	PreRunE: validateUpdate,
	RunE:    runUpdate,
}

func init() {
	UpdateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only check whether an update is available")
	UpdateCmd.Flags().StringVar(&updateAPIURL, "api-url", release.DefaultAPIURL, "GitHub API base URL")
	_ = UpdateCmd.Flags().MarkHidden("api-url")
}

func validateUpdate(cmd *cobra.Command, args []string) error {
	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := slog.Default().With("component", "release")

	client := release.NewClient(
		release.WithBaseURL(updateAPIURL),
		release.WithLogger(logger),
	)
	updater := release.NewUpdater(client, release.WithUpdaterLogger(logger))

	current := version.Get().Version
	check, err := updater.Check(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to check for updates; %w", err)
	}

	printRelease(cmd, check.Latest)

	if !check.Available {
		fmt.Fprintf(out, "mia %s is up to date.\n", current)
		return nil
	}

	fmt.Fprintf(out, "Update available: %s -> %s\n", current, check.Latest.TagName)
	if updateCheck {
		fmt.Fprintln(out, "Run 'mia update' to install it.")
		return nil
	}

	exePath, err := executablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable; %w", err)
	}

	if err := updater.Apply(ctx, check.Latest, exePath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated to %s.\n", check.Latest.TagName)
	return nil
}

func printRelease(cmd *cobra.Command, rel *release.Release) {
	out := cmd.OutOrStdout()

	name := rel.Name
	if name == "" {
		name = rel.TagName
	}
	fmt.Fprintf(out, "Latest release: %s\n", name)

	notes := strings.TrimSpace(rel.Body)
	if notes == "" {
		notes = "No notes"
	}
	fmt.Fprintln(out, notes)
	fmt.Fprintln(out)
}
