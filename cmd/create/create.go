// Package create implements the create command, which archives a directory.
package create

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/archiver"
	"github.com/azuyamat/mia/internal/cmdutil"
	"github.com/azuyamat/mia/internal/config"
	"github.com/azuyamat/mia/internal/filetype"
	"github.com/azuyamat/mia/internal/report"
)

// Flag variables for the create command.
var (
	createVerbose bool
	createExclude []string
	createInclude []string
	createOutput  string
	createHere    bool
)

// CreateCmd archives a directory into a zip file.
var CreateCmd = &cobra.Command{
	Use:   "create <location> [name]",
	Short: "Archive a directory into a zip file",
	Long: "Archive a directory into a zip file.\n\n" +
		"Walks <location> and writes every file that passes the filter into a zip archive. " +
		"Blacklisted folders are pruned without being read. Names given with --include are " +
		"always kept, even when excluded or blacklisted; names given with --exclude are " +
		"skipped in addition to the blacklist.\n\n" +
		"The archive is named from the configured naming template, with :name replaced by " +
		"[name] (default \"mia_zip\") and :date by today's date. It is written to --output, " +
		"else the configured output_dir, else <location> itself. If the output directory " +
		"cannot be created, the archive is written to <location> instead.\n\n" +
		"The summary counts non-blank lines per language. Recognized languages: " +
		languageList() + ".",
	Example: `  # Archive the current directory
  mia create .

  # Archive a project under a custom name, listing every entry
  mia create ~/code/app app -v

  # Keep a blacklisted folder and skip a file
  mia create . --include bin --exclude notes.txt

  # Write the archive somewhere else
  mia create . -o ~/backups`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: validateCreate,
	RunE:    runCreate,
}

func languageList() string {
	langs := filetype.KnownLanguages()
	names := make([]string, len(langs))
	for i, lang := range langs {
		names[i] = string(lang)
	}
	return strings.Join(names, ", ")
}

func init() {
	CreateCmd.Flags().BoolVarP(&createVerbose, "verbose", "v", false,
		"List include/exclude rules and every archived entry")
	CreateCmd.Flags().StringSliceVarP(&createExclude, "exclude", "e", nil,
		"File or folder name to skip (repeatable)")
	CreateCmd.Flags().StringSliceVarP(&createInclude, "include", "i", nil,
		"File, folder or extension to keep even if excluded or blacklisted (repeatable)")
	CreateCmd.Flags().StringVarP(&createOutput, "output", "o", "",
		"Directory to write the archive to")
	CreateCmd.Flags().BoolVar(&createHere, "here", false,
		"Write the archive into <location>, ignoring any configured output_dir")
	CreateCmd.MarkFlagsMutuallyExclusive("output", "here")
}

func validateCreate(cmd *cobra.Command, args []string) error {
	if args[0] == "" {
		return fmt.Errorf("location must not be empty")
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := cmdutil.ConfigFrom(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config; %w", err)
	}

	root, err := cmdutil.ResolvePath(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve location; %w", err)
	}

	var name string
	if len(args) == 2 {
		name = args[1]
	}

	outputDir, err := cmdutil.ResolvePath(outputDirFor(cfg, createOutput, createHere))
	if err != nil {
		return fmt.Errorf("failed to resolve output directory; %w", err)
	}

	job := archiver.Job{
		Root:      root,
		Name:      name,
		Exclude:   createExclude,
		Include:   createInclude,
		Policy:    cfg.FilterPolicy.Clone(),
		OutputDir: outputDir,
		Verbose:   createVerbose,
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	rep := report.New(cmd.OutOrStdout(), report.WithColor(!noColor))
	rep.Start(job)

	engine := archiver.New(job,
		archiver.WithLogger(slog.Default().With("component", "archiver")),
		archiver.WithObserver(rep),
	)

	summary, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}

	rep.Summary(summary)
	return nil
}

// outputDirFor picks the output directory: --here forces the location,
// then --output, then the configured default. Empty means the location.
func outputDirFor(cfg *config.Config, flagOutput string, here bool) string {
	switch {
	case here:
		return ""
	case flagOutput != "":
		return flagOutput
	default:
		return cfg.OutputDir
	}
}
