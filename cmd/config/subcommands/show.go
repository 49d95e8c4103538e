package subcommands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/azuyamat/mia/internal/config"
)

var (
	showRaw bool
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the current mia configuration as YAML. By default, shows " +
		"the effective configuration with defaults and MIA_* environment " +
		"overrides applied. Use --raw to show the config file as written.",
	Example: `  # Show effective configuration
  mia config show

  # Show only the config file contents
  mia config show --raw`,
	Args:    cobra.NoArgs,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Show only the config file contents (no defaults)")
}

func validateShow(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if showRaw {
		return showRawConfig(cmd)
	}
	return showEffectiveConfig(cmd)
}

func showRawConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config; %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	fmt.Fprintf(out, "# Config file: %s\n", config.DefaultConfigPath())
	fmt.Fprintln(out, string(data))
	return nil
}
