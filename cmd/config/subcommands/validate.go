package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/config"
)

// ValidateCmd validates the current configuration.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: "Validate the current configuration.\n\n" +
		"Checks the configuration file for syntax errors and validates that all " +
		"settings have valid values, including the naming template. Returns exit " +
		"code 0 if valid, 1 if invalid.",
	Example: `  # Validate the configuration
  mia config validate`,
	Args:    cobra.NoArgs,
	PreRunE: validateValidate,
	RunE:    runValidate,
}

func validateValidate(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultConfigPath()

	if !config.ConfigExists() {
		fmt.Fprintf(out, "No configuration file found at %s\n", configPath)
		fmt.Fprintln(out, "Using default configuration values.")
		return nil
	}

	// Loading also validates
	if _, err := config.LoadFromPath(configPath); err != nil {
		fmt.Fprintln(out, "Configuration validation failed:")
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	fmt.Fprintf(out, "Configuration is valid: %s\n", configPath)
	return nil
}
