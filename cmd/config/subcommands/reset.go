package subcommands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/config"
)

var (
	resetConfirm bool
)

// ResetCmd resets the configuration to defaults.
var ResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to default values",
	Long: "Reset configuration to default values.\n\n" +
		"This command removes the configuration file, reverting all settings " +
		"to their default values. A backup of the current configuration is " +
		"created before deletion. Use --confirm to skip the confirmation prompt.",
	Example: `  # Reset configuration (prompts for confirmation)
  mia config reset

  # Reset configuration without confirmation
  mia config reset --confirm`,
	Args:    cobra.NoArgs,
	PreRunE: validateReset,
	RunE:    runReset,
}

func init() {
	ResetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Skip confirmation prompt")
}

func validateReset(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultConfigPath()

	if !config.ConfigExists() {
		fmt.Fprintln(out, "No configuration file found. Using defaults.")
		return nil
	}

	// Confirm reset if not already confirmed
	if !resetConfirm {
		fmt.Fprintf(out, "This will reset configuration to defaults and remove: %s\n", configPath)
		fmt.Fprint(out, "Are you sure? [y/N]: ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(response), "y") {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	backupPath := fmt.Sprintf("%s.backup.%d", configPath, time.Now().Unix())
	if err := copyFile(configPath, backupPath); err != nil {
		return fmt.Errorf("failed to create backup; %w", err)
	}
	fmt.Fprintf(out, "Backup created: %s\n", backupPath)

	if err := os.Remove(configPath); err != nil {
		return fmt.Errorf("failed to remove config file; %w", err)
	}

	fmt.Fprintln(out, "Configuration reset to defaults.")
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}
