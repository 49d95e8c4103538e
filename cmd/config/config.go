// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mia configuration",
	Long: "Manage mia configuration.\n\n" +
		"The config command reads and changes the archive naming template, the " +
		"default output directory, logging, and the blacklists applied to every " +
		"archive. Configuration is stored in a YAML file located at " +
		"~/.config/mia/config.yaml by default (override the directory with MIA_CONFIG_DIR).",
}

func init() {
	// Register subcommands
	ConfigCmd.AddCommand(subcommands.SetCmd)
	ConfigCmd.AddCommand(subcommands.AddCmd)
	ConfigCmd.AddCommand(subcommands.RemoveCmd)
	ConfigCmd.AddCommand(subcommands.ListCmd)
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.EditCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
}
