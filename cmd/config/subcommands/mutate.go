package subcommands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/config"
)

// SetCmd assigns a scalar configuration key.
var SetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: "Set a configuration value.\n\n" +
		"Assigns a single-valued key and saves the configuration file. " +
		"Scalar keys: naming, output_dir, log_level, log_file. The naming " +
		"template may use :name and :date.",
	Example: `  # Date-stamp every archive
  mia config set naming ":name-:date"

  # Write archives to a fixed directory
  mia config set output_dir ~/backups`,
	Args:    cobra.ExactArgs(2),
	PreRunE: validateMutate,
	RunE:    runSet,
}

// AddCmd appends values to a list configuration key.
var AddCmd = &cobra.Command{
	Use:   "add <key> <value>...",
	Short: "Add values to a configuration list",
	Long: "Add values to a configuration list.\n\n" +
		"Appends one or more values to a blacklist and saves the configuration " +
		"file. List keys: blacklisted_file_names, blacklisted_folder_names, " +
		"blacklisted_file_extensions.",
	Example: `  # Never archive node_modules
  mia config add blacklisted_folder_names node_modules

  # Skip logs and temp files
  mia config add blacklisted_file_extensions log tmp`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: validateMutate,
	RunE:    runAdd,
}

// RemoveCmd deletes values from a list configuration key.
var RemoveCmd = &cobra.Command{
	Use:   "remove <key> <value>...",
	Short: "Remove values from a configuration list",
	Long: "Remove values from a configuration list.\n\n" +
		"Removes one or more values from a blacklist and saves the configuration file.",
	Example: `  # Archive PDFs again
  mia config remove blacklisted_file_extensions pdf`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: validateMutate,
	RunE:    runRemove,
}

func validateMutate(cmd *cobra.Command, args []string) error {
	if _, err := config.KeyKindOf(args[0]); err != nil {
		return err
	}

	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	return mutate(cmd, func(cfg *config.Config) error {
		return cfg.Set(key, value)
	}, fmt.Sprintf("Set %s = %s", strings.ToLower(key), value))
}

func runAdd(cmd *cobra.Command, args []string) error {
	key, values := args[0], args[1:]
	return mutate(cmd, func(cfg *config.Config) error {
		for _, v := range values {
			if err := cfg.Add(key, v); err != nil {
				return err
			}
		}
		return nil
	}, fmt.Sprintf("Added %s to %s", strings.Join(values, ", "), strings.ToLower(key)))
}

func runRemove(cmd *cobra.Command, args []string) error {
	key, values := args[0], args[1:]
	return mutate(cmd, func(cfg *config.Config) error {
		for _, v := range values {
			if err := cfg.Remove(key, v); err != nil {
				return err
			}
		}
		return nil
	}, fmt.Sprintf("Removed %s from %s", strings.Join(values, ", "), strings.ToLower(key)))
}

// mutate loads the config, applies fn, validates and saves. Nothing is
// written when any step fails.
func mutate(cmd *cobra.Command, fn func(cfg *config.Config) error, done string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config; %w", err)
	}

	if err := fn(cfg); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.WriteDefault(cfg); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
