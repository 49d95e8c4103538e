package subcommands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/config"
)

// EditCmd opens the configuration file in an editor.
var EditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file in your default editor",
	Long: "Edit the configuration file in your default editor.\n\n" +
		"Opens the mia configuration file in the editor specified by " +
		"the EDITOR environment variable. If EDITOR is not set, attempts to " +
		"use common editors (vim, vi, nano) in order. A missing config file is " +
		"created with the default values first, and the result is validated " +
		"when the editor exits.",
	Example: `  # Edit configuration with default editor
  mia config edit

  # Edit with a specific editor
  EDITOR=code mia config edit`,
	Args:    cobra.NoArgs,
	PreRunE: validateEdit,
	RunE:    runEdit,
}

func validateEdit(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	configPath := config.DefaultConfigPath()

	if !config.ConfigExists() {
		if err := config.WriteDefault(config.LoadWithDefaults()); err != nil {
			return fmt.Errorf("failed to create config file; %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found; set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error; %w", err)
	}

	if _, err := config.LoadFromPath(configPath); err != nil {
		return fmt.Errorf("configuration saved but is invalid; %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.")
	return nil
}

func findEditor() string {
	// Check EDITOR environment variable first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check VISUAL environment variable
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	// Try common editors
	editors := []string{"vim", "vi", "nano", "emacs"}
	for _, editor := range editors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}

	return ""
}
