package subcommands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azuyamat/mia/internal/cmdutil"
	"github.com/azuyamat/mia/internal/config"
)

// ListCmd prints every configuration key with its value.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration keys and values",
	Long: "List configuration keys and values.\n\n" +
		"Prints every key accepted by set, add and remove together with its " +
		"current value, defaults included.",
	Example: `  mia config list`,
	Args:    cobra.NoArgs,
	PreRunE: validateList,
	RunE:    runList,
}

func validateList(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := cmdutil.ConfigFrom(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config; %w", err)
	}

	out := cmd.OutOrStdout()
	for _, entry := range cfg.Entries() {
		fmt.Fprintf(out, "%s: %s\n", entry.Key, formatEntry(entry))
	}
	return nil
}

func formatEntry(entry config.Entry) string {
	if entry.Kind == config.ListKey {
		return "[" + strings.Join(entry.Values, ", ") + "]"
	}
	if entry.Value == "" {
		return `""`
	}
	return entry.Value
}
