package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	configcmd "github.com/azuyamat/mia/cmd/config"
	"github.com/azuyamat/mia/cmd/create"
	"github.com/azuyamat/mia/cmd/update"
	"github.com/azuyamat/mia/cmd/version"
	"github.com/azuyamat/mia/internal/cmdutil"
	"github.com/azuyamat/mia/internal/config"
	"github.com/azuyamat/mia/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var miaCmd = &cobra.Command{
	Use:   "mia",
	Short: "Selective directory archiver",
	Long: "mia archives a directory tree into a single zip file.\n\n" +
		"Folders, file names and extensions on the configured blacklist are left out, " +
		"per-run --exclude and --include lists override the blacklist, and the archive " +
		"is named from a template such as ':name_:date'. After archiving, mia reports " +
		"how many non-blank lines of each language went into the archive.",
	PersistentPreRunE: runInitialize,
}

func init() {
	// Bootstrap mode (stderr text only) until config is loaded
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	miaCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	miaCmd.AddCommand(create.CreateCmd)
	miaCmd.AddCommand(configcmd.ConfigCmd)
	miaCmd.AddCommand(update.UpdateCmd)
	miaCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	// A broken config file must not block the config commands that repair it,
	// so the load error is handed to the command instead of returned here.
	cfg, err := config.Load()
	cmd.SetContext(cmdutil.WithConfig(cmd.Context(), cfg, err))

	logFile := config.ExpandPath(config.DefaultLogFile)
	levelStr := config.DefaultLogLevel
	if err != nil {
		logger.Debug("config not loaded; using defaults for logging", "error", err)
	} else {
		logFile = config.ExpandPath(cfg.LogFile)
		levelStr = cfg.LogLevel
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	level, ok := logging.ResolveLevel(levelStr, verbose)
	if !ok {
		logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", logging.DefaultLevel.String())
	}

	if err := logManager.Upgrade(logFile, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
		// Don't return error - continue with bootstrap mode
	}

	return nil
}

func Execute() error {
	miaCmd.SilenceErrors = true
	miaCmd.SilenceUsage = true

	// Ensure logging is properly closed on exit
	defer func() { _ = logManager.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := miaCmd.ExecuteContext(ctx)

	if err != nil {
		cmd, _, _ := miaCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = miaCmd
		}

		fmt.Printf("Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Printf("\n")
			cmd.SetOut(os.Stdout)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
