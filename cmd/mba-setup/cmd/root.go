// Package cmd provides the CLI commands for mba-setup.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/logging"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the mba-setup CLI.
func NewRootCmd() *cobra.Command {
	var (
		skipInstall bool
		verbose     bool
		pythonPath  string
	)

	cmd := &cobra.Command{
		Use:   "mba-setup",
		Short: "Environment pre-flight for the market basket analysis exercise",
		Long: `mba-setup prepares a course working directory for the market basket
analysis notebook (MSDA9223 - Data Mining and Information Retrieval).

Running it with no arguments performs the full setup sequence:
checks the Python version, installs missing packages via pip, creates
the output directory skeleton, checks for groceries.csv, writes
requirements.txt, and smoke-tests the imports the notebook needs.

Failures never abort the run; they are collected and reported in the
final summary.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, skipInstall, verbose, pythonPath)
		},
	}

	cmd.SetVersionTemplate("mba-setup version {{.Version}}\n")

	// Root flags
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Check package presence only, never invoke pip")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
	cmd.Flags().StringVar(&pythonPath, "python", "", "Path to the Python interpreter to use")

	// Debug logging flag
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.mba-setup/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	// Subcommands
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging starts debug file logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))

	return nil
}

// stopLogging flushes and closes the log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
