package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/config"
	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/setup"
)

func newCheckCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
		pythonPath string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the environment without changing anything",
		Long: `Run read-only diagnostics on the current directory.

Checks:
  - Python interpreter and version (3.8 minimum)
  - Required packages (importable or not)
  - Output directory skeleton
  - groceries.csv dataset
  - Write permissions

Nothing is installed, created, or written. Use this to verify an
environment before class, or after running the full setup.

Use --json for machine-readable output.`,
		Example: `  # Run diagnostics
  mba-setup check

  # Verbose output with details
  mba-setup check --verbose

  # JSON output for scripting
  mba-setup check --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, verbose, jsonOutput, pythonPath)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed diagnostic info")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().StringVar(&pythonPath, "python", "", "Path to the Python interpreter to use")

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		jsonOutput, _ = cmd.Flags().GetBool("json")
		return nil
	}

	return cmd
}

func runCheck(cmd *cobra.Command, verbose, jsonOutput bool, pythonPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), mbaerrors.FormatForCLI(err))
		return &checkError{message: "invalid configuration"}
	}
	if pythonPath != "" {
		cfg.PythonPath = pythonPath
	}

	checker := setup.New(cfg,
		setup.WithOutput(cmd.OutOrStdout()),
		setup.WithWorkDir(workDir),
		setup.WithVerbose(verbose),
	)

	results := checker.Diagnose(ctx)

	if jsonOutput {
		return outputJSON(cmd, results)
	}

	checker.PrintResults(results)

	dataDir := filepath.Join(workDir, config.DataDirName)
	if !setup.NeedsSetup(dataDir) {
		if age := setup.MarkerAge(dataDir); age > 0 {
			cmd.Printf("\nLast successful setup: %s ago\n", formatDuration(age))
		}
	}

	if setup.HasCriticalFailures(results) {
		return &checkError{message: "environment check failed"}
	}

	return nil
}

// checkError is a custom error for check command failures.
type checkError struct {
	message string
}

func (e *checkError) Error() string {
	return e.message
}

// JSONOutput is the structure for JSON output.
type JSONOutput struct {
	Status   string            `json:"status"`
	Checks   []JSONCheckResult `json:"checks"`
	Warnings []string          `json:"warnings,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
}

// JSONCheckResult is a single check result for JSON output.
type JSONCheckResult struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Required bool   `json:"required"`
	Details  string `json:"details,omitempty"`
}

func outputJSON(cmd *cobra.Command, results []setup.CheckResult) error {
	out := JSONOutput{
		Status: setup.SummaryStatus(results),
		Checks: make([]JSONCheckResult, len(results)),
	}

	for i, r := range results {
		out.Checks[i] = JSONCheckResult{
			Name:     r.Name,
			Status:   statusToString(r.Status),
			Message:  r.Message,
			Required: r.Required,
			Details:  r.Details,
		}

		if r.IsCritical() {
			out.Errors = append(out.Errors, r.Name+": "+r.Message)
		} else if r.Status == setup.StatusWarn {
			out.Warnings = append(out.Warnings, r.Name+": "+r.Message)
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func statusToString(s setup.CheckStatus) string {
	switch s {
	case setup.StatusPass:
		return "pass"
	case setup.StatusWarn:
		return "warn"
	case setup.StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	switch {
	case hours < 1:
		return "less than 1 hour"
	case hours == 1:
		return "1 hour"
	case hours < 24:
		return fmt.Sprintf("%d hours", hours)
	case hours < 48:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", hours/24)
	}
}
