package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/config"
	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/output"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/pyenv"
)

// CheckStatus represents the result of a single check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// CheckResult holds the result of a single diagnostic check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Python is the toolchain surface the checker needs. *pyenv.Manager
// satisfies it; tests supply fakes.
type Python interface {
	Version(ctx context.Context) (pyenv.VersionInfo, error)
	HasModule(ctx context.Context, module string) (bool, error)
	RunStatement(ctx context.Context, statement string) error
	Install(ctx context.Context, pipSpec string, stdout, stderr io.Writer) error
}

// Checker performs the setup steps and diagnostics.
type Checker struct {
	cfg         *config.Config
	py          Python
	out         *output.Writer
	rawOut      io.Writer
	workDir     string
	verbose     bool
	skipInstall bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.rawOut = w
		c.out = output.New(w)
	}
}

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithSkipInstall disables pip invocations; absent packages are recorded
// as failed without attempting an install.
func WithSkipInstall(skip bool) Option {
	return func(c *Checker) {
		c.skipInstall = skip
	}
}

// WithWorkDir sets the working directory for all relative paths.
func WithWorkDir(dir string) Option {
	return func(c *Checker) {
		c.workDir = dir
	}
}

// WithPython sets the toolchain implementation, mainly for tests.
func WithPython(p Python) Option {
	return func(c *Checker) {
		c.py = p
	}
}

// New creates a Checker for the given configuration.
func New(cfg *config.Config, opts ...Option) *Checker {
	c := &Checker{
		cfg:     cfg,
		rawOut:  os.Stdout,
		out:     output.New(os.Stdout),
		workDir: ".",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.py == nil {
		c.py = pyenv.NewManager(cfg.PythonPath)
	}
	return c
}

// HasCriticalFailures returns true if any required check failed.
func HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus returns a summary status string for diagnostic results.
func SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	hasCriticalFailure := false

	for _, r := range results {
		if r.IsCritical() {
			hasCriticalFailure = true
		}
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			hasWarnings = true
		}
	}

	if hasCriticalFailure {
		return "failed"
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints diagnostic check results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	_, _ = fmt.Fprintln(c.rawOut, "mba-setup Environment Check")
	_, _ = fmt.Fprintln(c.rawOut, "===========================")
	_, _ = fmt.Fprintln(c.rawOut)

	for _, r := range results {
		_, _ = fmt.Fprintf(c.rawOut, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.rawOut, "      %s\n", r.Details)
		}
	}

	_, _ = fmt.Fprintln(c.rawOut)
	_, _ = fmt.Fprintf(c.rawOut, "Status: %s\n", strings.ToUpper(SummaryStatus(results)))

	var warnings, errors []string
	for _, r := range results {
		if r.IsCritical() {
			errors = append(errors, r.Name+": "+r.Message)
		} else if r.Status == StatusWarn {
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	if len(errors) > 0 {
		_, _ = fmt.Fprintln(c.rawOut)
		_, _ = fmt.Fprintf(c.rawOut, "%d error(s):\n", len(errors))
		for _, e := range errors {
			_, _ = fmt.Fprintf(c.rawOut, "  - %s\n", e)
		}
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(c.rawOut)
		_, _ = fmt.Fprintf(c.rawOut, "%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			_, _ = fmt.Fprintf(c.rawOut, "  - %s\n", w)
		}
	}
}

// CheckWritePermissions checks if we can write to the working directory.
// Used by the read-only diagnostics in place of the manifest write.
func (c *Checker) CheckWritePermissions() CheckResult {
	result := CheckResult{
		Name:     "write_permissions",
		Required: true,
	}

	testFile := filepath.Join(c.workDir, ".mba-setup-write-test")
	f, err := os.Create(testFile)
	if err != nil {
		werr := mbaerrors.FilesystemError(mbaerrors.ErrCodeWritePermission,
			fmt.Sprintf("permission denied: %v", err), err)
		result.Status = StatusFail
		result.Message = werr.Message
		result.Details = werr.Code
		return result
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	result.Status = StatusPass
	result.Message = "OK"
	return result
}
