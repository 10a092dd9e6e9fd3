// Package pyenv manages the Python toolchain the analysis notebook needs.
// It handles interpreter discovery, version probing, module presence checks,
// import smoke-tests, and pip installs.
package pyenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

// Constants for toolchain management
const (
	// ProbeTimeout bounds quick interpreter probes (version, module checks).
	ProbeTimeout = 15 * time.Second

	// InstallTimeout bounds a single pip install invocation. Pip resolves
	// and downloads wheels, so this is generous.
	InstallTimeout = 10 * time.Minute

	// versionSnippet prints the interpreter version triplet.
	versionSnippet = `import sys; print("%d.%d.%d" % sys.version_info[:3])`
)

// Manager locates and drives the Python interpreter.
type Manager struct {
	// explicit pins the interpreter path; discovery is skipped when set.
	explicit string

	// resolved caches the discovered interpreter path.
	resolved string

	// installTimeout bounds one pip invocation; overridable in tests.
	installTimeout time.Duration

	// For testing: override command execution
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
	fileExists  func(path string) bool
}

// VersionInfo is an interpreter version triplet.
type VersionInfo struct {
	Major int
	Minor int
	Micro int
}

// String returns the version as "major.minor.micro".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// AtLeast reports whether the version is >= major.minor.
func (v VersionInfo) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// NewManager creates a Manager. pythonPath may be empty, in which case the
// interpreter is discovered from the environment and PATH.
func NewManager(pythonPath string) *Manager {
	return &Manager{
		explicit:       pythonPath,
		installTimeout: InstallTimeout,
		execCommand:    exec.CommandContext,
		lookPath:       exec.LookPath,
		fileExists:     fileExists,
	}
}

// fileExists checks if a path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Resolve finds the Python interpreter to use.
// Priority: explicit path, then MBA_SETUP_PYTHON, then python3/python in
// PATH, then platform-typical install locations.
func (m *Manager) Resolve() (string, error) {
	if m.resolved != "" {
		return m.resolved, nil
	}

	if m.explicit != "" {
		if !m.fileExists(m.explicit) {
			return "", notFound([]string{m.explicit})
		}
		m.resolved = m.explicit
		return m.resolved, nil
	}

	var tried []string

	if envPath := os.Getenv("MBA_SETUP_PYTHON"); envPath != "" {
		if m.fileExists(envPath) {
			m.resolved = envPath
			return m.resolved, nil
		}
		tried = append(tried, envPath)
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := m.lookPath(name); err == nil {
			m.resolved = path
			return m.resolved, nil
		}
		tried = append(tried, name)
	}

	for _, p := range platformPaths() {
		if m.fileExists(p) {
			m.resolved = p
			return m.resolved, nil
		}
		tried = append(tried, p)
	}

	return "", notFound(tried)
}

// notFound builds the coded discovery failure. The NotFoundError cause
// stays reachable through errors.As for callers that need the tried list.
func notFound(tried []string) error {
	nf := &NotFoundError{Tried: tried}
	return mbaerrors.InterpreterError(nf.Error(), nf).
		WithSuggestion("install Python 3.8+ or point --python at an interpreter")
}

// platformPaths returns typical interpreter locations outside PATH.
func platformPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/opt/homebrew/bin/python3",
			"/usr/local/bin/python3",
			"/usr/bin/python3",
		}
	case "linux":
		return []string{
			"/usr/bin/python3",
			"/usr/local/bin/python3",
			filepath.Join(os.Getenv("HOME"), ".local", "bin", "python3"),
		}
	default:
		return nil
	}
}

// Version probes the interpreter version triplet.
func (m *Manager) Version(ctx context.Context) (VersionInfo, error) {
	python, err := m.Resolve()
	if err != nil {
		return VersionInfo{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := m.execCommand(ctx, python, "-c", versionSnippet)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return VersionInfo{}, mbaerrors.New(mbaerrors.ErrCodeVersionProbe,
			fmt.Sprintf("version probe failed: %s", tail(stderr.String())), err)
	}

	return parseVersion(strings.TrimSpace(stdout.String()))
}

// parseVersion parses "major.minor.micro" output.
func parseVersion(s string) (VersionInfo, error) {
	var v VersionInfo
	n, err := fmt.Sscanf(s, "%d.%d.%d", &v.Major, &v.Minor, &v.Micro)
	if err != nil || n != 3 {
		return VersionInfo{}, fmt.Errorf("unexpected version output %q", s)
	}
	return v, nil
}

// HasModule reports whether the named module is importable, without
// importing it. Uses importlib.util.find_spec so a heavy package like
// matplotlib is not actually loaded during the presence check.
func (m *Manager) HasModule(ctx context.Context, module string) (bool, error) {
	python, err := m.Resolve()
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	snippet := fmt.Sprintf(
		`import importlib.util, sys; sys.exit(0 if importlib.util.find_spec(%q) is not None else 1)`,
		module)

	cmd := m.execCommand(ctx, python, "-c", snippet)
	err = cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("module probe for %s failed: %w", module, err)
}

// RunStatement executes a Python statement with python -c, returning an
// error that carries the interpreter's stderr tail on failure.
func (m *Manager) RunStatement(ctx context.Context, statement string) error {
	python, err := m.Resolve()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := m.execCommand(ctx, python, "-c", statement)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", tail(stderr.String()), err)
	}
	return nil
}

// Install invokes pip for a single requirement spec. Pip's own output
// streams through so the user sees download progress. A non-zero exit
// status is the only failure signal; there is no retry.
func (m *Manager) Install(ctx context.Context, pipSpec string, stdout, stderr io.Writer) error {
	python, err := m.Resolve()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.installTimeout)
	defer cancel()

	cmd := m.execCommand(ctx, python, "-m", "pip", "install", pipSpec)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return mbaerrors.InstallerError(
				fmt.Sprintf("pip install %s timed out", pipSpec), ctx.Err()).
				WithDetail("timeout", m.installTimeout.String())
		case errors.Is(ctx.Err(), context.Canceled):
			return mbaerrors.InstallerError(
				fmt.Sprintf("pip install %s canceled", pipSpec), ctx.Err())
		}
		return mbaerrors.InstallerError(
			fmt.Sprintf("pip install %s failed", pipSpec), err).
			WithDetail("package", pipSpec).
			WithSuggestion(fmt.Sprintf("try manually: %s -m pip install %q", python, pipSpec))
	}
	return nil
}

// tail returns the last non-empty line of command output, for error messages.
func tail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no output"
}

// NotFoundError indicates no Python interpreter could be located.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("python interpreter not found (tried: %s)", strings.Join(e.Tried, ", "))
}

// InstallInstructions returns platform-specific interpreter install help.
func InstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return `Python 3.8+ is required for the analysis notebook.

Install options:
  1. Download from: https://www.python.org/downloads/
  2. Or via Homebrew: brew install python3

After installation, run mba-setup again.`
	case "linux":
		return `Python 3.8+ is required for the analysis notebook.

Install (Debian/Ubuntu):
  sudo apt install python3 python3-pip

After installation, run mba-setup again.`
	default:
		return `Python 3.8+ is required for the analysis notebook.

Download from: https://www.python.org/downloads/

After installation, run mba-setup again.`
	}
}
