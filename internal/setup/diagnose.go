package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/pyenv"
)

// Diagnose runs the read-only checks for the check subcommand: no pip
// invocation, no directory creation, no manifest write. The only side
// effect is a write-permission probe file that is removed immediately.
func (c *Checker) Diagnose(ctx context.Context) []CheckResult {
	var results []CheckResult

	results = append(results, c.checkPythonVersion(ctx))
	results = append(results, c.checkPackagePresence(ctx))
	results = append(results, c.checkDirectories())
	results = append(results, c.checkDataset())
	results = append(results, c.CheckWritePermissions())

	return results
}

// checkPythonVersion probes the interpreter without installing anything.
func (c *Checker) checkPythonVersion(ctx context.Context) CheckResult {
	result := CheckResult{
		Name:     "python_version",
		Required: true,
	}

	v, err := c.py.Version(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("no usable interpreter: %v", err)
		result.Details = pyenv.InstallInstructions()
		return result
	}

	result.Message = v.String()
	if !v.AtLeast(c.cfg.MinPython.Major, c.cfg.MinPython.Minor) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s (%s+ recommended)", v, c.cfg.MinPython)
		return result
	}

	result.Status = StatusPass
	return result
}

// checkPackagePresence probes each requirement for importability.
// One aggregated result; missing packages are listed in the message.
func (c *Checker) checkPackagePresence(ctx context.Context) CheckResult {
	result := CheckResult{
		Name:     "required_packages",
		Required: true,
	}

	var missing []string
	total := len(c.cfg.Requirements)
	for _, req := range c.cfg.Requirements {
		present, err := c.py.HasModule(ctx, req.Module)
		if err != nil || !present {
			missing = append(missing, req.Module)
		}
	}

	if len(missing) > 0 {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%d/%d importable, missing: %s",
			total-len(missing), total, strings.Join(missing, ", "))
		result.Details = "run 'mba-setup' to install missing packages"
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%d/%d importable", total, total)
	return result
}

// checkDirectories reports which output directories already exist.
// Missing directories are a warning; the setup run creates them.
func (c *Checker) checkDirectories() CheckResult {
	result := CheckResult{
		Name: "project_directories",
	}

	var missing []string
	for _, dir := range c.cfg.Directories {
		info, err := os.Stat(filepath.Join(c.workDir, dir))
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}

	if len(missing) > 0 {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("missing: %s", strings.Join(missing, ", "))
		result.Details = "run 'mba-setup' to create the project structure"
		return result
	}

	result.Status = StatusPass
	result.Message = "all present"
	return result
}

// checkDataset stats the dataset file and previews the first line.
func (c *Checker) checkDataset() CheckResult {
	result := CheckResult{
		Name:     "dataset",
		Required: true,
	}

	info := InspectDataset(filepath.Join(c.workDir, c.cfg.DatasetFile))
	if info.ReadErr != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%s unreadable: %v", c.cfg.DatasetFile, info.ReadErr)
		return result
	}
	if !info.Found {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%s not found", c.cfg.DatasetFile)
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%s (%d bytes)", c.cfg.DatasetFile, info.Size)
	result.Details = "first line: " + info.Preview
	return result
}
