// Package errors provides structured error handling for mba-setup.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Filesystem errors (directories, dataset, manifest)
//   - 3XX: Interpreter errors (python discovery, version probe)
//   - 4XX: Installer errors (pip)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryFilesystem indicates directory, dataset, and manifest errors.
	CategoryFilesystem Category = "FILESYSTEM"
	// CategoryInterpreter indicates Python toolchain errors.
	CategoryInterpreter Category = "INTERPRETER"
	// CategoryInstaller indicates pip invocation errors.
	CategoryInstaller Category = "INSTALLER"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates the step failed but the run continues.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates informational only.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Filesystem errors (200-299)
	ErrCodeDirCreate       = "ERR_201_DIR_CREATE"
	ErrCodeDatasetMissing  = "ERR_202_DATASET_MISSING"
	ErrCodeDatasetRead     = "ERR_203_DATASET_READ"
	ErrCodeManifestWrite   = "ERR_204_MANIFEST_WRITE"
	ErrCodeWritePermission = "ERR_205_WRITE_PERMISSION"

	// Interpreter errors (300-399)
	ErrCodePythonNotFound = "ERR_301_PYTHON_NOT_FOUND"
	ErrCodeVersionProbe   = "ERR_302_VERSION_PROBE"
	ErrCodeVersionTooOld  = "ERR_303_VERSION_TOO_OLD"
	ErrCodeImportFailed   = "ERR_304_IMPORT_FAILED"

	// Installer errors (400-499)
	ErrCodePipInstall = "ERR_401_PIP_INSTALL"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode derives the category from the numeric range in the code.
func categoryFromCode(code string) Category {
	if len(code) < 5 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryFilesystem
	case '3':
		return CategoryInterpreter
	case '4':
		return CategoryInstaller
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from the code.
// Version-too-old is the one warning in the taxonomy: the run reports it
// and continues, matching the downgrade behavior of the checks.
func severityFromCode(code string) Severity {
	if code == ErrCodeVersionTooOld {
		return SeverityWarning
	}
	return SeverityError
}
