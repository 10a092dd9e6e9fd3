package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryFromCode(t *testing.T) {
	tests := []struct {
		code     string
		category Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeDatasetMissing, CategoryFilesystem},
		{ErrCodePythonNotFound, CategoryInterpreter},
		{ErrCodePipInstall, CategoryInstaller},
		{ErrCodeInternal, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "message", nil)
			assert.Equal(t, tt.category, err.Category)
		})
	}
}

func TestNew_VersionTooOldIsWarning(t *testing.T) {
	err := New(ErrCodeVersionTooOld, "python 3.7 found", nil)

	assert.Equal(t, SeverityWarning, err.Severity)
	assert.True(t, IsWarning(err))
}

func TestError_IncludesCodeAndMessage(t *testing.T) {
	err := New(ErrCodePipInstall, "pip exited with status 1", nil)

	assert.Equal(t, "[ERR_401_PIP_INSTALL] pip exited with status 1", err.Error())
}

func TestUnwrap_ReturnsCause(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := New(ErrCodePipInstall, "install failed", cause)

	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := New(ErrCodeDatasetMissing, "groceries.csv not found", nil)
	target := New(ErrCodeDatasetMissing, "different message", nil)

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeDatasetRead, "", nil)))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestWrap_PreservesMessage(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(ErrCodeManifestWrite, cause)

	require.NotNil(t, err)
	assert.Equal(t, "permission denied", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestWithDetail_Chains(t *testing.T) {
	err := New(ErrCodePipInstall, "install failed", nil).
		WithDetail("package", "mlxtend").
		WithDetail("spec", "mlxtend>=0.21.0")

	assert.Equal(t, "mlxtend", err.Details["package"])
	assert.Equal(t, "mlxtend>=0.21.0", err.Details["spec"])
}

func TestFormatForCLI_IncludesSuggestion(t *testing.T) {
	err := New(ErrCodePythonNotFound, "no python interpreter found", nil).
		WithSuggestion("install Python 3.8+ from https://www.python.org/downloads/")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Error: no python interpreter found")
	assert.Contains(t, out, "hint: install Python 3.8+")
	assert.Contains(t, out, ErrCodePythonNotFound)
}

func TestFormatForCLI_WrapsStandardErrors(t *testing.T) {
	out := FormatForCLI(stderrors.New("boom"))

	assert.Contains(t, out, "boom")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatForUser_DebugIncludesCause(t *testing.T) {
	cause := stderrors.New("exit status 2")
	err := New(ErrCodePipInstall, "install failed", cause).
		WithDetail("package", "seaborn")

	out := FormatForUser(err, true)

	assert.Contains(t, out, "exit status 2")
	assert.Contains(t, out, "seaborn")
}

func TestGetCode_NonSetupError(t *testing.T) {
	assert.Empty(t, GetCode(stderrors.New("plain")))
	assert.Empty(t, GetCategory(stderrors.New("plain")))
}
