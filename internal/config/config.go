// Package config holds the setup run configuration: the required package
// table, directory layout, dataset name, and manifest template. Defaults
// match the course handout; a .mba-setup.yaml in the working directory can
// override them, and a few environment variables take highest priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

// ConfigFileName is the optional per-directory override file.
const ConfigFileName = ".mba-setup.yaml"

// DataDirName is the directory holding run state (marker, lock).
const DataDirName = ".mba-setup"

// Requirement is one required Python package: the importable module name
// and the pip requirement specifier used to install it.
type Requirement struct {
	Module  string `yaml:"module" json:"module"`
	PipSpec string `yaml:"pip_spec" json:"pip_spec"`
}

// ImportTest is one import smoke-test: a human-readable label and the
// Python statement to execute. Statements exercise the real import path,
// including submodule imports that a bare module probe would miss.
type ImportTest struct {
	Label     string `yaml:"label" json:"label"`
	Statement string `yaml:"statement" json:"statement"`
}

// PythonVersion is a minimum interpreter version requirement.
type PythonVersion struct {
	Major int `yaml:"major" json:"major"`
	Minor int `yaml:"minor" json:"minor"`
}

// String returns the version as "major.minor".
func (v PythonVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Config is the complete configuration for a setup run.
type Config struct {
	// MinPython is the minimum supported interpreter version.
	MinPython PythonVersion `yaml:"min_python" json:"min_python"`

	// Requirements is the ordered package table. Order is preserved in
	// all reports and in the manifest.
	Requirements []Requirement `yaml:"requirements" json:"requirements"`

	// ImportTests is the ordered import smoke-test list.
	ImportTests []ImportTest `yaml:"import_tests" json:"import_tests"`

	// Directories is the ordered list of relative paths to create.
	Directories []string `yaml:"directories" json:"directories"`

	// DatasetFile is the dataset filename expected in the working directory.
	DatasetFile string `yaml:"dataset_file" json:"dataset_file"`

	// ManifestFile is the requirements manifest filename to write.
	ManifestFile string `yaml:"manifest_file" json:"manifest_file"`

	// PythonPath optionally pins the interpreter to use.
	PythonPath string `yaml:"python_path" json:"python_path"`
}

// DefaultConfig returns the course defaults. A run with no config file
// behaves exactly like the original handout script.
func DefaultConfig() *Config {
	return &Config{
		MinPython: PythonVersion{Major: 3, Minor: 8},
		Requirements: []Requirement{
			{Module: "pandas", PipSpec: "pandas>=1.5.0"},
			{Module: "numpy", PipSpec: "numpy>=1.21.0"},
			{Module: "matplotlib", PipSpec: "matplotlib>=3.5.0"},
			{Module: "seaborn", PipSpec: "seaborn>=0.11.0"},
			{Module: "mlxtend", PipSpec: "mlxtend>=0.21.0"},
			{Module: "jupyter", PipSpec: "jupyter>=1.0.0"},
			{Module: "notebook", PipSpec: "notebook>=6.4.0"},
		},
		ImportTests: []ImportTest{
			{Label: "pandas", Statement: "import pandas as pd"},
			{Label: "numpy", Statement: "import numpy as np"},
			{Label: "matplotlib", Statement: "import matplotlib.pyplot as plt"},
			{Label: "seaborn", Statement: "import seaborn as sns"},
			{Label: "mlxtend frequent_patterns", Statement: "from mlxtend.frequent_patterns import apriori, association_rules"},
			{Label: "mlxtend preprocessing", Statement: "from mlxtend.preprocessing import TransactionEncoder"},
		},
		Directories: []string{
			"outputs",
			"outputs/figures",
			"outputs/results",
			"temp_files",
		},
		DatasetFile:  "groceries.csv",
		ManifestFile: "requirements.txt",
	}
}

// Load returns the configuration for the given working directory.
// Priority: defaults, then .mba-setup.yaml overrides, then environment.
func Load(workDir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(workDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, mbaerrors.New(mbaerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("parse %s: %v", ConfigFileName, err), err).
				WithSuggestion("fix the YAML syntax or delete the file to use the defaults")
		}
	} else if !os.IsNotExist(err) {
		return nil, mbaerrors.New(mbaerrors.ErrCodeConfigNotFound,
			fmt.Sprintf("read %s: %v", ConfigFileName, err), err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, mbaerrors.ConfigError(err.Error(), err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// Env vars win over both defaults and the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MBA_SETUP_PYTHON"); v != "" {
		cfg.PythonPath = v
	}
	if v := os.Getenv("MBA_SETUP_DATASET"); v != "" {
		cfg.DatasetFile = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.MinPython.Major <= 0 {
		return fmt.Errorf("min_python major must be positive, got %d", c.MinPython.Major)
	}
	if len(c.Requirements) == 0 {
		return fmt.Errorf("requirements table is empty")
	}
	seen := make(map[string]bool, len(c.Requirements))
	for _, r := range c.Requirements {
		if r.Module == "" {
			return fmt.Errorf("requirement with empty module name")
		}
		if seen[r.Module] {
			return fmt.Errorf("duplicate requirement: %s", r.Module)
		}
		seen[r.Module] = true
		if r.PipSpec == "" {
			return fmt.Errorf("requirement %s has empty pip spec", r.Module)
		}
	}
	for _, it := range c.ImportTests {
		if it.Label == "" || it.Statement == "" {
			return fmt.Errorf("import test with empty label or statement")
		}
	}
	for _, d := range c.Directories {
		if d == "" {
			return fmt.Errorf("empty directory entry")
		}
		if filepath.IsAbs(d) || strings.HasPrefix(d, "..") {
			return fmt.Errorf("directory %q must be relative to the working directory", d)
		}
	}
	if c.DatasetFile == "" {
		return fmt.Errorf("dataset_file is empty")
	}
	if c.ManifestFile == "" {
		return fmt.Errorf("manifest_file is empty")
	}
	return nil
}

// ManifestContent returns the full requirements.txt text for this config.
// The default output is byte-identical to the course handout manifest.
func (c *Config) ManifestContent() string {
	var sb strings.Builder
	sb.WriteString("# Market Basket Analysis Requirements\n")
	sb.WriteString("# Course: MSDA9223 - Data Mining and Information Retrieval\n")
	sb.WriteString("\n")
	for _, r := range c.Requirements {
		sb.WriteString(r.PipSpec)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString("# Optional packages for enhanced analysis\n")
	sb.WriteString("plotly>=5.0.0\n")
	sb.WriteString("wordcloud>=1.8.0\n")
	return sb.String()
}
