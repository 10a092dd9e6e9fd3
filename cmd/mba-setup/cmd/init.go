package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/configs"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/config"
	"github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .mba-setup.yaml configuration template",
		Long: `Write an annotated .mba-setup.yaml template to the current directory.

The template mirrors the course defaults, so an unedited copy changes
nothing. Edit it to pin a Python interpreter, adjust the package list,
or point at a different dataset file.`,
		Example: `  # Write the template
  mba-setup init

  # Overwrite an existing .mba-setup.yaml
  mba-setup init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	path := filepath.Join(workDir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		out.Warning(fmt.Sprintf("%s already exists (use --force to overwrite)", config.ConfigFileName))
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", config.ConfigFileName, err)
	}

	out.Success(fmt.Sprintf("Wrote %s", config.ConfigFileName))
	out.Detail("Edit it, then run mba-setup to apply your changes")
	return nil
}
