package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stlcopy/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new stlcopy configuration file",
		Long: `Init creates a new stlcopy configuration file with the reference
deployment's search roots, destination bases and size cap, ready to be
edited for the local share layout.

Examples:
  # Create .stlcopy.yaml in the current directory
  stlcopy init

  # Create the file in the XDG config directory
  stlcopy init --global

  # Force overwrite an existing file
  stlcopy init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().Bool("global", false,
		"Write to the XDG config directory instead of --output")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	global, err := cmd.Flags().GetBool("global")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if global {
		outputPath = config.DefaultPath()
	}
	if err := config.WriteTemplate(outputPath, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it to match the local share layout before the first run.")
	return nil
}
