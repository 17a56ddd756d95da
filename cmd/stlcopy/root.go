package main

import (
	"os"

	"github.com/spf13/cobra"

	"stlcopy/internal/app"
	"stlcopy/internal/config"
	apperrors "stlcopy/internal/errors"
	osfs "stlcopy/internal/infra/fs"
	"stlcopy/internal/infra/shell"
	"stlcopy/internal/logging"
	"stlcopy/internal/presentation"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stlcopy",
		Short: "Search shared drives and copy STL files to the print queue",
		Long: `stlcopy searches the lab's shared drives for case folders or STL
files by keyword, summarizes what a selection would copy, and copies
matching .stl files into the model and tissue destination trees.

Use "stlcopy folders" to search top-level case folders in the
configured roots, or "stlcopy files" to search STL files recursively
inside the print-queue root. Both run an interactive wizard unless
--no-tui is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to the configuration file (default: .stlcopy.yaml, then the XDG config directory)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Verbose output")
	cmd.PersistentFlags().Bool("no-tui", false,
		"Plain output instead of the interactive wizard")

	cmd.AddCommand(NewFoldersCmd())
	cmd.AddCommand(NewFilesCmd())
	cmd.AddCommand(NewInitCmd())
	return cmd
}

// toolkit bundles the configuration and the wired engines for one
// command invocation.
type toolkit struct {
	cfg     config.Config
	logger  logging.Logger
	printer presentation.Printer

	discoverer *app.Discoverer
	analyzer   *app.Analyzer
	copier     *app.Copier

	verbose bool
	noTUI   bool
}

func setup(cmd *cobra.Command) (*toolkit, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	noTUI, err := cmd.Flags().GetBool("no-tui")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidConfig, "config", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidConfig, "config", configPath, err)
	}

	// The wizard owns the terminal, so verbose logging stays quiet
	// unless the plain path runs.
	logWriter := os.Stderr
	logger := logging.New(logWriter, verbose && noTUI)

	filesystem := osfs.OSFS{}
	return &toolkit{
		cfg:        cfg,
		logger:     logger,
		printer:    presentation.Printer{Writer: os.Stdout, Verbose: verbose},
		discoverer: &app.Discoverer{FS: filesystem, Logger: logger},
		analyzer:   &app.Analyzer{FS: filesystem, Logger: logger},
		copier:     &app.Copier{FS: filesystem, Revealer: shell.Revealer{}, Logger: logger},
		verbose:    verbose,
		noTUI:      noTUI,
	}, nil
}
