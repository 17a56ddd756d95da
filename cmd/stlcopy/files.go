package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stlcopy/internal/app"
	"stlcopy/internal/domain"
	apperrors "stlcopy/internal/errors"
	"stlcopy/internal/tui"
)

// NewFilesCmd creates the files command.
func NewFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Search STL files recursively in the print queue and copy them",
		Long: `Files searches the print-queue root recursively for .stl files whose
name contains any of the given terms and copies every match back into
the print-queue base, optionally inside a new subfolder.

Examples:
  # Interactive wizard
  stlcopy files

  # Re-stage two cases into a fresh subfolder, plain output
  stlcopy files --no-tui -t 2025-12345 -t modelbase --subfolder Reprints`,
		RunE: runFilesCmd,
	}

	cmd.Flags().StringArrayP("terms", "t", nil,
		"Search term (repeatable)")
	cmd.Flags().String("subfolder", "",
		"Copy into this new subfolder of the print-queue base")
	cmd.Flags().Bool("reveal", false,
		"Open the destination folder after a fully successful copy")
	cmd.Flags().Bool("dry-run", false,
		"Search and analyze only, copy nothing")

	return cmd
}

// runFilesCmd executes the files command.
func runFilesCmd(cmd *cobra.Command, _ []string) error {
	kit, err := setup(cmd)
	if err != nil {
		return err
	}

	terms, _ := cmd.Flags().GetStringArray("terms")
	subfolder, _ := cmd.Flags().GetString("subfolder")
	reveal, _ := cmd.Flags().GetBool("reveal")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	queue, ok := kit.cfg.PrintQueueRoot()
	if !ok {
		return apperrors.New(apperrors.InvalidConfig, "config", "", "no print-queue root configured")
	}

	if !kit.noTUI {
		return tui.Run(tui.Config{
			Mode:         tui.ModeFiles,
			Queue:        queue,
			CapBytes:     kit.cfg.SizeCapBytes(),
			Reveal:       reveal,
			InitialTerms: terms,
		}, tui.Engines{
			Discoverer: kit.discoverer,
			Analyzer:   kit.analyzer,
			Copier:     kit.copier,
		})
	}

	if len(terms) == 0 {
		return apperrors.New(apperrors.InvalidConfig, "terms", "", "at least one --terms value is required with --no-tui")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, warnings := kit.discoverer.FindFilesRecursively(queue, terms)
	kit.printer.PrintFileSearch(paths, warnings)
	if len(paths) == 0 {
		return nil
	}

	result := kit.analyzer.AnalyzeFiles(ctx, paths)
	kit.printer.PrintAnalysis(result, kit.cfg.SizeCapBytes())
	if result.ExceedsCap(kit.cfg.SizeCapBytes()) {
		return apperrors.New(apperrors.InvalidConfig, "copy", "", "total copy size exceeds the configured cap")
	}
	if dryRun {
		return nil
	}

	plan := domain.CopyPlan{Model: domain.DestSpec{Base: queue.Path, Mode: domain.CopyDirect}}
	if subfolder != "" {
		plan.Model.Mode = domain.CopyIntoSubfolder
		plan.Model.Subfolder = subfolder
	}

	outcome, err := kit.copier.Copy(ctx, app.CopyRequest{
		Mode:   app.SourceFiles,
		Files:  paths,
		Plan:   plan,
		Reveal: reveal,
	})
	if err != nil {
		return err
	}
	kit.printer.PrintOutcome(outcome)
	return nil
}
