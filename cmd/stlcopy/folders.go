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

// NewFoldersCmd creates the folders command.
func NewFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Search top-level case folders and copy their STL files",
		Long: `Folders searches the immediate children of the configured search
roots for folder names containing the given terms, analyzes the
selected folders, and copies the eligible .stl files into the model
and tissue destinations.

Files from a restricted root (Exocad) are copied only when their name
contains one of the allow-list keywords. Tissue/gingiva files are
routed to the tissue destination.

Examples:
  # Interactive wizard
  stlcopy folders

  # Search two case numbers in specific roots, plain output
  stlcopy folders --no-tui -t 2025-12345 -t 2025-67890 -r "Model Material"

  # Copy everything found into new subfolders, then open the targets
  stlcopy folders --no-tui -t 2025-12345 --model-subfolder Monday_Prints \
    --tissue-subfolder Monday_Tissue --reveal`,
		RunE: runFoldersCmd,
	}

	cmd.Flags().StringArrayP("terms", "t", nil,
		"Search term (repeatable)")
	cmd.Flags().StringArrayP("roots", "r", nil,
		"Restrict the search to these root labels (repeatable)")
	cmd.Flags().String("model-subfolder", "",
		"Copy model files into this new subfolder of the model base")
	cmd.Flags().String("tissue-subfolder", "",
		"Copy tissue files into this new subfolder of the tissue base")
	cmd.Flags().Bool("reveal", false,
		"Open the destination folder(s) after a fully successful copy")
	cmd.Flags().Bool("dry-run", false,
		"Search and analyze only, copy nothing")

	return cmd
}

// runFoldersCmd executes the folders command.
func runFoldersCmd(cmd *cobra.Command, _ []string) error {
	kit, err := setup(cmd)
	if err != nil {
		return err
	}

	terms, _ := cmd.Flags().GetStringArray("terms")
	labels, _ := cmd.Flags().GetStringArray("roots")
	modelSub, _ := cmd.Flags().GetString("model-subfolder")
	tissueSub, _ := cmd.Flags().GetString("tissue-subfolder")
	reveal, _ := cmd.Flags().GetBool("reveal")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	roots, err := kit.cfg.RootsByLabel(labels)
	if err != nil {
		return apperrors.Wrap(apperrors.InvalidConfig, "roots", "", err)
	}
	if len(roots) == 0 {
		return apperrors.New(apperrors.InvalidConfig, "roots", "", "no searchable roots configured")
	}

	if !kit.noTUI {
		return tui.Run(tui.Config{
			Mode:         tui.ModeFolders,
			Roots:        roots,
			ModelBase:    kit.cfg.ModelBase,
			TissueBase:   kit.cfg.TissueBase,
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

	folders := kit.discoverer.FindFolders(roots, terms)
	kit.printer.PrintFolderSearch(folders, app.NotFoundTerms(terms, folders))
	if len(folders) == 0 {
		return nil
	}

	// The plain path copies everything the search found; picking a
	// subset is what the wizard is for.
	selection := make([]domain.SelectedFolder, 0, len(folders))
	for _, folder := range folders {
		selection = append(selection, domain.SelectedFolder{Path: folder.Path, Origin: folder.Origin})
	}

	result := kit.analyzer.AnalyzeFolders(ctx, selection)
	kit.printer.PrintAnalysis(result, kit.cfg.SizeCapBytes())
	if result.ExceedsCap(kit.cfg.SizeCapBytes()) {
		return apperrors.New(apperrors.InvalidConfig, "copy", "", "total copy size exceeds the configured cap")
	}
	if dryRun {
		return nil
	}

	outcome, err := kit.copier.Copy(ctx, app.CopyRequest{
		Mode:           app.SourceFolders,
		Folders:        selection,
		Plan:           buildPlan(kit.cfg.ModelBase, modelSub, kit.cfg.TissueBase, tissueSub),
		TissueExpected: result.TissueFound,
		Reveal:         reveal,
	})
	if err != nil {
		return err
	}
	kit.printer.PrintOutcome(outcome)
	return nil
}

// buildPlan derives the destination plan from the subfolder flags: a
// non-empty name selects subfolder mode for that stream.
func buildPlan(modelBase, modelSub, tissueBase, tissueSub string) domain.CopyPlan {
	plan := domain.CopyPlan{
		Model:  domain.DestSpec{Base: modelBase, Mode: domain.CopyDirect},
		Tissue: domain.DestSpec{Base: tissueBase, Mode: domain.CopyDirect},
	}
	if modelSub != "" {
		plan.Model.Mode = domain.CopyIntoSubfolder
		plan.Model.Subfolder = modelSub
	}
	if tissueSub != "" {
		plan.Tissue.Mode = domain.CopyIntoSubfolder
		plan.Tissue.Subfolder = tissueSub
	}
	return plan
}
