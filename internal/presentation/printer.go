package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"stlcopy/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintFolderSearch reports a folder search: what was found, grouped by
// origin, and which terms matched nothing.
func (p Printer) PrintFolderSearch(folders []domain.FoundFolder, notFound []string) {
	if len(folders) == 0 {
		fmt.Fprintln(p.Writer, "No matching folders found.")
	} else {
		fmt.Fprintf(p.Writer, "Found %d matching folder(s):\n", len(folders))
		for _, folder := range folders {
			fmt.Fprintf(p.Writer, "  %s  (%s)\n", folder.Name, folder.Origin.Label)
		}
	}

	if len(notFound) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Folders not found for search term(s):")
		for _, term := range notFound {
			fmt.Fprintf(p.Writer, "  - %s\n", term)
		}
	}
}

// PrintFileSearch reports a recursive file search.
func (p Printer) PrintFileSearch(paths []string, warnings []string) {
	if len(paths) == 0 {
		fmt.Fprintln(p.Writer, "No matching STL files found.")
	} else {
		fmt.Fprintf(p.Writer, "Found %d matching STL file(s):\n", len(paths))
		for _, line := range truncatedNames(paths, 20) {
			fmt.Fprintf(p.Writer, "  %s\n", line)
		}
	}
	p.printWarnings(warnings)
}

// PrintAnalysis reports the selection summary and the size-cap gate.
func (p Printer) PrintAnalysis(result domain.AnalysisResult, capBytes int64) {
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Model files size (display): %s\n", domain.FormatSize(result.DisplayModelBytes))
	if result.ExceedsCap(capBytes) {
		fmt.Fprintf(p.Writer, "Total copy size %s exceeds the %s cap! Copying is blocked.\n",
			domain.FormatSize(result.TotalCopyableBytes), domain.FormatSize(capBytes))
	} else {
		fmt.Fprintf(p.Writer, "Total copy size: %s\n", domain.FormatSize(result.TotalCopyableBytes))
	}

	if result.NonSTLFound {
		fmt.Fprintln(p.Writer, "Selection includes non-STL files (they will not be copied).")
	}
	if result.TissueFound {
		fmt.Fprintln(p.Writer, "Selection includes tissue/gingiva files.")
	}
	if len(result.EmptyFolders) > 0 {
		fmt.Fprintln(p.Writer, "Selected folders empty or inaccessible:")
		for _, path := range result.EmptyFolders {
			fmt.Fprintf(p.Writer, "  - %s\n", filepath.Base(path))
		}
	}
	p.printWarnings(result.Warnings)
}

// PrintOutcome reports the single terminal status of a copy invocation.
func (p Printer) PrintOutcome(outcome domain.CopyOutcome) {
	fmt.Fprintln(p.Writer)
	switch outcome.Status() {
	case domain.CopyStatusSuccess:
		fmt.Fprintf(p.Writer, "Successfully copied %d STL file(s).\n", outcome.Copied)
	case domain.CopyStatusSuccessWithErrors:
		fmt.Fprintf(p.Writer, "Copied %d STL file(s) with %d error(s).\n", outcome.Copied, outcome.Errors)
	case domain.CopyStatusFailed:
		fmt.Fprintf(p.Writer, "Copy failed. Encountered %d error(s).\n", outcome.Errors)
	case domain.CopyStatusNothingTransferred:
		if outcome.Expected > 0 {
			fmt.Fprintln(p.Writer, "Attempted copy, but no files matching criteria were transferred.")
		} else {
			fmt.Fprintln(p.Writer, "No STL files matching criteria found.")
		}
	}

	if outcome.Overwritten > 0 {
		fmt.Fprintf(p.Writer, "Overwrote %d existing file(s).\n", outcome.Overwritten)
	}
	if outcome.Copied > 0 {
		for _, dest := range outcome.Destinations {
			fmt.Fprintf(p.Writer, "  -> %s\n", dest)
		}
	}
	p.printWarnings(outcome.Warnings)
}

func (p Printer) printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Warnings:")
	for _, warning := range warnings {
		fmt.Fprintln(p.Writer, "- "+warning)
	}
}

// truncatedNames renders base names, eliding the middle of long lists.
func truncatedNames(paths []string, max int) []string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	if len(names) <= max {
		return names
	}
	head := names[:max]
	return append(head, fmt.Sprintf("... and %d more", len(names)-max))
}
