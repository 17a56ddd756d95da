package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"stlcopy/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseTerms:
		b.WriteString(m.renderTerms())
	case PhaseSearching:
		b.WriteString(fmt.Sprintf("%s Searching...", m.spinner.View()))
	case PhaseSelect:
		b.WriteString(m.renderSelect())
	case PhaseAnalyzing:
		b.WriteString(fmt.Sprintf("%s Calculating size & checking types...", m.spinner.View()))
	case PhaseSummary:
		b.WriteString(m.renderSummary())
	case PhaseDestination:
		b.WriteString(m.renderDestination())
	case PhaseConfirm:
		b.WriteString(m.renderDestination())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseCopying:
		b.WriteString(m.renderCopying())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconFolder + " stlcopy")

	var subtitle string
	if m.cfg.Mode == ModeFiles {
		subtitle = subtitleStyle.Render(fmt.Sprintf("Searching files recursively in %s", m.cfg.Queue.Label))
	} else {
		labels := make([]string, 0, len(m.cfg.Roots))
		for _, root := range m.cfg.Roots {
			labels = append(labels, root.Label)
		}
		subtitle = subtitleStyle.Render("Searching top-level folders in " + strings.Join(labels, ", "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m Model) renderTerms() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Search Terms"))
	b.WriteString("\n\n")
	b.WriteString("  Enter terms, separated by commas:\n\n")
	b.WriteString("  " + m.termsInput.View())
	return b.String()
}

func (m Model) renderSelect() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Search Results"))
	b.WriteString("\n\n")

	if len(m.folders) == 0 {
		b.WriteString(dimStyle.Render("  No matching folders found."))
		b.WriteString("\n")
	} else {
		b.WriteString(successStyle.Render(fmt.Sprintf("  %s Found %d matching folder(s)", iconSuccess, len(m.folders))))
		b.WriteString("\n\n")
		for i, folder := range m.folders {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			check := "[ ]"
			nameStyle := fileNameStyle
			if m.selected[i] {
				check = selectedStyle.Render("[x]")
				nameStyle = selectedStyle
			}
			parent := filepath.Base(filepath.Dir(folder.Path))
			b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
				cursor, check,
				nameStyle.Render(folder.Name),
				originStyle.Render(fmt.Sprintf("(in ...%s, %s)", parent, folder.Origin.Label)),
			))
		}
	}

	if len(m.notFound) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("  Folders not found for search term(s):"))
		b.WriteString("\n")
		for _, term := range m.notFound {
			b.WriteString(dimStyle.Render("    - " + term))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Selection Summary"))
	b.WriteString("\n\n")

	if m.cfg.Mode == ModeFiles {
		if len(m.files) == 0 {
			b.WriteString(dimStyle.Render("  No matching STL files found in the print queue."))
			b.WriteString("\n")
			return b.String() + m.renderSummaryWarnings()
		}
		b.WriteString(successStyle.Render(fmt.Sprintf("  %s Found %d matching STL file(s)", iconSuccess, len(m.files))))
		b.WriteString("\n\n")
		shown := min(len(m.files), 8)
		for _, path := range m.files[:shown] {
			b.WriteString("  " + fileNameStyle.Render(filepath.Base(path)) + "\n")
		}
		if len(m.files) > shown {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more\n", len(m.files)-shown)))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n",
		statLabelStyle.Render("Model files size (display):"),
		statValueStyle.Render(domain.FormatSize(m.analysis.DisplayModelBytes))))

	totalLine := fmt.Sprintf("  %s  %s\n",
		statLabelStyle.Render("Total copy size:"),
		statValueStyle.Render(domain.FormatSize(m.analysis.TotalCopyableBytes)))
	b.WriteString(totalLine)

	if m.blocked {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %s Total copy size exceeds the %s cap. Copying is blocked.",
			iconError, domain.FormatSize(m.cfg.CapBytes))))
		b.WriteString("\n")
	}
	if m.analysis.NonSTLFound {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %s Selection includes non-STL files (won't be copied).", iconWarn)))
		b.WriteString("\n")
	}
	if m.analysis.TissueFound {
		b.WriteString(tissueFileStyle.Render(fmt.Sprintf("  %s Selection includes tissue/gingiva files.", iconTissue)))
		b.WriteString("\n")
	}
	if len(m.analysis.EmptyFolders) > 0 {
		b.WriteString(warningStyle.Render("  Selected folders empty or inaccessible:"))
		b.WriteString("\n")
		for _, path := range m.analysis.EmptyFolders {
			b.WriteString(dimStyle.Render("    - " + filepath.Base(path)))
			b.WriteString("\n")
		}
	}
	return b.String() + m.renderSummaryWarnings()
}

func (m Model) renderSummaryWarnings() string {
	warnings := append(append([]string{}, m.warnings...), m.analysis.Warnings...)
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(warningStyle.Render("  Warnings:"))
	b.WriteString("\n")
	for _, warning := range warnings {
		b.WriteString(dimStyle.Render("    - " + warning))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDestination() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Destination"))
	b.WriteString("\n\n")

	modelBase := m.cfg.ModelBase
	if m.cfg.Mode == ModeFiles {
		modelBase = m.cfg.Queue.Path
	}
	b.WriteString(fmt.Sprintf("  %s %s\n\n", modelFileStyle.Render(iconModel+" Model base:"), dimStyle.Render(modelBase)))
	b.WriteString(m.renderModeRow(rowModelMode, "Model files:", m.modelMode))
	if m.modelMode == domain.CopyIntoSubfolder {
		b.WriteString(m.renderNameRow(rowModelName, m.modelName.View()))
	}

	if m.tissueStreamActive() {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n\n", tissueFileStyle.Render(iconTissue+" Tissue base:"), dimStyle.Render(m.cfg.TissueBase)))
		b.WriteString(m.renderModeRow(rowTissueMode, "Tissue files:", m.tissueMode))
		if m.tissueMode == domain.CopyIntoSubfolder {
			b.WriteString(m.renderNameRow(rowTissueName, m.tissueName.View()))
		}
	}

	b.WriteString("\n")
	check := "[ ]"
	if m.reveal {
		check = selectedStyle.Render("[x]")
	}
	b.WriteString(fmt.Sprintf("  %s%s Open destination folder(s) after successful copy\n",
		m.rowCursor(rowReveal), check))

	b.WriteString("\n")
	continueLabel := " Continue "
	if m.focus == rowContinue {
		b.WriteString("  " + highlightBoxStyle.Render(continueLabel) + "\n")
	} else {
		b.WriteString("  " + boxStyle.Render(continueLabel) + "\n")
	}

	if m.destErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + iconError + " " + m.destErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderModeRow(row int, label string, mode domain.CopyMode) string {
	direct := " Directly into base "
	sub := " Into a new subfolder "
	if mode == domain.CopyDirect {
		direct = highlightBoxStyle.Render(direct)
		sub = boxStyle.Render(sub)
	} else {
		direct = boxStyle.Render(direct)
		sub = highlightBoxStyle.Render(sub)
	}
	return fmt.Sprintf("  %s%s %s\n", m.rowCursor(row), statLabelStyle.Render(label),
		lipgloss.JoinHorizontal(lipgloss.Center, direct, " ", sub))
}

func (m Model) renderNameRow(row int, input string) string {
	return fmt.Sprintf("  %s%s %s\n", m.rowCursor(row), statLabelStyle.Render("Subfolder name:"), input)
}

func (m Model) rowCursor(row int) string {
	if m.focus == row {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func (m Model) renderConfirmPrompt() string {
	count := m.copySubject()
	prompt := confirmPromptStyle.Render(fmt.Sprintf("Copy %s now?", count))

	var yesBtn, noBtn string
	if m.confirmSelection {
		yesBtn = highlightBoxStyle.Background(lipgloss.Color("#2D5A27")).Render(" Yes ")
		noBtn = boxStyle.Render(" No ")
	} else {
		yesBtn = boxStyle.Render(" Yes ")
		noBtn = highlightBoxStyle.Background(lipgloss.Color("#5A2727")).Render(" No ")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, "  ", noBtn)
	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", buttons)
}

func (m Model) copySubject() string {
	if m.cfg.Mode == ModeFiles {
		return fmt.Sprintf("%d STL file(s)", len(m.files))
	}
	return fmt.Sprintf("STL files from %d folder(s)", m.selectionCount())
}

func (m Model) renderCopying() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Copying Files"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.copyTotal > 0 {
		percent = float64(m.copyDone) / float64(m.copyTotal)
	}

	b.WriteString(fmt.Sprintf("  %s Copying...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.copyDone, m.copyTotal)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Copy Complete"))
	b.WriteString("\n\n")

	switch m.Outcome.Status() {
	case domain.CopyStatusSuccess:
		b.WriteString(successStyle.Render(fmt.Sprintf("  %s Successfully copied %d STL file(s).", iconSuccess, m.Outcome.Copied)))
	case domain.CopyStatusSuccessWithErrors:
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %s Copied %d STL file(s) with %d error(s).", iconWarn, m.Outcome.Copied, m.Outcome.Errors)))
	case domain.CopyStatusFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %s Copy failed. Encountered %d error(s).", iconError, m.Outcome.Errors)))
	case domain.CopyStatusNothingTransferred:
		if m.Outcome.Expected > 0 {
			b.WriteString(warningStyle.Render("  Attempted copy, but no files matching criteria were transferred."))
		} else {
			b.WriteString(warningStyle.Render("  No STL files matching criteria found."))
		}
	}
	b.WriteString("\n")

	if m.Outcome.Overwritten > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Overwrote %d existing file(s).", m.Outcome.Overwritten)))
		b.WriteString("\n")
	}
	if m.Outcome.Copied > 0 {
		b.WriteString("\n")
		for _, dest := range m.Outcome.Destinations {
			b.WriteString(fmt.Sprintf("  %s %s\n", iconArrow, dimStyle.Render(dest)))
		}
	}
	if len(m.Outcome.Warnings) > 0 {
		b.WriteString("\n")
		for _, warning := range m.Outcome.Warnings {
			b.WriteString(warningStyle.Render("  " + iconWarn + " " + warning))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))
	return highlightBoxStyle.BorderForeground(errorColor).Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseTerms:
		help = "Enter to search • Esc to quit"
	case PhaseSearching, PhaseAnalyzing:
		help = "Press q to quit"
	case PhaseSelect:
		if len(m.folders) == 0 {
			help = "n for a new search • q to quit"
		} else {
			help = "↑/↓ move • Space select • a select all • Enter analyze • n new search • q quit"
		}
	case PhaseSummary:
		if m.blocked || m.nothingToCopy() {
			help = "n for a new search • q to quit"
		} else {
			help = "Enter to choose destination • n new search • q quit"
		}
	case PhaseDestination:
		help = "↑/↓ or Tab move • ←/→ toggle • Enter continue • Esc back"
	case PhaseConfirm:
		help = "← → or y/n to select • Enter to confirm • Esc back"
	case PhaseCopying:
		help = "Copying files... Please wait"
	case PhaseDone:
		help = "n for a new search • Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}
