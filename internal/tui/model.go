package tui

import (
	"context"
	"strings"
	"time"

	"stlcopy/internal/app"
	"stlcopy/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects which of the two search flows the wizard runs.
type Mode int

const (
	ModeFolders Mode = iota
	ModeFiles
)

// Phase represents the current step of the wizard.
type Phase int

const (
	PhaseTerms Phase = iota
	PhaseSearching
	PhaseSelect
	PhaseAnalyzing
	PhaseSummary
	PhaseDestination
	PhaseConfirm
	PhaseCopying
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	FoldersFoundMsg struct {
		Folders  []domain.FoundFolder
		NotFound []string
	}
	FilesFoundMsg struct {
		Paths    []string
		Warnings []string
	}
	AnalysisMsg struct {
		Result domain.AnalysisResult
	}
	CopyProgressMsg struct {
		Done  int
		Total int
		File  string
	}
	CopyDoneMsg struct {
		Outcome domain.CopyOutcome
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Engines are the pure core operations the wizard drives. The wizard
// owns all session state and re-invokes them explicitly when its
// inputs change.
type Engines struct {
	Discoverer *app.Discoverer
	Analyzer   *app.Analyzer
	Copier     *app.Copier
}

// Config for the wizard.
type Config struct {
	Mode       Mode
	Roots      []domain.SearchRoot
	Queue      domain.SearchRoot
	ModelBase  string
	TissueBase string
	CapBytes   int64

	Reveal       bool
	InitialTerms []string
}

// Destination form rows.
const (
	rowModelMode = iota
	rowModelName
	rowTissueMode
	rowTissueName
	rowReveal
	rowContinue
)

// Model is the wizard state machine.
type Model struct {
	cfg Config
	eng Engines

	Phase Phase

	termsInput textinput.Model
	terms      []string

	folders  []domain.FoundFolder
	notFound []string
	files    []string
	warnings []string

	cursor   int
	selected map[int]bool

	analysis domain.AnalysisResult
	blocked  bool

	focus      int
	modelMode  domain.CopyMode
	modelName  textinput.Model
	tissueMode domain.CopyMode
	tissueName textinput.Model
	reveal     bool
	destErr    string

	confirmSelection bool

	spinner     spinner.Model
	progress    progress.Model
	copyDone    int
	copyTotal   int
	currentFile string

	Outcome domain.CopyOutcome
	Err     error

	Quitting bool
	width    int
	height   int
}

// NewModel creates the wizard in the term-entry phase.
func NewModel(cfg Config, eng Engines) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	terms := textinput.New()
	terms.Placeholder = "e.g. 2025-12345, modelbase"
	terms.CharLimit = 200
	terms.Width = 50
	terms.SetValue(strings.Join(cfg.InitialTerms, ", "))
	terms.Focus()

	modelName := textinput.New()
	modelName.Placeholder = "e.g. Project_Models"
	modelName.CharLimit = 80
	modelName.Width = 40

	tissueName := textinput.New()
	tissueName.Placeholder = "e.g. Project_Tissue"
	tissueName.CharLimit = 80
	tissueName.Width = 40

	return Model{
		cfg:        cfg,
		eng:        eng,
		Phase:      PhaseTerms,
		termsInput: terms,
		modelName:  modelName,
		tissueName: tissueName,
		reveal:     cfg.Reveal,
		selected:   map[int]bool{},
		spinner:    s,
		progress:   p,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case FoldersFoundMsg:
		m.folders = msg.Folders
		m.notFound = msg.NotFound
		m.cursor = 0
		m.selected = map[int]bool{}
		m.Phase = PhaseSelect
		return m, nil

	case FilesFoundMsg:
		m.files = msg.Paths
		m.warnings = msg.Warnings
		if len(m.files) == 0 {
			m.analysis = domain.AnalysisResult{}
			m.blocked = false
			m.Phase = PhaseSummary
			return m, nil
		}
		m.Phase = PhaseAnalyzing
		return m, tea.Batch(m.spinner.Tick, m.analyzeCmd())

	case AnalysisMsg:
		m.analysis = msg.Result
		m.blocked = msg.Result.ExceedsCap(m.cfg.CapBytes)
		m.Phase = PhaseSummary
		return m, nil

	case CopyProgressMsg:
		m.copyDone = msg.Done
		m.copyTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case CopyDoneMsg:
		m.Outcome = msg.Outcome
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Err = msg.Err
		m.Phase = PhaseError
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseSearching || m.Phase == PhaseAnalyzing || m.Phase == PhaseCopying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseCopying {
			var cmds []tea.Cmd
			if m.copyTotal > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.copyDone)/float64(m.copyTotal)))
			}
			cmds = append(cmds, tickCmd(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Phase {
	case PhaseTerms:
		switch msg.String() {
		case "enter":
			terms := parseTerms(m.termsInput.Value())
			if len(terms) == 0 {
				return m, nil
			}
			m.terms = terms
			m.Phase = PhaseSearching
			return m, tea.Batch(m.spinner.Tick, m.searchCmd())
		case "esc":
			m.Quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.termsInput, cmd = m.termsInput.Update(msg)
		return m, cmd

	case PhaseSelect:
		switch msg.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "n":
			return m.resetToTerms()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.folders)-1 {
				m.cursor++
			}
		case " ":
			if len(m.folders) > 0 {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "a":
			all := len(m.selected) != len(m.folders)
			for i := range m.folders {
				m.selected[i] = all
			}
			if !all {
				m.selected = map[int]bool{}
			}
		case "enter":
			if m.selectionCount() == 0 {
				return m, nil
			}
			m.Phase = PhaseAnalyzing
			return m, tea.Batch(m.spinner.Tick, m.analyzeCmd())
		}
		return m, nil

	case PhaseSummary:
		switch msg.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "n":
			return m.resetToTerms()
		case "enter":
			if m.blocked || m.nothingToCopy() {
				return m, nil
			}
			m.focus = rowModelMode
			m.destErr = ""
			m.Phase = PhaseDestination
			return m, nil
		}
		return m, nil

	case PhaseDestination:
		return m.updateDestination(msg)

	case PhaseConfirm:
		switch msg.String() {
		case "q", "esc":
			m.Phase = PhaseDestination
			return m, nil
		case "left", "h", "y", "Y":
			m.confirmSelection = true
		case "right", "l", "n", "N":
			m.confirmSelection = false
		case "enter":
			if !m.confirmSelection {
				m.Phase = PhaseDestination
				return m, nil
			}
			m.copyDone = 0
			m.copyTotal = 0
			m.currentFile = ""
			m.Phase = PhaseCopying
			return m, tea.Batch(tickCmd(), m.spinner.Tick, m.copyCmd())
		}
		return m, nil

	case PhaseDone:
		switch msg.String() {
		case "n":
			return m.resetToTerms()
		case "enter", "q":
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil

	case PhaseError:
		switch msg.String() {
		case "enter", "q":
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Searching, analyzing and copying phases only allow quitting.
	if msg.String() == "q" && m.Phase != PhaseCopying {
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDestination(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.visibleRows()

	switch msg.String() {
	case "esc":
		m.Phase = PhaseSummary
		return m, nil
	case "up", "shift+tab":
		m.focus = prevRow(rows, m.focus)
		return m.syncNameFocus(), nil
	case "down", "tab":
		m.focus = nextRow(rows, m.focus)
		return m.syncNameFocus(), nil
	}

	switch m.focus {
	case rowModelMode:
		if key := msg.String(); key == "left" || key == "right" || key == " " || key == "enter" {
			m.modelMode = toggleMode(m.modelMode)
			m.destErr = ""
			return m.syncNameFocus(), nil
		}
	case rowTissueMode:
		if key := msg.String(); key == "left" || key == "right" || key == " " || key == "enter" {
			m.tissueMode = toggleMode(m.tissueMode)
			m.destErr = ""
			return m.syncNameFocus(), nil
		}
	case rowModelName:
		if msg.String() == "enter" {
			m.focus = nextRow(rows, m.focus)
			return m.syncNameFocus(), nil
		}
		var cmd tea.Cmd
		m.modelName, cmd = m.modelName.Update(msg)
		m.destErr = ""
		return m, cmd
	case rowTissueName:
		if msg.String() == "enter" {
			m.focus = nextRow(rows, m.focus)
			return m.syncNameFocus(), nil
		}
		var cmd tea.Cmd
		m.tissueName, cmd = m.tissueName.Update(msg)
		m.destErr = ""
		return m, cmd
	case rowReveal:
		if key := msg.String(); key == " " || key == "enter" || key == "left" || key == "right" {
			m.reveal = !m.reveal
			return m, nil
		}
	case rowContinue:
		if msg.String() == "enter" {
			if err := m.validateDestinations(); err != "" {
				m.destErr = err
				return m, nil
			}
			m.confirmSelection = false
			m.Phase = PhaseConfirm
			return m, nil
		}
	}

	if msg.String() == "q" && m.focus != rowModelName && m.focus != rowTissueName {
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// visibleRows lists the destination rows that apply to the current
// mode and analysis.
func (m Model) visibleRows() []int {
	rows := []int{rowModelMode}
	if m.modelMode == domain.CopyIntoSubfolder {
		rows = append(rows, rowModelName)
	}
	if m.tissueStreamActive() {
		rows = append(rows, rowTissueMode)
		if m.tissueMode == domain.CopyIntoSubfolder {
			rows = append(rows, rowTissueName)
		}
	}
	return append(rows, rowReveal, rowContinue)
}

func (m Model) tissueStreamActive() bool {
	return m.cfg.Mode == ModeFolders && m.analysis.TissueFound
}

func (m Model) syncNameFocus() Model {
	if m.focus == rowModelName {
		m.modelName.Focus()
	} else {
		m.modelName.Blur()
	}
	if m.focus == rowTissueName {
		m.tissueName.Focus()
	} else {
		m.tissueName.Blur()
	}
	// Keep focus on a visible row after a mode toggle hid one.
	rows := m.visibleRows()
	for _, row := range rows {
		if row == m.focus {
			return m
		}
	}
	m.focus = rows[0]
	return m
}

func (m Model) validateDestinations() string {
	if m.modelMode == domain.CopyIntoSubfolder && !domain.IsValidFolderName(strings.TrimSpace(m.modelName.Value())) {
		return "invalid model subfolder name"
	}
	if m.tissueStreamActive() && m.tissueMode == domain.CopyIntoSubfolder && !domain.IsValidFolderName(strings.TrimSpace(m.tissueName.Value())) {
		return "invalid tissue subfolder name"
	}
	return ""
}

func (m Model) resetToTerms() (tea.Model, tea.Cmd) {
	fresh := NewModel(m.cfg, m.eng)
	fresh.cfg.InitialTerms = nil
	fresh.termsInput.SetValue("")
	fresh.width = m.width
	fresh.height = m.height
	fresh.reveal = m.reveal
	return fresh, textinput.Blink
}

func (m Model) selectionCount() int {
	count := 0
	for _, on := range m.selected {
		if on {
			count++
		}
	}
	return count
}

func (m Model) nothingToCopy() bool {
	if m.cfg.Mode == ModeFiles {
		return len(m.files) == 0
	}
	return false
}

func (m Model) selectedFolders() []domain.SelectedFolder {
	var selection []domain.SelectedFolder
	for i, folder := range m.folders {
		if m.selected[i] {
			selection = append(selection, domain.SelectedFolder{Path: folder.Path, Origin: folder.Origin})
		}
	}
	return selection
}

func (m Model) searchCmd() tea.Cmd {
	cfg, eng, terms := m.cfg, m.eng, m.terms
	return func() tea.Msg {
		if cfg.Mode == ModeFiles {
			paths, warnings := eng.Discoverer.FindFilesRecursively(cfg.Queue, terms)
			return FilesFoundMsg{Paths: paths, Warnings: warnings}
		}
		folders := eng.Discoverer.FindFolders(cfg.Roots, terms)
		return FoldersFoundMsg{Folders: folders, NotFound: app.NotFoundTerms(terms, folders)}
	}
}

func (m Model) analyzeCmd() tea.Cmd {
	cfg, eng := m.cfg, m.eng
	files := m.files
	selection := m.selectedFolders()
	return func() tea.Msg {
		if cfg.Mode == ModeFiles {
			return AnalysisMsg{Result: eng.Analyzer.AnalyzeFiles(context.Background(), files)}
		}
		return AnalysisMsg{Result: eng.Analyzer.AnalyzeFolders(context.Background(), selection)}
	}
}

func (m Model) copyCmd() tea.Cmd {
	req := m.buildRequest()
	eng := m.eng
	return func() tea.Msg {
		outcome, err := eng.Copier.Copy(context.Background(), req)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return CopyDoneMsg{Outcome: outcome}
	}
}

func (m Model) buildRequest() app.CopyRequest {
	if m.cfg.Mode == ModeFiles {
		return app.CopyRequest{
			Mode:  app.SourceFiles,
			Files: m.files,
			Plan: domain.CopyPlan{
				Model: domain.DestSpec{
					Base:      m.cfg.Queue.Path,
					Mode:      m.modelMode,
					Subfolder: strings.TrimSpace(m.modelName.Value()),
				},
			},
			Reveal: m.reveal,
		}
	}
	return app.CopyRequest{
		Mode:    app.SourceFolders,
		Folders: m.selectedFolders(),
		Plan: domain.CopyPlan{
			Model: domain.DestSpec{
				Base:      m.cfg.ModelBase,
				Mode:      m.modelMode,
				Subfolder: strings.TrimSpace(m.modelName.Value()),
			},
			Tissue: domain.DestSpec{
				Base:      m.cfg.TissueBase,
				Mode:      m.tissueMode,
				Subfolder: strings.TrimSpace(m.tissueName.Value()),
			},
		},
		TissueExpected: m.analysis.TissueFound,
		Reveal:         m.reveal,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func parseTerms(input string) []string {
	var terms []string
	for _, part := range strings.Split(input, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func toggleMode(mode domain.CopyMode) domain.CopyMode {
	if mode == domain.CopyDirect {
		return domain.CopyIntoSubfolder
	}
	return domain.CopyDirect
}

func prevRow(rows []int, focus int) int {
	for i, row := range rows {
		if row == focus && i > 0 {
			return rows[i-1]
		}
	}
	return rows[0]
}

func nextRow(rows []int, focus int) int {
	for i, row := range rows {
		if row == focus && i < len(rows)-1 {
			return rows[i+1]
		}
	}
	return rows[len(rows)-1]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
