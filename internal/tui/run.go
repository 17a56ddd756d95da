package tui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the wizard and blocks until it exits. Copy progress is
// delivered to the program from the copier's callback, which runs on
// the copy goroutine.
func Run(cfg Config, eng Engines) error {
	program := tea.NewProgram(NewModel(cfg, eng), tea.WithAltScreen())
	eng.Copier.OnProgress = func(done, total int, file string) {
		program.Send(CopyProgressMsg{Done: done, Total: total, File: file})
	}
	_, err := program.Run()
	return err
}
