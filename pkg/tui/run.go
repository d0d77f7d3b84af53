package tui

import tea "github.com/charmbracelet/bubbletea/v2"

// Run mounts the view on the terminal. All-motion mouse reporting is required
// for hover tracking; the alt screen keeps the host shell clean.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
