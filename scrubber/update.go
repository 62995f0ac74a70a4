package scrubber

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.page.ScrollBy(-lineStep)
		case "down", "j":
			m.page.ScrollBy(lineStep)
		case "pgup":
			m.page.ScrollBy(-m.page.viewport)
		case "pgdown", " ":
			m.page.ScrollBy(m.page.viewport)
		case "home", "g":
			m.page.ScrollTo(0)
		case "end", "G":
			m.page.ScrollTo(m.page.height)
		case "r":
			m.page.ScrollTo(0)
			m.seq.Reset()
			m.recent = nil
		case "m":
			if m.muter != nil {
				m.muted = m.muter.ToggleMute()
			}
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.frame = m.seq.Tick()
		_, triggers := m.recorder.Drain()
		m.recent = append(m.recent, triggers...)
		if n := len(m.recent); n > maxRecent {
			m.recent = append([]string(nil), m.recent[n-maxRecent:]...)
		}
		return m, tickCmd(m.fps)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}
