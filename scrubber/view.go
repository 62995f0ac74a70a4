package scrubber

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robmorgan/liftoff/journey"
	"github.com/robmorgan/liftoff/track"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	soundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	appStyle   = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), titleStyle.Render("LIFTOFF"))
	b.WriteString(m.bar.ViewAs(m.frame.Progress))
	b.WriteString("\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render(label), value)
	}
	row("phase", phaseStyle.Render(m.Phase()))
	row("clock", m.value("mission-clock", track.KeyClock))
	row("velocity", fmt.Sprintf("%.0f px/s", m.frame.Velocity))
	row("alert", m.owner(journey.AlertSlot))
	row("panel", m.owner(journey.PanelSlot))
	row("flare", m.owner(journey.FlareSlot))

	sounds := "-"
	if len(m.recent) > 0 {
		sounds = soundStyle.Render(strings.Join(m.recent, " "))
	}
	row("sounds", sounds)
	if m.muted {
		row("", "muted")
	}

	b.WriteString(helpStyle.Render("↑/↓ scroll • pgup/pgdn page • home/end • r reset • m mute • q quit"))
	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}
