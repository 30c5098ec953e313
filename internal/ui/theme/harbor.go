package theme

import "github.com/charmbracelet/lipgloss"

// Night-watch palette: dark hull, brass accents, signal colours for state.
var (
	Hull      = lipgloss.Color("#0b1a2a")
	Deck      = lipgloss.Color("#10263b")
	Rigging   = lipgloss.Color("#27425c")
	Fog       = lipgloss.Color("#8aa1b5")
	Foam      = lipgloss.Color("#e4edf5")
	Brass     = lipgloss.Color("#d8a657")
	Sea       = lipgloss.Color("#5fb3d4")
	Starboard = lipgloss.Color("#7fc97f")
	Amber     = lipgloss.Color("#f0b429")
	Port      = lipgloss.Color("#e5534b")
	Flare     = lipgloss.Color("#f4f4f4")

	App = lipgloss.NewStyle().
		Background(Hull).
		Foreground(Foam).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rigging).
		Background(Deck).
		Foreground(Foam).
		Padding(0, 1)

	PaneAlert = Pane.BorderForeground(Port)

	Title = lipgloss.NewStyle().Foreground(Brass).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Fog)
	Hot   = lipgloss.NewStyle().Foreground(Brass).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Starboard).Bold(true)
	Warn  = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	Alarm = lipgloss.NewStyle().Foreground(Port).Bold(true)
)

// ForState colours connectivity and crew states consistently across views.
func ForState(state string) lipgloss.Style {
	switch state {
	case "GOOD", "AT_OARS", "LIVE":
		return Good
	case "LAG", "DRIFTING", "FALLBACK":
		return Warn
	case "OFFLINE", "MAN_OVERBOARD":
		return Alarm
	default:
		return Muted
	}
}

// ForFlare colours an active flare.
func ForFlare(flare string) lipgloss.Style {
	switch flare {
	case "RED":
		return Alarm
	case "GREEN":
		return Good
	case "WHITE":
		return lipgloss.NewStyle().Foreground(Flare).Bold(true)
	default:
		return Muted
	}
}
