package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"helmwatch/internal/ui/app"
)

// Ports narrows the engine's handlers to what the dashboard drives.
func (e *Engine) Ports() app.Ports {
	return app.Ports{
		Session:    e.SessionCLI,
		Crew:       e.CrewCLI,
		Safety:     e.SafetyCLI,
		Presence:   e.PresenceTUI,
		Connection: e.ConnectivityCLI,
		Position:   e.PositionCLI,
		Telemetry:  e.TelemetryTUI,
		Toasts:     e.Toasts,
	}
}

// RunTUI attaches the engine and runs the dashboard until the operator
// quits. Focus reporting feeds the tab-away drift rule.
func RunTUI(ctx context.Context, e *Engine) error {
	if err := e.Attach(ctx); err != nil {
		return err
	}
	defer e.Detach()

	model := app.NewModel(e.Ports(), nil)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	model.Shutdown()
	return err
}
