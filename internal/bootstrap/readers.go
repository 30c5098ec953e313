package bootstrap

import "helmwatch/internal/server"

// Readers exposes the read-only half of the engine to the status API and
// the MCP tools.
func (e *Engine) Readers() server.Readers {
	return server.Readers{
		Session:    e.SessionCLI,
		Crew:       e.CrewCLI,
		Connection: e.ConnectivityCLI,
		Vitals:     e.TelemetryCLI,
		Audit:      e.AuditCLI,
		Position:   e.PositionCLI,
	}
}
