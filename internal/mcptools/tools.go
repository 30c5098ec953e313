// Package mcptools exposes the engine's read-only status over the Model
// Context Protocol so an assistant can ask how the voyage is going.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"helmwatch/internal/server"
)

const (
	serverName          = "helmwatch"
	defaultHistoryLimit = 10
)

// New registers every status tool on a fresh MCP server.
func New(readers server.Readers, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	t := tools{readers: readers}

	s.AddTool(mcp.NewTool("crew_list",
		mcp.WithDescription("List every crew member with status and active flare"),
	), t.crewList)
	s.AddTool(mcp.NewTool("crew_get",
		mcp.WithDescription("Show one crew member"),
		mcp.WithString("id", mcp.Required(), mcp.Description("crew member id")),
	), t.crewGet)
	s.AddTool(mcp.NewTool("session_status",
		mcp.WithDescription("Show the open voyage: elapsed time, catch, earnings, overtime"),
	), t.sessionStatus)
	s.AddTool(mcp.NewTool("session_history",
		mcp.WithDescription("List recent voyages, newest first"),
		mcp.WithNumber("limit", mcp.Description("how many voyages to return")),
	), t.sessionHistory)
	s.AddTool(mcp.NewTool("logbook",
		mcp.WithDescription("Read the logbook entry of a closed voyage as markdown"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("voyage id")),
	), t.logbook)
	s.AddTool(mcp.NewTool("connection_status",
		mcp.WithDescription("Show link quality: GOOD, LAG or OFFLINE with last latency"),
	), t.connection)
	s.AddTool(mcp.NewTool("vitals",
		mcp.WithDescription("Show fps history, host environment and recent diagnostic log"),
	), t.vitals)
	s.AddTool(mcp.NewTool("audit_count",
		mcp.WithDescription("Count audit records, optionally by type and crew member"),
		mcp.WithString("type", mcp.Description("record type, e.g. DRIFT or SAFETY_CHECK")),
		mcp.WithString("crew_id", mcp.Description("crew member id")),
	), t.auditCount)
	s.AddTool(mcp.NewTool("position",
		mcp.WithDescription("Show the last resolved position"),
	), t.position)
	return s
}

// ServeStdio answers requests on stdin/stdout until ctx is cancelled or
// stdin closes.
func ServeStdio(ctx context.Context, s *mcpserver.MCPServer, stdin io.Reader, stdout io.Writer) error {
	err := mcpserver.NewStdioServer(s).Listen(ctx, stdin, stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type tools struct {
	readers server.Readers
}

func (t tools) crewList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.readers.Crew.List(ctx))
}

func (t tools) crewGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(t.readers.Crew.Get(ctx, id))
}

func (t tools) sessionStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.readers.Session.Status(ctx))
}

func (t tools) sessionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}
	return result(t.readers.Session.History(ctx, limit))
}

func (t tools) logbook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := t.readers.Session.Logbook(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(entry.Markdown), nil
}

func (t tools) connection(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.readers.Connection.Status(ctx))
}

func (t tools) vitals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.readers.Vitals.Vitals(ctx))
}

func (t tools) auditCount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := t.readers.Audit.Count(ctx, req.GetString("type", ""), req.GetString("crew_id", ""))
	return result(map[string]int{"count": n}, err)
}

func (t tools) position(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(t.readers.Position.Last(ctx))
}

// result reports domain failures as tool errors so the caller sees them;
// only encoding failures fail the call itself.
func result(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}
