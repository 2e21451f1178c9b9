// Package mcp exposes sync cycles as Model Context Protocol tools.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/hevy2notion/internal/syncer"
)

// New creates an MCP server with all tools and resources registered.
func New(s *syncer.Syncer, version string, log *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("hevy2notion", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("hevy2notion mirrors the most recent Hevy workout into a Notion page. Preview before syncing; a workout already synced is skipped unless the sync state is cleared."),
	)

	h := &handlers{syncer: s, log: log}

	srv.AddTools(
		server.ServerTool{Tool: toolSyncLatestWorkout, Handler: h.syncLatestWorkout},
		server.ServerTool{Tool: toolPreviewLatestWorkout, Handler: h.previewLatestWorkout},
		server.ServerTool{Tool: toolGetSyncState, Handler: h.getSyncState},
		server.ServerTool{Tool: toolClearSyncState, Handler: h.clearSyncState},
	)

	srv.AddResources(
		server.ServerResource{Resource: resSyncState, Handler: h.syncState},
	)

	return srv
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	syncer *syncer.Syncer
	log    *slog.Logger
}

var resSyncState = mcp.NewResource(
	"hevy2notion://sync_state",
	"Sync State",
	mcp.WithResourceDescription("Id of the last workout mirrored into Notion"),
	mcp.WithMIMEType("application/json"),
)
