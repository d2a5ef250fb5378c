// Package toolserver exposes the onboarding lookup and finalize operations
// as MCP tools over stdio.
package toolserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	contractx "github.com/warasiri/storeboard/agent/contract"
	toolx "github.com/warasiri/storeboard/agent/tool"
)

// NewServer creates an MCP server with the three onboarding tools
// registered against the given backend.
func NewServer(version string, backend contractx.ToolBackend) *server.MCPServer {
	s := server.NewMCPServer(
		"storeboard-tools",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	h := &handlers{backend: backend}

	s.AddTool(
		mcp.NewTool(toolx.ToolGetStoreInfo,
			mcp.WithDescription("Get team name and profile name for a given store ID"),
			mcp.WithString("store_id", mcp.Required(), mcp.Description("The store ID to lookup")),
		),
		h.HandleStoreInfo,
	)

	s.AddTool(
		mcp.NewTool(toolx.ToolGetB2BData,
			mcp.WithDescription("Get B2B profiles and identities for a given store ID"),
			mcp.WithString("store_id", mcp.Required(), mcp.Description("The store ID to lookup")),
		),
		h.HandleB2BData,
	)

	s.AddTool(
		mcp.NewTool(toolx.ToolOnboardUser,
			mcp.WithDescription("Start the user onboarding process"),
			mcp.WithString("store_id", mcp.Required(), mcp.Description("The store ID")),
			mcp.WithString("team_name", mcp.Required(), mcp.Description("The team name")),
			mcp.WithString("profile_name", mcp.Required(), mcp.Description("The profile name")),
			mcp.WithArray("selected_profiles", mcp.Required(),
				mcp.Description("List of selected B2B profiles"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithArray("selected_identities", mcp.Required(),
				mcp.Description("List of selected B2B identities"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		h.HandleOnboardUser,
	)

	return s
}
