// Package mcp provides a Model Context Protocol server for tsdl-install.
// It exposes read-only installation queries so an agent can check where tsdl
// would go and whether it is already usable.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/tsdl-install/internal/install"
)

// Factory builds an installer for one tool call. Overrides come from the
// tool input and are applied on top of the server's defaults.
type Factory func(overrides install.Options) (*install.Installer, error)

// NewServer creates an MCP server with the plan and status tools registered.
func NewServer(version string, factory Factory) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tsdl-install",
		Version: version,
	}, nil)
	registerTools(server, factory)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all tools to the server. Installing is deliberately not
// a tool: it can require an interactive sudo prompt.
func registerTools(server *mcp.Server, factory Factory) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan",
		Description: "Resolve where tsdl would be installed: source artifact, destination directory, wrapper, and whether privilege escalation or a PATH update is needed. Changes nothing.",
		Annotations: readOnlyAnnotations(),
	}, handlePlan(factory))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Report whether tsdl is installed, executable, identical to the source artifact, and reachable on PATH.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(factory))
}
