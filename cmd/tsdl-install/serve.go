package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/tsdl-install/internal/install"
	installmcp "github.com/gorewood/tsdl-install/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run tsdl-install as a Model Context Protocol (MCP) server over stdio.

The server is read-only: agents can ask where tsdl would be installed and
whether it is, but cannot install or remove it.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "tsdl-install": {
        "command": "tsdl-install",
        "args": ["serve"]
      }
    }
  }

Available tools: plan, status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := installerOptions(cmd, "")
			if err != nil {
				return err
			}
			server := installmcp.NewServer(buildVersion(), serveFactory(base))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// serveFactory builds installers for MCP tool calls with escalation disabled.
func serveFactory(base install.Options) installmcp.Factory {
	base.Escalator = nil
	return func(overrides install.Options) (*install.Installer, error) {
		opts := base
		if overrides.Source != "" {
			opts.Source = overrides.Source
		}
		if overrides.Prefix != "" {
			opts.Prefix = overrides.Prefix
		}
		return install.New(opts)
	}
}
