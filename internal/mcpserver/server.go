package mcpserver

import (
	"context"
	"io"

	"f2bsentinel/internal/fail2ban"
	"f2bsentinel/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "f2bsentinel"
	subsystem  = "MCPServer"
)

// Server serves the fail2ban tools.
type Server struct {
	client *fail2ban.Client
	mcp    *server.MCPServer
}

// New registers the tools on a fresh MCP server.
func New(client *fail2ban.Client, version string) *Server {
	s := &Server{client: client}
	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	s.mcp.AddTools(s.Tools()...)
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Tools returns the tool definitions with their handlers.
func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("list_jails",
				mcp.WithDescription("List every fail2ban jail with its ban count and settings"),
			),
			Handler: s.handleListJails,
		},
		{
			Tool: mcp.NewTool("get_jail",
				mcp.WithDescription("Show one jail and its banned addresses"),
				mcp.WithString("jail",
					mcp.Required(),
					mcp.Description("Name of the jail"),
				),
				mcp.WithString("filter",
					mcp.Description("Only return addresses containing this text (case-insensitive)"),
				),
			),
			Handler: s.handleGetJail,
		},
		{
			Tool: mcp.NewTool("ban_ip",
				mcp.WithDescription("Ban an IPv4 or IPv6 address in a jail"),
				mcp.WithString("jail",
					mcp.Required(),
					mcp.Description("Name of the jail"),
				),
				mcp.WithString("ip",
					mcp.Required(),
					mcp.Description("Address to ban"),
				),
			),
			Handler: s.handleBanIP,
		},
		{
			Tool: mcp.NewTool("unban_ip",
				mcp.WithDescription("Remove a ban from a jail"),
				mcp.WithString("jail",
					mcp.Required(),
					mcp.Description("Name of the jail"),
				),
				mcp.WithString("ip",
					mcp.Required(),
					mcp.Description("Address to unban"),
				),
			),
			Handler: s.handleUnbanIP,
		},
	}
}

// Serve speaks MCP over in and out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info(subsystem, "Serving %d tools on stdio", len(s.Tools()))
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
