package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/mockweb/internal/generator"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the website generator as tools.
type Server struct {
	gen *generator.Generator
	mcp *server.MCPServer
}

// NewServer creates a new MCP server around gen.
func NewServer(gen *generator.Generator) *Server {
	s := &Server{gen: gen}

	s.mcp = server.NewMCPServer(
		"mockweb",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateWebsiteTool, s.handleGenerateWebsite)
	s.mcp.AddTool(classifyDescriptionTool, s.handleClassifyDescription)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
