// Package mcp exposes metadata extraction over the Model Context Protocol,
// letting agent tooling query file metadata, decode literal expressions,
// and resolve type origins over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/tsmeta/pkg/extractor"
	"github.com/gnana997/tsmeta/pkg/mcplog"
	"github.com/gnana997/tsmeta/pkg/parser"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server, exposing extraction and codec tools.
type Server struct {
	mcpServer *server.MCPServer
	extractor *extractor.Extractor
	parsers   *parser.Manager
	logger    *mcplog.Logger // nil disables tool call logging
}

// NewServer creates an MCP server backed by the given extractor. The parser
// manager is used for standalone expression decoding; logger may be nil.
func NewServer(ext *extractor.Extractor, pm *parser.Manager, logger *mcplog.Logger) *Server {
	s := &Server{extractor: ext, parsers: pm, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("tsmeta", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractFileTool(), Handler: s.handleExtractFile},
		server.ServerTool{Tool: extractSourceTool(), Handler: s.handleExtractSource},
		server.ServerTool{Tool: decodeLiteralTool(), Handler: s.handleDecodeLiteral},
		server.ServerTool{Tool: resolveTypeTool(), Handler: s.handleResolveType},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
