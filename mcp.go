package runekit

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Re-export MCP SDK types used by the adapter surface.
type (
	// McpTool is an MCP tool definition from the official SDK.
	McpTool = mcp.Tool

	// McpCallToolRequest is an MCP tool invocation request.
	McpCallToolRequest = mcp.CallToolRequest

	// McpCallToolResult is an MCP tool invocation response.
	McpCallToolResult = mcp.CallToolResult
)

// MCPServer exposes an engine's registry through MCP tool-listing and
// tool-call semantics, for an MCP-style protocol layer to mount. It holds
// no state of its own: registrations made on the engine after creation
// are visible immediately.
//
// The official SDK's server is transport-bound, so the adapter maintains
// the MCP surface directly for in-process use; wire transports stay out
// of scope.
type MCPServer struct {
	name    string
	version string
	engine  *Engine
}

// MCPServer creates an MCP adapter over the engine's registry.
func (e *Engine) MCPServer(name, version string) *MCPServer {
	return &MCPServer{
		name:    name,
		version: version,
		engine:  e,
	}
}

// Name returns the server name.
func (s *MCPServer) Name() string {
	return s.name
}

// Version returns the server version string.
func (s *MCPServer) Version() string {
	return s.version
}

// ListTools returns MCP definitions for all registered tools, in
// registration order.
func (s *MCPServer) ListTools() []*mcp.Tool {
	entries := s.engine.reg.Snapshot()

	out := make([]*mcp.Tool, 0, len(entries))
	for _, entry := range entries {
		out = append(out, &mcp.Tool{
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: entry.Schema,
		})
	}

	return out
}

// CallTool executes a tool by name with the request's raw arguments.
//
// Tool outcomes — including unknown names and schema-rejected arguments —
// come back as a CallToolResult with IsError set, mirroring the engine's
// rule that only engine-level failures surface as errors.
func (s *MCPServer) CallTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.engine.Execute(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, err
	}

	defer func() { _ = result.Free() }()

	if result.Failed() {
		return errorResult(result.Code().String() + ": " + result.Message()), nil
	}

	return textResult(string(result.Data())), nil
}

// textResult creates a CallToolResult with text content.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult creates a CallToolResult indicating an error.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}
