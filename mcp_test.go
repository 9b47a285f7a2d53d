package runekit

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callToolRequest(name string, args []byte) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPServer(t *testing.T) {
	t.Run("carries name and version", func(t *testing.T) {
		engine := newTestEngine(t)

		server := engine.MCPServer("calculator", "1.0.0")
		assert.Equal(t, "calculator", server.Name())
		assert.Equal(t, "1.0.0", server.Version())
	})

	t.Run("lists tools in registration order", func(t *testing.T) {
		engine := newTestEngine(t,
			echoTool("plain"),
			NewTool("typed", "validated tool",
				func(_ context.Context, params []byte) ([]byte, error) {
					return params, nil
				},
				WithSchema(SimpleSchema(map[string]string{"value": "string"})),
			),
		)

		tools := engine.MCPServer("srv", "0.1.0").ListTools()
		require.Len(t, tools, 2)

		assert.Equal(t, "plain", tools[0].Name)
		assert.Nil(t, tools[0].InputSchema)

		assert.Equal(t, "typed", tools[1].Name)
		assert.Equal(t, "validated tool", tools[1].Description)
		require.NotNil(t, tools[1].InputSchema)
	})

	t.Run("reflects registrations made after creation", func(t *testing.T) {
		engine := newTestEngine(t)
		server := engine.MCPServer("srv", "0.1.0")

		require.Empty(t, server.ListTools())

		require.NoError(t, engine.RegisterTool(echoTool("late")))
		require.Len(t, server.ListTools(), 1)
	})
}

func TestMCPServerCallTool(t *testing.T) {
	t.Run("successful execution becomes text content", func(t *testing.T) {
		engine := newTestEngine(t, echoTool("echo"))
		server := engine.MCPServer("srv", "0.1.0")

		result, err := server.CallTool(context.Background(),
			callToolRequest("echo", []byte(`{"hello":"world"}`)))
		require.NoError(t, err)

		require.False(t, result.IsError)
		require.Len(t, result.Content, 1)

		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, `{"hello":"world"}`, text.Text)
	})

	t.Run("unknown tool becomes an error result", func(t *testing.T) {
		engine := newTestEngine(t)
		server := engine.MCPServer("srv", "0.1.0")

		result, err := server.CallTool(context.Background(),
			callToolRequest("ghost_tool", nil))
		require.NoError(t, err)

		require.True(t, result.IsError)
		require.Len(t, result.Content, 1)

		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "tool_not_found")
	})

	t.Run("call tool frees its results", func(t *testing.T) {
		engine := newTestEngine(t, echoTool("echo"))
		server := engine.MCPServer("srv", "0.1.0")

		for range 100 {
			_, err := server.CallTool(context.Background(),
				callToolRequest("echo", []byte("payload")))
			require.NoError(t, err)
		}

		assert.Equal(t, 0, engine.AllocStats().LiveAllocations)
		assert.Equal(t, 0, engine.LiveResults())
	})

	t.Run("closed engine surfaces an engine-level error", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		server := engine.MCPServer("srv", "0.1.0")
		require.NoError(t, engine.Close())

		_, err = server.CallTool(context.Background(), callToolRequest("echo", nil))
		require.ErrorIs(t, err, ErrEngineClosed)
	})
}
