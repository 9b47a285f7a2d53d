package runekit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) *Tool {
	return NewTool(name, "echoes its input back",
		func(_ context.Context, params []byte) ([]byte, error) {
			return params, nil
		},
	)
}

func TestVersion(t *testing.T) {
	v := Version()

	require.Equal(t, VersionMajor, v.Major)
	require.Equal(t, VersionMinor, v.Minor)
	require.Equal(t, VersionPatch, v.Patch)
	require.Equal(t, "0.1.0", v.String())

	// Pure and idempotent.
	require.Equal(t, v, Version())
	require.Equal(t, v, Version())
}

func TestNewAndClose(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	require.NoError(t, engine.Close())
	require.ErrorIs(t, engine.Close(), ErrEngineClosed)
}

func TestClosedEngineRejectsCalls(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	require.NoError(t, engine.Close())

	require.ErrorIs(t, engine.RegisterTool(echoTool("late")), ErrEngineClosed)
	require.Equal(t, 0, engine.ToolCount())

	_, err = engine.ToolInfo(0)
	require.ErrorIs(t, err, ErrEngineClosed)

	_, err = engine.Execute(context.Background(), "echo", nil)
	require.ErrorIs(t, err, ErrEngineClosed)

	_, err = engine.ExecuteAsync(context.Background(), "echo", nil,
		func(string, *Result) {})
	require.ErrorIs(t, err, ErrEngineClosed)

	_, err = engine.Alloc(16)
	require.ErrorIs(t, err, ErrEngineClosed)
}

func TestEnginesAreIndependent(t *testing.T) {
	first, err := New()
	require.NoError(t, err)
	defer func() { _ = first.Close() }()

	second, err := New()
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	require.NoError(t, first.RegisterTool(echoTool("only-in-first")))

	require.Equal(t, 1, first.ToolCount())
	require.Equal(t, 0, second.ToolCount())
}

func TestRegisterTool(t *testing.T) {
	t.Run("metadata round-trips through the registry", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		require.NoError(t, engine.RegisterTool(echoTool("alpha")))
		require.NoError(t, engine.RegisterTool(echoTool("beta")))

		require.Equal(t, 2, engine.ToolCount())

		info, err := engine.ToolInfo(0)
		require.NoError(t, err)
		assert.Equal(t, "alpha", info.Name)
		assert.Equal(t, "echoes its input back", info.Description)
		assert.False(t, info.HasSchema)

		info, err = engine.ToolInfo(1)
		require.NoError(t, err)
		assert.Equal(t, "beta", info.Name)
	})

	t.Run("duplicate name is rejected and count is unchanged", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		require.NoError(t, engine.RegisterTool(echoTool("echo")))

		err = engine.RegisterTool(echoTool("echo"))
		require.ErrorIs(t, err, ErrToolExists)
		require.Equal(t, 1, engine.ToolCount())
	})

	t.Run("nil tool and empty name are invalid arguments", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		require.ErrorIs(t, engine.RegisterTool(nil), ErrInvalidArgument)
		require.ErrorIs(t, engine.RegisterTool(echoTool("")), ErrInvalidArgument)
		require.Equal(t, 0, engine.ToolCount())
	})

	t.Run("schema is reflected in tool info", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		tool := NewTool("typed", "has a schema",
			func(_ context.Context, params []byte) ([]byte, error) { return params, nil },
			WithSchema(SimpleSchema(map[string]string{"value": "string"})),
		)
		require.NoError(t, engine.RegisterTool(tool))

		info, err := engine.ToolInfo(0)
		require.NoError(t, err)
		assert.True(t, info.HasSchema)
	})
}

func TestToolInfoOutOfRange(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	defer func() { _ = engine.Close() }()

	require.NoError(t, engine.RegisterTool(echoTool("only")))

	for _, index := range []int{-1, 1, 99} {
		_, err := engine.ToolInfo(index)
		require.ErrorIs(t, err, ErrInvalidArgument, "index %d", index)
	}
}

func TestToolsSnapshotOrder(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	defer func() { _ = engine.Close() }()

	names := []string{"c", "a", "b"}
	for _, name := range names {
		require.NoError(t, engine.RegisterTool(echoTool(name)))
	}

	infos := engine.Tools()
	require.Len(t, infos, 3)
	for i, name := range names {
		assert.Equal(t, name, infos[i].Name)
	}
}

func TestEngineAllocator(t *testing.T) {
	t.Run("alloc and free balance the counters", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		buf, err := engine.Alloc(128)
		require.NoError(t, err)
		require.Len(t, buf, 128)

		stats := engine.AllocStats()
		require.Equal(t, 1, stats.LiveAllocations)
		require.Equal(t, int64(128), stats.LiveBytes)

		require.NoError(t, engine.Free(buf))
		require.Equal(t, 0, engine.AllocStats().LiveAllocations)
	})

	t.Run("free enforces the exact-size contract", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		buf, err := engine.Alloc(64)
		require.NoError(t, err)

		require.ErrorIs(t, engine.Free(buf[:32]), ErrSizeMismatch)
		require.ErrorIs(t, engine.Free(make([]byte, 64)), ErrUnknownAllocation)
		require.NoError(t, engine.Free(buf))
		require.ErrorIs(t, engine.Free(buf), ErrUnknownAllocation)
	})
}

func TestLastError(t *testing.T) {
	t.Run("records engine-level failures for the calling goroutine", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		require.NoError(t, engine.LastError())

		_, err = engine.ToolInfo(7)
		require.Error(t, err)
		require.ErrorIs(t, engine.LastError(), ErrInvalidArgument)

		// Overwritten by the next engine-level failure.
		require.Error(t, engine.RegisterTool(nil))
		require.ErrorIs(t, engine.LastError(), ErrInvalidArgument)
	})

	t.Run("is not shared across goroutines", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		_, err = engine.ToolInfo(7)
		require.Error(t, err)

		fromOther := make(chan error, 1)
		go func() {
			fromOther <- engine.LastError()
		}()
		require.NoError(t, <-fromOther)
		require.Error(t, engine.LastError())
	})

	t.Run("tool outcomes are never recorded", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		defer func() { _ = engine.Close() }()

		result, err := engine.Execute(context.Background(), "ghost_tool", nil)
		require.NoError(t, err)
		defer func() { _ = result.Free() }()

		require.True(t, result.Failed())
		require.NoError(t, engine.LastError())
	})
}
