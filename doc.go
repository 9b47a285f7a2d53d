// Package runekit provides an embeddable tool-execution engine with
// explicit resource ownership.
//
// A host registers named tools — callable units taking an opaque
// parameter payload and producing a payload or a classified failure —
// and invokes them synchronously or asynchronously. The engine owns the
// registry, the result storage, and the worker pool; callers own every
// Result they obtain and release it with Free.
//
// # Basic Usage
//
//	engine, err := runekit.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	err = engine.RegisterTool(runekit.NewTool("echo", "Echoes its input",
//	    func(ctx context.Context, params []byte) ([]byte, error) {
//	        return params, nil
//	    },
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.Execute(ctx, "echo", []byte(`{"hello":"world"}`))
//	if err != nil {
//	    log.Fatal(err) // engine-level failure only
//	}
//	defer result.Free()
//
//	if result.OK() {
//	    fmt.Printf("%s\n", result.Data())
//	}
//
// # Asynchronous Execution
//
// ExecuteAsync validates and returns immediately; the completion callback
// fires exactly once on an engine-owned goroutine:
//
//	id, err := engine.ExecuteAsync(ctx, "echo", payload,
//	    func(requestID string, result *runekit.Result) {
//	        defer result.Free()
//	        // consume result...
//	    },
//	)
//
// Close blocks until all accepted asynchronous work has drained.
//
// # Error Channels
//
// Engine-level failures (closed engine, malformed call) are returned as
// Go errors and recorded in the calling goroutine's last-error slot.
// Tool outcomes — unknown name, schema-rejected parameters, handler
// failure — always travel inside the Result with a Code classification;
// they never disturb the registry or the engine.
package runekit
