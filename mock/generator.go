package mock

import "github.com/devtalk/devtalk"

// Interface compliance checks.
var (
	_ devtalk.Generator    = (*Generator)(nil)
	_ devtalk.StreamHandle = (*StreamHandle)(nil)
)

// Generator is a test double for devtalk.Generator.
// Set OpenFn before calling Open. Tests typically capture the handler and
// drive the stream by calling its methods directly.
type Generator struct {
	OpenFn func(req devtalk.GenerateRequest, h devtalk.StreamHandler) devtalk.StreamHandle
}

// Open delegates to OpenFn.
func (g *Generator) Open(req devtalk.GenerateRequest, h devtalk.StreamHandler) devtalk.StreamHandle {
	return g.OpenFn(req, h)
}

// StreamHandle is a test double for devtalk.StreamHandle.
// CloseFn is nil-safe (no-op) because callers close handles on every exit
// path and tests rarely need custom behavior.
type StreamHandle struct {
	CloseFn func() error
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (h *StreamHandle) Close() error {
	if h.CloseFn == nil {
		return nil
	}
	return h.CloseFn()
}
