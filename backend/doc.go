// Package backend provides pluggable batch composition kernels.
//
// Code that composes on behalf of someone else (a wasm host, a job graph,
// a renderer) takes a [Kernel] rather than calling neptune directly, so the
// implementation can be swapped at runtime or in tests.
//
// # Kernel Registration
//
// Kernels are registered via init() functions and selected at runtime.
// The parallel and serial kernels are registered on import:
//
//	import "github.com/skyne98/neptune/backend"
//
// # Kernel Selection
//
// Use Default() to get the best available kernel, or Get() to request
// a specific kernel by name:
//
//	k := backend.Default()
//	defer k.Close()
//
//	k = backend.Get("serial")
//
// Every call returns a fresh instance owned by the caller, who must Close it.
//
// # Available Kernels
//
//   - "parallel": work-stealing worker pool (preferred)
//   - "serial": single goroutine, index order
package backend
