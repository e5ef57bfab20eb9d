package backend

import (
	"errors"

	"github.com/skyne98/neptune"
)

// ErrKernelNotAvailable is returned when a requested kernel is not registered.
var ErrKernelNotAvailable = errors.New("neptune/backend: kernel not available")

// Kernel is a batch compositor capability. Hosts that receive their
// composition routine from elsewhere (a plugin, a wasm guest, a test double)
// are handed a Kernel instead of a function pointer.
//
// Kernels must be registered via Register() and are selected via
// Get() or Default().
type Kernel interface {
	// Name returns the kernel identifier (e.g., "parallel", "serial").
	Name() string

	// ComposeBatch writes neptune.Compose(transforms[i]) into matrices[i]
	// for every i, with the same contract as neptune.ComposeBatch.
	ComposeBatch(transforms []neptune.Transform, matrices []neptune.Matrix)

	// Close releases the kernel's resources. A closed kernel still
	// composes, possibly more slowly.
	Close()
}
