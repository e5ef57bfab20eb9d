package backend

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Kernel name constants.
const (
	// KernelParallel is the name of the work-stealing kernel.
	KernelParallel = "parallel"
	// KernelSerial is the name of the single-goroutine reference kernel.
	KernelSerial = "serial"
)

// KernelFactory creates a new kernel instance.
type KernelFactory func() Kernel

// kernels holds registered kernels. Parallel wins when both are present.
var kernels = gpucontext.NewRegistry[Kernel](
	gpucontext.WithPriority(KernelParallel, KernelSerial),
)

// Register registers a kernel factory with the given name.
// If a kernel with the same name is already registered, it is replaced.
func Register(name string, factory KernelFactory) {
	kernels.Register(name, factory)
}

// Unregister removes a kernel from the registry.
func Unregister(name string) {
	kernels.Unregister(name)
}

// Available returns the names of the registered kernels.
func Available() []string {
	return kernels.Available()
}

// IsRegistered checks if a kernel with the given name is registered.
func IsRegistered(name string) bool {
	return kernels.Has(name)
}

// Get returns a new kernel instance by name.
// Returns nil if the kernel is not registered.
func Get(name string) Kernel {
	return kernels.Get(name)
}

// Lookup is Get with an error for unknown names.
func Lookup(name string) (Kernel, error) {
	k := kernels.Get(name)
	if k == nil {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrKernelNotAvailable, name, Available())
	}
	return k, nil
}

// Default returns a new instance of the best available kernel.
// Returns nil if no kernels are registered.
func Default() Kernel {
	return kernels.Best()
}

// MustDefault returns the default kernel or panics.
func MustDefault() Kernel {
	k := Default()
	if k == nil {
		panic(ErrKernelNotAvailable)
	}
	return k
}
