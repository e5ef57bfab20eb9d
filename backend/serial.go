package backend

import "github.com/skyne98/neptune"

func init() {
	Register(KernelSerial, func() Kernel {
		return SerialKernel{}
	})
}

// SerialKernel composes on the calling goroutine, one index after another.
// It is the reference the parallel kernel is checked against, and the
// cheaper choice for batches of a few dozen sprites.
type SerialKernel struct{}

// Name returns the kernel identifier.
func (SerialKernel) Name() string {
	return KernelSerial
}

// ComposeBatch composes the batch in index order.
func (SerialKernel) ComposeBatch(transforms []neptune.Transform, matrices []neptune.Matrix) {
	neptune.CheckBatch(transforms, matrices)
	for i := range transforms {
		matrices[i] = neptune.Compose(transforms[i])
	}
}

// Close is a no-op.
func (SerialKernel) Close() {}
