package backend

import "github.com/skyne98/neptune"

func init() {
	Register(KernelParallel, func() Kernel {
		return NewParallelKernel()
	})
}

// ParallelKernel composes on a private neptune.Compositor.
type ParallelKernel struct {
	c *neptune.Compositor
}

// NewParallelKernel creates a parallel kernel. Options are passed through
// to neptune.NewCompositor.
func NewParallelKernel(opts ...neptune.Option) *ParallelKernel {
	return &ParallelKernel{c: neptune.NewCompositor(opts...)}
}

// Name returns the kernel identifier.
func (k *ParallelKernel) Name() string {
	return KernelParallel
}

// ComposeBatch composes the batch on the kernel's worker pool.
func (k *ParallelKernel) ComposeBatch(transforms []neptune.Transform, matrices []neptune.Matrix) {
	k.c.ComposeBatch(transforms, matrices)
}

// Compositor returns the underlying compositor for advanced usage.
func (k *ParallelKernel) Compositor() *neptune.Compositor {
	return k.c
}

// Close stops the worker pool. Later batches run on the caller.
func (k *ParallelKernel) Close() {
	k.c.Close()
}
