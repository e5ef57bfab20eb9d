package neptune

import (
	"context"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/skyne98/neptune/internal/parallel"
)

// minGrain is the smallest adaptive chunk. Composing one descriptor costs
// roughly a hundred floating point operations, so smaller chunks spend more
// time in the scheduler than in the kernel.
const minGrain = 64

// Compose returns the matrix for a single descriptor.
//
// The composition, in column-vector algebra, is
//
//	M = T(x, y, 0) * Rz(rotation) * T(-originX*sizeX, -originY*sizeY, 0) * S(sizeX, sizeY, 1)
//
// so a local point is scaled first, shifted by the pivot, rotated, and
// finally moved to the position. The result is stored transposed (row-vector
// convention): row 1 is the image of the local X axis, row 2 of the local Y
// axis, and row 4 holds the translation in m41, m42, m43. Uploaded as four
// vec4 columns, the stored rows form M again.
func Compose(t Transform) Matrix {
	px, py := t.Pivot()
	m := Translation(t.X, t.Y, 0).
		Multiply(RotationZ(t.Rotation)).
		Multiply(Translation(px, py, 0)).
		Multiply(Scaling(t.SizeX, t.SizeY, 1))
	return m.Transpose()
}

// composeRange composes src into dst index by index. dst is the exclusive
// view of one task and len(dst) == len(src).
func composeRange(src []Transform, dst []Matrix) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] = Compose(src[i])
	}
}

// Compositor computes matrices for batches of descriptors on a
// work-stealing worker pool.
//
// A Compositor is safe for concurrent use; concurrent batches share the
// pool. Every batch recomputes all of its elements.
type Compositor struct {
	pool  *parallel.WorkerPool
	grain int
}

// NewCompositor creates a compositor and starts its worker pool.
// Call Close to stop the workers.
func NewCompositor(opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Compositor{
		pool:  parallel.NewWorkerPool(o.workers),
		grain: o.grain,
	}

	Logger().Info("compositor started", "workers", c.pool.Workers(), "grain", o.grain)
	return c
}

// ComposeBatch writes Compose(transforms[i]) into matrices[i] for every i.
//
// The index range is split into disjoint chunks; each parallel task owns
// the sub-slice of matrices for its chunk and writes each of its slots
// exactly once. ComposeBatch returns after every slot has been written.
// transforms is only read.
//
// Both slices are owned by the caller and must not be touched by anyone
// else for the duration of the call. Passing slices of different lengths,
// or slices that share memory, is a contract violation and panics with
// [ErrLengthMismatch] or [ErrAliasedBuffers].
func (c *Compositor) ComposeBatch(transforms []Transform, matrices []Matrix) {
	CheckBatch(transforms, matrices)

	n := len(transforms)
	grain := c.grainFor(n)
	c.logBatch(n, grain)

	c.pool.ForEachRange(n, grain, func(lo, hi int) {
		composeRange(transforms[lo:hi], matrices[lo:hi:hi])
	})
}

// ComposeBatchContext is ComposeBatch with cooperative cancellation.
//
// ctx is checked once per chunk. If it is done before every chunk has
// started, the remaining chunks are skipped and ctx.Err() is returned; the
// matrices of skipped chunks are left untouched and must be treated as
// garbage. A nil error means every slot was written.
func (c *Compositor) ComposeBatchContext(ctx context.Context, transforms []Transform, matrices []Matrix) error {
	CheckBatch(transforms, matrices)

	n := len(transforms)
	grain := c.grainFor(n)
	c.logBatch(n, grain)

	return c.pool.ForEachRangeContext(ctx, n, grain, func(lo, hi int) {
		composeRange(transforms[lo:hi], matrices[lo:hi:hi])
	})
}

// Workers returns the number of worker goroutines.
func (c *Compositor) Workers() int {
	return c.pool.Workers()
}

// Close stops the worker pool. Close is safe to call multiple times.
// Batches submitted after Close still complete, on the calling goroutine.
func (c *Compositor) Close() {
	if c.pool.IsRunning() {
		Logger().Info("compositor stopped", "stolen", c.pool.Stolen())
	}
	c.pool.Close()
}

// grainFor picks the chunk size for a batch of n descriptors: a few chunks
// per worker so stealing can even out the load, never below minGrain.
func (c *Compositor) grainFor(n int) int {
	if c.grain > 0 {
		return c.grain
	}
	g := n / (c.pool.Workers() * 4)
	if g < minGrain {
		g = minGrain
	}
	return g
}

func (c *Compositor) logBatch(n, grain int) {
	l := Logger()
	if !c.pool.IsRunning() {
		l.Warn("compositor closed, composing inline", "elements", n)
		return
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("compose batch", "elements", n, "grain", grain, "workers", c.pool.Workers())
	}
}

// CheckBatch panics unless transforms and matrices form a valid batch: equal
// lengths and no shared memory. Every batch entry point calls it; kernels
// implemented outside this package should too.
func CheckBatch(transforms []Transform, matrices []Matrix) {
	if len(transforms) != len(matrices) {
		violation(ErrLengthMismatch, "%d transforms, %d matrices", len(transforms), len(matrices))
	}
	if len(transforms) == 0 {
		return
	}

	in := uintptr(unsafe.Pointer(unsafe.SliceData(transforms)))
	out := uintptr(unsafe.Pointer(unsafe.SliceData(matrices)))
	inEnd := in + uintptr(len(transforms))*TransformSize
	outEnd := out + uintptr(len(matrices))*MatrixSize
	if in < outEnd && out < inEnd {
		violation(ErrAliasedBuffers, "transforms [%#x, %#x), matrices [%#x, %#x)", in, inEnd, out, outEnd)
	}
}

var (
	defaultOnce       sync.Once
	defaultCompositor *Compositor
)

// sharedCompositor returns the process-wide compositor, starting it with
// GOMAXPROCS workers on first use. It is never closed.
func sharedCompositor() *Compositor {
	defaultOnce.Do(func() {
		defaultCompositor = NewCompositor()
	})
	return defaultCompositor
}

// ComposeBatch composes a batch on the shared process-wide compositor.
// See [Compositor.ComposeBatch].
func ComposeBatch(transforms []Transform, matrices []Matrix) {
	sharedCompositor().ComposeBatch(transforms, matrices)
}
