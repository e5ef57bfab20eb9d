// Package neptune computes 4x4 affine matrices for batches of 2D transform
// descriptors in parallel.
//
// # Overview
//
// A game loop typically owns thousands of sprites, each described by a
// position, a rotation, a non-uniform size and a pivot. Every frame the
// renderer needs one model matrix per sprite. neptune turns a slice of
// [Transform] descriptors into a slice of [Matrix] values of the same
// length, spreading the work over a work-stealing pool of goroutines.
//
// # Quick Start
//
//	transforms := []neptune.Transform{
//		{X: 100, Y: 50, Rotation: 30, SizeX: 64, SizeY: 32, OriginX: 0.5, OriginY: 0.5},
//	}
//	matrices := make([]neptune.Matrix, len(transforms))
//
//	c := neptune.NewCompositor()
//	defer c.Close()
//	c.ComposeBatch(transforms, matrices)
//
// For one-off use, the package-level [ComposeBatch] runs on a shared
// compositor.
//
// # Composition
//
// Each matrix is
//
//	T(x, y) * Rz(rotation) * T(-originX*sizeX, -originY*sizeY) * S(sizeX, sizeY, 1)
//
// stored in row-major order with the row-vector convention: the first row
// is the image of the local X axis and the last row holds the translation.
// Rotation is in degrees. See [Compose].
//
// # Memory and Concurrency
//
// Both slices belong to the caller. The input is only read; the output is
// split into disjoint chunks, each written by exactly one task. There is no
// locking on the data path, and output[i] depends on input[i] alone, so
// results are identical whatever the worker count or batch layout.
//
// Hosts on the other side of a language boundary use [ComposeRaw] or
// [ComposeBytes], which reinterpret caller memory in place.
//
// # Errors
//
// A well-formed call always succeeds. Breaking the contract (mismatched
// counts, nil or overlapping buffers) panics with one of the Err*
// values. Zero sizes, huge angles and NaN inputs are not errors: they
// compose to whatever the arithmetic yields.
//
// # Logging
//
// neptune is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] logger.
package neptune
