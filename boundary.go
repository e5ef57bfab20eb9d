package neptune

import "unsafe"

// ComposeRaw is the raw-memory entry point used by foreign hosts. It takes
// a base address and element count for each buffer, exactly as they arrive
// across the boundary:
//
//   - transformPtr points to transformLen packed records of 7 float32
//     (x, y, rotation, size_x, size_y, origin_x, origin_y)
//   - matrixPtr points to matrixLen packed records of 16 float32
//     (m11..m14, m21..m24, m31..m34, m41..m44)
//
// The caller owns both regions, keeps them alive for the call, and
// guarantees no one else reads or writes the output region meanwhile.
// The slice views are built once here and never cached across calls.
//
// Nil or misaligned pointers, negative counts, differing counts and
// overlapping regions panic; see the Err* contract violations.
func (c *Compositor) ComposeRaw(transformPtr unsafe.Pointer, transformLen int, matrixPtr unsafe.Pointer, matrixLen int) {
	transforms, matrices := rawViews(transformPtr, transformLen, matrixPtr, matrixLen)
	c.ComposeBatch(transforms, matrices)
}

// ComposeRaw runs [Compositor.ComposeRaw] on the shared compositor.
func ComposeRaw(transformPtr unsafe.Pointer, transformLen int, matrixPtr unsafe.Pointer, matrixLen int) {
	sharedCompositor().ComposeRaw(transformPtr, transformLen, matrixPtr, matrixLen)
}

// ComposeBytes composes a batch held in byte buffers that a host has
// already marshalled into the boundary layout. See [TransformsFromBytes]
// and [MatricesFromBytes] for the requirements on each buffer; both must
// also describe the same number of records.
func (c *Compositor) ComposeBytes(transforms, matrices []byte) {
	c.ComposeBatch(TransformsFromBytes(transforms), MatricesFromBytes(matrices))
}

// ComposeBytes runs [Compositor.ComposeBytes] on the shared compositor.
func ComposeBytes(transforms, matrices []byte) {
	sharedCompositor().ComposeBytes(transforms, matrices)
}

// TransformsFromBytes reinterprets b as packed descriptors without copying.
// len(b) must be a multiple of TransformSize and b must start on a 4-byte
// boundary. The bytes are read in host order, which assumes a little-endian
// host, as every platform wasm and the common native ABIs use.
func TransformsFromBytes(b []byte) []Transform {
	if len(b)%TransformSize != 0 {
		violation(ErrMisalignedBuffer, "transform buffer of %d bytes is not a multiple of %d", len(b), TransformSize)
	}
	if len(b) == 0 {
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%4 != 0 {
		violation(ErrMisalignedBuffer, "transform buffer at %p is not 4-byte aligned", p)
	}
	return unsafe.Slice((*Transform)(p), len(b)/TransformSize)
}

// MatricesFromBytes reinterprets b as packed matrices without copying.
// len(b) must be a multiple of MatrixSize and b must start on a 4-byte
// boundary. Writes through the result land in b.
func MatricesFromBytes(b []byte) []Matrix {
	if len(b)%MatrixSize != 0 {
		violation(ErrMisalignedBuffer, "matrix buffer of %d bytes is not a multiple of %d", len(b), MatrixSize)
	}
	if len(b) == 0 {
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%4 != 0 {
		violation(ErrMisalignedBuffer, "matrix buffer at %p is not 4-byte aligned", p)
	}
	return unsafe.Slice((*Matrix)(p), len(b)/MatrixSize)
}

// rawViews validates a raw buffer pair and returns exact-bounds views.
func rawViews(transformPtr unsafe.Pointer, transformLen int, matrixPtr unsafe.Pointer, matrixLen int) ([]Transform, []Matrix) {
	if transformPtr == nil {
		violation(ErrNilBuffer, "transform pointer")
	}
	if matrixPtr == nil {
		violation(ErrNilBuffer, "matrix pointer")
	}
	if transformLen < 0 || matrixLen < 0 {
		violation(ErrLengthMismatch, "negative count (%d transforms, %d matrices)", transformLen, matrixLen)
	}
	if transformLen != matrixLen {
		violation(ErrLengthMismatch, "%d transforms, %d matrices", transformLen, matrixLen)
	}
	if uintptr(transformPtr)%4 != 0 || uintptr(matrixPtr)%4 != 0 {
		violation(ErrMisalignedBuffer, "pointers %p and %p must be 4-byte aligned", transformPtr, matrixPtr)
	}

	transforms := unsafe.Slice((*Transform)(transformPtr), transformLen)
	matrices := unsafe.Slice((*Matrix)(matrixPtr), matrixLen)
	return transforms, matrices
}
