package neptune

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestRecordLayout(t *testing.T) {
	if got := unsafe.Sizeof(Transform{}); got != TransformSize {
		t.Errorf("sizeof(Transform) = %d, want %d", got, TransformSize)
	}
	if got := unsafe.Sizeof(Matrix{}); got != MatrixSize {
		t.Errorf("sizeof(Matrix) = %d, want %d", got, MatrixSize)
	}

	// Field order is part of the boundary contract.
	var tr Transform
	offsets := []uintptr{
		unsafe.Offsetof(tr.X),
		unsafe.Offsetof(tr.Y),
		unsafe.Offsetof(tr.Rotation),
		unsafe.Offsetof(tr.SizeX),
		unsafe.Offsetof(tr.SizeY),
		unsafe.Offsetof(tr.OriginX),
		unsafe.Offsetof(tr.OriginY),
	}
	for i, off := range offsets {
		if off != uintptr(4*i) {
			t.Errorf("field %d at offset %d, want %d", i, off, 4*i)
		}
	}
}

func TestComposeRaw(t *testing.T) {
	transforms := randomTransforms(100, 20)
	matrices := make([]Matrix, len(transforms))

	ComposeRaw(unsafe.Pointer(&transforms[0]), len(transforms), unsafe.Pointer(&matrices[0]), len(matrices))

	for i := range transforms {
		if !sameBits(matrices[i], Compose(transforms[i])) {
			t.Fatalf("matrices[%d] differs from Compose", i)
		}
	}
}

func TestComposeRawViolations(t *testing.T) {
	transforms := make([]Transform, 4)
	matrices := make([]Matrix, 4)
	tp := unsafe.Pointer(&transforms[0])
	mp := unsafe.Pointer(&matrices[0])

	tests := []struct {
		name string
		want error
		call func()
	}{
		{"nil transforms", ErrNilBuffer, func() { ComposeRaw(nil, 4, mp, 4) }},
		{"nil matrices", ErrNilBuffer, func() { ComposeRaw(tp, 4, nil, 4) }},
		{"nil with zero length", ErrNilBuffer, func() { ComposeRaw(nil, 0, nil, 0) }},
		{"counts differ", ErrLengthMismatch, func() { ComposeRaw(tp, 4, mp, 3) }},
		{"negative count", ErrLengthMismatch, func() { ComposeRaw(tp, -1, mp, -1) }},
		{"misaligned", ErrMisalignedBuffer, func() { ComposeRaw(unsafe.Add(tp, 2), 1, mp, 1) }},
		{"overlap", ErrAliasedBuffers, func() { ComposeRaw(mp, 4, mp, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectViolation(t, tt.want, tt.call)
		})
	}
}

// marshalTransforms encodes descriptors the way a foreign host would.
func marshalTransforms(ts []Transform) []byte {
	buf := make([]byte, 0, len(ts)*TransformSize)
	for _, tr := range ts {
		for _, f := range []float32{tr.X, tr.Y, tr.Rotation, tr.SizeX, tr.SizeY, tr.OriginX, tr.OriginY} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

func TestComposeBytes(t *testing.T) {
	transforms := []Transform{
		IdentityTransform(),
		{Rotation: 90, SizeX: 1, SizeY: 1},
		{X: 10, SizeX: 1, SizeY: 1},
	}
	in := marshalTransforms(transforms)
	out := make([]byte, len(transforms)*MatrixSize)

	ComposeBytes(in, out)

	want := []Matrix{Identity(), rot90, translated(10, 0)}
	for i := range want {
		var got Matrix
		for j := range got {
			off := i*MatrixSize + 4*j
			got[j] = math.Float32frombits(binary.LittleEndian.Uint32(out[off:]))
		}
		assertMatrix(t, "bytes", got, want[i])
	}

	// m41..m44 of the third matrix: translation (10, 0, 0, 1).
	row4 := out[2*MatrixSize+48:]
	if x := math.Float32frombits(binary.LittleEndian.Uint32(row4)); x != 10 {
		t.Errorf("third matrix m41 = %v, want 10", x)
	}
}

func TestComposeBytesViolations(t *testing.T) {
	tests := []struct {
		name    string
		in, out int
		want    error
	}{
		{"ragged input", TransformSize + 1, MatrixSize, ErrMisalignedBuffer},
		{"ragged output", TransformSize, MatrixSize - 4, ErrMisalignedBuffer},
		{"counts differ", 2 * TransformSize, MatrixSize, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectViolation(t, tt.want, func() {
				ComposeBytes(make([]byte, tt.in), make([]byte, tt.out))
			})
		})
	}
}

func TestComposeBytesEmpty(t *testing.T) {
	// Nothing to do, nothing to check.
	ComposeBytes(nil, nil)
	ComposeBytes([]byte{}, []byte{})
}

func TestBytesViews(t *testing.T) {
	buf := make([]byte, 2*MatrixSize+4)

	ms := MatricesFromBytes(buf[:2*MatrixSize])
	if len(ms) != 2 {
		t.Fatalf("len(MatricesFromBytes) = %d, want 2", len(ms))
	}
	ms[1][15] = 1
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[2*MatrixSize-4:])); got != 1 {
		t.Errorf("write through view not visible in bytes: %v", got)
	}

	if ts := TransformsFromBytes(nil); ts != nil {
		t.Errorf("TransformsFromBytes(nil) = %v, want nil", ts)
	}

	expectViolation(t, ErrMisalignedBuffer, func() {
		TransformsFromBytes(buf[1 : 1+TransformSize])
	})
	expectViolation(t, ErrMisalignedBuffer, func() {
		MatricesFromBytes(buf[2 : 2+MatrixSize])
	})
}
