package instancing

import (
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/skyne98/neptune"
)

// Stride is the byte distance between consecutive instances.
const Stride = neptune.MatrixSize

// rowSize is the byte size of one stored matrix row (vec4<f32>).
const rowSize = 4 * 4

// BufferUsage is the usage an instance buffer is created with: bound as a
// vertex buffer and refilled every frame with a queue write.
const BufferUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst

// Layout returns the instance buffer layout consumed by the sprite shader.
// Matches vs_main in sprite.wgsl when firstLocation is 2:
//
//	location firstLocation+0: row 1 (m11..m14)
//	location firstLocation+1: row 2 (m21..m24)
//	location firstLocation+2: row 3 (m31..m34)
//	location firstLocation+3: row 4 (m41..m44, translation)
func Layout(firstLocation uint32) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, 4)
	for i := range attrs {
		attrs[i] = gputypes.VertexAttribute{
			Format:         gputypes.VertexFormatFloat32x4,
			Offset:         uint64(i * rowSize),
			ShaderLocation: firstLocation + uint32(i),
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: Stride,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// QuadLayout returns the per-vertex layout of the unit quad the sprite
// shader expects in buffer 0:
//
//	location 0: position (vec2<f32>)
//	location 1: uv (vec2<f32>)
func QuadLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: 16,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
		},
	}
}

// Quad is a unit quad as two triangles, interleaved position and uv.
// The local origin is the top-left corner, matching the pivot convention
// of neptune.Transform.
var Quad = [6][4]float32{
	{0, 0, 0, 0},
	{1, 0, 1, 0},
	{1, 1, 1, 1},
	{0, 0, 0, 0},
	{1, 1, 1, 1},
	{0, 1, 0, 1},
}

// BufferSize returns the byte size of an instance buffer for n sprites.
func BufferSize(n int) uint64 {
	if n <= 0 {
		return 0
	}
	return uint64(n) * Stride
}

// Bytes returns the matrices as the byte slice a queue write uploads.
// The slice aliases matrices; nothing is copied. Returns nil for an empty
// batch.
func Bytes(matrices []neptune.Matrix) []byte {
	if len(matrices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(matrices))), len(matrices)*Stride)
}
