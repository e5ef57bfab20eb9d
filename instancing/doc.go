// Package instancing describes how a batch of neptune matrices is handed to
// a GPU as per-instance vertex data.
//
// The matrices produced by neptune.ComposeBatch are already in upload
// layout: 64 bytes per sprite, four vec4 rows. [Bytes] exposes them for a
// queue write without copying, [Layout] tells the pipeline how to read
// them, and the embedded sprite shader consumes them:
//
//	spirv, err := instancing.CompileSpriteShader()
//	...
//	buffers := []gputypes.VertexBufferLayout{
//		instancing.QuadLayout(),
//		instancing.Layout(2),
//	}
//	...
//	queue.WriteBuffer(instanceBuf, 0, instancing.Bytes(matrices))
//	pass.Draw(6, uint32(len(matrices)), 0, 0)
package instancing
