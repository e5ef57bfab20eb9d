package instancing

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// Entry points of the sprite shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

//go:embed shaders/sprite.wgsl
var spriteShaderWGSL string

// SpriteShaderSource returns the WGSL source of the instanced sprite shader.
func SpriteShaderSource() string {
	return spriteShaderWGSL
}

// CompileSpriteShader compiles the sprite shader to SPIR-V words, ready for
// a shader module descriptor.
func CompileSpriteShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(spriteShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("instancing: failed to compile sprite shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("instancing: SPIR-V length %d is not a whole number of words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return spirvCode, nil
}
