package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/skyne98/neptune"
	"gopkg.in/yaml.v3"
)

// Scene is the YAML description of the sprites to animate.
//
//	sprites:
//	  - x: 100
//	    y: 50
//	    rotation: 30
//	    size: [64, 32]
//	    origin: [0.5, 0.5]
//	    spin: 90
type Scene struct {
	Sprites []Sprite `yaml:"sprites"`
}

// Sprite is one scene entry. Size defaults to 1x1 and origin to the
// top-left corner. Spin is in degrees per second.
type Sprite struct {
	X        float32     `yaml:"x"`
	Y        float32     `yaml:"y"`
	Rotation float32     `yaml:"rotation"`
	Size     *[2]float32 `yaml:"size"`
	Origin   [2]float32  `yaml:"origin"`
	Spin     float32     `yaml:"spin"`
}

// Transform returns the sprite's descriptor.
func (s Sprite) Transform() neptune.Transform {
	t := neptune.IdentityTransform()
	t.X, t.Y = s.X, s.Y
	t.Rotation = s.Rotation
	if s.Size != nil {
		t.SizeX, t.SizeY = s.Size[0], s.Size[1]
	}
	t.OriginX, t.OriginY = s.Origin[0], s.Origin[1]
	return t
}

// LoadScene loads a scene from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return ParseScene(data)
}

// ParseScene parses a YAML scene.
func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	if len(scene.Sprites) == 0 {
		return nil, fmt.Errorf("parsing scene file: no sprites")
	}
	return &scene, nil
}

// GenerateScene scatters n sprites over a width x height area.
func GenerateScene(n int, width, height float32, seed uint64) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed))
	scene := &Scene{Sprites: make([]Sprite, n)}
	for i := range scene.Sprites {
		size := 8 + rng.Float32()*56
		scene.Sprites[i] = Sprite{
			X:        rng.Float32() * width,
			Y:        rng.Float32() * height,
			Rotation: rng.Float32() * 360,
			Size:     &[2]float32{size, size},
			Origin:   [2]float32{0.5, 0.5},
			Spin:     rng.Float32()*360 - 180,
		}
	}
	return scene
}

// Transforms returns the descriptors of every sprite, in scene order.
func (s *Scene) Transforms() []neptune.Transform {
	ts := make([]neptune.Transform, len(s.Sprites))
	for i, sp := range s.Sprites {
		ts[i] = sp.Transform()
	}
	return ts
}

// Animate advances each descriptor's rotation by its sprite's spin over dt
// seconds. Finite rotations are kept in [0, 360) so long runs do not lose
// precision; infinite or NaN rotations become NaN and pass through.
func (s *Scene) Animate(ts []neptune.Transform, dt float32) {
	for i := range ts {
		ts[i].Rotation = wrapDegrees(ts[i].Rotation + s.Sprites[i].Spin*dt)
	}
}

func wrapDegrees(r float32) float32 {
	r = float32(math.Mod(float64(r), 360))
	if r < 0 {
		r += 360
	}
	// A tiny negative remainder rounds up to 360 in float32.
	if r >= 360 {
		r = 0
	}
	return r
}
