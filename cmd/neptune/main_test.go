package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skyne98/neptune"
	"github.com/skyne98/neptune/backend"
	"github.com/skyne98/neptune/jobs"
)

const sceneYAML = `
sprites:
  - x: 100
    y: 50
    rotation: 30
    size: [64, 32]
    origin: [0.5, 0.5]
    spin: 90
  - x: -4
    y: 2
`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("ParseScene() error = %v", err)
	}
	if len(scene.Sprites) != 2 {
		t.Fatalf("len(Sprites) = %d, want 2", len(scene.Sprites))
	}

	ts := scene.Transforms()
	want := []neptune.Transform{
		{X: 100, Y: 50, Rotation: 30, SizeX: 64, SizeY: 32, OriginX: 0.5, OriginY: 0.5},
		{X: -4, Y: 2, SizeX: 1, SizeY: 1},
	}
	for i := range want {
		if ts[i] != want[i] {
			t.Errorf("Transforms()[%d] = %+v, want %+v", i, ts[i], want[i])
		}
	}
	if scene.Sprites[0].Spin != 90 {
		t.Errorf("Spin = %v, want 90", scene.Sprites[0].Spin)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no sprites", "sprites: []"},
		{"bad yaml", "sprites: [x: 1"},
		{"bad size", "sprites:\n  - size: [1, 2, 3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScene([]byte(tt.data)); err == nil {
				t.Error("ParseScene() succeeded, want error")
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	scene, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if len(scene.Sprites) != 2 {
		t.Errorf("len(Sprites) = %d, want 2", len(scene.Sprites))
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScene(missing) succeeded, want error")
	}
}

func TestGenerateScene(t *testing.T) {
	a := GenerateScene(50, 800, 600, 7).Transforms()
	b := GenerateScene(50, 800, 600, 7).Transforms()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different sprite %d", i)
		}
		if a[i].X < 0 || a[i].X >= 800 || a[i].Y < 0 || a[i].Y >= 600 {
			t.Errorf("sprite %d at (%v, %v) outside the area", i, a[i].X, a[i].Y)
		}
	}
}

func TestAnimateWraps(t *testing.T) {
	scene := &Scene{Sprites: []Sprite{{Spin: 90}, {Spin: -90}}}
	ts := []neptune.Transform{{Rotation: 350}, {Rotation: 10}}

	scene.Animate(ts, 1)

	if ts[0].Rotation != 80 {
		t.Errorf("Rotation = %v, want 80", ts[0].Rotation)
	}
	if ts[1].Rotation != 280 {
		t.Errorf("Rotation = %v, want 280", ts[1].Rotation)
	}
}

func TestAnimateNonFinite(t *testing.T) {
	tests := []struct {
		name     string
		rotation float32
		spin     float32
		wantNaN  bool
	}{
		{"inf rotation", float32(math.Inf(1)), 0, true},
		{"negative inf rotation", float32(math.Inf(-1)), 0, true},
		{"nan rotation", float32(math.NaN()), 0, true},
		{"huge rotation", 1e30, 0, false},
		{"huge spin", 0, -1e30, false},
		{"tiny negative", -1e-10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := &Scene{Sprites: []Sprite{{Spin: tt.spin}}}
			ts := []neptune.Transform{{Rotation: tt.rotation}}

			done := make(chan struct{})
			go func() {
				scene.Animate(ts, 1)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatalf("Animate did not return (rotation %v)", tt.rotation)
			}

			r := ts[0].Rotation
			if tt.wantNaN {
				if !math.IsNaN(float64(r)) {
					t.Errorf("Rotation = %v, want NaN", r)
				}
				return
			}
			if r < 0 || r >= 360 {
				t.Errorf("Rotation = %v, want in [0, 360)", r)
			}
		})
	}
}

func TestAnimateYAMLInfinity(t *testing.T) {
	scene, err := ParseScene([]byte("sprites:\n  - rotation: .inf\n  - rotation: 1e30\n"))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	ts := scene.Transforms()
	scene.Animate(ts, 1)

	if !math.IsNaN(float64(ts[0].Rotation)) {
		t.Errorf("Rotation = %v, want NaN", ts[0].Rotation)
	}
	if r := ts[1].Rotation; r < 0 || r >= 360 {
		t.Errorf("Rotation = %v, want in [0, 360)", r)
	}
}

func TestFrameGraph(t *testing.T) {
	m := jobs.NewManager(2)
	defer m.Close()

	scene := &Scene{Sprites: []Sprite{
		{X: 10, Size: &[2]float32{2, 2}, Spin: 90},
		{Y: 5, Spin: 0},
	}}
	g := newFrameGraph(m, backend.SerialKernel{}, scene, 0.5)

	for range 3 {
		g.step()
	}

	// Three frames at 45 degrees each.
	if got := g.transforms[0].Rotation; got != 135 {
		t.Errorf("Rotation after 3 frames = %v, want 135", got)
	}
	if g.matrices[0] != neptune.Compose(g.transforms[0]) {
		t.Error("matrices not composed from the animated transforms")
	}
	if len(g.instances) != 2*neptune.MatrixSize {
		t.Errorf("len(instances) = %d, want %d", len(g.instances), 2*neptune.MatrixSize)
	}
	if g.packed != 3*2*neptune.MatrixSize {
		t.Errorf("packed = %d, want %d", g.packed, 3*2*neptune.MatrixSize)
	}
}

func TestOpenKernel(t *testing.T) {
	tests := []struct {
		o    options
		want string
	}{
		{options{}, backend.KernelParallel},
		{options{workers: 2}, backend.KernelParallel},
		{options{kernel: backend.KernelSerial}, backend.KernelSerial},
	}
	for _, tt := range tests {
		k, err := openKernel(tt.o)
		if err != nil {
			t.Fatalf("openKernel(%+v) error = %v", tt.o, err)
		}
		if k.Name() != tt.want {
			t.Errorf("openKernel(%+v).Name() = %q, want %q", tt.o, k.Name(), tt.want)
		}
		k.Close()
	}

	if _, err := openKernel(options{kernel: "gpu"}); err == nil {
		t.Error("openKernel(gpu) succeeded, want error")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "instances.bin")

	err := run(options{sprites: 10, frames: 3, kernel: backend.KernelSerial, out: out, quiet: true})
	neptune.SetLogger(nil)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 10*neptune.MatrixSize {
		t.Errorf("instance buffer is %d bytes, want %d", len(data), 10*neptune.MatrixSize)
	}
}
