// Command neptune animates a sprite scene and composes its model matrices
// every frame, reporting throughput.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/skyne98/neptune"
	"github.com/skyne98/neptune/backend"
	"github.com/skyne98/neptune/instancing"
	"github.com/skyne98/neptune/jobs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type options struct {
	scene   string
	sprites int
	frames  int
	workers int
	kernel  string
	print   int
	out     string
	spirv   string
	seed    uint64
	quiet   bool
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.scene, "scene", "", "YAML scene file (overrides -sprites)")
	flag.IntVar(&o.sprites, "sprites", 100000, "number of sprites to generate")
	flag.IntVar(&o.frames, "frames", 600, "number of frames to run")
	flag.IntVar(&o.workers, "workers", 0, "compositor workers (0 = GOMAXPROCS)")
	flag.StringVar(&o.kernel, "kernel", "", "kernel name (default: best available)")
	flag.IntVar(&o.print, "print", 0, "print the first N matrices of the last frame")
	flag.StringVar(&o.out, "out", "", "write the last frame's instance buffer to this file")
	flag.StringVar(&o.spirv, "spirv", "", "compile the sprite shader and write SPIR-V to this file")
	flag.Uint64Var(&o.seed, "seed", 1, "seed for generated scenes")
	flag.BoolVar(&o.quiet, "quiet", false, "hide the progress bar")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "neptune: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	neptune.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene, err := loadScene(o)
	if err != nil {
		return err
	}

	k, err := openKernel(o)
	if err != nil {
		return err
	}
	defer k.Close()

	if o.spirv != "" {
		if err := writeSPIRV(o.spirv); err != nil {
			return err
		}
	}

	m := jobs.NewManager(2)
	defer m.Close()

	const dt = float32(1) / 60
	g := newFrameGraph(m, k, scene, dt)

	var bar *progressbar.ProgressBar
	if !o.quiet {
		bar = progressbar.NewOptions(o.frames,
			progressbar.OptionSetDescription("frames"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	start := time.Now()
	for range o.frames {
		g.step()
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	elapsed := time.Since(start)
	if bar != nil {
		_ = bar.Finish()
	}

	report(o, k, g, elapsed)

	if o.out != "" {
		if err := os.WriteFile(o.out, g.instances, 0o644); err != nil {
			return fmt.Errorf("writing instance buffer: %w", err)
		}
	}
	return nil
}

func loadScene(o options) (*Scene, error) {
	if o.scene != "" {
		return LoadScene(o.scene)
	}
	if o.sprites <= 0 {
		return nil, fmt.Errorf("need -scene or a positive -sprites")
	}
	return GenerateScene(o.sprites, 1920, 1080, o.seed), nil
}

func openKernel(o options) (backend.Kernel, error) {
	switch {
	case o.workers > 0 && (o.kernel == "" || o.kernel == backend.KernelParallel):
		return backend.NewParallelKernel(neptune.WithWorkers(o.workers)), nil
	case o.kernel != "":
		return backend.Lookup(o.kernel)
	default:
		return backend.MustDefault(), nil
	}
}

func writeSPIRV(path string) error {
	words, err := instancing.CompileSpriteShader()
	if err != nil {
		return err
	}
	buf := make([]byte, 0, 4*len(words))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing SPIR-V: %w", err)
	}
	return nil
}

func report(o options, k backend.Kernel, g *frameGraph, elapsed time.Duration) {
	p := message.NewPrinter(language.English)

	n := len(g.matrices)
	total := float64(n) * float64(o.frames)
	perSecond := 0.0
	if elapsed > 0 {
		perSecond = total / elapsed.Seconds()
	}

	p.Printf("kernel %s: %d sprites x %d frames in %v\n", k.Name(), n, o.frames, elapsed.Round(time.Millisecond))
	p.Printf("%.0f matrices/s, %d instance bytes packed\n", perSecond, g.packed)

	for i := 0; i < o.print && i < n; i++ {
		m := g.matrices[i]
		fmt.Printf("[%d]\n", i)
		for r := 1; r <= 4; r++ {
			fmt.Printf("  %10.4f %10.4f %10.4f %10.4f\n", m.At(r, 1), m.At(r, 2), m.At(r, 3), m.At(r, 4))
		}
	}
}
