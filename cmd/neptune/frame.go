package main

import (
	"github.com/skyne98/neptune"
	"github.com/skyne98/neptune/backend"
	"github.com/skyne98/neptune/instancing"
	"github.com/skyne98/neptune/jobs"
)

// frameGraph is the per-frame job graph: animate -> compose -> pack.
type frameGraph struct {
	m    *jobs.Manager
	pack *jobs.Job

	transforms []neptune.Transform
	matrices   []neptune.Matrix
	instances  []byte // view of matrices in instance-buffer layout
	packed     uint64
}

func newFrameGraph(m *jobs.Manager, k backend.Kernel, scene *Scene, dt float32) *frameGraph {
	g := &frameGraph{
		m:          m,
		transforms: scene.Transforms(),
	}
	g.matrices = make([]neptune.Matrix, len(g.transforms))

	animate := m.NewJob("animate", func() {
		scene.Animate(g.transforms, dt)
	})
	compose := m.NewJob("compose", func() {
		k.ComposeBatch(g.transforms, g.matrices)
	}, animate)
	g.pack = m.NewJob("pack", func() {
		g.instances = instancing.Bytes(g.matrices)
		g.packed += uint64(len(g.instances))
	}, compose)

	return g
}

// step runs one frame and readies the graph for the next.
func (g *frameGraph) step() {
	g.m.Schedule(g.pack)
	g.m.Wait()
	g.m.Reset()
}
