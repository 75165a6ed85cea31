package render

import (
	"github.com/lixenwraith/blob-arena/entity"
)

// fakeSurface counts allocations and tracks live handles for leak checks
type fakeSurface struct {
	circles   int
	rings     int
	materials int
	recolors  int
	draws     int

	live map[any]struct{}
	// doubleDispose counts Dispose calls on already released handles
	doubleDispose int

	lastCamera entity.Position
	lastOrder  []*Mesh
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{live: make(map[any]struct{})}
}

type fakeGeometry struct {
	s      *fakeSurface
	radius float64
	ring   bool
}

func (g *fakeGeometry) Dispose() {
	if _, ok := g.s.live[g]; !ok {
		g.s.doubleDispose++
		return
	}
	delete(g.s.live, g)
}

type fakeMaterial struct {
	s     *fakeSurface
	color entity.Color
}

func (m *fakeMaterial) SetColor(c entity.Color) {
	m.s.recolors++
	m.color = c
}

func (m *fakeMaterial) Dispose() {
	if _, ok := m.s.live[m]; !ok {
		m.s.doubleDispose++
		return
	}
	delete(m.s.live, m)
}

func (s *fakeSurface) NewCircle(radius float64) Geometry {
	s.circles++
	g := &fakeGeometry{s: s, radius: radius}
	s.live[g] = struct{}{}
	return g
}

func (s *fakeSurface) NewRing(inner, outer float64) Geometry {
	s.rings++
	g := &fakeGeometry{s: s, radius: outer, ring: true}
	s.live[g] = struct{}{}
	return g
}

func (s *fakeSurface) NewMaterial(c entity.Color) Material {
	s.materials++
	m := &fakeMaterial{s: s, color: c}
	s.live[m] = struct{}{}
	return m
}

func (s *fakeSurface) Draw(scene *Scene, camera entity.Position) error {
	s.draws++
	s.lastCamera = camera
	s.lastOrder = scene.Meshes()
	return nil
}

func (s *fakeSurface) allocations() int {
	return s.circles + s.rings + s.materials
}
