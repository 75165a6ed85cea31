package render

import (
	"sort"

	"github.com/lixenwraith/blob-arena/entity"
)

// Layer separates kinds in draw order. Lower values draw first
type Layer uint8

const (
	LayerFood Layer = iota
	LayerPlayers
)

// Mesh is a positioned geometry+material pair in the scene graph
type Mesh struct {
	Geometry Geometry
	Material Material
	Position entity.Position

	// Children draw after their parent at the parent's position
	Children []*Mesh

	layer Layer
	stamp uint64
}

// Scene is the ordered set of meshes handed to Surface.Draw
type Scene struct {
	meshes map[*Mesh]struct{}
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{meshes: make(map[*Mesh]struct{})}
}

// Add inserts m; adding a present mesh is a no-op
func (s *Scene) Add(m *Mesh) {
	s.meshes[m] = struct{}{}
}

// Remove detaches m; removing an absent mesh is a no-op
func (s *Scene) Remove(m *Mesh) {
	delete(s.meshes, m)
}

// Len returns the number of top-level meshes
func (s *Scene) Len() int {
	return len(s.meshes)
}

// Meshes returns top-level meshes in draw order: layer, then stamp
func (s *Scene) Meshes() []*Mesh {
	out := make([]*Mesh, 0, len(s.meshes))
	for m := range s.meshes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].layer != out[j].layer {
			return out[i].layer < out[j].layer
		}
		return out[i].stamp < out[j].stamp
	})
	return out
}

// Walk visits meshes in draw order, each parent before its children
func (s *Scene) Walk(fn func(m *Mesh, pos entity.Position)) {
	for _, m := range s.Meshes() {
		fn(m, m.Position)
		for _, c := range m.Children {
			fn(c, m.Position)
		}
	}
}
