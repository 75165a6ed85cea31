package render

import (
	"github.com/lixenwraith/blob-arena/entity"
)

// Resource is the renderable owned for one live entity id
// Caches the last applied radius and color so unchanged attributes are never rebuilt
type Resource struct {
	Body    *Mesh
	Outline *Mesh // local player decoration, nil otherwise

	radius   float64
	color    entity.Color
	disposed bool
}

// Radius returns the last applied radius
func (r *Resource) Radius() float64 { return r.radius }

// Color returns the last applied color
func (r *Resource) Color() entity.Color { return r.color }

// Disposed reports whether the resource released its allocations
func (r *Resource) Disposed() bool { return r.disposed }

// dispose releases body and outline allocations; repeated calls are no-ops
func (r *Resource) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.disposeOutline()
	r.Body.Geometry.Dispose()
	r.Body.Material.Dispose()
}

func (r *Resource) disposeOutline() {
	if r.Outline == nil {
		return
	}
	r.Outline.Geometry.Dispose()
	r.Outline.Material.Dispose()
	r.Outline = nil
	r.Body.Children = nil
}

// arena owns the resources of one entity kind, keyed by entity id
type arena[K comparable] struct {
	kind      entity.Kind
	layer     Layer
	resources map[K]*Resource
}

func newArena[K comparable](kind entity.Kind, layer Layer) *arena[K] {
	return &arena[K]{
		kind:      kind,
		layer:     layer,
		resources: make(map[K]*Resource),
	}
}

// release disposes and forgets the resource under key, detaching it from scene
// Keys not owned by the arena are ignored
func (a *arena[K]) release(key K, scene *Scene) {
	res, ok := a.resources[key]
	if !ok {
		return
	}
	scene.Remove(res.Body)
	res.dispose()
	delete(a.resources, key)
}

func (a *arena[K]) releaseAll(scene *Scene) {
	for key := range a.resources {
		a.release(key, scene)
	}
}
