package render

import (
	"cmp"
	"slices"

	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/store"
)

// Source provides the current snapshots the manager reconciles against
type Source interface {
	Players() store.Snapshot[entity.Identity, entity.Player]
	Food() store.Snapshot[entity.FoodID, entity.Food]
}

// Manager owns one Resource per visible entity and keeps them converged with the snapshots
// Visible means online for players and present for food
type Manager struct {
	surface Surface
	scene   *Scene
	world   config.World
	source  Source
	local   entity.Identity

	players *arena[entity.Identity]
	food    *arena[entity.FoodID]

	// stamp orders meshes within a layer; bumped for every upserted resource
	stamp uint64
}

// NewManager creates a manager allocating from surface
// source may be nil when reconciliation is driven directly
func NewManager(surface Surface, world config.World, source Source) *Manager {
	return &Manager{
		surface: surface,
		scene:   NewScene(),
		world:   world,
		source:  source,
		players: newArena[entity.Identity](entity.KindPlayer, LayerPlayers),
		food:    newArena[entity.FoodID](entity.KindFood, LayerFood),
	}
}

// Scene returns the managed scene graph
func (m *Manager) Scene() *Scene {
	return m.scene
}

// SetLocal changes the decorated identity and restyles the player arena
func (m *Manager) SetLocal(id entity.Identity) {
	if m.local == id {
		return
	}
	m.local = id
	if m.source != nil {
		m.ReconcilePlayers(m.source.Players())
	}
}

// Changed implements store.Observer
func (m *Manager) Changed(kind entity.Kind) {
	if m.source == nil {
		return
	}
	switch kind {
	case entity.KindPlayer:
		m.ReconcilePlayers(m.source.Players())
	case entity.KindFood:
		m.ReconcileFood(m.source.Food())
	}
}

// visual is the kind-independent input of a reconciliation pass
type visual[K cmp.Ordered] struct {
	key       K
	pos       entity.Position
	radius    float64
	color     entity.Color
	decorated bool
}

// ReconcilePlayers converges the player arena with snap; offline players are not visible
func (m *Manager) ReconcilePlayers(snap store.Snapshot[entity.Identity, entity.Player]) {
	visible := make([]visual[entity.Identity], 0, snap.Len())
	snap.Range(func(id entity.Identity, p entity.Player) bool {
		if p.Online {
			visible = append(visible, visual[entity.Identity]{
				key:       id,
				pos:       p.Position,
				radius:    p.Radius,
				color:     p.Color,
				decorated: id == m.local,
			})
		}
		return true
	})
	reconcile(m, m.players, visible)
}

// ReconcileFood converges the food arena with snap
func (m *Manager) ReconcileFood(snap store.Snapshot[entity.FoodID, entity.Food]) {
	visible := make([]visual[entity.FoodID], 0, snap.Len())
	snap.Range(func(id entity.FoodID, f entity.Food) bool {
		visible = append(visible, visual[entity.FoodID]{
			key:    id,
			pos:    f.Position,
			radius: m.world.FoodRadius,
			color:  f.Color,
		})
		return true
	})
	reconcile(m, m.food, visible)
}

func reconcile[K cmp.Ordered](m *Manager, a *arena[K], visible []visual[K]) {
	// Garbage pass runs unconditionally so an emptied kind clears
	live := make(map[K]struct{}, len(visible))
	for _, v := range visible {
		live[v.key] = struct{}{}
	}
	for key := range a.resources {
		if _, ok := live[key]; !ok {
			a.release(key, m.scene)
		}
	}

	// Upsert pass: ascending radius so larger entities stack on top
	slices.SortFunc(visible, func(x, y visual[K]) int {
		if c := cmp.Compare(x.radius, y.radius); c != 0 {
			return c
		}
		return cmp.Compare(x.key, y.key)
	})

	for _, v := range visible {
		res, ok := a.resources[v.key]
		if !ok {
			res = m.create(a.layer, v.radius, v.color)
			a.resources[v.key] = res
			m.scene.Add(res.Body)
		} else {
			m.restyle(res, v.radius, v.color)
		}
		m.decorate(res, v.decorated)

		m.stamp++
		res.Body.stamp = m.stamp
		res.Body.Position = v.pos
	}
}

// create allocates a resource sized and colored from the entity's current attributes
func (m *Manager) create(layer Layer, radius float64, color entity.Color) *Resource {
	return &Resource{
		Body: &Mesh{
			Geometry: m.surface.NewCircle(radius),
			Material: m.surface.NewMaterial(color),
			layer:    layer,
		},
		radius: radius,
		color:  color,
	}
}

// restyle rebuilds geometry only on radius change and recolors only on color change
func (m *Manager) restyle(res *Resource, radius float64, color entity.Color) {
	if radius != res.radius {
		res.Body.Geometry.Dispose()
		res.Body.Geometry = m.surface.NewCircle(radius)
		if res.Outline != nil {
			res.Outline.Geometry.Dispose()
			res.Outline.Geometry = m.newOutlineGeometry(radius)
		}
		res.radius = radius
	}
	if color != res.color {
		res.Body.Material.SetColor(color)
		res.color = color
	}
}

// decorate attaches or drops the outline ring to match the local identity
func (m *Manager) decorate(res *Resource, decorated bool) {
	switch {
	case decorated && res.Outline == nil:
		res.Outline = &Mesh{
			Geometry: m.newOutlineGeometry(res.radius),
			Material: m.surface.NewMaterial(OutlineColor),
			layer:    res.Body.layer,
		}
		res.Body.Children = []*Mesh{res.Outline}
	case !decorated && res.Outline != nil:
		res.disposeOutline()
	}
}

func (m *Manager) newOutlineGeometry(radius float64) Geometry {
	outer := radius + m.world.OutlineOffset
	return m.surface.NewRing(outer-OutlineWidth, outer)
}

// Resource returns the resource owned for key of the given kind
// key must be an entity.Identity for players or an entity.FoodID for food
func (m *Manager) Resource(kind entity.Kind, key any) (*Resource, bool) {
	switch kind {
	case entity.KindPlayer:
		if id, ok := key.(entity.Identity); ok {
			res, ok := m.players.resources[id]
			return res, ok
		}
	case entity.KindFood:
		if id, ok := key.(entity.FoodID); ok {
			res, ok := m.food.resources[id]
			return res, ok
		}
	}
	return nil, false
}

// Len returns the number of resources owned for kind
func (m *Manager) Len(kind entity.Kind) int {
	switch kind {
	case entity.KindPlayer:
		return len(m.players.resources)
	case entity.KindFood:
		return len(m.food.resources)
	}
	return 0
}

// PlayerIDs returns the owned player keys in ascending order
func (m *Manager) PlayerIDs() []entity.Identity {
	return sortedKeys(m.players.resources)
}

// FoodIDs returns the owned food keys in ascending order
func (m *Manager) FoodIDs() []entity.FoodID {
	return sortedKeys(m.food.resources)
}

func sortedKeys[K cmp.Ordered](resources map[K]*Resource) []K {
	keys := make([]K, 0, len(resources))
	for k := range resources {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Render issues the explicit render call for the current scene
func (m *Manager) Render(camera entity.Position) error {
	return m.surface.Draw(m.scene, camera)
}

// DisposeAll releases every owned resource; safe to call repeatedly
func (m *Manager) DisposeAll() {
	m.players.releaseAll(m.scene)
	m.food.releaseAll(m.scene)
}
