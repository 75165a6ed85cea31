package render

import "github.com/lixenwraith/blob-arena/entity"

// Geometry is a surface-side shape allocation. Dispose releases it deterministically
type Geometry interface {
	Dispose()
}

// Material is a surface-side solid color allocation
type Material interface {
	SetColor(c entity.Color)
	Dispose()
}

// Surface is the 2D rendering backend the resource manager allocates from
// Implementations: termsurface (tcell cells), glsurface (ebiten images)
type Surface interface {
	// NewCircle allocates a filled disc of the given world radius
	NewCircle(radius float64) Geometry
	// NewRing allocates an annulus between the two world radii
	NewRing(inner, outer float64) Geometry
	NewMaterial(c entity.Color) Material
	// Draw renders the scene through an orthographic camera centered at camera
	Draw(scene *Scene, camera entity.Position) error
}

// OutlineColor is the local player's outline ring color
var OutlineColor = entity.Color{R: 255, G: 255, B: 255}

// OutlineWidth is the ring thickness in world units
const OutlineWidth = 1.5
