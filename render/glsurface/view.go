package glsurface

import (
	"math"

	"github.com/lixenwraith/blob-arena/entity"
)

// View is the orthographic world-to-pixel mapping of one frame
// World Y grows upward, pixel Y grows downward
type View struct {
	Width, Height int
	Camera        entity.Position
	// Scale is pixels per world unit
	Scale float64
}

// NewView fits halfExtent world units between the camera and the nearer edge
func NewView(width, height int, halfExtent float64, camera entity.Position) View {
	side := float64(min(width, height))
	if side < 1 {
		side = 1
	}
	return View{
		Width:  width,
		Height: height,
		Camera: camera,
		Scale:  side / (2 * halfExtent),
	}
}

// Project returns the pixel coordinates of a world position
func (v View) Project(p entity.Position) (x, y float64) {
	x = float64(v.Width)/2 + (p.X-v.Camera.X)*v.Scale
	y = float64(v.Height)/2 - (p.Y-v.Camera.Y)*v.Scale
	return x, y
}

// Unproject returns the world position under a pixel
func (v View) Unproject(x, y float64) entity.Position {
	return entity.Position{
		X: v.Camera.X + (x-float64(v.Width)/2)/v.Scale,
		Y: v.Camera.Y - (y-float64(v.Height)/2)/v.Scale,
	}
}

// TextureSize returns the square texture side holding a shape of the given world radius
func TextureSize(radius float64) int {
	return int(math.Ceil(2*math.Abs(radius)*texelsPerUnit)) + 2
}
