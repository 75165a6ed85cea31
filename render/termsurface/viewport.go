package termsurface

import (
	"math"

	"github.com/lixenwraith/blob-arena/entity"
)

// Viewport maps world coordinates to screen cells under an orthographic camera
// World Y grows upward, screen rows grow downward
type Viewport struct {
	Width, Height int
	Camera        entity.Position
	// UnitsPerRow is the world distance covered by one cell row; columns cover UnitsPerRow/Aspect
	UnitsPerRow float64
}

// NewViewport fits halfExtent world units between the camera and the nearer screen edge
func NewViewport(width, height int, halfExtent float64, camera entity.Position) Viewport {
	rows := float64(height)
	if cols := float64(width) / Aspect; cols < rows {
		rows = cols
	}
	if rows < 1 {
		rows = 1
	}
	return Viewport{
		Width:       width,
		Height:      height,
		Camera:      camera,
		UnitsPerRow: 2 * halfExtent / rows,
	}
}

func (v Viewport) unitsPerCol() float64 {
	return v.UnitsPerRow / Aspect
}

// World returns the world position of the center of a cell
func (v Viewport) World(col, row int) entity.Position {
	return entity.Position{
		X: v.Camera.X + (float64(col)+0.5-float64(v.Width)/2)*v.unitsPerCol(),
		Y: v.Camera.Y - (float64(row)+0.5-float64(v.Height)/2)*v.UnitsPerRow,
	}
}

// Cell returns the cell containing p, ok is false when p is off screen
func (v Viewport) Cell(p entity.Position) (col, row int, ok bool) {
	col = int(math.Floor((p.X-v.Camera.X)/v.unitsPerCol() + float64(v.Width)/2))
	row = int(math.Floor((v.Camera.Y-p.Y)/v.UnitsPerRow + float64(v.Height)/2))
	ok = col >= 0 && col < v.Width && row >= 0 && row < v.Height
	return col, row, ok
}

// Bounds returns the on-screen cell rectangle covering a disc, inclusive
func (v Viewport) Bounds(center entity.Position, radius float64) (minCol, minRow, maxCol, maxRow int) {
	radius = math.Abs(radius)
	minCol = int(math.Floor((center.X-radius-v.Camera.X)/v.unitsPerCol() + float64(v.Width)/2))
	maxCol = int(math.Floor((center.X+radius-v.Camera.X)/v.unitsPerCol() + float64(v.Width)/2))
	minRow = int(math.Floor((v.Camera.Y-center.Y-radius)/v.UnitsPerRow + float64(v.Height)/2))
	maxRow = int(math.Floor((v.Camera.Y-center.Y+radius)/v.UnitsPerRow + float64(v.Height)/2))
	return max(minCol, 0), max(minRow, 0), min(maxCol, v.Width-1), min(maxRow, v.Height-1)
}
