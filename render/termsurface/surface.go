// Package termsurface renders the arena scene into a tcell screen
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/render"
)

// Aspect is the height/width ratio of a terminal cell
const Aspect = 2.0

// Glyphs
const (
	bodyRune    = '█'
	outlineRune = '○'
)

// Surface draws meshes as cell-rasterized discs and rings
// The last screen row is reserved for the status line
type Surface struct {
	screen tcell.Screen
	// halfExtent is the world distance from the camera to the nearest viewport edge
	halfExtent float64

	background tcell.Style
	status     string

	live int
}

// New creates a surface over an initialized screen
func New(screen tcell.Screen, halfExtent float64) *Surface {
	if halfExtent <= 0 {
		halfExtent = 1
	}
	return &Surface{
		screen:     screen,
		halfExtent: halfExtent,
		background: tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// SetStatus sets the text drawn on the bottom row
func (s *Surface) SetStatus(text string) {
	s.status = text
}

// Live returns the number of undisposed geometries and materials
func (s *Surface) Live() int {
	return s.live
}

type circle struct {
	s        *Surface
	radius   float64
	released bool
}

func (c *circle) Dispose() {
	if c.released {
		return
	}
	c.released = true
	c.s.live--
}

type ring struct {
	s            *Surface
	inner, outer float64
	released     bool
}

func (r *ring) Dispose() {
	if r.released {
		return
	}
	r.released = true
	r.s.live--
}

type material struct {
	s        *Surface
	color    tcell.Color
	released bool
}

func (m *material) SetColor(c entity.Color) {
	m.color = toColor(c)
}

func (m *material) Dispose() {
	if m.released {
		return
	}
	m.released = true
	m.s.live--
}

func (s *Surface) NewCircle(radius float64) render.Geometry {
	s.live++
	return &circle{s: s, radius: radius}
}

func (s *Surface) NewRing(inner, outer float64) render.Geometry {
	s.live++
	return &ring{s: s, inner: inner, outer: outer}
}

func (s *Surface) NewMaterial(c entity.Color) render.Material {
	s.live++
	return &material{s: s, color: toColor(c)}
}

func toColor(c entity.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(r, g, b)
}

// Draw clears the screen, rasterizes the scene around camera and shows the frame
func (s *Surface) Draw(scene *render.Scene, camera entity.Position) error {
	s.screen.Clear()
	w, h := s.screen.Size()
	view := NewViewport(w, h-1, s.halfExtent, camera)

	scene.Walk(func(m *render.Mesh, pos entity.Position) {
		mat, ok := m.Material.(*material)
		if !ok || mat.released {
			return
		}
		switch g := m.Geometry.(type) {
		case *circle:
			if !g.released {
				s.fillDisc(view, pos, g.radius, mat.color)
			}
		case *ring:
			if !g.released {
				s.strokeRing(view, pos, g.inner, g.outer, mat.color)
			}
		}
	})

	s.drawStatus(w, h)
	s.screen.Show()
	return nil
}

func (s *Surface) fillDisc(v Viewport, center entity.Position, radius float64, color tcell.Color) {
	style := s.background.Foreground(color)
	minCol, minRow, maxCol, maxRow := v.Bounds(center, radius)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			p := v.World(col, row)
			if math.Hypot(p.X-center.X, p.Y-center.Y) <= radius {
				s.screen.SetContent(col, row, bodyRune, nil, style)
			}
		}
	}

	// Discs smaller than a cell still occupy the cell holding their center
	if col, row, ok := v.Cell(center); ok {
		s.screen.SetContent(col, row, bodyRune, nil, style)
	}
}

func (s *Surface) strokeRing(v Viewport, center entity.Position, inner, outer float64, color tcell.Color) {
	style := s.background.Foreground(color)
	mid := (inner + outer) / 2
	// A ring thinner than a cell keeps a half-cell band so it stays visible
	band := math.Max((outer-inner)/2, v.UnitsPerRow/2)

	minCol, minRow, maxCol, maxRow := v.Bounds(center, outer+band)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			p := v.World(col, row)
			if math.Abs(math.Hypot(p.X-center.X, p.Y-center.Y)-mid) <= band {
				s.screen.SetContent(col, row, outlineRune, nil, style)
			}
		}
	}
}

func (s *Surface) drawStatus(w, h int) {
	if h < 1 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	row := h - 1
	text := []rune(s.status)
	for col := 0; col < w; col++ {
		r := ' '
		if col < len(text) {
			r = text[col]
		}
		s.screen.SetContent(col, row, r, nil, style)
	}
}
