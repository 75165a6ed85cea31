// Package glsurface renders the arena scene with ebiten images
package glsurface

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/render"
)

// ErrNoTarget is returned by Draw before a frame target was set
var ErrNoTarget = errors.New("glsurface: no target image")

// Shapes are rasterized once in white at this density and tinted per draw
const texelsPerUnit = 2.0

var background = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

// Surface allocates one texture per geometry and draws them into the frame target
type Surface struct {
	target     *ebiten.Image
	halfExtent float64
	status     string
	live       int
}

// New creates a surface showing halfExtent world units from the camera to the nearer edge
func New(halfExtent float64) *Surface {
	if halfExtent <= 0 {
		halfExtent = 1
	}
	return &Surface{halfExtent: halfExtent}
}

// SetTarget sets the image the next Draw renders into; ebiten hands a new one to every Draw
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// SetStatus sets the text printed in the top-left corner
func (s *Surface) SetStatus(text string) {
	s.status = text
}

// Live returns the number of undisposed geometries and materials
func (s *Surface) Live() int {
	return s.live
}

// shape is a white texture centered on its image
type shape struct {
	s        *Surface
	img      *ebiten.Image
	released bool
}

func (g *shape) Dispose() {
	if g.released {
		return
	}
	g.released = true
	g.img.Deallocate()
	g.s.live--
}

type material struct {
	s        *Surface
	color    color.RGBA
	released bool
}

func (m *material) SetColor(c entity.Color) {
	m.color = toRGBA(c)
}

func (m *material) Dispose() {
	if m.released {
		return
	}
	m.released = true
	m.s.live--
}

func toRGBA(c entity.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (s *Surface) newShape(extent float64) (*shape, float32) {
	size := TextureSize(extent)
	s.live++
	return &shape{s: s, img: ebiten.NewImage(size, size)}, float32(size) / 2
}

func (s *Surface) NewCircle(radius float64) render.Geometry {
	radius = math.Abs(radius)
	g, c := s.newShape(radius)
	vector.DrawFilledCircle(g.img, c, c, float32(radius*texelsPerUnit), color.White, true)
	return g
}

func (s *Surface) NewRing(inner, outer float64) render.Geometry {
	inner, outer = math.Abs(inner), math.Abs(outer)
	g, c := s.newShape(outer)
	mid := float32((inner + outer) / 2 * texelsPerUnit)
	width := float32((outer - inner) * texelsPerUnit)
	vector.StrokeCircle(g.img, c, c, mid, width, color.White, true)
	return g
}

func (s *Surface) NewMaterial(c entity.Color) render.Material {
	s.live++
	return &material{s: s, color: toRGBA(c)}
}

// Draw renders the scene into the current target
func (s *Surface) Draw(scene *render.Scene, camera entity.Position) error {
	if s.target == nil {
		return ErrNoTarget
	}
	s.target.Fill(background)

	b := s.target.Bounds()
	v := NewView(b.Dx(), b.Dy(), s.halfExtent, camera)

	scene.Walk(func(m *render.Mesh, pos entity.Position) {
		g, ok := m.Geometry.(*shape)
		if !ok || g.released {
			return
		}
		mat, ok := m.Material.(*material)
		if !ok || mat.released {
			return
		}

		half := float64(g.img.Bounds().Dx()) / 2
		sx, sy := v.Project(pos)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-half, -half)
		op.GeoM.Scale(v.Scale/texelsPerUnit, v.Scale/texelsPerUnit)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.ScaleWithColor(mat.color)
		op.Filter = ebiten.FilterLinear
		s.target.DrawImage(g.img, op)
	})

	if s.status != "" {
		ebitenutil.DebugPrint(s.target, s.status)
	}
	return nil
}
