package engine

import (
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/input"
)

// Predictor turns held keys and elapsed time into the next local position
// It never writes to the store: the displayed position stays the last backend echo
type Predictor struct {
	world config.World
}

// NewPredictor creates a predictor for the given world constants
func NewPredictor(world config.World) *Predictor {
	return &Predictor{world: world}
}

// Tick returns the clamped candidate position, or false when held keys produce no motion
func (p *Predictor) Tick(elapsed float64, held input.Set, last entity.Position) (entity.Position, bool) {
	step := p.world.MoveSpeed * elapsed

	var dx, dy float64
	if held.Has(input.DirUp) {
		dy += step
	}
	if held.Has(input.DirDown) {
		dy -= step
	}
	if held.Has(input.DirLeft) {
		dx -= step
	}
	if held.Has(input.DirRight) {
		dx += step
	}

	if dx == 0 && dy == 0 {
		return entity.Position{}, false
	}
	return ClampToWorld(last.Add(dx, dy), p.world), true
}

// ClampToWorld clamps each axis independently to [-extent/2, extent/2]
func ClampToWorld(pos entity.Position, world config.World) entity.Position {
	half := world.HalfExtent()
	return entity.Position{
		X: clamp(pos.X, -half, half),
		Y: clamp(pos.Y, -half, half),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
