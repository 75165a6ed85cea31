package engine

import (
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/entity"
)

// Camera keeps the view centered on the local player without leaving the world
// No smoothing: the center snaps to the clamped target each tick
type Camera struct {
	world  config.World
	center entity.Position
}

// NewCamera creates a camera centered on the world origin
func NewCamera(world config.World) *Camera {
	return &Camera{world: world}
}

// Tick re-centers on target and returns the new center
func (c *Camera) Tick(target entity.Position) entity.Position {
	c.center = ClampCamera(target, c.world)
	return c.center
}

// Center returns the last applied center
func (c *Camera) Center() entity.Position {
	return c.center
}

// ClampCamera clamps target into [-extent/2+half, extent/2-half] per axis
// When the world is narrower than the view the range is empty and the axis centers on 0
func ClampCamera(target entity.Position, world config.World) entity.Position {
	bound := world.HalfExtent() - world.CameraHalfExtent
	if bound < 0 {
		return entity.Position{}
	}
	return entity.Position{
		X: clamp(target.X, -bound, bound),
		Y: clamp(target.Y, -bound, bound),
	}
}
