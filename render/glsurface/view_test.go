package glsurface

import (
	"math"
	"testing"

	"github.com/lixenwraith/blob-arena/entity"
)

func TestViewProject(t *testing.T) {
	// 800x600 window, 250 units half extent: 600/500 = 1.2 px per unit
	v := NewView(800, 600, 250, entity.Position{X: 100, Y: 100})
	if v.Scale != 1.2 {
		t.Fatalf("Expected scale 1.2, got %v", v.Scale)
	}

	tests := []struct {
		name   string
		world  entity.Position
		px, py float64
	}{
		{"camera at center", entity.Position{X: 100, Y: 100}, 400, 300},
		{"right of camera", entity.Position{X: 200, Y: 100}, 520, 300},
		{"above camera maps up", entity.Position{X: 100, Y: 200}, 400, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.Project(tt.world)
			if math.Abs(x-tt.px) > 1e-9 || math.Abs(y-tt.py) > 1e-9 {
				t.Errorf("Project(%+v) = (%v,%v), want (%v,%v)", tt.world, x, y, tt.px, tt.py)
			}
		})
	}
}

func TestViewUnprojectInverts(t *testing.T) {
	v := NewView(1024, 768, 300, entity.Position{X: -42, Y: 17})
	for _, p := range []entity.Position{{}, {X: -42, Y: 17}, {X: 300, Y: -250}} {
		x, y := v.Project(p)
		got := v.Unproject(x, y)
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("Unproject(Project(%+v)) = %+v", p, got)
		}
	}
}

func TestViewDegenerateWindow(t *testing.T) {
	v := NewView(0, 0, 10, entity.Position{})
	if v.Scale != 0.05 {
		t.Errorf("Expected minimum 1px side, got scale %v", v.Scale)
	}
}

func TestTextureSize(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{0, 2},
		{5, 22},
		{-5, 22},
		{2.2, 11},
	}
	for _, tt := range tests {
		if got := TextureSize(tt.radius); got != tt.want {
			t.Errorf("TextureSize(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}
