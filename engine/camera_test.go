package engine

import (
	"testing"

	"github.com/lixenwraith/blob-arena/entity"
)

func TestCameraScenario(t *testing.T) {
	c := NewCamera(scenarioWorld())
	got := c.Tick(entity.Position{X: 470, Y: 450})
	if got != (entity.Position{X: 100, Y: 100}) {
		t.Errorf("Expected (100,100), got %+v", got)
	}
	if c.Center() != got {
		t.Error("Center must return the last applied value")
	}
}

func TestCameraSnapsInsideRange(t *testing.T) {
	c := NewCamera(scenarioWorld())
	for _, target := range []entity.Position{{X: -40, Y: 99}, {X: 0, Y: 0}, {X: 100, Y: -100}} {
		if got := c.Tick(target); got != target {
			t.Errorf("Expected exact snap to %+v, got %+v", target, got)
		}
	}
	if got := c.Tick(entity.Position{X: -1000, Y: 101}); got != (entity.Position{X: -100, Y: 100}) {
		t.Errorf("Expected (-100,100), got %+v", got)
	}
}

func TestCameraDegenerateWorld(t *testing.T) {
	w := scenarioWorld()
	w.Extent = 600 // narrower than 2*400

	c := NewCamera(w)
	for _, target := range []entity.Position{{X: 250, Y: -250}, {X: 0, Y: 0}, {X: -300, Y: 1}} {
		if got := c.Tick(target); got != (entity.Position{}) {
			t.Errorf("Expected world center for %+v, got %+v", target, got)
		}
	}

	// Exactly twice the half extent leaves a single valid center
	w.Extent = 800
	if got := ClampCamera(entity.Position{X: 10, Y: -10}, w); got != (entity.Position{}) {
		t.Errorf("Expected origin for exact fit, got %+v", got)
	}
}
