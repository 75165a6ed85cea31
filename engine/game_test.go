package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/blob-arena/backend"
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/render"
	"github.com/lixenwraith/blob-arena/wire"
)

// countingSurface is a minimal surface tracking live allocations
type countingSurface struct {
	live  int
	draws int
}

type countingHandle struct {
	s        *countingSurface
	released bool
}

func (h *countingHandle) Dispose() {
	if !h.released {
		h.released = true
		h.s.live--
	}
}

func (h *countingHandle) SetColor(entity.Color) {}

func (s *countingSurface) alloc() *countingHandle {
	s.live++
	return &countingHandle{s: s}
}

func (s *countingSurface) NewCircle(float64) render.Geometry         { return s.alloc() }
func (s *countingSurface) NewRing(float64, float64) render.Geometry  { return s.alloc() }
func (s *countingSurface) NewMaterial(entity.Color) render.Material  { return s.alloc() }
func (s *countingSurface) Draw(*render.Scene, entity.Position) error { s.draws++; return nil }

func newTestGame(t *testing.T, reporter backend.PositionReporter) (*Game, *countingSurface, *MockTimeProvider) {
	t.Helper()
	cfg := config.Default()
	cfg.World = scenarioWorld()

	surf := &countingSurface{}
	clock := NewMockTimeProvider(time.Unix(0, 0))
	g, err := NewGame(GameOptions{
		Config:   cfg,
		Surface:  surf,
		Reporter: reporter,
		Clock:    clock,
		Local:    "me",
	})
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g, surf, clock
}

func TestGameEndToEnd(t *testing.T) {
	var sent []entity.Position
	g, surf, clock := newTestGame(t, backend.ReporterFunc(func(p entity.Position) { sent = append(sent, p) }))

	g.Apply(wire.Batch{
		Players: []wire.PlayerChange{
			{Op: wire.OpInsert, New: entity.Player{Identity: "me", Online: true, Radius: 20, Score: 3, Position: entity.Position{X: 450, Y: 450}}},
			{Op: wire.OpInsert, New: entity.Player{Identity: "them", Online: true, Radius: 30}},
		},
		Food: []wire.FoodChange{
			{Op: wire.OpInsert, New: entity.Food{ID: 1}},
			{Op: wire.OpInsert, New: entity.Food{ID: 2}},
		},
	})

	if g.Manager.Len(entity.KindPlayer) != 2 || g.Manager.Len(entity.KindFood) != 2 {
		t.Fatalf("Reconciliation did not run on receipt: players=%d food=%d",
			g.Manager.Len(entity.KindPlayer), g.Manager.Len(entity.KindFood))
	}
	me, _ := g.Manager.Resource(entity.KindPlayer, entity.Identity("me"))
	if me.Outline == nil {
		t.Error("Local player missing outline")
	}

	g.Tick()
	g.Sampler.KeyDown("D")
	clock.Advance(100 * time.Millisecond)
	if err := g.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(sent) != 1 || !near(sent[0], entity.Position{X: 470, Y: 450}) {
		t.Errorf("Expected send of (470,450), got %v", sent)
	}
	if g.Camera.Center() != (entity.Position{X: 100, Y: 100}) {
		t.Errorf("Expected camera (100,100), got %+v", g.Camera.Center())
	}
	if surf.draws != 2 {
		t.Errorf("Expected 2 render calls, got %d", surf.draws)
	}

	hud := g.HUD()
	if hud.Score != 3 || hud.FoodCount != 2 || !hud.Online || hud.Players != 2 {
		t.Errorf("Unexpected HUD: %+v", hud)
	}
	if got := hud.String(); got != "score 3 | radius 20.0 | food 2 | players 2" {
		t.Errorf("Unexpected status line %q", got)
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if surf.live != 0 {
		t.Errorf("Expected all resources disposed, %d live", surf.live)
	}
	if g.Registry.Handlers() != 0 {
		t.Errorf("Expected feed detached, %d handlers", g.Registry.Handlers())
	}

	// Closed session ignores further input
	g.Apply(wire.Batch{Food: []wire.FoodChange{{Op: wire.OpInsert, New: entity.Food{ID: 3}}}})
	if g.Manager.Len(entity.KindFood) != 0 {
		t.Error("Closed game still reconciling")
	}
}

func TestGameCloseBestEffort(t *testing.T) {
	g, surf, _ := newTestGame(t, backend.ReporterFunc(func(entity.Position) {}))
	g.Apply(wire.Batch{Food: []wire.FoodChange{{Op: wire.OpInsert, New: entity.Food{ID: 1}}}})

	errListener := errors.New("listener refused to detach")
	var ran []string
	g.OnClose(func() error { ran = append(ran, "audio"); return nil })
	g.OnClose(func() error { ran = append(ran, "keys"); return errListener })

	err := g.Close()
	if !errors.Is(err, errListener) {
		t.Errorf("Expected listener error surfaced, got %v", err)
	}
	if len(ran) != 2 || ran[0] != "keys" || ran[1] != "audio" {
		t.Errorf("Expected reverse order release, got %v", ran)
	}
	if surf.live != 0 {
		t.Errorf("Partial failure must not skip disposal, %d live", surf.live)
	}
	if err := g.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestGameRequiresCollaborators(t *testing.T) {
	if _, err := NewGame(GameOptions{Reporter: backend.ReporterFunc(func(entity.Position) {})}); err == nil {
		t.Error("Expected error without surface")
	}
	if _, err := NewGame(GameOptions{Surface: &countingSurface{}}); err == nil {
		t.Error("Expected error without reporter")
	}

	cfg := config.Default()
	cfg.Input.Keys = map[string]string{"q": "diagonal"}
	_, err := NewGame(GameOptions{Config: cfg, Surface: &countingSurface{}, Reporter: backend.ReporterFunc(func(entity.Position) {})})
	if err == nil {
		t.Error("Expected keymap error")
	}
}
