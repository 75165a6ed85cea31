package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/blob-arena/backend"
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/input"
	"github.com/lixenwraith/blob-arena/render"
	"github.com/lixenwraith/blob-arena/store"
	"github.com/lixenwraith/blob-arena/wire"
)

// GameOptions collects the platform and backend collaborators of a session
type GameOptions struct {
	Config   *config.Config
	Surface  render.Surface
	Reporter backend.PositionReporter
	Clock    TimeProvider
	// Keymap nil selects the configured bindings over the defaults
	Keymap input.Keymap
	Local  entity.Identity
}

// Game wires the sync core for one session and owns its teardown
// All methods must be called from the loop goroutine
type Game struct {
	Store     *store.Store
	Registry  *backend.Registry
	Manager   *render.Manager
	Sampler   *input.Sampler
	Predictor *Predictor
	Camera    *Camera
	Loop      *Loop

	releases []func() error
	closed   bool
}

// NewGame builds the store, render manager, input sampler and frame loop
func NewGame(opts GameOptions) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Surface == nil {
		return nil, errors.New("game: nil surface")
	}
	if opts.Reporter == nil {
		return nil, errors.New("game: nil position reporter")
	}

	km := opts.Keymap
	if km == nil {
		var err error
		if km, err = input.LoadKeymap(cfg.Input.Keys); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}

	g := &Game{
		Store:     store.New(),
		Registry:  backend.NewRegistry(),
		Sampler:   input.NewSampler(km),
		Predictor: NewPredictor(cfg.World),
		Camera:    NewCamera(cfg.World),
	}
	g.Manager = render.NewManager(opts.Surface, cfg.World, g.Store)
	g.Loop = NewLoop(LoopConfig{
		Clock:      opts.Clock,
		MaxElapsed: cfg.MaxElapsed(),
		Held:       g.Sampler,
		Players:    g.Store,
		Predictor:  g.Predictor,
		Camera:     g.Camera,
		Reporter:   opts.Reporter,
		Renderer:   g.Manager,
	})

	// Acquire in order; Close releases in reverse
	detachFeed := store.NewFeed(g.Store).Attach(g.Registry)
	g.OnClose(func() error { detachFeed(); return nil })

	unsubscribe := g.Store.Subscribe(g.Manager)
	g.OnClose(func() error { unsubscribe(); return nil })
	g.OnClose(func() error { g.Manager.DisposeAll(); return nil })

	if opts.Local != "" {
		g.SetLocal(opts.Local)
	}
	return g, nil
}

// Apply delivers one backend transaction; observers run once per changed kind
func (g *Game) Apply(b wire.Batch) {
	if g.closed || b.Empty() {
		return
	}
	g.Store.Batch(func() {
		g.Registry.Dispatch(b)
	})
}

// SetLocal sets the controlled identity for prediction, camera and outline
func (g *Game) SetLocal(id entity.Identity) {
	g.Loop.SetLocal(id)
	g.Manager.SetLocal(id)
}

// Tick runs one frame
func (g *Game) Tick() error {
	if g.closed {
		return nil
	}
	return g.Loop.Tick()
}

// OnClose registers a release run by Close, in reverse registration order
func (g *Game) OnClose(fn func() error) {
	g.releases = append(g.releases, fn)
}

// HUD is the read-only view exposed to the UI shell
type HUD struct {
	Score     uint32
	Radius    float64
	Online    bool
	FoodCount int
	Players   int
}

// String formats the one-line status shown by both clients
func (h HUD) String() string {
	if !h.Online {
		return fmt.Sprintf("offline | food %d | players %d", h.FoodCount, h.Players)
	}
	return fmt.Sprintf("score %d | radius %.1f | food %d | players %d", h.Score, h.Radius, h.FoodCount, h.Players)
}

// HUD reads score and food count off the store
func (g *Game) HUD() HUD {
	h := HUD{
		FoodCount: g.Store.FoodCount(),
		Players:   g.Manager.Len(entity.KindPlayer),
	}
	if me, ok := g.Store.LocalPlayer(g.Loop.Local()); ok {
		h.Score = me.Score
		h.Radius = me.Radius
		h.Online = me.Online
	}
	return h
}

// Close runs every registered release even when some fail, returning the joined errors
// Repeated calls return nil
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	var errs []error
	for i := len(g.releases) - 1; i >= 0; i-- {
		if err := g.releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	g.releases = nil
	return errors.Join(errs...)
}
