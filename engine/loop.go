package engine

import (
	"errors"
	"time"

	"github.com/lixenwraith/blob-arena/backend"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/input"
)

// ErrReentrantTick is returned when Tick is called from within a running tick
var ErrReentrantTick = errors.New("tick already running")

// Renderer issues the explicit render call
type Renderer interface {
	Render(camera entity.Position) error
}

// HeldSource exposes the currently held movement directions
type HeldSource interface {
	Held() input.Set
}

// PlayerSource exposes the latest echoed row of a player
type PlayerSource interface {
	LocalPlayer(id entity.Identity) (entity.Player, bool)
}

// Loop is the frame scheduler: one Tick per display refresh, steps in fixed order
type Loop struct {
	clock      TimeProvider
	maxElapsed time.Duration

	held      HeldSource
	players   PlayerSource
	predictor *Predictor
	camera    *Camera
	reporter  backend.PositionReporter
	renderer  Renderer

	local entity.Identity

	last    time.Time
	started bool
	ticking bool

	ticks uint64
	sends uint64
}

// LoopConfig collects the loop's collaborators
type LoopConfig struct {
	Clock      TimeProvider
	MaxElapsed time.Duration
	Held       HeldSource
	Players    PlayerSource
	Predictor  *Predictor
	Camera     *Camera
	Reporter   backend.PositionReporter
	Renderer   Renderer
}

// NewLoop creates a frame scheduler; a nil Clock selects the monotonic clock
func NewLoop(cfg LoopConfig) *Loop {
	clock := cfg.Clock
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Loop{
		clock:      clock,
		maxElapsed: cfg.MaxElapsed,
		held:       cfg.Held,
		players:    cfg.Players,
		predictor:  cfg.Predictor,
		camera:     cfg.Camera,
		reporter:   cfg.Reporter,
		renderer:   cfg.Renderer,
	}
}

// SetLocal sets the identity controlled by this client
func (l *Loop) SetLocal(id entity.Identity) {
	l.local = id
}

// Local returns the identity controlled by this client
func (l *Loop) Local() entity.Identity {
	return l.local
}

// Tick runs one frame: elapsed, predict+send, camera, render
func (l *Loop) Tick() error {
	if l.ticking {
		return ErrReentrantTick
	}
	l.ticking = true
	defer func() { l.ticking = false }()

	l.ticks++
	elapsed := l.elapsed()

	me, known := l.localPlayer()

	held := l.held.Held()
	if !held.Empty() && known && me.Online {
		if next, moved := l.predictor.Tick(elapsed.Seconds(), held, me.Position); moved {
			l.reporter.ReportPosition(next)
			l.sends++
		}
	}

	if known {
		l.camera.Tick(me.Position)
	}

	return l.renderer.Render(l.camera.Center())
}

// elapsed samples the clock; the first tick measures zero
func (l *Loop) elapsed() time.Duration {
	now := l.clock.Now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}
	d := now.Sub(l.last)
	l.last = now
	if d < 0 {
		return 0
	}
	if l.maxElapsed > 0 && d > l.maxElapsed {
		return l.maxElapsed
	}
	return d
}

func (l *Loop) localPlayer() (entity.Player, bool) {
	if l.local == "" {
		return entity.Player{}, false
	}
	return l.players.LocalPlayer(l.local)
}

// Ticks returns the number of ticks run
func (l *Loop) Ticks() uint64 { return l.ticks }

// Sends returns the number of position reports emitted
func (l *Loop) Sends() uint64 { return l.sends }
