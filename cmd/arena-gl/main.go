package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/blob-arena/audio"
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/core"
	"github.com/lixenwraith/blob-arena/engine"
	"github.com/lixenwraith/blob-arena/input"
	"github.com/lixenwraith/blob-arena/network"
	"github.com/lixenwraith/blob-arena/render/glsurface"
	"github.com/lixenwraith/blob-arena/service"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	configPath = flag.String("config", "", "Path to TOML config file")
	addrFlag   = flag.String("addr", "", "Backend address: tcp://host:port or ws://host/path")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/arena.log")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
)

// arenaGame adapts the session to ebiten's Update/Draw callbacks
// ebiten calls both on one goroutine, which owns the session
type arenaGame struct {
	game    *engine.Game
	surface *glsurface.Surface
	client  *network.Client
	sound   *audio.AudioService

	keys []ebiten.Key
}

// Update drains inbound transactions and feeds key transitions to the sampler
func (a *arenaGame) Update() error {
	for drained := false; !drained; {
		select {
		case b, ok := <-a.client.Batches():
			if !ok {
				if err := a.client.Err(); err != nil {
					return fmt.Errorf("connection lost: %w", err)
				}
				return errors.New("connection closed")
			}
			a.game.Apply(b)
		default:
			drained = true
		}
	}

	if !ebiten.IsFocused() {
		a.game.Sampler.Reset()
		return nil
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		switch k {
		case ebiten.KeyEscape:
			return ebiten.Termination
		case ebiten.KeyM:
			a.sound.ToggleMute()
		default:
			a.game.Sampler.KeyDown(keyName(k))
		}
	}

	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		a.game.Sampler.KeyUp(keyName(k))
	}
	return nil
}

// Draw runs one frame per display refresh into the screen image
func (a *arenaGame) Draw(screen *ebiten.Image) {
	a.surface.SetTarget(screen)
	a.surface.SetStatus(a.game.HUD().String())
	if err := a.game.Tick(); err != nil {
		log.Printf("frame: %v", err)
	}
}

func (a *arenaGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// keyName maps ebiten keys to keymap names: letters lowercased, arrows as up/down/left/right
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyArrowUp:
		return "up"
	case ebiten.KeyArrowDown:
		return "down"
	case ebiten.KeyArrowLeft:
		return "left"
	case ebiten.KeyArrowRight:
		return "right"
	}
	return strings.ToLower(k.String())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *addrFlag != "" {
		cfg.Network.Address = *addrFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *muteFlag {
		cfg.Audio.Mute = true
	}
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if logFile := core.SetupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	keymap, err := input.ArrowKeymap().Bind(cfg.Input.Keys)
	if err != nil {
		return err
	}

	hub := service.NewHub()
	client := network.NewClient()
	sound := audio.NewService()
	hub.Register(client, network.FromConfig(cfg.Network))
	hub.Register(sound, cfg.Audio.Mute)
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	surface := glsurface.New(cfg.World.CameraHalfExtent)
	game, err := engine.NewGame(engine.GameOptions{
		Config:   cfg,
		Surface:  surface,
		Reporter: client,
		Keymap:   keymap,
		Local:    client.Identity(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("teardown: %v", err)
		}
	}()

	watcher := audio.NewScoreWatcher(game.Store, game.Loop.Local, sound)
	unwatch := game.Store.Subscribe(watcher)
	game.OnClose(func() error { unwatch(); return nil })

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("blob arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Frame.FPS)

	return ebiten.RunGame(&arenaGame{
		game:    game,
		surface: surface,
		client:  client,
		sound:   sound,
	})
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arena-gl: %v\n", err)
		os.Exit(1)
	}
}
