package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/blob-arena/audio"
	"github.com/lixenwraith/blob-arena/config"
	"github.com/lixenwraith/blob-arena/core"
	"github.com/lixenwraith/blob-arena/engine"
	"github.com/lixenwraith/blob-arena/input"
	"github.com/lixenwraith/blob-arena/network"
	"github.com/lixenwraith/blob-arena/render/termsurface"
	"github.com/lixenwraith/blob-arena/service"
)

var (
	configPath    = flag.String("config", "", "Path to TOML config file")
	addrFlag      = flag.String("addr", "", "Backend address: tcp://host:port or ws://host/path")
	colorModeFlag = flag.String("color", "", "Color mode: auto, truecolor, 256")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/arena.log")
	muteFlag      = flag.Bool("mute", false, "Start with sound muted")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arena-tui: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file then applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *addrFlag != "" {
		cfg.Network.Address = *addrFlag
	}
	if *colorModeFlag != "" {
		cfg.ColorMode = *colorModeFlag
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

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdin and stdout must be a terminal")
	}

	keymap, err := input.ArrowKeymap().Bind(cfg.Input.Keys)
	if err != nil {
		return err
	}

	// Connect before taking over the terminal so dial errors stay readable
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

	applyColorMode(cfg.ColorMode)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	surface := termsurface.New(screen, cfg.World.CameraHalfExtent)
	clock := engine.NewMonotonicTimeProvider()
	game, err := engine.NewGame(engine.GameOptions{
		Config:   cfg,
		Surface:  surface,
		Reporter: client,
		Clock:    clock,
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

	hold := input.NewHoldTracker(game.Sampler, cfg.HoldTimeout())

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch action := classifyKey(ev); action {
				case actionQuit:
					return nil
				case actionMute:
					sound.ToggleMute()
				case actionMove:
					if name, ok := keyName(ev); ok {
						hold.Press(name, clock.Now())
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventFocus:
				if !ev.Focused {
					hold.ReleaseAll()
				}
			}

		case b, ok := <-client.Batches():
			if !ok {
				if err := client.Err(); err != nil {
					return fmt.Errorf("connection lost: %w", err)
				}
				return errors.New("connection closed")
			}
			game.Apply(b)

		case <-frameTicker.C:
			hold.Expire(clock.Now())
			surface.SetStatus(statusLine(game.HUD(), sound))
			if err := game.Tick(); err != nil {
				log.Printf("frame: %v", err)
			}
		}
	}
}

// applyColorMode forces tcell's palette choice before the screen is created
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func statusLine(h engine.HUD, sound *audio.AudioService) string {
	line := h.String()
	if sound.IsEnabled() {
		return line + " | m: mute | esc: quit"
	}
	return line + " | m: sound | esc: quit"
}
