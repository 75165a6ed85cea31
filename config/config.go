package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// World holds the static constants shared by prediction, camera and rendering
type World struct {
	// Extent is the full side length of the square world, centered on the origin
	Extent float64 `toml:"extent"`
	// CameraHalfExtent is half the visible side length in world units
	CameraHalfExtent float64 `toml:"camera_half_extent"`
	FoodRadius       float64 `toml:"food_radius"`
	// MoveSpeed is in world units per second
	MoveSpeed float64 `toml:"move_speed"`
	// OutlineOffset is added to the local player's radius for the outline ring
	OutlineOffset float64 `toml:"outline_offset"`
}

// HalfExtent returns the world bound on each axis
func (w World) HalfExtent() float64 {
	return w.Extent / 2
}

// Network selects and tunes the backend link
type Network struct {
	// Address is tcp://host:port or ws(s)://host/path
	Address          string `toml:"address"`
	Token            string `toml:"token"`
	TLS              bool   `toml:"tls"`
	ConnectTimeoutMs int    `toml:"connect_timeout_ms"`
	WriteTimeoutMs   int    `toml:"write_timeout_ms"`
	HeartbeatMs      int    `toml:"heartbeat_ms"`
	SendQueueSize    int    `toml:"send_queue_size"`
	RecvQueueSize    int    `toml:"recv_queue_size"`
}

// Input configures the key sampler
type Input struct {
	// Keys maps extra key names to up|down|left|right
	Keys map[string]string `toml:"keys"`
	// HoldTimeoutMs releases a key on terminals that never report key-up
	HoldTimeoutMs int `toml:"hold_timeout_ms"`
}

// Frame configures the frame scheduler
type Frame struct {
	FPS          int `toml:"fps"`
	MaxElapsedMs int `toml:"max_elapsed_ms"`
}

// Audio configures sound cues
type Audio struct {
	Mute bool `toml:"mute"`
}

// Config is the full client configuration
type Config struct {
	World   World   `toml:"world"`
	Network Network `toml:"network"`
	Input   Input   `toml:"input"`
	Frame   Frame   `toml:"frame"`
	Audio   Audio   `toml:"audio"`

	// ColorMode is auto, truecolor or 256 (terminal client only)
	ColorMode string `toml:"color_mode"`
	Debug     bool   `toml:"debug"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		World: World{
			Extent:           1000,
			CameraHalfExtent: 250,
			FoodRadius:       5,
			MoveSpeed:        200,
			OutlineOffset:    2,
		},
		Network: Network{
			Address:          "tcp://127.0.0.1:7777",
			ConnectTimeoutMs: 5000,
			WriteTimeoutMs:   5000,
			HeartbeatMs:      10000,
			SendQueueSize:    256,
			RecvQueueSize:    256,
		},
		Input: Input{
			HoldTimeoutMs: 550,
		},
		Frame: Frame{
			FPS:          60,
			MaxElapsedMs: 250,
		},
		ColorMode: "auto",
	}
}

// Load reads a TOML file over the defaults
// An empty path returns the defaults unchanged
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config read: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result
// Keys absent from data keep their current values
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.World.Extent <= 0:
		return fmt.Errorf("%w: world.extent must be positive", ErrInvalid)
	case c.World.CameraHalfExtent <= 0:
		return fmt.Errorf("%w: world.camera_half_extent must be positive", ErrInvalid)
	case c.World.MoveSpeed < 0:
		return fmt.Errorf("%w: world.move_speed must not be negative", ErrInvalid)
	case c.Frame.FPS <= 0:
		return fmt.Errorf("%w: frame.fps must be positive", ErrInvalid)
	case c.Input.HoldTimeoutMs <= 0:
		return fmt.Errorf("%w: input.hold_timeout_ms must be positive", ErrInvalid)
	}
	switch c.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: color_mode %q", ErrInvalid, c.ColorMode)
	}
	return nil
}

// FrameInterval returns the tick period for platforms without vsync callbacks
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Frame.FPS)
}

// MaxElapsed returns the cap on a single tick's elapsed time, zero for none
func (c *Config) MaxElapsed() time.Duration {
	return time.Duration(c.Frame.MaxElapsedMs) * time.Millisecond
}

// HoldTimeout returns the synthesized key release delay
func (c *Config) HoldTimeout() time.Duration {
	return time.Duration(c.Input.HoldTimeoutMs) * time.Millisecond
}
