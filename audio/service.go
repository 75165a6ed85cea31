package audio

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	// Eat cue: short high sine blip
	cueFrequency = 880
	cueDuration  = 50 * time.Millisecond
)

// Cue plays a one-shot sound
type Cue interface {
	Play() bool
}

// AudioService drives the speaker as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	running  atomic.Bool
	muted    atomic.Bool
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - initial mute state
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			s.muted.Store(muted)
		}
	}
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.running.Load() || s.disabled.Load() {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: speaker unavailable, continuing without sound: %v", err)
		s.disabled.Store(true)
		return nil
	}
	s.running.Store(true)
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.running.CompareAndSwap(true, false) {
		speaker.Close()
	}
	return nil
}

// Play implements Cue, returns false when nothing was queued
func (s *AudioService) Play() bool {
	if !s.IsEnabled() {
		return false
	}
	sine, err := generators.SineTone(sampleRate, cueFrequency)
	if err != nil {
		return false
	}
	speaker.Play(beep.Take(sampleRate.N(cueDuration), sine))
	return true
}

// ToggleMute toggles mute state, returns true if now audible
func (s *AudioService) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (s *AudioService) IsMuted() bool {
	return s.muted.Load()
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// IsEnabled returns true if running and unmuted
func (s *AudioService) IsEnabled() bool {
	return s.running.Load() && !s.muted.Load()
}
