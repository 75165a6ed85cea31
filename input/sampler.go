package input

// Sampler tracks currently held movement keys, independent of frame timing
// Keys outside the keymap are ignored. Not safe for concurrent use
type Sampler struct {
	keymap Keymap
	held   map[string]Direction
}

// NewSampler creates a sampler over km; nil selects DefaultKeymap
func NewSampler(km Keymap) *Sampler {
	if km == nil {
		km = DefaultKeymap()
	}
	return &Sampler{
		keymap: km,
		held:   make(map[string]Direction, 4),
	}
}

// KeyDown marks a key held and reports whether it is a movement key
// Repeated downs for a held key are no-ops
func (s *Sampler) KeyDown(name string) bool {
	dir, ok := s.keymap.Resolve(name)
	if !ok {
		return false
	}
	s.held[normalize(name)] = dir
	return true
}

// KeyUp releases a key; releasing a key that is not held is a no-op
func (s *Sampler) KeyUp(name string) {
	delete(s.held, normalize(name))
}

// Held returns the directions of all held keys
func (s *Sampler) Held() Set {
	var set Set
	for _, d := range s.held {
		set |= 1 << d
	}
	return set
}

// HeldKeys returns the normalized names of held keys
func (s *Sampler) HeldKeys() []string {
	out := make([]string, 0, len(s.held))
	for k := range s.held {
		out = append(out, k)
	}
	return out
}

// Reset releases every key, used when the platform loses focus
func (s *Sampler) Reset() {
	clear(s.held)
}
