package input

import "time"

// HoldTracker synthesizes key releases for platforms that only report presses
// Terminals deliver the initial press and auto-repeats; a key counts as released once
// no press has been seen for the timeout
type HoldTracker struct {
	sampler  *Sampler
	timeout  time.Duration
	lastSeen map[string]time.Time
}

// NewHoldTracker feeds synthesized down/up events into s
func NewHoldTracker(s *Sampler, timeout time.Duration) *HoldTracker {
	return &HoldTracker{
		sampler:  s,
		timeout:  timeout,
		lastSeen: make(map[string]time.Time, 4),
	}
}

// Press records a press or auto-repeat of name at now
func (h *HoldTracker) Press(name string, now time.Time) {
	if !h.sampler.KeyDown(name) {
		return
	}
	h.lastSeen[normalize(name)] = now
}

// Expire releases keys whose last press is at least timeout before now
func (h *HoldTracker) Expire(now time.Time) {
	for name, seen := range h.lastSeen {
		if now.Sub(seen) >= h.timeout {
			h.sampler.KeyUp(name)
			delete(h.lastSeen, name)
		}
	}
}

// ReleaseAll releases every tracked key
func (h *HoldTracker) ReleaseAll() {
	for name := range h.lastSeen {
		h.sampler.KeyUp(name)
	}
	clear(h.lastSeen)
}
