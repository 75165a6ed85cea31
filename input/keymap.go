package input

import (
	"fmt"
	"maps"
	"strings"
)

// Keymap resolves platform key names to movement directions
// Names are matched case-insensitively
type Keymap map[string]Direction

// DefaultKeymap binds the four movement keys
func DefaultKeymap() Keymap {
	return Keymap{
		"w": DirUp,
		"s": DirDown,
		"a": DirLeft,
		"d": DirRight,
	}
}

// ArrowKeymap extends the default bindings with the arrow keys
func ArrowKeymap() Keymap {
	km := DefaultKeymap()
	km["up"] = DirUp
	km["down"] = DirDown
	km["left"] = DirLeft
	km["right"] = DirRight
	return km
}

// LoadKeymap merges key name → direction name bindings over the defaults
// A binding to "none" removes the key
func LoadKeymap(bindings map[string]string) (Keymap, error) {
	return DefaultKeymap().Bind(bindings)
}

// Bind returns a copy of km with the bindings applied; km is unchanged
func (km Keymap) Bind(bindings map[string]string) (Keymap, error) {
	out := km.Clone()
	for key, action := range bindings {
		name := normalize(key)
		if name == "" {
			return nil, fmt.Errorf("keymap: empty key name")
		}

		action = strings.ToLower(strings.TrimSpace(action))
		if action == "none" {
			delete(out, name)
			continue
		}
		dir, ok := parseDirection(action)
		if !ok {
			return nil, fmt.Errorf("keymap: key %q: unknown direction %q", key, action)
		}
		out[name] = dir
	}
	return out, nil
}

// Resolve returns the direction bound to name
func (km Keymap) Resolve(name string) (Direction, bool) {
	d, ok := km[normalize(name)]
	return d, ok
}

// Clone returns an independent copy
func (km Keymap) Clone() Keymap {
	return maps.Clone(km)
}

func parseDirection(s string) (Direction, bool) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), true
		}
	}
	return 0, false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
