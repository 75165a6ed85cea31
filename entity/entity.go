package entity

import "fmt"

// Kind identifies one of the independently replicated entity tables
type Kind uint8

const (
	KindPlayer Kind = iota
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFood:
		return "food"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Identity is the backend's cryptographic identity of a player, hex encoded
type Identity string

// Short returns a display prefix of the identity
func (id Identity) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// FoodID is the backend's auto-incremented food key
type FoodID uint64

// Position is a point in world units, origin at world center, Y up
type Position struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Add returns p offset by (dx, dy)
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Color is an opaque 24-bit RGB color
type Color struct {
	R uint8 `msgpack:"r"`
	G uint8 `msgpack:"g"`
	B uint8 `msgpack:"b"`
}

// RGB returns the components widened for renderer APIs
func (c Color) RGB() (int32, int32, int32) {
	return int32(c.R), int32(c.G), int32(c.B)
}

// Player is the full replicated row of the player table
type Player struct {
	Identity Identity `msgpack:"identity"`
	Online   bool     `msgpack:"online"`
	Color    Color    `msgpack:"color"`
	Position Position `msgpack:"position"`
	Score    uint32   `msgpack:"score"`
	Radius   float64  `msgpack:"radius"`
}

// Food is the full replicated row of the food table
// Radius is not replicated; it is a world constant
type Food struct {
	ID       FoodID   `msgpack:"id"`
	Position Position `msgpack:"position"`
	Color    Color    `msgpack:"color"`
}
