// Package wire defines the payloads exchanged with the backend and their msgpack encoding
package wire

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/blob-arena/entity"
)

// Op is the kind of row change
type Op uint8

const (
	OpInsert Op = iota + 1
	OpUpdate
	OpDelete
)

// PlayerChange carries full rows; Old is set for update and delete, New for insert and update
type PlayerChange struct {
	Op  Op            `msgpack:"op"`
	Old entity.Player `msgpack:"old,omitempty"`
	New entity.Player `msgpack:"new,omitempty"`
}

// FoodChange carries full rows; Old is set for update and delete, New for insert and update
type FoodChange struct {
	Op  Op          `msgpack:"op"`
	Old entity.Food `msgpack:"old,omitempty"`
	New entity.Food `msgpack:"new,omitempty"`
}

// Batch is one backend transaction: all changes become visible together
type Batch struct {
	Seq     uint64         `msgpack:"seq"`
	Players []PlayerChange `msgpack:"players,omitempty"`
	Food    []FoodChange   `msgpack:"food,omitempty"`
}

// Empty reports whether the batch carries no changes
func (b Batch) Empty() bool {
	return len(b.Players) == 0 && len(b.Food) == 0
}

// Hello is the first client message
type Hello struct {
	SessionID uuid.UUID `msgpack:"session_id"`
	Token     string    `msgpack:"token,omitempty"`
}

// Welcome assigns the local identity
type Welcome struct {
	Identity entity.Identity `msgpack:"identity"`
	Token    string          `msgpack:"token,omitempty"`
}

// PositionReport is the outbound movement call
type PositionReport struct {
	Position entity.Position `msgpack:"position"`
}

// Marshal encodes a payload
func Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire encode %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes a payload into v
func Unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire decode %T: %w", v, err)
	}
	return nil
}
