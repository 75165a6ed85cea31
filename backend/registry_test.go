package backend

import (
	"testing"

	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/wire"
)

type foodLog struct {
	events []string
}

func (l *foodLog) OnFoodInsert(f entity.Food)    { l.events = append(l.events, "insert") }
func (l *foodLog) OnFoodUpdate(_, f entity.Food) { l.events = append(l.events, "update") }
func (l *foodLog) OnFoodDelete(f entity.Food)    { l.events = append(l.events, "delete") }

func TestDispatchRoutesOps(t *testing.T) {
	reg := NewRegistry()

	var inserted, updated, deleted []entity.Identity
	reg.SubscribePlayers(PlayerHandlerFuncs{
		Insert: func(p entity.Player) { inserted = append(inserted, p.Identity) },
		Update: func(old, p entity.Player) { updated = append(updated, old.Identity+"->"+p.Identity) },
		Delete: func(p entity.Player) { deleted = append(deleted, p.Identity) },
	})
	food := &foodLog{}
	reg.SubscribeFood(food)

	reg.Dispatch(wire.Batch{
		Players: []wire.PlayerChange{
			{Op: wire.OpInsert, New: entity.Player{Identity: "a"}},
			{Op: wire.OpUpdate, Old: entity.Player{Identity: "a"}, New: entity.Player{Identity: "a"}},
			{Op: wire.OpDelete, Old: entity.Player{Identity: "b"}},
		},
		Food: []wire.FoodChange{
			{Op: wire.OpInsert}, {Op: wire.OpUpdate}, {Op: wire.OpDelete},
		},
	})

	if len(inserted) != 1 || inserted[0] != "a" {
		t.Errorf("Unexpected inserts: %v", inserted)
	}
	if len(updated) != 1 || updated[0] != "a->a" {
		t.Errorf("Unexpected updates: %v", updated)
	}
	if len(deleted) != 1 || deleted[0] != "b" {
		t.Errorf("Delete must carry the old row, got %v", deleted)
	}
	want := []string{"insert", "update", "delete"}
	for i, ev := range want {
		if i >= len(food.events) || food.events[i] != ev {
			t.Fatalf("Expected food events %v, got %v", want, food.events)
		}
	}
}

func TestCancelDeregisters(t *testing.T) {
	reg := NewRegistry()
	a, b := &foodLog{}, &foodLog{}
	cancelA := reg.SubscribeFood(a)
	reg.SubscribeFood(b)

	cancelA()
	reg.Dispatch(wire.Batch{Food: []wire.FoodChange{{Op: wire.OpInsert}}})

	if len(a.events) != 0 {
		t.Errorf("Cancelled handler received %v", a.events)
	}
	if len(b.events) != 1 {
		t.Errorf("Live handler expected 1 event, got %v", b.events)
	}
	if reg.Handlers() != 1 {
		t.Errorf("Expected 1 handler left, got %d", reg.Handlers())
	}
}
