package backend

import (
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/wire"
)

// Registry fans decoded transaction batches out to subscribed handlers
// Dispatch must be called from the goroutine that owns the handlers
type Registry struct {
	players map[int]PlayerHandler
	food    map[int]FoodHandler
	nextID  int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[int]PlayerHandler),
		food:    make(map[int]FoodHandler),
	}
}

// SubscribePlayers implements Subscription
func (r *Registry) SubscribePlayers(h PlayerHandler) func() {
	id := r.nextID
	r.nextID++
	r.players[id] = h
	return func() { delete(r.players, id) }
}

// SubscribeFood implements Subscription
func (r *Registry) SubscribeFood(h FoodHandler) func() {
	id := r.nextID
	r.nextID++
	r.food[id] = h
	return func() { delete(r.food, id) }
}

// Handlers returns the number of registered handlers of both kinds
func (r *Registry) Handlers() int {
	return len(r.players) + len(r.food)
}

// Dispatch delivers every change of the batch, players first, in batch order
func (r *Registry) Dispatch(b wire.Batch) {
	for _, c := range b.Players {
		for _, h := range r.playerHandlers() {
			switch c.Op {
			case wire.OpInsert:
				h.OnPlayerInsert(c.New)
			case wire.OpUpdate:
				h.OnPlayerUpdate(c.Old, c.New)
			case wire.OpDelete:
				h.OnPlayerDelete(c.Old)
			}
		}
	}
	for _, c := range b.Food {
		for _, h := range r.foodHandlers() {
			switch c.Op {
			case wire.OpInsert:
				h.OnFoodInsert(c.New)
			case wire.OpUpdate:
				h.OnFoodUpdate(c.Old, c.New)
			case wire.OpDelete:
				h.OnFoodDelete(c.Old)
			}
		}
	}
}

func (r *Registry) playerHandlers() []PlayerHandler {
	out := make([]PlayerHandler, 0, len(r.players))
	for id := 0; id < r.nextID; id++ {
		if h, ok := r.players[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

func (r *Registry) foodHandlers() []FoodHandler {
	out := make([]FoodHandler, 0, len(r.food))
	for id := 0; id < r.nextID; id++ {
		if h, ok := r.food[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

// PlayerHandlerFuncs is a PlayerHandler built from optional functions
type PlayerHandlerFuncs struct {
	Insert func(p entity.Player)
	Update func(old, p entity.Player)
	Delete func(p entity.Player)
}

func (f PlayerHandlerFuncs) OnPlayerInsert(p entity.Player) {
	if f.Insert != nil {
		f.Insert(p)
	}
}

func (f PlayerHandlerFuncs) OnPlayerUpdate(old, p entity.Player) {
	if f.Update != nil {
		f.Update(old, p)
	}
}

func (f PlayerHandlerFuncs) OnPlayerDelete(p entity.Player) {
	if f.Delete != nil {
		f.Delete(p)
	}
}
