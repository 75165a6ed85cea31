package store

import (
	"github.com/lixenwraith/blob-arena/entity"
)

// Observer is notified after a kind's table changed
// Called at most once per kind per batch
type Observer interface {
	Changed(kind entity.Kind)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(kind entity.Kind)

func (f ObserverFunc) Changed(kind entity.Kind) { f(kind) }

// Store holds the latest known rows of every player and food entity
// Mutated only by backend notifications; not safe for concurrent use, owned by the loop goroutine
type Store struct {
	players *table[entity.Identity, entity.Player]
	food    *table[entity.FoodID, entity.Food]

	observers map[int]Observer
	nextObs   int

	batchDepth int
	dirty      [2]bool
}

// New creates an empty store
func New() *Store {
	return &Store{
		players:   newTable[entity.Identity, entity.Player](),
		food:      newTable[entity.FoodID, entity.Food](),
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer and returns its release function
// Release is idempotent
func (s *Store) Subscribe(o Observer) (cancel func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	return func() { delete(s.observers, id) }
}

// UpsertPlayer replaces all attributes stored under p.Identity
func (s *Store) UpsertPlayer(p entity.Player) {
	s.players.upsert(p.Identity, p)
	s.markDirty(entity.KindPlayer)
}

// RemovePlayer deletes the player row; absent keys are ignored
func (s *Store) RemovePlayer(id entity.Identity) {
	if s.players.remove(id) {
		s.markDirty(entity.KindPlayer)
	}
}

// UpsertFood replaces all attributes stored under f.ID
func (s *Store) UpsertFood(f entity.Food) {
	s.food.upsert(f.ID, f)
	s.markDirty(entity.KindFood)
}

// RemoveFood deletes the food row; absent keys are ignored
func (s *Store) RemoveFood(id entity.FoodID) {
	if s.food.remove(id) {
		s.markDirty(entity.KindFood)
	}
}

// Players returns an immutable view of the player table
func (s *Store) Players() Snapshot[entity.Identity, entity.Player] {
	return s.players.snapshot()
}

// Food returns an immutable view of the food table
func (s *Store) Food() Snapshot[entity.FoodID, entity.Food] {
	return s.food.snapshot()
}

// LocalPlayer returns the row of the given identity
func (s *Store) LocalPlayer(id entity.Identity) (entity.Player, bool) {
	return s.players.get(id)
}

// FoodCount returns the number of live food rows
func (s *Store) FoodCount() int {
	return len(s.food.rows)
}

// Batch runs fn and delivers one notification per changed kind after it returns
// Batches nest; only the outermost flushes
func (s *Store) Batch(fn func()) {
	s.batchDepth++
	defer func() {
		s.batchDepth--
		if s.batchDepth == 0 {
			s.flush()
		}
	}()
	fn()
}

func (s *Store) markDirty(kind entity.Kind) {
	s.dirty[kind] = true
	if s.batchDepth == 0 {
		s.flush()
	}
}

// flush notifies players before food so stacking passes run in a stable order
func (s *Store) flush() {
	for _, kind := range [...]entity.Kind{entity.KindPlayer, entity.KindFood} {
		if !s.dirty[kind] {
			continue
		}
		s.dirty[kind] = false
		for _, o := range s.sortedObservers() {
			o.Changed(kind)
		}
	}
}

// sortedObservers returns observers in registration order
func (s *Store) sortedObservers() []Observer {
	out := make([]Observer, 0, len(s.observers))
	for id := 0; id < s.nextObs; id++ {
		if o, ok := s.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}
