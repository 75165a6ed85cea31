package store

import (
	"github.com/lixenwraith/blob-arena/backend"
	"github.com/lixenwraith/blob-arena/entity"
)

// Feed applies backend row notifications to a Store
// Insert and update are both full-row upserts, so an update for an unknown key acts as insert
type Feed struct {
	store *Store
}

// NewFeed creates a feed writing into s
func NewFeed(s *Store) *Feed {
	return &Feed{store: s}
}

// Attach subscribes the feed to both kinds and returns the paired release
func (f *Feed) Attach(sub backend.Subscription) (detach func()) {
	cancelPlayers := sub.SubscribePlayers(f)
	cancelFood := sub.SubscribeFood(f)
	return func() {
		cancelFood()
		cancelPlayers()
	}
}

func (f *Feed) OnPlayerInsert(p entity.Player)    { f.store.UpsertPlayer(p) }
func (f *Feed) OnPlayerUpdate(_, p entity.Player) { f.store.UpsertPlayer(p) }
func (f *Feed) OnPlayerDelete(p entity.Player)    { f.store.RemovePlayer(p.Identity) }

func (f *Feed) OnFoodInsert(food entity.Food)    { f.store.UpsertFood(food) }
func (f *Feed) OnFoodUpdate(_, food entity.Food) { f.store.UpsertFood(food) }
func (f *Feed) OnFoodDelete(food entity.Food)    { f.store.RemoveFood(food.ID) }
