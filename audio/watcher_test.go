package audio

import (
	"testing"

	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/store"
)

type countingCue struct{ n int }

func (c *countingCue) Play() bool { c.n++; return true }

func TestScoreWatcher(t *testing.T) {
	st := store.New()
	cue := &countingCue{}
	local := entity.Identity("me")
	w := NewScoreWatcher(st, func() entity.Identity { return local }, cue)
	st.Subscribe(w)

	steps := []struct {
		name  string
		apply func()
		plays int
	}{
		{"first sighting sets baseline", func() { st.UpsertPlayer(entity.Player{Identity: "me", Score: 5}) }, 0},
		{"score up plays", func() { st.UpsertPlayer(entity.Player{Identity: "me", Score: 6}) }, 1},
		{"same score silent", func() { st.UpsertPlayer(entity.Player{Identity: "me", Score: 6, Radius: 3}) }, 1},
		{"score down silent", func() { st.UpsertPlayer(entity.Player{Identity: "me", Score: 2}) }, 1},
		{"remote score ignored", func() { st.UpsertPlayer(entity.Player{Identity: "them", Score: 99}) }, 1},
		{"food ignored", func() { st.UpsertFood(entity.Food{ID: 1}) }, 1},
		{"removal resets baseline", func() { st.RemovePlayer("me") }, 1},
		{"respawn is a new baseline", func() { st.UpsertPlayer(entity.Player{Identity: "me", Score: 10}) }, 1},
		{"batched gains play once", func() {
			st.Batch(func() {
				st.UpsertPlayer(entity.Player{Identity: "me", Score: 11})
				st.UpsertPlayer(entity.Player{Identity: "me", Score: 12})
			})
		}, 2},
	}
	for _, s := range steps {
		s.apply()
		if cue.n != s.plays {
			t.Fatalf("%s: expected %d plays, got %d", s.name, s.plays, cue.n)
		}
	}
	if w.Plays() != 2 {
		t.Errorf("Expected Plays()=2, got %d", w.Plays())
	}
}

func TestServiceMutedUntilStarted(t *testing.T) {
	s := NewService()
	if err := s.Init(true); err != nil {
		t.Fatal(err)
	}
	if !s.IsMuted() {
		t.Error("Expected muted after Init(true)")
	}
	if s.Play() {
		t.Error("Play must be a no-op before Start")
	}
	if !s.ToggleMute() || s.IsMuted() {
		t.Error("Expected toggle to unmute")
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop before Start should be a no-op, got %v", err)
	}
}
