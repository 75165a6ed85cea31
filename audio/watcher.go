package audio

import "github.com/lixenwraith/blob-arena/entity"

// PlayerSource exposes the latest row of a player
type PlayerSource interface {
	LocalPlayer(id entity.Identity) (entity.Player, bool)
}

// ScoreWatcher is a store observer that plays a cue when the local score increases
type ScoreWatcher struct {
	players PlayerSource
	local   func() entity.Identity
	cue     Cue

	last  uint32
	known bool
	plays int
}

// NewScoreWatcher watches the player resolved by local on every player change
func NewScoreWatcher(players PlayerSource, local func() entity.Identity, cue Cue) *ScoreWatcher {
	return &ScoreWatcher{players: players, local: local, cue: cue}
}

// Changed implements store.Observer
func (w *ScoreWatcher) Changed(kind entity.Kind) {
	if kind != entity.KindPlayer {
		return
	}

	me, ok := w.players.LocalPlayer(w.local())
	if !ok {
		// A respawned player starts a new baseline
		w.known = false
		return
	}

	if w.known && me.Score > w.last && w.cue.Play() {
		w.plays++
	}
	w.last = me.Score
	w.known = true
}

// Plays returns how many cues were played
func (w *ScoreWatcher) Plays() int {
	return w.plays
}
