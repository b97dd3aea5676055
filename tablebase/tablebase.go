// Package tablebase defines the endgame-tablebase adapter contract. A real
// Syzygy bridge is out of scope for this core (no complete example in the
// retrieval pack implements one), so the only concrete type here is a no-op
// that always declines to probe.
package tablebase

import bd "ravenfish/board"

// Tablebase can answer whether a position is shallow enough to probe and,
// if so, resolve its root move/score.
type Tablebase interface {
	CanProbe(p *bd.Position) bool
	ProbeRoot(p *bd.Position) (move bd.Move, score int32, ok bool)
}

// None is a Tablebase that never has anything to say; installed by default
// since this repo does not bundle Syzygy files or a probing library.
type None struct{}

func (None) CanProbe(p *bd.Position) bool { return false }

func (None) ProbeRoot(p *bd.Position) (bd.Move, int32, bool) {
	return bd.NoMove, 0, false
}
