package engine

import bd "ravenfish/board"

// maxPVLength is MaxDepth + 1. PVLine does not enforce it: its Moves slice
// grows as needed.
const maxPVLength = MaxDepth + 1

// PVLine is a triangular principal-variation array: the line found at each
// ply is built by prefixing that ply's best move onto the child's already
//-resolved line. Grounded on the pv-update pattern search.go's alphabeta
// and quiescence call (pvLine.Update / pvLine.Clear / pvLine.Clone), which
// the retrieved teacher source references but never defines itself.
type PVLine struct {
	Moves []bd.Move
}

// Clear empties the line in place without releasing its backing array.
func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

// Update makes move the new first move of the line, followed by child's moves.
func (pv *PVLine) Update(move bd.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns a deep copy, used to snapshot the best line found so far
// before a new iterative-deepening iteration overwrites it.
func (pv PVLine) Clone() PVLine {
	out := make([]bd.Move, len(pv.Moves))
	copy(out, pv.Moves)
	return PVLine{Moves: out}
}

// GetPVMove returns the line's first move, or NoMove if the line is empty.
func (pv PVLine) GetPVMove() bd.Move {
	if len(pv.Moves) == 0 {
		return bd.NoMove
	}
	return pv.Moves[0]
}

func (pv PVLine) String() string {
	s := ""
	for _, m := range pv.Moves {
		s += " " + m.String()
	}
	return s
}
