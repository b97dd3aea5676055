package engine

import bd "ravenfish/board"

const fiftyMoveLimit = 100

// State captures what's needed to reason about repetitions and the 50-move
// rule without walking the full position each time.
type State struct {
	Hash   uint64
	Rule50 int
}

var stateStack []State

// ResetStateTracking rebuilds the state stack so it contains only p.
func ResetStateTracking(p *bd.Position) {
	stateStack = stateStack[:0]
	pushState(p)
}

// RecordState appends p's current state to the history stack.
func RecordState(p *bd.Position) { pushState(p) }

// ensureStateStackSynced guarantees the top of the stack reflects p.
func ensureStateStackSynced(p *bd.Position) {
	if len(stateStack) == 0 {
		pushState(p)
		return
	}
	last := &stateStack[len(stateStack)-1]
	if last.Hash != p.Hash() {
		ResetStateTracking(p)
		return
	}
	last.Rule50 = p.HalfmoveClock()
}

func pushState(p *bd.Position) {
	stateStack = append(stateStack, State{Hash: p.Hash(), Rule50: p.HalfmoveClock()})
}

func popState() {
	if len(stateStack) == 0 {
		return
	}
	stateStack = stateStack[:len(stateStack)-1]
}

func isDraw(ply int, rootIndex int) bool {
	if len(stateStack) == 0 {
		return false
	}
	curr := stateStack[len(stateStack)-1]
	if curr.Rule50 >= fiftyMoveLimit {
		return true
	}

	matchCount, firstIdx := repetitionInfo(curr.Hash, curr.Rule50)
	if matchCount >= 2 {
		return true
	}
	return matchCount >= 1 && firstIdx >= rootIndex && firstIdx != -1
}

func upcomingRepetition(ply int, rootIndex int) bool {
	if len(stateStack) <= 1 {
		return false
	}
	curr := stateStack[len(stateStack)-1]
	start := len(stateStack) - 1 - curr.Rule50
	if start < 0 {
		start = 0
	}
	for i := len(stateStack) - 2; i >= start; i-- {
		if stateStack[i].Hash == curr.Hash && i >= rootIndex {
			return true
		}
	}
	return false
}

func repetitionInfo(hash uint64, rule50 int) (count int, firstIdx int) {
	firstIdx = -1
	if len(stateStack) <= 1 {
		return 0, firstIdx
	}
	start := len(stateStack) - 1 - rule50
	if start < 0 {
		start = 0
	}
	end := len(stateStack) - 2
	for i := start; i <= end; i++ {
		if stateStack[i].Hash == hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
