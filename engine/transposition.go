package engine

import (
	"unsafe"

	bd "ravenfish/board"
)

// TT entry bound flags.
const (
	AlphaFlag = iota
	BetaFlag
	ExactFlag
)

const (
	defaultTTSizeMB = 256
	clusterSize     = 4

	// UnusableScore is returned by useEntry when no usable bound was found.
	UnusableScore = -32750
)

// TTEntry is one transposition table slot. Age tracks the search generation
// it was written in; replacement overwrites an entry from a prior search
// before any shallower entry of the current search, which the teacher's
// always-replace-by-depth scheme (engine/transposition.go) does not do.
type TTEntry struct {
	Hash  uint64
	Depth int8
	Move  bd.Move
	Score int16
	Flag  int8
	Age   uint8
}

// TransTable is a clustered, fixed-size transposition table. Grounded on
// engine/transposition.go's cluster-of-4 layout and probe/store shape.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
	generation   uint8
}

// NewTransTable allocates a table sized to approximately sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	tt := &TransTable{}
	tt.Resize(sizeMB)
	return tt
}

// Resize reallocates the table, discarding all entries.
func (tt *TransTable) Resize(sizeMB int) {
	if sizeMB <= 0 {
		sizeMB = defaultTTSizeMB
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	if entrySize == 0 {
		entrySize = 1
	}
	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterBytes := entrySize * clusterSize
	clusterCount := totalBytes / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	tt.clusterCount = clusterCount
	tt.entries = make([]TTEntry, tt.clusterCount*clusterSize)
	tt.generation = 0
}

// Clear wipes every entry without reallocating.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.generation = 0
}

// NewSearch bumps the table's generation, called once per root search so
// replacement can prefer entries from the current search over stale ones.
func (tt *TransTable) NewSearch() { tt.generation++ }

// ProbeEntry returns the entry stored for hash, if any.
func (tt *TransTable) ProbeEntry(hash uint64) (entry TTEntry, found bool) {
	if tt.clusterCount == 0 {
		return TTEntry{}, false
	}
	base := int((hash % tt.clusterCount) * clusterSize)
	for i := 0; i < clusterSize; i++ {
		e := tt.entries[base+i]
		if e.Hash == hash {
			return e, true
		}
	}
	return TTEntry{}, false
}

// UseEntry decides whether a probed entry can resolve the current node
// outright (exact score, or a bound that already proves a cutoff against
// alpha/beta at this depth), translating mate scores back from "distance
// from this node" to "distance from root" via ply.
func (tt *TransTable) UseEntry(entry TTEntry, found bool, depth int8, alpha, beta int32, ply int8) (usable bool, score int32) {
	if !found || entry.Depth < depth {
		return false, UnusableScore
	}
	norm := int32(entry.Score)
	if norm > Checkmate {
		norm -= int32(ply)
	} else if norm < -Checkmate {
		norm += int32(ply)
	}
	switch entry.Flag {
	case ExactFlag:
		return true, norm
	case AlphaFlag:
		if norm <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if norm >= beta {
			return true, beta
		}
	}
	return false, UnusableScore
}

// StoreEntry writes an entry, preferring (in order) an exact-hash match, an
// empty slot, an entry from an older generation, then the shallowest entry
// in the cluster.
func (tt *TransTable) StoreEntry(hash uint64, depth int8, ply int8, move bd.Move, score int32, flag int8) {
	if tt.clusterCount == 0 {
		return
	}
	base := int((hash % tt.clusterCount) * clusterSize)

	if score > Checkmate {
		score += int32(ply)
	} else if score < -Checkmate {
		score -= int32(ply)
	}

	target := -1
	for i := 0; i < clusterSize; i++ {
		if tt.entries[base+i].Hash == hash {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if tt.entries[base+i].Hash == 0 {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		best := &tt.entries[base]
		for i := 1; i < clusterSize; i++ {
			cand := &tt.entries[base+i]
			if cand.Age != tt.generation && best.Age == tt.generation {
				target, best = base+i, cand
				continue
			}
			if cand.Age == best.Age && cand.Depth < best.Depth {
				target, best = base+i, cand
			}
		}
	}

	e := &tt.entries[target]
	e.Hash = hash
	e.Depth = depth
	e.Move = move
	e.Flag = int8(flag)
	e.Score = int16(score)
	e.Age = tt.generation
}
