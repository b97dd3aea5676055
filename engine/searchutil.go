package engine

import (
	"fmt"
	"math/bits"

	bd "ravenfish/board"
)

// nodesChecked counts nodes visited in the current search, polled periodically
// against the time budget rather than on every node.
var nodesChecked = 0

// MaxDepth bounds ply-indexed search tables (killers, LMR, PV lines).
const MaxDepth = 100

// LMR is the late-move-reduction table, indexed [depth][moveIndex], populated
// by initLMRTable at package init.
var LMR [MaxDepth + 1][100]int8

// LMRHistoryReductionScale converts a quiet move's history score into extra
// LMR reduction/extension, grounded on search.go's history-aware LMR nudge.
const LMRHistoryReductionScale = 4000

// killerTable holds, per ply, the two most recent quiet moves that caused a
// beta cutoff. Grounded on engine/killer.go's KillerStruct, generalized to
// ravenfish/board's Move type and turned into a free function matching
// search.go's InsertKiller(move, ply, &killerTable) call convention.
type killerStruct struct {
	moves [MaxDepth + 1][2]bd.Move
}

var killerTable killerStruct

// InsertKiller records move as the newest killer at ply, demoting the
// previous primary killer to secondary unless move is already stored.
func InsertKiller(move bd.Move, ply int8, k *killerStruct) {
	if move == k.moves[ply][0] {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = move
}

// IsKiller reports whether move is one of the two killers recorded at ply.
func IsKiller(move bd.Move, ply int8) bool {
	return move == killerTable.moves[ply][0] || move == killerTable.moves[ply][1]
}

func (k *killerStruct) Clear() {
	for ply := range k.moves {
		k.moves[ply][0] = bd.NoMove
		k.moves[ply][1] = bd.NoMove
	}
}

// counterMove[side][fromOfPrevMove][toOfPrevMove] is the quiet move that most
// recently refuted the opponent's previous move with a beta cutoff.
var counterMove [2][64][64]bd.Move

// historyMove[side][from][to] accumulates how often a quiet move has caused
// a beta cutoff or raised alpha, weighted by the depth. historyMaxVal bounds
// it below the capture/promotion ordering offsets (carried from
// engine/moveordering_util.go's historyMaxVal=10000 tuning).
var historyMove [2][64][64]int

const historyMaxVal = 10000

func storeCounter(side bd.Color, prevMove, move bd.Move) {
	counterMove[int(side)][prevMove.From()][prevMove.To()] = move
}

// incrementHistoryScore rewards a quiet move that caused a beta cutoff or
// raised alpha.
func incrementHistoryScore(side bd.Color, move bd.Move, depth int8) {
	si := int(side)
	historyMove[si][move.From()][move.To()] += int(depth) * int(depth)
	if historyMove[si][move.From()][move.To()] >= historyMaxVal {
		ageHistoryTable(side)
	}
}

// decrementHistoryScore penalizes a quiet move that was tried but didn't cut off.
func decrementHistoryScore(side bd.Color, move bd.Move) {
	si := int(side)
	if historyMove[si][move.From()][move.To()] > 0 {
		historyMove[si][move.From()][move.To()]--
	}
}

func ageHistoryTable(side bd.Color) {
	si := int(side)
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			historyMove[si][from][to] /= 2
		}
	}
}

func ClearHistoryTable() {
	counterMove = [2][64][64]bd.Move{}
	historyMove = [2][64][64]int{}
}

func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func Clamp(v, lo, hi int8) int8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// hasMinorOrMajorPiece reports, per side, whether any non-pawn/non-king piece
// remains on the board; used to gate null-move pruning, since null-move is
// unsound in pawn/king-only endgames (zugzwang risk).
func hasMinorOrMajorPiece(p *bd.Position) (white, black int) {
	w := p.Bitboards(bd.White)
	b := p.Bitboards(bd.Black)
	white = bits.OnesCount64(w.Bishops | w.Knights | w.Rooks | w.Queens)
	black = bits.OnesCount64(b.Bishops | b.Knights | b.Rooks | b.Queens)
	return
}

func getMateOrCPScore(score int32) string {
	mateValue := int(MaxScore)
	mateThreshold := int(Checkmate)
	s := int(score)

	if s >= mateThreshold {
		pliesToMate := mateValue - s
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	} else if s <= -mateThreshold {
		pliesToMate := mateValue + s
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", s)
}

// ResetForNewGame clears all search-persistent state between games (the UCI
// "ucinewgame" handler), grounded on searchutil.go's ResetForNewGame.
func ResetForNewGame() {
	globalTT.Clear()
	stateStack = stateStack[:0]
	ClearHistoryTable()
	killerTable.Clear()
	prevSearchScore = 0
}

func init() { initLMRTable() }

// initLMRTable populates the late-move-reduction table using the standard
// log-log formula, grounded on the commented-out InitLMRTable variant in
// engine/init.go.
func initLMRTable() {
	for depth := 1; depth <= MaxDepth; depth++ {
		for move := 1; move < 100; move++ {
			r := 0.35 + fastLog(float64(depth))*fastLog(float64(move))/2.1
			if r < 0 {
				r = 0
			}
			if r > 31 {
				r = 31
			}
			LMR[depth][move] = int8(r)
		}
	}
}

func fastLog(x float64) float64 {
	if x <= 1 {
		return 0
	}
	n := 0.0
	for x > 1 {
		x /= 2
		n++
	}
	return n
}

func computeLMRReduction(depth int8, legalMoves, moveIdx int, isPVNode, tactical bool, historyScore int) int8 {
	if isPVNode || tactical || depth < lmrDepthLimit || legalMoves <= 2 {
		return 0
	}

	d := int(depth)
	if d >= len(LMR) {
		d = len(LMR) - 1
	}
	m := moveIdx
	row := LMR[d]
	if m < 0 {
		m = 0
	}
	if m >= len(row) {
		m = len(row) - 1
	}
	r := row[m]

	if r > 0 && historyScore > 0 {
		bonus := int8(historyScore / LMRHistoryReductionScale)
		if bonus > 2 {
			bonus = 2
		}
		if bonus > r {
			bonus = r
		}
		r -= bonus
	} else if historyScore < 0 {
		r++
	}
	if r < 0 {
		r = 0
	}
	if int8(d)-r < 1 {
		r = int8(d) - 1
	}
	return r
}
