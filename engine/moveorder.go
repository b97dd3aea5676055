package engine

import (
	bd "ravenfish/board"
)

// scoredMove pairs a candidate move with the ordering score it was assigned
// so the selection-sort in orderNextMove can promote the best remaining move
// into place one slot at a time instead of a full upfront sort (grounded on
// engine/moveordering.go's move/moveList/orderNextMove).
type scoredMove struct {
	move  bd.Move
	score uint16
}

type moveList struct {
	moves []scoredMove
}

// Ordering offsets, carried from engine/moveordering.go. The PV move scores
// highest; promotions (20000 + piece value) share a band with winning
// captures (20000 + SEE); killers score 2000/2200; other quiets score their
// history value (+1000 for a counter move), which can rank them above
// killers and above even or losing captures.
const (
	pvOffset        uint16 = 25000
	promotionOffset uint16 = 20000
	captureOffset   uint16 = 15000
	killerOffset    uint16 = 2000
	counterOffset   uint16 = 1000
)

// SEE-based capture bands: a winning exchange (SEE > 0) ranks above an even
// one (SEE == 0), which in turn ranks above a losing one (SEE < 0), with the
// exact SEE value breaking ties within a band.
const (
	seeGoodBase   = 20000
	seeEqualScore = 10000
	seeLosingBase = 5000
)

// captureScore ranks a capturing move by its static-exchange-evaluation
// result rather than by a fixed most-valuable-victim/least-valuable-aggressor
// table, so a losing trade never outranks a winning one regardless of which
// pieces are involved.
func captureScore(p *bd.Position, m bd.Move) uint16 {
	see := p.SEE(m)
	switch {
	case see > 0:
		return uint16(clampU(seeGoodBase+see, int(seeGoodBase), 65535))
	case see == 0:
		return seeEqualScore
	default:
		v := clampU(seeLosingBase+see, 0, int(seeLosingBase))
		return uint16(v)
	}
}

// orderNextMove selection-sorts the best-scoring move from currIndex onward
// into currIndex, so callers can pull moves off a list best-first without
// sorting moves that get pruned before they're ever reached.
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score
	for i := currIndex + 1; i < len(moves.moves); i++ {
		if moves.moves[i].score > bestScore {
			bestIndex, bestScore = i, moves.moves[i].score
		}
	}
	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMovesList scores every legal move at a node for ordering, classifying
// each as the PV move, a promotion, an SEE-ranked capture, a killer, or a
// history/counter-move scored quiet; the score ranges of these classes
// overlap as described at the offsets above.
func scoreMovesList(p *bd.Position, moves []bd.Move, ply int8, pvMove, prevMove bd.Move) moveList {
	side := int(p.SideToMove())
	var list moveList
	list.moves = make([]scoredMove, len(moves))

	for i, m := range moves {
		var score uint16
		switch {
		case m == pvMove:
			score = pvOffset + 1500
		case m.IsPromotion():
			score = promotionOffset + uint16(pieceValueEG[m.PromotionType()])
		case p.PieceAt(m.To()) != bd.NoPiece || m.IsEnPassant():
			score = captureScore(p, m)
		case IsKiller(m, ply):
			if killerTable.moves[ply][0] == m {
				score = killerOffset + 200
			} else {
				score = killerOffset
			}
		default:
			score = uint16(clampU(historyMove[side][m.From()][m.To()], 0, int(captureOffset-1)))
			if counterMove[side][prevMove.From()][prevMove.To()] == m {
				score += counterOffset
			}
		}
		list.moves[i] = scoredMove{move: m, score: score}
	}
	return list
}

// scoreMovesListCaptures scores a capture/promotion-only move list for
// quiescence search, reporting whether any scorable move was present.
func scoreMovesListCaptures(p *bd.Position, moves []bd.Move, pvMove bd.Move) (moveList, bool) {
	var list moveList
	list.moves = make([]scoredMove, 0, len(moves))

	for _, m := range moves {
		isCapture := p.PieceAt(m.To()) != bd.NoPiece || m.IsEnPassant()
		if !isCapture && !m.IsPromotion() {
			continue
		}
		var score uint16
		switch {
		case m == pvMove:
			score = captureOffset + 256
		case m.IsPromotion():
			score = captureOffset + 75
		default:
			score = captureScore(p, m)
		}
		list.moves = append(list.moves, scoredMove{move: m, score: score})
	}
	return list, len(list.moves) > 0
}

func clampU(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
