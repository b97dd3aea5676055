package engine

import (
	"math/bits"

	bd "ravenfish/board"
)

// Game phase weights for tapered interpolation between midgame and endgame
// scores, grounded on engine/evaluation.go's PawnPhase/KnightPhase/... block.
const (
	pawnPhase   = 0
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	totalPhase  = pawnPhase*16 + knightPhase*4 + bishopPhase*4 + rookPhase*4 + queenPhase*2
)

// Piece-square tables (midgame and endgame), reused verbatim from the
// teacher's tuned PSQT_MG/PSQT_EG tables, indexed by bd.PieceType.
var psqtMG = [7][64]int{
	bd.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-46, -41, -42, -39, -40, -12, 1, -21,
		-51, -52, -45, -45, -37, -37, -20, -30,
		-46, -40, -33, -33, -23, -26, -15, -30,
		-36, -27, -27, -11, 1, 2, -4, -21,
		-33, -6, 7, 13, 27, 57, 19, -11,
		57, 54, 55, 54, 46, 32, 4, 9,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bd.PieceTypeKnight: {
		-24, -28, -46, -30, -25, -21, -27, -40,
		-35, -32, -18, -10, -14, -12, -20, -18,
		-25, -8, -4, 6, 7, -1, -1, -17,
		-14, -1, 8, 5, 13, 10, 26, -1,
		-5, 8, 30, 35, 24, 43, 19, 22,
		-21, 12, 40, 49, 67, 64, 37, 14,
		-17, -12, 20, 33, 33, 37, -8, 3,
		-61, -6, -12, -2, 1, -6, -1, -16,
	},
	bd.PieceTypeBishop: {
		4, -2, -15, -21, -18, -8, -8, 2,
		4, 8, 11, -2, 1, 5, 20, 11,
		-2, 11, 8, 13, 10, 8, 10, 13,
		-7, 10, 15, 21, 26, 11, 10, 7,
		-4, 22, 24, 49, 34, 37, 20, 6,
		4, 18, 36, 36, 47, 55, 37, 24,
		-22, 6, 3, -7, 4, 14, -3, 8,
		-27, -8, -13, -12, -8, -21, 1, -10,
	},
	bd.PieceTypeRook: {
		-46, -41, -37, -34, -36, -40, -19, -42,
		-71, -45, -44, -43, -47, -37, -25, -51,
		-60, -46, -50, -44, -47, -48, -21, -38,
		-49, -45, -43, -35, -37, -34, -13, -29,
		-33, -21, -11, 6, 0, 7, 8, 2,
		-22, 10, 4, 25, 41, 38, 44, 20,
		-3, -5, 16, 28, 31, 37, 9, 30,
		23, 22, 19, 24, 23, 20, 21, 34,
	},
	bd.PieceTypeQueen: {
		-6, -17, -12, -3, -6, -28, -27, -12,
		-11, -4, 2, -2, -1, 7, 8, -7,
		-8, -1, -2, -4, -4, -1, 8, 7,
		-5, -3, -2, -6, -6, 10, 7, 16,
		-11, -6, -2, -1, 12, 22, 26, 26,
		-13, -6, -1, 14, 36, 58, 71, 42,
		-11, -40, 5, 5, 20, 44, -2, 27,
		0, 16, 21, 29, 36, 38, 25, 36,
	},
	bd.PieceTypeKing: {
		-4, 36, -1, -69, -23, -74, 19, 26,
		12, 0, -18, -53, -33, -39, 7, 25,
		-6, -4, -3, -11, -6, -8, 4, -15,
		-1, 8, 16, 10, 15, 12, 23, -9,
		0, 9, 16, 10, 13, 15, 15, -8,
		1, 11, 12, 9, 8, 14, 12, 0,
		-2, 6, 6, 2, 3, 4, 3, -2,
		-1, 0, 0, 2, 0, 0, 0, -2,
	},
}

var psqtEG = [7][64]int{
	bd.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-9, -8, -4, -2, 7, 2, -14, -29,
		-16, -17, -13, -12, -9, -12, -26, -29,
		-8, -10, -19, -18, -19, -17, -22, -21,
		3, -2, -5, -23, -16, -14, -10, -12,
		21, 22, 21, 22, 22, 11, 25, 17,
		75, 69, 58, 48, 43, 43, 55, 63,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bd.PieceTypeKnight: {
		-29, -60, -26, -18, -20, -28, -48, -30,
		-28, -13, -13, -6, -4, -16, -18, -31,
		-38, -3, 6, 19, 18, 5, -2, -33,
		-15, 11, 32, 36, 34, 35, 16, -9,
		-11, 14, 28, 43, 48, 36, 28, -1,
		-20, 6, 24, 26, 20, 31, 12, -11,
		-25, -12, 1, 21, 19, -3, -9, -16,
		-41, -11, 2, 0, 1, 4, -4, -17,
	},
	bd.PieceTypeBishop: {
		-28, -16, -38, -14, -19, -24, -21, -20,
		-10, -20, -12, -4, -5, -18, -18, -33,
		-12, -1, 7, 10, 8, 3, -11, -11,
		-5, 6, 17, 18, 15, 14, 4, -10,
		0, 11, 12, 17, 24, 15, 19, 3,
		-5, 8, 11, 11, 13, 19, 12, 3,
		-7, 7, 10, 11, 12, 10, 12, -6,
		1, 5, 5, 8, 4, 0, 2, 2,
	},
	bd.PieceTypeRook: {
		-10, 0, 5, 5, 3, 3, -1, -18,
		-8, -10, -3, -6, -5, -11, -14, -10,
		-2, 7, 8, 5, 4, 3, -1, -8,
		13, 25, 26, 22, 20, 18, 12, 6,
		25, 27, 30, 26, 23, 20, 16, 16,
		34, 24, 32, 25, 17, 24, 14, 18,
		36, 42, 40, 41, 40, 23, 28, 22,
		32, 37, 40, 37, 38, 42, 39, 37,
	},
	bd.PieceTypeQueen: {
		-25, -35, -41, -48, -50, -39, -27, -9,
		-26, -24, -44, -27, -36, -62, -57, -17,
		-22, -17, 5, -10, -11, 1, -19, -14,
		-19, 5, 6, 38, 32, 30, 17, 20,
		-11, 14, 13, 42, 52, 57, 49, 33,
		-1, 3, 20, 29, 45, 56, 40, 38,
		7, 31, 25, 36, 57, 44, 28, 25,
		14, 26, 29, 38, 44, 43, 31, 33,
	},
	bd.PieceTypeKing: {
		-37, -29, -20, -26, -54, -14, -35, -78,
		-15, -9, -3, 4, -2, 1, -15, -35,
		-16, -3, 7, 16, 13, 6, -8, -18,
		-16, 8, 21, 28, 25, 19, 5, -18,
		-2, 22, 29, 30, 29, 26, 20, -5,
		1, 26, 25, 19, 16, 32, 31, -1,
		-12, 14, 11, 3, 5, 10, 20, -9,
		-17, -12, -6, -1, -6, -6, -6, -14,
	},
}

var pieceValueMG = [7]int{
	bd.PieceTypePawn: 88, bd.PieceTypeKnight: 316, bd.PieceTypeBishop: 331, bd.PieceTypeRook: 494, bd.PieceTypeQueen: 993,
}
var pieceValueEG = [7]int{
	bd.PieceTypePawn: 111, bd.PieceTypeKnight: 305, bd.PieceTypeBishop: 333, bd.PieceTypeRook: 535, bd.PieceTypeQueen: 963,
}
var mobilityValueMG = [7]int{
	bd.PieceTypeKnight: 2, bd.PieceTypeBishop: 3, bd.PieceTypeRook: 2, bd.PieceTypeQueen: 1,
}
var mobilityValueEG = [7]int{
	bd.PieceTypeKnight: 3, bd.PieceTypeBishop: 2, bd.PieceTypeRook: 4, bd.PieceTypeQueen: 4,
}

var passedPawnPSQTMG = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	-11, -10, -11, -11, -1, -6, 16, 14,
	-2, -4, -17, -17, -7, -6, -5, 15,
	15, 6, -8, -5, -8, -8, -2, 6,
	34, 33, 25, 17, 11, 8, 15, 17,
	68, 52, 41, 33, 24, 24, 19, 17,
	56, 53, 55, 54, 46, 31, 4, 9,
	0, 0, 0, 0, 0, 0, 0, 0,
}
var passedPawnPSQTEG = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	18, 16, 10, 9, 4, 0, 8, 15,
	13, 22, 12, 10, 9, 8, 25, 13,
	32, 36, 29, 24, 23, 30, 44, 33,
	60, 54, 40, 41, 35, 37, 48, 45,
	102, 86, 64, 41, 33, 50, 57, 78,
	68, 66, 56, 46, 43, 42, 55, 62,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var onlyFile = [8]uint64{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}

var bishopPairBonusMG = 25
var bishopPairBonusEG = 35
var rookOpenFileBonusMG = 20
var rookSemiOpenFileBonusMG = 10
var rookSeventhRankBonusMG = 20

// Pawn-structure term values, grounded on spec.md §4.6's pawn-structure bullet.
const (
	doubledPawnPenalty  = 10
	isolatedPawnPenalty = 15
	backwardPawnPenalty = 12
	pawnChainBonus      = 5
)

// Knight-outpost bonus, grounded on spec.md §4.6's knights bullet.
const (
	knightOutpostBonus        = 25
	knightOutpostCentralBonus = 10
)

// Development term values. spec.md §4.6 names these penalties/bonuses without
// giving every exact magnitude (only castling and the central-pawn bonus are
// numbered); the unspecified ones are picked small relative to the numbered
// ones, matching the "small"/"strong" relative sizing the prose gives them.
const (
	developmentMinorPenalty      = 10
	developmentRookPenalty       = 5
	developmentEarlyQueenPenalty = 20
	castlingBonus                = 40
	centralPawnBonus             = 50
)

// Home/castled squares used by developmentScore, indexed [color].
var knightHomeSquares = [2][2]int{{1, 6}, {57, 62}}    // b1,g1 / b8,g8
var bishopHomeSquares = [2][2]int{{2, 5}, {58, 61}}    // c1,f1 / c8,f8
var rookHomeSquares = [2][2]int{{0, 7}, {56, 63}}      // a1,h1 / a8,h8
var queenHomeSquare = [2]int{3, 59}                    // d1 / d8
var kingCastledSquares = [2][2]int{{6, 2}, {62, 58}}   // g1,c1 / g8,c8
var centralPawnSquares = [2][2]int{{27, 28}, {35, 36}} // d4,e4 / d5,e5

func bitAt(sq int) uint64 { return uint64(1) << uint(sq) }

// King-safety term values, grounded on spec.md §4.6's king-safety bullet: a
// pawn-shield bonus for own pawns on the two ranks directly in front of the
// king, and a penalty per open/semi-open file within one file of it.
const (
	kingShieldNearBonus = 10
	kingShieldFarBonus  = 5
	kingOpenFilePenalty = 20
)

// piecePhase returns the game-phase weight used to interpolate between
// midgame and endgame scores, grounded on engine/evaluation.go's
// GetPiecePhase: a full board of minor/major pieces scores totalPhase, a
// bare-kings ending scores 0.
func piecePhase(p *bd.Position) int {
	wb, bb := p.Bitboards(bd.White), p.Bitboards(bd.Black)
	phase := 0
	phase += bits.OnesCount64(wb.Knights|bb.Knights) * knightPhase
	phase += bits.OnesCount64(wb.Bishops|bb.Bishops) * bishopPhase
	phase += bits.OnesCount64(wb.Rooks|bb.Rooks) * rookPhase
	phase += bits.OnesCount64(wb.Queens|bb.Queens) * queenPhase
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

func flipSquare(sq int) int { return sq ^ 56 }

// Evaluate scores the position from the side-to-move's perspective: positive
// favors the side to move. Grounded on engine/evaluation.go's Evaluation,
// scoped to its tapered material+PST+mobility+pawn-structure+king-safety+
// development+outpost core (the teacher's additional imbalance/space/
// tropism/pawn-storm terms are not reproduced here).
func Evaluate(p *bd.Position) int32 {
	var mg, eg [2]int
	phase := piecePhase(p)

	occ := p.AllOccupancy()

	for _, color := range [2]bd.Color{bd.White, bd.Black} {
		ci := int(color)
		bb := p.Bitboards(color)
		ownOcc := bb.All

		addPST := func(sq int, pt bd.PieceType) {
			idx := sq
			if color == bd.Black {
				idx = flipSquare(sq)
			}
			mg[ci] += pieceValueMG[pt] + psqtMG[pt][idx]
			eg[ci] += pieceValueEG[pt] + psqtEG[pt][idx]
		}

		for pawns := bb.Pawns; pawns != 0; {
			sq := popLSBInt(&pawns)
			idx := sq
			if color == bd.Black {
				idx = flipSquare(sq)
			}
			mg[ci] += pieceValueMG[bd.PieceTypePawn] + psqtMG[bd.PieceTypePawn][idx]
			eg[ci] += pieceValueEG[bd.PieceTypePawn] + psqtEG[bd.PieceTypePawn][idx]

			file := sq % 8
			passed := isPassedPawn(sq, color, p.Bitboards(color.Other()).Pawns)
			isolated := adjacentFileMask(file)&bb.Pawns == 0

			if bits.OnesCount64(onlyFile[file]&bb.Pawns) > 1 {
				mg[ci] -= doubledPawnPenalty
				eg[ci] -= doubledPawnPenalty
			}

			if isolated {
				mg[ci] -= isolatedPawnPenalty
				eg[ci] -= isolatedPawnPenalty
			} else if !passed && isBackwardPawn(sq, color, bb.Pawns) {
				mg[ci] -= backwardPawnPenalty
				eg[ci] -= backwardPawnPenalty
			}

			if pawnChainSupported(sq, color, bb.Pawns) {
				mg[ci] += pawnChainBonus
				eg[ci] += pawnChainBonus
			}

			if passed {
				pidx := sq
				if color == bd.Black {
					pidx = flipSquare(sq)
				}
				mg[ci] += passedPawnPSQTMG[pidx]
				eg[ci] += passedPawnPSQTEG[pidx]
			}
		}

		for knights := bb.Knights; knights != 0; {
			sq := popLSBInt(&knights)
			addPST(sq, bd.PieceTypeKnight)
			mob := bits.OnesCount64(bd.KnightAttacks(bd.Square(sq)) &^ ownOcc)
			mg[ci] += mob * mobilityValueMG[bd.PieceTypeKnight]
			eg[ci] += mob * mobilityValueEG[bd.PieceTypeKnight]

			if isOutpost(sq, color, bb.Pawns, p.Bitboards(color.Other()).Pawns) {
				mg[ci] += knightOutpostBonus
				eg[ci] += knightOutpostBonus
				if file := sq % 8; file >= 2 && file <= 5 {
					mg[ci] += knightOutpostCentralBonus
					eg[ci] += knightOutpostCentralBonus
				}
			}
		}

		for bishops := bb.Bishops; bishops != 0; {
			sq := popLSBInt(&bishops)
			addPST(sq, bd.PieceTypeBishop)
			mob := bits.OnesCount64(bd.BishopAttacks(bd.Square(sq), occ) &^ ownOcc)
			mg[ci] += mob * mobilityValueMG[bd.PieceTypeBishop]
			eg[ci] += mob * mobilityValueEG[bd.PieceTypeBishop]
		}
		if bits.OnesCount64(bb.Bishops) >= 2 {
			mg[ci] += bishopPairBonusMG
			eg[ci] += bishopPairBonusEG
		}

		for rooks := bb.Rooks; rooks != 0; {
			sq := popLSBInt(&rooks)
			addPST(sq, bd.PieceTypeRook)
			mob := bits.OnesCount64(bd.RookAttacks(bd.Square(sq), occ) &^ ownOcc)
			mg[ci] += mob * mobilityValueMG[bd.PieceTypeRook]
			eg[ci] += mob * mobilityValueEG[bd.PieceTypeRook]

			file := sq % 8
			fileMask := onlyFile[file]
			if fileMask&p.Bitboards(bd.White).Pawns == 0 && fileMask&p.Bitboards(bd.Black).Pawns == 0 {
				mg[ci] += rookOpenFileBonusMG
			} else if fileMask&bb.Pawns == 0 {
				mg[ci] += rookSemiOpenFileBonusMG
			}

			seventhRank := 6
			if color == bd.Black {
				seventhRank = 1
			}
			if sq/8 == seventhRank {
				mg[ci] += rookSeventhRankBonusMG
			}
		}

		for queens := bb.Queens; queens != 0; {
			sq := popLSBInt(&queens)
			addPST(sq, bd.PieceTypeQueen)
			mob := bits.OnesCount64(bd.QueenAttacks(bd.Square(sq), occ) &^ ownOcc)
			mg[ci] += mob * mobilityValueMG[bd.PieceTypeQueen]
			eg[ci] += mob * mobilityValueEG[bd.PieceTypeQueen]
		}

		for kings := bb.Kings; kings != 0; {
			sq := popLSBInt(&kings)
			addPST(sq, bd.PieceTypeKing)
		}

		mg[ci] += kingSafetyPenalty(p, color)
		mg[ci] += developmentScore(p, color)
	}

	mgScore := mg[int(bd.White)] - mg[int(bd.Black)]
	egScore := eg[int(bd.White)] - eg[int(bd.Black)]
	tapered := (mgScore*phase + egScore*(totalPhase-phase)) / totalPhase

	if p.SideToMove() == bd.Black {
		tapered = -tapered
	}
	return int32(tapered)
}

// kingSafetyPenalty scores color's king safety as a pawn shield plus an
// open-file check: own pawns on the two ranks directly in front of the king,
// within one file either side, earn a bonus (10 on the nearer rank, 5 on the
// farther one); any of those three files with no own pawn on it at all costs
// a flat penalty, open or merely semi-open alike. Net result is added to
// color's midgame score only, per the teacher's king-safety-fades-in-the-
// endgame treatment.
func kingSafetyPenalty(p *bd.Position, color bd.Color) int {
	kingBB := p.Bitboards(color).Kings
	if kingBB == 0 {
		return 0
	}
	ksq := bits.TrailingZeros64(kingBB)
	file := ksq % 8
	rank := ksq / 8
	own := p.Bitboards(color).Pawns

	var nearRank, farRank int
	if color == bd.White {
		nearRank, farRank = rank+1, rank+2
	} else {
		nearRank, farRank = rank-1, rank-2
	}

	score := 0
	for _, f := range [3]int{file - 1, file, file + 1} {
		if f < 0 || f > 7 {
			continue
		}
		if nearRank >= 0 && nearRank <= 7 && own&bitAt(nearRank*8+f) != 0 {
			score += kingShieldNearBonus
		}
		if farRank >= 0 && farRank <= 7 && own&bitAt(farRank*8+f) != 0 {
			score += kingShieldFarBonus
		}
		if onlyFile[f]&own == 0 {
			score -= kingOpenFilePenalty
		}
	}
	return score
}

// developmentScore scores color's "opening feel" progress: penalties for
// minor pieces and rooks still on their starting squares, a penalty for
// moving the queen out before two minor pieces are developed, and bonuses
// for castling and for a pawn on the big center squares. Grounded on spec.md
// §4.6's development bullet; computed from piece placement alone (the core
// evaluator takes only a Position, not move history), so the castling bonus
// reads the king's resting square rather than tracking whether it actually
// castled there.
func developmentScore(p *bd.Position, color bd.Color) int {
	ci := int(color)
	bb := p.Bitboards(color)
	score := 0

	undevelopedMinors := 0
	for _, sq := range knightHomeSquares[ci] {
		if bb.Knights&bitAt(sq) != 0 {
			score -= developmentMinorPenalty
			undevelopedMinors++
		}
	}
	for _, sq := range bishopHomeSquares[ci] {
		if bb.Bishops&bitAt(sq) != 0 {
			score -= developmentMinorPenalty
			undevelopedMinors++
		}
	}
	for _, sq := range rookHomeSquares[ci] {
		if bb.Rooks&bitAt(sq) != 0 {
			score -= developmentRookPenalty
		}
	}

	queenMoved := bb.Queens != 0 && bb.Queens&bitAt(queenHomeSquare[ci]) == 0
	if queenMoved && undevelopedMinors > 2 {
		score -= developmentEarlyQueenPenalty
	}

	if bb.Kings&(bitAt(kingCastledSquares[ci][0])|bitAt(kingCastledSquares[ci][1])) != 0 {
		score += castlingBonus
	}

	if bb.Pawns&(bitAt(centralPawnSquares[ci][0])|bitAt(centralPawnSquares[ci][1])) != 0 {
		score += centralPawnBonus
	}

	return score
}

// adjacentFileMask returns the mask of the files directly left and right of
// file (excluding file itself), used for both the isolated-pawn check and
// isPassedPawn's file span.
func adjacentFileMask(file int) uint64 {
	var m uint64
	if file > 0 {
		m |= onlyFile[file-1]
	}
	if file < 7 {
		m |= onlyFile[file+1]
	}
	return m
}

// isPassedPawn reports whether the pawn on sq has no enemy pawn able to
// block or capture it on its way to promotion: its own file and the two
// adjacent files, from its rank to the promotion rank, must be clear of
// enemy pawns.
func isPassedPawn(sq int, color bd.Color, enemyPawns uint64) bool {
	file := sq % 8
	rank := sq / 8
	span := onlyFile[file] | adjacentFileMask(file)
	var ahead uint64
	if color == bd.White {
		for r := rank + 1; r < 8; r++ {
			ahead |= uint64(0xFF) << uint(r*8)
		}
	} else {
		for r := rank - 1; r >= 0; r-- {
			ahead |= uint64(0xFF) << uint(r*8)
		}
	}
	return enemyPawns&span&ahead == 0
}

// isBackwardPawn reports whether the pawn on sq has no own pawn on an
// adjacent file at its own rank or behind it, meaning no neighbor can ever
// step up to defend it as it advances.
func isBackwardPawn(sq int, color bd.Color, ownPawns uint64) bool {
	file := sq % 8
	rank := sq / 8
	adj := adjacentFileMask(file)
	var behind uint64
	if color == bd.White {
		for r := 0; r <= rank; r++ {
			behind |= uint64(0xFF) << uint(r*8)
		}
	} else {
		for r := rank; r < 8; r++ {
			behind |= uint64(0xFF) << uint(r*8)
		}
	}
	return ownPawns&adj&behind == 0
}

// pawnChainSupported reports whether the pawn on sq is defended by an own
// pawn diagonally behind it.
func pawnChainSupported(sq int, color bd.Color, ownPawns uint64) bool {
	file := sq % 8
	rank := sq / 8
	supportRank := rank - 1
	if color == bd.Black {
		supportRank = rank + 1
	}
	if supportRank < 0 || supportRank > 7 {
		return false
	}
	for _, df := range [2]int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if ownPawns&bitAt(supportRank*8+f) != 0 {
			return true
		}
	}
	return false
}

// isOutpost reports whether the knight on sq (ranks 4-6 for White, 3-5 for
// Black) is defended by an own pawn and cannot ever be challenged by an enemy
// pawn advancing up an adjacent file.
func isOutpost(sq int, color bd.Color, ownPawns, enemyPawns uint64) bool {
	rank := sq / 8
	if color == bd.White {
		if rank < 3 || rank > 5 {
			return false
		}
	} else {
		if rank < 2 || rank > 4 {
			return false
		}
	}
	if !pawnChainSupported(sq, color, ownPawns) {
		return false
	}
	file := sq % 8
	adj := adjacentFileMask(file)
	var danger uint64
	if color == bd.White {
		for r := rank + 1; r < 8; r++ {
			danger |= uint64(0xFF) << uint(r*8)
		}
	} else {
		for r := 0; r < rank; r++ {
			danger |= uint64(0xFF) << uint(r*8)
		}
	}
	return enemyPawns&adj&danger == 0
}

func popLSBInt(bb *uint64) int {
	sq := bits.TrailingZeros64(*bb)
	*bb &= *bb - 1
	return sq
}
