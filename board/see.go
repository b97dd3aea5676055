package board

// SeePieceValue gives the exchange value used by static exchange evaluation:
// P=100, N=320, B=330, R=500, Q=900, K=20000, indexed by PieceType instead of
// a dragontoothmg.Piece.
var SeePieceValue = [7]int{
	PieceTypeNone:   0,
	PieceTypePawn:   100,
	PieceTypeKnight: 320,
	PieceTypeBishop: 330,
	PieceTypeRook:   500,
	PieceTypeQueen:  900,
	PieceTypeKing:   20000,
}

// attackersTo returns every piece (both colors) attacking sq given occ as
// the board occupancy, recomputed fresh rather than xray-masked from a
// static bitboard. engine/see.go's getPiecesAttackingSquare carries a
// static attadef mask that its own comment flags as not xraying through
// opposing sliders; recomputing attackers from occ after each removal
// sidesteps that correctness gap entirely.
func (p *Position) attackersTo(sq int, occ uint64) uint64 {
	var attackers uint64
	attackers |= pawnAttacks[Black][sq] & p.pawns[White] & occ
	attackers |= pawnAttacks[White][sq] & p.pawns[Black] & occ
	attackers |= knightMoves[sq] & (p.knights[White] | p.knights[Black]) & occ
	attackers |= kingMoves[sq] & (p.kings[White] | p.kings[Black]) & occ
	bishopHits := bishopAttacks(sq, occ) & occ
	attackers |= bishopHits & (p.bishops[White] | p.bishops[Black] | p.queens[White] | p.queens[Black])
	rookHits := rookAttacks(sq, occ) & occ
	attackers |= rookHits & (p.rooks[White] | p.rooks[Black] | p.queens[White] | p.queens[Black])
	return attackers
}

// minAttacker picks the least valuable attacker of side among attackers,
// returning its square bitboard and piece type, grounded on
// engine/see.go's minAttacker (there ordered pawn < knight < bishop < rook <
// queen < king; same order here).
func (p *Position) minAttacker(attackers uint64, side Color) (uint64, PieceType) {
	si := int(side)
	if s := attackers & p.pawns[si]; s != 0 {
		return s & -s, PieceTypePawn
	}
	if s := attackers & p.knights[si]; s != 0 {
		return s & -s, PieceTypeKnight
	}
	if s := attackers & p.bishops[si]; s != 0 {
		return s & -s, PieceTypeBishop
	}
	if s := attackers & p.rooks[si]; s != 0 {
		return s & -s, PieceTypeRook
	}
	if s := attackers & p.queens[si]; s != 0 {
		return s & -s, PieceTypeQueen
	}
	if s := attackers & p.kings[si]; s != 0 {
		return s & -s, PieceTypeKing
	}
	return 0, PieceTypeNone
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SEE runs static exchange evaluation for the capture (or en passant) move m
// and returns the net material gain for the side to move if the exchange on
// m.To() is carried out to quiescence, assuming both sides always recapture
// with their least valuable attacker. Grounded on the swap-list/gain-array
// shape of engine/see.go's see().
func (p *Position) SEE(m Move) int {
	from, to := int(m.From()), int(m.To())
	occ := p.AllOccupancy()

	var gain [32]int
	depth := 0

	targetType := p.pieces[to].Type()
	if m.Flag() == FlagEnPassant {
		targetType = PieceTypePawn
	}
	attackerType := p.pieces[from].Type()
	gain[0] = SeePieceValue[targetType]

	occ &^= uint64(1) << uint(from)
	if m.Flag() == FlagEnPassant {
		capSq := to - 8
		if p.sideToMove == Black {
			capSq = to + 8
		}
		occ &^= uint64(1) << uint(capSq)
	}

	side := p.sideToMove.Other()

	for {
		depth++
		gain[depth] = SeePieceValue[attackerType] - gain[depth-1]
		if maxInt(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attackers := p.attackersTo(to, occ)
		bb, pt := p.minAttacker(attackers, side)
		if bb == 0 {
			break
		}
		occ &^= bb
		attackerType = pt
		side = side.Other()
	}

	for depth > 1 {
		depth--
		gain[depth-1] = -maxInt(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// SEECapture reports whether the capture m does not lose material by static
// exchange evaluation (SEE >= 0).
func (p *Position) SEECapture(m Move) bool { return p.SEE(m) >= 0 }
