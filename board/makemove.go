package board

// UndoInfo holds everything needed to reverse a move: this is the sole
// source of truth for undo (the Move value itself carries none of it),
// grounded on goosemg/makemove.go's MoveState.
type UndoInfo struct {
	move          Move
	movedPiece    Piece
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square
	rookTo        Square
}

// NullUndo holds the state needed to reverse a null move.
type NullUndo struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
}

// MakeMove applies m to the position. It returns ok=false if doing so would
// leave the mover's own king in check, in which case the position is left
// exactly as it was (the move is rolled back internally before returning).
func (p *Position) MakeMove(m Move) (ok bool, undo UndoInfo) {
	from, to := m.From(), m.To()
	flag := m.Flag()
	moved := p.pieces[int(from)]

	undo.move = m
	undo.movedPiece = moved
	undo.prevCastling = p.castlingRights
	undo.prevEnPassant = p.enPassantSquare
	undo.prevHalfmove = p.halfmoveClock
	undo.prevFullmove = p.fullmoveNumber
	undo.prevZobrist = p.zobristKey
	undo.rookFrom, undo.rookTo = NoSquare, NoSquare
	undo.captured = NoPiece

	if p.enPassantSquare != NoSquare {
		if enPassantCapturable(p, p.enPassantSquare, p.sideToMove) {
			p.zobristKey ^= zobristEnPassant[int(p.enPassantSquare%8)]
		}
	}
	p.enPassantSquare = NoSquare

	us := int(p.sideToMove)
	them := 1 - us
	fromBB, toBB := bb(from), bb(to)

	if flag == FlagEnPassant {
		var capSq Square
		var capPiece Piece
		if p.sideToMove == White {
			capSq, capPiece = to-8, BlackPawn
		} else {
			capSq, capPiece = to+8, WhitePawn
		}
		undo.captured = capPiece
		capBB := bb(capSq)
		p.pieces[int(capSq)] = NoPiece
		p.occupancy[them] &^= capBB
		p.pawns[them] &^= capBB
		p.zobristKey ^= zobristPiece[capPiece][int(capSq)]
	} else if captured := p.pieces[int(to)]; captured != NoPiece {
		undo.captured = captured
		p.pieces[int(to)] = NoPiece
		p.occupancy[them] &^= toBB
		clearBitboard(p, them, captured, toBB)
		p.zobristKey ^= zobristPiece[captured][int(to)]
	}

	if flag == FlagPromotion {
		promo := PieceFromType(p.sideToMove, m.PromotionType())
		p.pieces[int(from)] = NoPiece
		p.occupancy[us] &^= fromBB
		p.pawns[us] &^= fromBB
		p.zobristKey ^= zobristPiece[moved][int(from)]

		p.pieces[int(to)] = promo
		p.occupancy[us] |= toBB
		setBitboard(p, us, promo, toBB)
		p.zobristKey ^= zobristPiece[promo][int(to)]
	} else {
		p.pieces[int(from)] = NoPiece
		p.pieces[int(to)] = moved
		p.occupancy[us] ^= fromBB | toBB
		xorBitboard(p, us, moved, fromBB|toBB)
		p.zobristKey ^= zobristPiece[moved][int(from)]
		p.zobristKey ^= zobristPiece[moved][int(to)]
	}

	if flag == FlagCastling {
		var rFrom, rTo Square = NoSquare, NoSquare
		rook := WhiteRook
		if moved == BlackKing {
			rook = BlackRook
		}
		switch to {
		case 6:
			rFrom, rTo = 7, 5
		case 2:
			rFrom, rTo = 0, 3
		case 62:
			rFrom, rTo = 63, 61
		case 58:
			rFrom, rTo = 56, 59
		}
		if rFrom != NoSquare {
			rb, nb := bb(rFrom), bb(rTo)
			p.pieces[int(rFrom)] = NoPiece
			p.pieces[int(rTo)] = rook
			p.occupancy[us] ^= rb | nb
			p.rooks[us] ^= rb | nb
			p.zobristKey ^= zobristPiece[rook][int(rFrom)]
			p.zobristKey ^= zobristPiece[rook][int(rTo)]
			undo.rookFrom, undo.rookTo = rFrom, rTo
		}
	}

	newCR := p.castlingRights
	switch moved {
	case WhiteKing:
		newCR &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		newCR &^= CastlingBlackK | CastlingBlackQ
	}
	if moved == WhiteRook {
		switch from {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		}
	} else if moved == BlackRook {
		switch from {
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if undo.captured != NoPiece && typeOf(undo.captured) == 4 {
		switch to {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if newCR != p.castlingRights {
		p.zobristKey ^= zobristCastle[int(p.castlingRights)]
		p.zobristKey ^= zobristCastle[int(newCR)]
		p.castlingRights = newCR
	}

	if typeOf(moved) == 1 {
		fromRank, toRank := from.Rank(), to.Rank()
		if absInt(toRank-fromRank) == 2 {
			var ep Square
			if p.sideToMove == White {
				ep = from + 8
			} else {
				ep = from - 8
			}
			p.enPassantSquare = ep
			if enPassantCapturable(p, ep, Color(them)) {
				p.zobristKey ^= zobristEnPassant[int(ep%8)]
			}
		}
	}

	p.sideToMove = Color(them)
	p.zobristKey ^= zobristSide

	moverColor := Color(us)
	occ := p.occupancy[0] | p.occupancy[1]
	kingBB := p.kings[us]
	if kingBB == 0 {
		p.UnmakeMove(undo)
		return false, undo
	}
	ks := trailingZeros(kingBB)
	needCheck := true
	if typeOf(moved) != 6 && flag != FlagEnPassant {
		if (kingRaysUnion[ks]>>uint(from))&1 == 0 {
			needCheck = false
		}
	}
	if needCheck && p.isSquareAttackedWithOcc(ks, moverColor.Other(), occ) {
		p.UnmakeMove(undo)
		return false, undo
	}

	if typeOf(moved) == 1 || undo.captured != NoPiece {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if moverColor == Black {
		p.fullmoveNumber++
	}

	return true, undo
}

// UnmakeMove exactly reverses a previously applied MakeMove.
func (p *Position) UnmakeMove(undo UndoInfo) {
	p.sideToMove = p.sideToMove.Other()
	us := int(p.sideToMove)
	them := 1 - us

	m := undo.move
	from, to := m.From(), m.To()
	flag := m.Flag()
	moved := undo.movedPiece
	fromBB, toBB := bb(from), bb(to)

	if flag == FlagCastling && undo.rookFrom != NoSquare {
		rook := WhiteRook
		if moved == BlackKing {
			rook = BlackRook
		}
		rb, nb := bb(undo.rookFrom), bb(undo.rookTo)
		p.pieces[int(undo.rookTo)] = NoPiece
		p.pieces[int(undo.rookFrom)] = rook
		p.occupancy[us] ^= rb | nb
		p.rooks[us] ^= rb | nb
	}

	p.pieces[int(to)] = NoPiece
	if flag == FlagPromotion {
		pawn := WhitePawn
		if moved&8 != 0 {
			pawn = BlackPawn
		}
		promo := PieceFromType(p.sideToMove, m.PromotionType())
		p.pieces[int(from)] = pawn
		p.occupancy[us] ^= fromBB | toBB
		clearBitboard(p, us, promo, toBB)
		p.pawns[us] |= fromBB
	} else {
		p.pieces[int(from)] = moved
		p.occupancy[us] ^= fromBB | toBB
		xorBitboard(p, us, moved, fromBB|toBB)
	}

	if undo.captured != NoPiece {
		if flag == FlagEnPassant {
			capSq := to - 8
			if moved&8 != 0 {
				capSq = to + 8
			}
			capBB := bb(capSq)
			p.pieces[int(capSq)] = undo.captured
			p.occupancy[them] |= capBB
			p.pawns[them] |= capBB
		} else {
			p.pieces[int(to)] = undo.captured
			p.occupancy[them] |= toBB
			setBitboard(p, them, undo.captured, toBB)
		}
	}

	p.castlingRights = undo.prevCastling
	p.enPassantSquare = undo.prevEnPassant
	p.halfmoveClock = undo.prevHalfmove
	p.fullmoveNumber = undo.prevFullmove
	p.zobristKey = undo.prevZobrist
}

// MakeNullMove passes the turn without moving a piece, used by null-move
// pruning in search.
func (p *Position) MakeNullMove() NullUndo {
	undo := NullUndo{
		prevEnPassant: p.enPassantSquare,
		prevHalfmove:  p.halfmoveClock,
		prevFullmove:  p.fullmoveNumber,
		prevZobrist:   p.zobristKey,
		prevSide:      p.sideToMove,
	}

	if p.enPassantSquare != NoSquare {
		if enPassantCapturable(p, p.enPassantSquare, p.sideToMove) {
			p.zobristKey ^= zobristEnPassant[int(p.enPassantSquare%8)]
		}
	}
	p.enPassantSquare = NoSquare
	p.halfmoveClock++
	p.sideToMove = p.sideToMove.Other()
	p.zobristKey ^= zobristSide
	if undo.prevSide == Black {
		p.fullmoveNumber++
	}
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove(undo NullUndo) {
	p.enPassantSquare = undo.prevEnPassant
	p.halfmoveClock = undo.prevHalfmove
	p.fullmoveNumber = undo.prevFullmove
	p.sideToMove = undo.prevSide
	p.zobristKey = undo.prevZobrist
}

func setBitboard(p *Position, side int, piece Piece, mask uint64) {
	switch typeOf(piece) {
	case 1:
		p.pawns[side] |= mask
	case 2:
		p.knights[side] |= mask
	case 3:
		p.bishops[side] |= mask
	case 4:
		p.rooks[side] |= mask
	case 5:
		p.queens[side] |= mask
	case 6:
		p.kings[side] |= mask
	}
}

func clearBitboard(p *Position, side int, piece Piece, mask uint64) {
	switch typeOf(piece) {
	case 1:
		p.pawns[side] &^= mask
	case 2:
		p.knights[side] &^= mask
	case 3:
		p.bishops[side] &^= mask
	case 4:
		p.rooks[side] &^= mask
	case 5:
		p.queens[side] &^= mask
	case 6:
		p.kings[side] &^= mask
	}
}

func xorBitboard(p *Position, side int, piece Piece, mask uint64) {
	switch typeOf(piece) {
	case 1:
		p.pawns[side] ^= mask
	case 2:
		p.knights[side] ^= mask
	case 3:
		p.bishops[side] ^= mask
	case 4:
		p.rooks[side] ^= mask
	case 5:
		p.queens[side] ^= mask
	case 6:
		p.kings[side] ^= mask
	}
}
