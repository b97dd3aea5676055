package board

// Position is the board representation: bitboards per piece/color, a
// mailbox array for O(1) piece lookup, and the incremental game-state
// fields (side to move, castling rights, en-passant square, clocks, and
// the running Zobrist hash). Grounded on goosemg/board.go.
type Position struct {
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	occupancy [2]uint64
	pieces    [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int

	zobristKey uint64
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	buf := make([]Move, 0, 64)
	return len(p.GenerateMovesInto(buf)) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool { return p.InCheck(p.sideToMove) && !p.HasLegalMoves() }

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool { return !p.InCheck(p.sideToMove) && !p.HasLegalMoves() }

// IsDrawBy50 reports a 50-move rule draw. halfmoveClock counts half-moves.
func (p *Position) IsDrawBy50() bool { return p.halfmoveClock >= 100 }

func (p *Position) HalfmoveClock() int        { return p.halfmoveClock }
func (p *Position) FullmoveNumber() int       { return p.fullmoveNumber }
func (p *Position) EnPassantSquare() Square   { return p.enPassantSquare }
func (p *Position) SideToMove() Color         { return p.sideToMove }
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }
func (p *Position) Hash() uint64              { return p.zobristKey }
func (p *Position) AllOccupancy() uint64      { return p.occupancy[0] | p.occupancy[1] }
func (p *Position) ColorOccupancy(c Color) uint64 { return p.occupancy[int(c)] }
func (p *Position) PieceAt(sq Square) Piece   { return p.pieces[int(sq)] }

// Bitboards returns a copy of the per-piece-type bitboards for one side.
func (p *Position) Bitboards(color Color) Bitboards {
	idx := int(color)
	return Bitboards{
		Pawns: p.pawns[idx], Knights: p.knights[idx], Bishops: p.bishops[idx],
		Rooks: p.rooks[idx], Queens: p.queens[idx], Kings: p.kings[idx],
		All: p.occupancy[idx],
	}
}

// IsDrawByRepetition reports a threefold-repetition draw given a history of
// Zobrist keys (ordinarily the keys since the last irreversible move). The
// Zobrist key already encodes side to move, castling rights, and the
// capturable en-passant file, so a raw key match is sufficient.
func (p *Position) IsDrawByRepetition(history []uint64) bool {
	target := p.zobristKey
	end := len(history)
	if end > 0 && history[end-1] == target {
		end--
	}
	matches := 0
	for i := 0; i < end; i++ {
		if history[i] == target {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

// IsInsufficientMaterial reports a dead (unwinnable-by-either-side) draw by
// material: king vs king, king+minor vs king, or king+bishop vs king+bishop
// with same-colored bishops. Supplemented from the original engine's
// material-draw handling (original_source/src/Position.cpp), which the
// distilled spec did not carry into its own draw rules.
func (p *Position) IsInsufficientMaterial() bool {
	if p.pawns[0]|p.pawns[1] != 0 {
		return false
	}
	if p.rooks[0]|p.rooks[1]|p.queens[0]|p.queens[1] != 0 {
		return false
	}
	wMinor := popCount(p.knights[0]) + popCount(p.bishops[0])
	bMinor := popCount(p.knights[1]) + popCount(p.bishops[1])
	if wMinor == 0 && bMinor == 0 {
		return true
	}
	if wMinor+bMinor == 1 {
		return true
	}
	if wMinor == 1 && bMinor == 1 && popCount(p.knights[0]|p.knights[1]) == 0 {
		wSq := trailingZeros(p.bishops[0])
		bSq := trailingZeros(p.bishops[1])
		return (wSq+wSq/8)%2 == (bSq+bSq/8)%2
	}
	return false
}

// PushMove attempts m and, if legal, appends the resulting hash to history
// and returns the undo record for later PopMove use.
func (p *Position) PushMove(m Move, history *[]uint64) (UndoInfo, bool) {
	ok, undo := p.MakeMove(m)
	if !ok {
		return undo, false
	}
	*history = append(*history, p.zobristKey)
	return undo, true
}

// PopMove undoes a move pushed with PushMove and truncates history by one.
func (p *Position) PopMove(undo UndoInfo, history *[]uint64) {
	p.UnmakeMove(undo)
	if len(*history) > 0 {
		*history = (*history)[:len(*history)-1]
	}
}

func (p *Position) addPiece(sq Square, pc Piece) {
	if pc == NoPiece {
		return
	}
	idx := int(sq)
	p.pieces[idx] = pc
	ci := int(colorOf(pc))
	p.occupancy[ci] |= bb(sq)
	setBitboard(p, ci, pc, bb(sq))
	p.zobristKey ^= zobristPiece[pc][idx]
}

func (p *Position) removePiece(sq Square) Piece {
	idx := int(sq)
	pc := p.pieces[idx]
	if pc == NoPiece {
		return NoPiece
	}
	ci := int(colorOf(pc))
	p.pieces[idx] = NoPiece
	p.occupancy[ci] &^= bb(sq)
	clearBitboard(p, ci, pc, bb(sq))
	p.zobristKey ^= zobristPiece[pc][idx]
	return pc
}

// SetPiece sets a piece on a square, replacing any existing occupant.
func (p *Position) SetPiece(sq Square, pc Piece) {
	p.removePiece(sq)
	p.addPiece(sq, pc)
}

// ClearSquare removes any piece from sq.
func (p *Position) ClearSquare(sq Square) { _ = p.removePiece(sq) }

// MovePiece relocates a piece, capturing anything on the destination. It
// does not validate legality or update game-state fields; it exists for
// test/setup code, not for search (which uses MakeMove/UnmakeMove).
func (p *Position) MovePiece(from, to Square) {
	moving := p.removePiece(from)
	_ = p.removePiece(to)
	p.addPiece(to, moving)
}

// Validate checks internal consistency between the mailbox, per-piece
// bitboards, occupancy, and the incremental Zobrist hash.
func (p *Position) Validate() bool {
	var occ [2]uint64
	var pawns, knights, bishops, rooks, queens, kings [2]uint64
	for sq := 0; sq < 64; sq++ {
		pc := p.pieces[sq]
		if pc == NoPiece {
			continue
		}
		ci := int(colorOf(pc))
		bit := uint64(1) << uint(sq)
		occ[ci] |= bit
		switch typeOf(pc) {
		case 1:
			pawns[ci] |= bit
		case 2:
			knights[ci] |= bit
		case 3:
			bishops[ci] |= bit
		case 4:
			rooks[ci] |= bit
		case 5:
			queens[ci] |= bit
		case 6:
			kings[ci] |= bit
		}
	}
	if occ != p.occupancy {
		return false
	}
	if pawns != p.pawns || knights != p.knights || bishops != p.bishops ||
		rooks != p.rooks || queens != p.queens || kings != p.kings {
		return false
	}
	return p.zobristKey == p.ComputeZobrist()
}
