package board

import "math/rand"

// Zobrist hashing tables, grounded on goosemg/zobrist.go's fixed-seed
// piece/castle/en-passant/side layout. One deliberate divergence from the
// teacher: the en-passant file key is only XORed in when an enemy pawn
// could actually capture en passant on the next move, matching the
// Polyglot book-hash convention (the teacher always XORs the EP file key
// whenever an EP square exists, capturable or not).
var zobristPiece [15][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

const zobristSeed = 0xC0DE

func init() {
	rnd := rand.New(rand.NewSource(zobristSeed))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist recomputes the hash for the position from scratch; used to
// build the initial hash after parsing a FEN and to cross-check incremental
// updates in Validate.
func (p *Position) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.pieces[sq]; pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[int(p.castlingRights)]
	if p.enPassantSquare != NoSquare && enPassantCapturable(p, p.enPassantSquare, p.sideToMove) {
		key ^= zobristEnPassant[int(p.enPassantSquare%8)]
	}
	return key
}

// enPassantCapturable reports whether capturer (the side to move) has a
// pawn attacking ep, i.e. standing diagonally adjacent to it. Pins and king
// safety are not checked, so a pseudo-legal en passant capture counts.
func enPassantCapturable(p *Position, ep Square, capturer Color) bool {
	capturerPawns := p.pawns[int(capturer)]
	return pawnAttacks[capturer.Other()][int(ep)]&capturerPawns != 0
}
