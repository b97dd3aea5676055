package board

import "testing"

func TestMakeUnmakeNormalMove(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startZ := b.ComputeZobrist()

	from := Square(1*8 + 4) // e2
	to := Square(3*8 + 4)   // e4
	m := NewMove(from, to, 0, FlagNormal)
	ok, undo := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for normal move")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after MakeMove")
	}

	b.UnmakeMove(undo)
	if !b.Validate() {
		t.Fatalf("board invalid after UnmakeMove")
	}
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmake: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after unmake")
	}
}

func TestMakeUnmakeCapture(t *testing.T) {
	b, err := ParseFEN("8/7r/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(0)
	to := Square(6*8 + 7)
	m := NewMove(from, to, 0, FlagNormal)
	ok, undo := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for capture move")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after capture MakeMove")
	}
	b.UnmakeMove(undo)
	if !b.Validate() {
		t.Fatalf("board invalid after capture UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after capture unmake")
	}
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(4*8 + 4) // e5
	to := Square(5*8 + 3)   // d6
	m := NewMove(from, to, 0, FlagEnPassant)
	ok, undo := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for en passant")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after en passant MakeMove")
	}
	b.UnmakeMove(undo)
	if !b.Validate() {
		t.Fatalf("board invalid after en passant UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after ep unmake")
	}
}

func TestMakeUnmakeCastling(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(4) // e1
	to := Square(6)   // g1
	m := NewMove(from, to, 0, FlagCastling)
	ok, undo := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for castling")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after castling MakeMove")
	}
	if got := b.PieceAt(5); got != WhiteRook { // f1
		t.Fatalf("expected rook on f1 after castling, got %v", got)
	}
	b.UnmakeMove(undo)
	if !b.Validate() {
		t.Fatalf("board invalid after castling UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after castling unmake")
	}
}
