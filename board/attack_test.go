package board

import "testing"

func emptyBoard(t *testing.T) *Position {
	t.Helper()
	b, err := ParseFEN("8/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN empty: %v", err)
	}
	return b
}

func TestIsSquareAttackedRookFiles(t *testing.T) {
	b := emptyBoard(t)
	e1 := Square(0*8 + 4)
	e8 := Square(7*8 + 4)
	b.SetPiece(e1, WhiteKing)
	b.SetPiece(e8, BlackRook)
	if !b.InCheck(White) {
		t.Fatalf("expected White in check from rook on file")
	}
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by Black")
	}
	e3 := Square(2*8 + 4)
	b.SetPiece(e3, WhitePawn)
	if b.IsSquareAttacked(e1, Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
}

func TestIsSquareAttackedBishopDiagonals(t *testing.T) {
	b := emptyBoard(t)
	e1 := Square(0*8 + 4)
	b4 := Square(3*8 + 1)
	b.SetPiece(e1, WhiteKing)
	b.SetPiece(b4, BlackBishop)
	if !b.IsSquareAttacked(e1, Black) || !b.InCheck(White) {
		t.Fatalf("expected e1 attacked by bishop along diagonal")
	}
	d2 := Square(1*8 + 3)
	b.SetPiece(d2, WhitePawn)
	if b.IsSquareAttacked(e1, Black) {
		t.Fatalf("did not expect e1 attacked after diagonal blocker")
	}
}

func TestIsSquareAttackedPawnsKnightsKings(t *testing.T) {
	b := emptyBoard(t)
	e1 := Square(0*8 + 4)
	e4 := Square(3*8 + 4)
	d5 := Square(4*8 + 3)
	f3 := Square(2*8 + 5)
	d2 := Square(1*8 + 3)

	b.SetPiece(e1, WhiteKing)
	b.SetPiece(e4, WhitePawn)
	b.SetPiece(d5, BlackPawn)
	if !b.IsSquareAttacked(e4, Black) {
		t.Fatalf("expected e4 attacked by black pawn from d5")
	}
	b.SetPiece(f3, BlackKnight)
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by black knight from f3")
	}
	b.SetPiece(d2, BlackKing)
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by adjacent black king")
	}
}
