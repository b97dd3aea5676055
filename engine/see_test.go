package engine

import (
	"testing"

	bd "ravenfish/board"
)

func TestSEEAccountsForRevealedSlider(t *testing.T) {
	p, err := bd.ParseFEN("6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	move, ok := bd.ParseMove(p, "c4e6")
	if !ok {
		t.Fatalf("parse move c4e6")
	}

	if score := p.SEE(move); score != -10 {
		t.Fatalf("expected SEE score -10, got %d", score)
	}
}

func TestSEEHandlesEnPassantCapture(t *testing.T) {
	p, err := bd.ParseFEN("8/8/8/3pP3/8/8/8/6K1 w - d6 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	move, ok := bd.ParseMove(p, "e5d6")
	if !ok {
		t.Fatalf("parse move e5d6")
	}
	if !move.IsEnPassant() {
		t.Fatalf("expected en passant flag to be set on e5d6")
	}
	if bd.SeePieceValue[bd.PieceTypePawn] != 100 {
		t.Fatalf("unexpected pawn SEE value: %d", bd.SeePieceValue[bd.PieceTypePawn])
	}

	score := p.SEE(move)
	expected := bd.SeePieceValue[bd.PieceTypePawn]
	if score != expected {
		t.Fatalf("expected SEE score %d, got %d", expected, score)
	}
}
