package board

import "testing"

func findMovePP(t *testing.T, b *Position, from, to Square) (Move, bool) {
	t.Helper()
	moves := b.GenerateMoves()
	for _, m := range moves {
		if m.From() == from && m.To() == to {
			return m, true
		}
	}
	return 0, false
}

func TestPushPopRoundTrip(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startZ := b.ComputeZobrist()

	var undos []UndoInfo
	var hist []uint64

	e2 := Square(1*8 + 4)
	e4 := Square(3*8 + 4)
	e7 := Square(6*8 + 4)
	e5 := Square(4*8 + 4)

	m1, ok := findMovePP(t, b, e2, e4)
	if !ok {
		t.Fatalf("e2e4 not found")
	}
	undo1, ok := b.PushMove(m1, &hist)
	if !ok {
		t.Fatalf("PushMove e2e4 failed")
	}
	undos = append(undos, undo1)

	m2, ok := findMovePP(t, b, e7, e5)
	if !ok {
		t.Fatalf("e7e5 not found")
	}
	undo2, ok := b.PushMove(m2, &hist)
	if !ok {
		t.Fatalf("PushMove e7e5 failed")
	}
	undos = append(undos, undo2)

	b.PopMove(undos[1], &hist)
	b.PopMove(undos[0], &hist)

	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after pop: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("Zobrist mismatch after pop")
	}
	if len(hist) != 0 {
		t.Fatalf("history not empty after pops")
	}
}
