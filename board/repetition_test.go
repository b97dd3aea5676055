package board

import (
	"strings"
	"testing"
)

func findMoveRep(t *testing.T, b *Position, from, to Square) (Move, bool) {
	t.Helper()
	moves := b.GenerateMoves()
	for _, m := range moves {
		if m.From() == from && m.To() == to {
			return m, true
		}
	}
	return 0, false
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	var hist []uint64
	hist = append(hist, b.ComputeZobrist())

	play := func(from, to Square) {
		m, ok := findMoveRep(t, b, from, to)
		if !ok {
			t.Fatalf("move %v->%v not found", from, to)
		}
		ok2, _ := b.MakeMove(m)
		if !ok2 {
			t.Fatalf("move %v->%v illegal unexpectedly", from, to)
		}
		hist = append(hist, b.ComputeZobrist())
	}

	g1 := Square(6)
	f3 := Square(2*8 + 5)
	g8 := Square(7*8 + 6)
	f6 := Square(5*8 + 5)

	play(g1, f3)
	play(g8, f6)
	play(f3, g1)
	play(f6, g8) // position equals initial

	if b.IsDrawByRepetition(hist) {
		t.Fatalf("should not be threefold yet after one cycle")
	}

	play(g1, f3)
	play(g8, f6)
	play(f3, g1)
	play(f6, g8) // third occurrence of initial position

	if !b.IsDrawByRepetition(hist) {
		t.Fatalf("expected threefold repetition after two cycles")
	}
}

func TestFiftyMoveRuleWithPushes(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	var hist []uint64

	g1 := Square(6)
	f3 := Square(2*8 + 5)
	g8 := Square(7*8 + 6)
	f6 := Square(5*8 + 5)

	for i := 0; i < 25; i++ {
		for _, fromTo := range [][2]Square{{g1, f3}, {g8, f6}, {f3, g1}, {f6, g8}} {
			m, ok := findMoveRep(t, b, fromTo[0], fromTo[1])
			if !ok {
				t.Fatalf("move %v->%v not found at i=%d", fromTo[0], fromTo[1], i)
			}
			if _, ok := b.PushMove(m, &hist); !ok {
				t.Fatalf("push %v->%v failed at i=%d", fromTo[0], fromTo[1], i)
			}
		}
	}

	if !b.IsDrawBy50() {
		t.Fatalf("expected 50-move rule draw after 100 halfmoves, got halfmoveClock=%d", b.HalfmoveClock())
	}
}

func TestThreefoldRepetitionWithBreaker(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	var hist []uint64

	seq := "d2d4 g8f6 c2c4 g7g6 f2f3 d7d6 e2e4 e7e5 d4d5 f6h5 c1e3 f8g7 b1c3 e8g8 d1d2 f7f5 e1c1 f5f4 e3f2 g7f6 d2e1 b8d7 c1b1 f6e7 g2g3 c7c5 d5c6 b7c6 c4c5 d6c5 c3a4 d8c7 e1c3 a8b8 f1h3 d7b6 a4c5 f8f7 b2b3 f4g3 h2g3 e7c5 c3c5 h5g7 d1c1 c8e6 c5c6 c7e7 c6c5 e7f6 h3g2 f7b7 b1a1 b6d7 c5d6 g7e8 d6a6 e6b3 a6f6 e8f6 a2b3 b7b3 c1c2 b3b1 a1a2 b1b4 a2a1 b4b1 a1a2 b1b4 a2a1 b4b1"

	hist = append(hist, b.ComputeZobrist())
	for i, mv := range strings.Split(seq, " ") {
		if len(mv) != 4 {
			t.Fatalf("invalid move token %q at %d", mv, i)
		}
		from := parseCoord(t, mv[:2])
		to := parseCoord(t, mv[2:])
		m, ok := findMoveRep(t, b, from, to)
		if !ok {
			t.Fatalf("move %s not found at ply %d", mv, i)
		}
		if _, ok := b.PushMove(m, &hist); !ok {
			t.Fatalf("illegal move %s at ply %d", mv, i)
		}
	}

	if !b.IsDrawByRepetition(hist) {
		t.Fatalf("expected threefold repetition after provided sequence")
	}
}

func parseCoord(t *testing.T, sq string) Square {
	t.Helper()
	if len(sq) != 2 {
		t.Fatalf("invalid coord %q", sq)
	}
	file := int(sq[0] - 'a')
	rank := int(sq[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		t.Fatalf("coord out of range: %q", sq)
	}
	return Square(rank*8 + file)
}
