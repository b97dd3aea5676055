package uci

import (
	"bytes"
	"strings"
	"testing"
)

func TestHandleUCIPrintsUCIOk(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	s.Loop(strings.NewReader("uci\nquit\n"))

	if !strings.Contains(out.String(), "uciok") {
		t.Fatalf("expected uciok in output, got: %s", out.String())
	}
}

func TestPositionStartposWithMoves(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	s.Loop(strings.NewReader("position startpos moves e2e4 e7e5\nquit\n"))

	fen := s.pos.ToFEN()
	if !strings.Contains(fen, "w KQkq e6") {
		t.Fatalf("expected white to move with e6 en passant square, got fen: %s", fen)
	}
}

func TestPositionFEN(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	s.Loop(strings.NewReader("position fen " + fen + "\nquit\n"))

	if got := s.pos.ToFEN(); got != fen {
		t.Fatalf("expected fen %q, got %q", fen, got)
	}
}

func TestSetOptionHash(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	s.Loop(strings.NewReader("setoption name Hash value 64\nquit\n"))

	if s.opts.HashMB != 64 {
		t.Fatalf("expected HashMB 64, got %d", s.opts.HashMB)
	}
}

func TestSetOptionThreadsRejectsMoreThanOne(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	s.Loop(strings.NewReader("setoption name Threads value 4\nquit\n"))

	if s.opts.Threads != 1 {
		t.Fatalf("expected Threads to stay pinned at 1, got %d", s.opts.Threads)
	}
	if !strings.Contains(out.String(), "not supported") {
		t.Fatalf("expected rejection message in output, got: %s", out.String())
	}
}
