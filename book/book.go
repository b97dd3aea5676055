// Package book implements opening-book lookups, generalizing the teacher's
// engine/opening_book.go CSV reader into a small Book interface with two
// concrete sources: a line-oriented text book and a binary Polyglot book.
package book

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	bd "ravenfish/board"
)

// Book probes a position for a known book move. Probe returns false when the
// position isn't in the book, letting callers fall through to search.
type Book interface {
	Probe(p *bd.Position) (bd.Move, bool)
}

// MapBook holds FEN → candidate-move-list entries, keyed by the board part
// and side-to-move of the FEN (castling rights/en-passant/move counters are
// ignored for lookup, matching how the teacher's CSV book keyed on position
// text rather than the full FEN). One move is chosen uniformly at random
// among the candidates for a given position, so repeated games don't always
// play the identical book line.
type MapBook struct {
	lines map[string][]string
}

// NewMapBook reads a line-oriented text book: one line per position, of the
// form "<fen-board> <fen-side> <move1> [move2 ...]", moves in UCI notation.
// Blank lines and lines starting with '#' are ignored, generalizing the
// teacher's CSV-plus-regex ingestion (engine/opening_book.go) into a format
// that doesn't depend on stripping PGN move numbers out of each record.
func NewMapBook(path string) (*MapBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("book: open %s: %w", path, err)
	}
	defer f.Close()

	mb := &MapBook{lines: make(map[string][]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		key := fields[0] + " " + fields[1]
		mb.lines[key] = append(mb.lines[key], fields[2:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("book: read %s: %w", path, err)
	}
	return mb, nil
}

func (mb *MapBook) Probe(p *bd.Position) (bd.Move, bool) {
	fen := p.ToFEN()
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return bd.NoMove, false
	}
	key := fields[0] + " " + fields[1]
	candidates, ok := mb.lines[key]
	if !ok || len(candidates) == 0 {
		return bd.NoMove, false
	}
	picked := candidates[rand.Intn(len(candidates))]
	move, ok := bd.ParseMove(p, picked)
	if !ok {
		return bd.NoMove, false
	}
	return move, true
}
