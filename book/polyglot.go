package book

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"sort"

	bd "ravenfish/board"
)

// polyglotEntry mirrors one 16-byte record of a .bin Polyglot book: a
// position key, a packed move, a selection weight, and a learn field this
// repo doesn't use. Grounded on the entry layout described by
// other_examples/hailam-chessplay__polyglot.go's key construction, binary
// search adapted to this repo's own Position.Hash. That hash follows the
// Polyglot EP-capturable convention but uses the engine's own fixed-seed
// keys (see board/zobrist.go), not the published Polyglot key table, so
// entries of a standard Polyglot .bin book do not match it.
type polyglotEntry struct {
	key    uint64
	move   uint16
	weight uint16
	learn  uint32
}

const polyglotEntrySize = 16

// PolyglotBook is a binary .bin opening book, loaded fully into memory and
// sorted by key for binary-search lookup.
type PolyglotBook struct {
	entries []polyglotEntry
}

// NewPolyglotBook reads and sorts every entry in a Polyglot .bin file.
func NewPolyglotBook(path string) (*PolyglotBook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("book: open %s: %w", path, err)
	}
	if len(raw)%polyglotEntrySize != 0 {
		return nil, fmt.Errorf("book: %s is not a whole number of 16-byte entries", path)
	}

	n := len(raw) / polyglotEntrySize
	entries := make([]polyglotEntry, n)
	for i := 0; i < n; i++ {
		rec := raw[i*polyglotEntrySize : (i+1)*polyglotEntrySize]
		entries[i] = polyglotEntry{
			key:    binary.BigEndian.Uint64(rec[0:8]),
			move:   binary.BigEndian.Uint16(rec[8:10]),
			weight: binary.BigEndian.Uint16(rec[10:12]),
			learn:  binary.BigEndian.Uint32(rec[12:16]),
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return &PolyglotBook{entries: entries}, nil
}

// Probe looks up p.Hash() among the book's sorted entries and, if found,
// picks one of the tied-key candidates by weighted random selection (a zero
// weight everywhere falls back to a uniform pick among the candidates).
func (pb *PolyglotBook) Probe(p *bd.Position) (bd.Move, bool) {
	key := p.Hash()
	lo := sort.Search(len(pb.entries), func(i int) bool { return pb.entries[i].key >= key })
	if lo >= len(pb.entries) || pb.entries[lo].key != key {
		return bd.NoMove, false
	}
	hi := lo
	for hi < len(pb.entries) && pb.entries[hi].key == key {
		hi++
	}
	candidates := pb.entries[lo:hi]

	total := 0
	for _, e := range candidates {
		total += int(e.weight)
	}

	var chosen polyglotEntry
	if total == 0 {
		chosen = candidates[rand.Intn(len(candidates))]
	} else {
		target := rand.Intn(total)
		acc := 0
		chosen = candidates[len(candidates)-1]
		for _, e := range candidates {
			acc += int(e.weight)
			if target < acc {
				chosen = e
				break
			}
		}
	}

	move, ok := decodePolyglotMove(p, chosen.move)
	if !ok {
		return bd.NoMove, false
	}
	return move, true
}

// decodePolyglotMove unpacks Polyglot's 16-bit move encoding (3 bits each
// for to-file, to-rank, from-file, from-rank, then 3 bits of promotion
// piece) and resolves it against p via board.ParseMove's UCI-string path so
// castling/en-passant/promotion flags come out consistent with the rest of
// the move generator.
func decodePolyglotMove(p *bd.Position, packed uint16) (bd.Move, bool) {
	toFile := packed & 0x7
	toRank := (packed >> 3) & 0x7
	fromFile := (packed >> 6) & 0x7
	fromRank := (packed >> 9) & 0x7
	promo := (packed >> 12) & 0x7

	// The official Polyglot format encodes castling as "king captures its
	// own rook" (e1h1, e1a1, ...) rather than the king-moves-two-squares
	// notation board.ParseMove expects; translate that one case before
	// falling through to the normal from/to decode.
	if promo == 0 && fromFile == 4 && (fromRank == 0 || fromRank == 7) {
		if toFile == 7 && toRank == fromRank {
			toFile = 6
		} else if toFile == 0 && toRank == fromRank {
			toFile = 2
		}
	}

	uci := fmt.Sprintf("%c%c%c%c", 'a'+fromFile, '1'+fromRank, 'a'+toFile, '1'+toRank)
	switch promo {
	case 1:
		uci += "n"
	case 2:
		uci += "b"
	case 3:
		uci += "r"
	case 4:
		uci += "q"
	}
	return bd.ParseMove(p, uci)
}
