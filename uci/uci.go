// Package uci implements the engine's UCI command loop, grounded on the
// teacher's uciLoop in uci.go, generalized against the engine/board/book/
// tablebase packages instead of goosemg and rewritten to write protocol
// output through an injected io.Writer so it's testable without capturing
// real stdout.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	bd "ravenfish/board"
	"ravenfish/book"
	"ravenfish/engine"
	"ravenfish/tablebase"
)

// Session holds everything the command loop needs across lines: the current
// position, engine options, and the book/tablebase adapters to consult
// before falling through to search.
type Session struct {
	pos  *bd.Position
	opts engine.Options
	book book.Book
	tb   tablebase.Tablebase
	out  io.Writer
}

// NewSession creates a session at the startup position with default options
// and no book/tablebase configured.
func NewSession(out io.Writer) *Session {
	pos, err := bd.ParseFEN(bd.FENStartPos)
	if err != nil {
		log.Fatalf("uci: parsing built-in start position: %v", err)
	}
	return &Session{pos: pos, opts: engine.DefaultOptions(), tb: tablebase.None{}, out: out}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// Loop reads UCI commands from r, one per line, until "quit" or EOF.
func (s *Session) Loop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.handleUCI()
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.handleNewGame()
		case "quit":
			return
		case "stop":
			engine.Stop()
		case "position":
			s.handlePosition(line)
		case "setoption":
			s.handleSetOption(line)
		case "go":
			s.handleGo(line)
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

func (s *Session) handleUCI() {
	s.println("id name ravenfish", engineVersion)
	s.println("id author ravenfish contributors")
	s.println("option name Hash type spin default", engine.DefaultOptions().HashMB, "min 1 max 4096")
	s.println("option name Threads type spin default 1 min 1 max 1")
	s.println("option name Debug type check default false")
	s.println("option name Depth type spin default", engine.DefaultOptions().Depth, "min 1 max", engine.MaxConfigurableDepth)
	s.println("option name OwnBook type check default false")
	s.println("option name BookPath type string default <empty>")
	s.println("option name SyzygyPath type string default <empty>")
	s.println("uciok")
}

const engineVersion = "1.0"

func (s *Session) handleNewGame() {
	pos, err := bd.ParseFEN(bd.FENStartPos)
	if err != nil {
		log.Printf("uci: ucinewgame: %v", err)
		return
	}
	s.pos = pos
	engine.ResetForNewGame()
}

func (s *Session) handlePosition(line string) {
	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanWords)
	scanner.Scan() // "position"
	if !scanner.Scan() {
		s.println("info string Malformed position command")
		return
	}

	switch strings.ToLower(scanner.Text()) {
	case "startpos":
		pos, err := bd.ParseFEN(bd.FENStartPos)
		if err != nil {
			log.Printf("uci: position startpos: %v", err)
			return
		}
		s.pos = pos
		scanner.Scan() // advance to "moves" or EOF
	case "fen":
		var fenFields []string
		for scanner.Scan() && strings.ToLower(scanner.Text()) != "moves" {
			fenFields = append(fenFields, scanner.Text())
		}
		if len(fenFields) == 0 {
			s.println("info string Invalid fen position")
			return
		}
		pos, err := bd.ParseFEN(strings.Join(fenFields, " "))
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		s.pos = pos
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	engine.ResetStateTracking(s.pos)

	if strings.ToLower(scanner.Text()) != "moves" {
		return
	}
	for scanner.Scan() {
		moveStr := strings.ToLower(scanner.Text())
		move, ok := bd.ParseMove(s.pos, moveStr)
		if !ok {
			s.println("info string Move", moveStr, "not found for position", s.pos.ToFEN())
			continue
		}
		if ok, _ := s.pos.MakeMove(move); !ok {
			s.println("info string Illegal move", moveStr, "for position", s.pos.ToFEN())
			continue
		}
		engine.RecordState(s.pos)
	}
}

func (s *Session) handleGo(line string) {
	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanWords)
	scanner.Scan() // "go"

	var wTime, bTime, wInc, bInc, depthToUse int
	for scanner.Scan() {
		switch strings.ToLower(scanner.Text()) {
		case "infinite":
			continue
		case "wtime":
			wTime = nextInt(scanner, s)
		case "btime":
			bTime = nextInt(scanner, s)
		case "winc":
			wInc = nextInt(scanner, s)
		case "binc":
			bInc = nextInt(scanner, s)
		case "depth":
			depthToUse = nextInt(scanner, s)
		default:
			s.println("info string Unknown go subcommand", scanner.Text())
		}
	}

	if s.book != nil {
		if move, ok := s.book.Probe(s.pos); ok {
			s.println("bestmove", move.String())
			return
		}
	}

	if s.tb.CanProbe(s.pos) {
		if move, _, ok := s.tb.ProbeRoot(s.pos); ok {
			s.println("bestmove", move.String())
			return
		}
	}

	var timeToUse, incToUse int
	const defaultMoveTimeMs = 300000
	if s.pos.SideToMove() == bd.White {
		if wTime > 0 {
			timeToUse = wTime
		} else {
			timeToUse = defaultMoveTimeMs
		}
		incToUse = wInc
	} else {
		if bTime > 0 {
			timeToUse = bTime
		} else {
			timeToUse = defaultMoveTimeMs
		}
		incToUse = bInc
	}

	useCustomDepth := depthToUse > 0
	if !useCustomDepth {
		depthToUse = s.opts.Depth
		if depthToUse <= 0 {
			depthToUse = engine.MaxConfigurableDepth
		}
	}
	if depthToUse > engine.MaxConfigurableDepth {
		depthToUse = engine.MaxConfigurableDepth
	}

	bestMove := engine.StartSearch(s.pos, uint8(depthToUse), timeToUse, incToUse, useCustomDepth)
	s.println("bestmove", bestMove)
}

func nextInt(scanner *bufio.Scanner, s *Session) int {
	if !scanner.Scan() {
		s.println("info string Malformed go command option, expected a number")
		return 0
	}
	v, err := strconv.Atoi(scanner.Text())
	if err != nil {
		s.println("info string Malformed go command option; could not convert", scanner.Text())
		return 0
	}
	return v
}

func (s *Session) handleSetOption(line string) {
	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanWords)
	scanner.Scan() // "setoption"

	var name, value string
	var inValue bool
	for scanner.Scan() {
		switch strings.ToLower(scanner.Text()) {
		case "name":
			inValue = false
			name = ""
		case "value":
			inValue = true
			value = ""
		default:
			if inValue {
				if value != "" {
					value += " "
				}
				value += scanner.Text()
			} else {
				if name != "" {
					name += " "
				}
				name += scanner.Text()
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb <= 0 {
			s.println("info string Invalid Hash value:", value)
			return
		}
		s.opts.HashMB = mb
		engine.SetHashSizeMB(mb)
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			s.println("info string Invalid Threads value:", value)
			return
		}
		if n > 1 {
			s.println("info string Threads > 1 not supported, this engine searches single-threaded")
			return
		}
		s.opts.Threads = 1
	case "debug":
		s.opts.Debug = strings.EqualFold(value, "true")
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil || d < 1 {
			s.println("info string Invalid Depth value:", value)
			return
		}
		if d > engine.MaxConfigurableDepth {
			d = engine.MaxConfigurableDepth
		}
		s.opts.Depth = d
	case "ownbook":
		s.opts.OwnBook = strings.EqualFold(value, "true")
		s.loadBookIfNeeded()
	case "bookpath":
		s.opts.BookPath = value
		s.loadBookIfNeeded()
	case "syzygypath":
		s.opts.SyzygyPath = value
	default:
		s.println("info string Unknown option:", name)
	}
}

func (s *Session) loadBookIfNeeded() {
	if !s.opts.OwnBook || s.opts.BookPath == "" {
		s.book = nil
		return
	}
	var b book.Book
	var err error
	if strings.HasSuffix(strings.ToLower(s.opts.BookPath), ".bin") {
		b, err = book.NewPolyglotBook(s.opts.BookPath)
	} else {
		b, err = book.NewMapBook(s.opts.BookPath)
	}
	if err != nil {
		log.Printf("uci: loading book %s: %v", s.opts.BookPath, err)
		s.book = nil
		return
	}
	s.book = b
}
