package board

import (
	"errors"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return '?'
	}
}

// ParseFEN parses a FEN string into a new Position. Returns an error if the
// FEN is malformed.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Split(strings.TrimSpace(fen), " ")
	if len(fields) < 4 {
		return nil, errors.New("board: invalid FEN: not enough fields")
	}

	p := &Position{}
	p.enPassantSquare = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.New("board: invalid FEN: incorrect number of ranks")
	}

	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, errors.New("board: invalid FEN: empty rank description")
		}
		rankIndex := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, errors.New("board: invalid FEN: unrecognized piece character")
			}
			if file >= 8 {
				return nil, errors.New("board: invalid FEN: too many squares in rank")
			}
			sq := rankIndex*8 + file
			p.pieces[sq] = piece

			ci := int(colorOf(piece))
			p.occupancy[ci] |= uint64(1) << uint(sq)
			switch typeOf(piece) {
			case 1:
				p.pawns[ci] |= uint64(1) << uint(sq)
			case 2:
				p.knights[ci] |= uint64(1) << uint(sq)
			case 3:
				p.bishops[ci] |= uint64(1) << uint(sq)
			case 4:
				p.rooks[ci] |= uint64(1) << uint(sq)
			case 5:
				p.queens[ci] |= uint64(1) << uint(sq)
			case 6:
				p.kings[ci] |= uint64(1) << uint(sq)
			}
			file++
		}
		if file != 8 {
			return nil, errors.New("board: invalid FEN: rank does not have 8 columns")
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, errors.New("board: invalid FEN: side to move must be 'w' or 'b'")
	}

	p.castlingRights = 0
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castlingRights |= CastlingWhiteK
			case 'Q':
				p.castlingRights |= CastlingWhiteQ
			case 'k':
				p.castlingRights |= CastlingBlackK
			case 'q':
				p.castlingRights |= CastlingBlackQ
			default:
				return nil, errors.New("board: invalid FEN: invalid castling rights character")
			}
		}
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, errors.New("board: invalid FEN: invalid en passant square")
		}
		fileChar, rankChar := fields[3][0], fields[3][1]
		if fileChar < 'a' || fileChar > 'h' || rankChar < '1' || rankChar > '8' {
			return nil, errors.New("board: invalid FEN: en passant square out of range")
		}
		file := int(fileChar - 'a')
		rank := int(rankChar - '1')
		p.enPassantSquare = Square(rank*8 + file)
	}

	p.halfmoveClock = 0
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, errors.New("board: invalid FEN: halfmove clock is not a number")
		}
		p.halfmoveClock = halfmove
	}

	p.fullmoveNumber = 1
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, errors.New("board: invalid FEN: fullmove number is not a number")
		}
		p.fullmoveNumber = fullmove
	}

	p.zobristKey = p.ComputeZobrist()
	return p, nil
}

// ToFEN produces the FEN string representation of the position's current state.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			pc := p.pieces[sq]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteRune(charFromPiece(pc))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if p.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if p.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if p.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	if p.enPassantSquare != NoSquare {
		sb.WriteByte('a' + byte(p.enPassantSquare.File()))
		sb.WriteByte('1' + byte(p.enPassantSquare.Rank()))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}
