package board

import "strings"

// Move encodes a chess move in 16 bits: 6 bits from, 6 bits to, 2 bits
// promotion piece type, 2 bits flag. Every other fact about a move (the
// piece that moved, anything captured, prior rights) is recovered from the
// Position at make/unmake time rather than carried in the move value, so
// that a Move stays comparable and cheap to store in tables (killers,
// history, transposition entries) without aliasing problems across
// positions.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePromoShift = 12
	moveFlagShift  = 14

	moveFromMask  = 0x3F
	moveToMask    = 0x3F
	movePromoMask = 0x3
	moveFlagMask  = 0x3
)

// Promotion piece encoding (only meaningful when Flag() == FlagPromotion).
const (
	PromoKnight = 0
	PromoBishop = 1
	PromoRook   = 2
	PromoQueen  = 3
)

// Move flags.
const (
	FlagNormal    = 0
	FlagPromotion = 1
	FlagEnPassant = 2
	FlagCastling  = 3
)

// NewMove constructs a Move from its components. promo is only consulted
// when flag == FlagPromotion.
func NewMove(from, to Square, promo uint8, flag uint8) Move {
	return Move(uint16(from&moveFromMask) |
		(uint16(to&moveToMask) << moveToShift) |
		(uint16(promo&movePromoMask) << movePromoShift) |
		(uint16(flag&moveFlagMask) << moveFlagShift))
}

// NoMove is the zero move, used as a sentinel (no legal move exists on square 0->0).
const NoMove Move = 0

func (m Move) From() Square { return Square((uint16(m) >> moveFromShift) & moveFromMask) }
func (m Move) To() Square   { return Square((uint16(m) >> moveToShift) & moveToMask) }
func (m Move) Flag() uint8  { return uint8((uint16(m) >> moveFlagShift) & moveFlagMask) }

// PromotionType returns the colorless piece type being promoted to, or
// PieceTypeNone if this move is not a promotion.
func (m Move) PromotionType() PieceType {
	if m.Flag() != FlagPromotion {
		return PieceTypeNone
	}
	switch uint8((uint16(m) >> movePromoShift) & movePromoMask) {
	case PromoKnight:
		return PieceTypeKnight
	case PromoBishop:
		return PieceTypeBishop
	case PromoRook:
		return PieceTypeRook
	default:
		return PieceTypeQueen
	}
}

func promoCodeFromType(pt PieceType) uint8 {
	switch pt {
	case PieceTypeKnight:
		return PromoKnight
	case PieceTypeBishop:
		return PromoBishop
	case PieceTypeRook:
		return PromoRook
	default:
		return PromoQueen
	}
}

// IsPromotion, IsEnPassant, IsCastling are small readability helpers over Flag().
func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }
func (m Move) IsCastling() bool  { return m.Flag() == FlagCastling }

// String renders the move in UCI long algebraic notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	from, to := m.From(), m.To()
	s := string([]byte{'a' + byte(from.File()), '1' + byte(from.Rank())}) +
		string([]byte{'a' + byte(to.File()), '1' + byte(to.Rank())})
	if m.IsPromotion() {
		s += strings.ToLower(string(charFromPiece(PieceFromType(White, m.PromotionType()))))
	}
	return s
}

// ParseMove parses a UCI long-algebraic move string (e.g. "e2e4", "e7e8q")
// against the given position, producing the Move with the correct flag
// (promotion/en passant/castling are all inferred from the position, never
// from the string itself beyond the promotion letter).
func ParseMove(pos *Position, s string) (Move, bool) {
	if len(s) < 4 {
		return 0, false
	}
	from := Square(int(s[0]-'a') + 8*int(s[1]-'1'))
	to := Square(int(s[2]-'a') + 8*int(s[3]-'1'))
	if from < 0 || from > 63 || to < 0 || to > 63 {
		return 0, false
	}
	moved := pos.PieceAt(from)
	if moved == NoPiece {
		return 0, false
	}
	flag := uint8(FlagNormal)
	promo := uint8(PromoQueen)
	if len(s) >= 5 {
		flag = FlagPromotion
		switch s[4] {
		case 'n', 'N':
			promo = PromoKnight
		case 'b', 'B':
			promo = PromoBishop
		case 'r', 'R':
			promo = PromoRook
		default:
			promo = PromoQueen
		}
	} else if typeOf(moved) == 1 && to == pos.enPassantSquare && pos.enPassantSquare != NoSquare {
		flag = FlagEnPassant
	} else if typeOf(moved) == 6 {
		delta := int(to) - int(from)
		if delta == 2 || delta == -2 {
			flag = FlagCastling
		}
	}
	return NewMove(from, to, promo, flag), true
}
