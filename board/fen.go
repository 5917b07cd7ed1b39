package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/evalbar/position"
)

// UnmarshalFEN resets b to the placement and castling rights described by fen
// and returns the side to move. The en passant and clock fields are validated
// but not kept.
func UnmarshalFEN(fen string, b *Board) (Side, error) {
	if b == nil {
		return SideUnknown, fmt.Errorf("invalid board")
	}
	*b = Board{}
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return SideUnknown, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return SideUnknown, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for row := int8(0); row < Height; row++ {
		ptr := -1
		for col := int8(0); col < Width; col++ {
			ptr++
			if ptr >= len(rows[row]) {
				return SideUnknown, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
			}
			var s Side
			var p Piece
			switch cell := rune(rows[row][ptr]); cell {
			case 'P':
				s, p = SideWhite, PiecePawn
			case 'B':
				s, p = SideWhite, PieceBishop
			case 'N':
				s, p = SideWhite, PieceKnight
			case 'R':
				s, p = SideWhite, PieceRook
			case 'Q':
				s, p = SideWhite, PieceQueen
			case 'K':
				s, p = SideWhite, PieceKing
			case 'p':
				s, p = SideBlack, PiecePawn
			case 'b':
				s, p = SideBlack, PieceBishop
			case 'n':
				s, p = SideBlack, PieceKnight
			case 'r':
				s, p = SideBlack, PieceRook
			case 'q':
				s, p = SideBlack, PieceQueen
			case 'k':
				s, p = SideBlack, PieceKing
			default:
				if cell != '0' && unicode.IsDigit(cell) {
					skip := int8(cell - '0')
					if col+skip-1 < Width {
						col += skip - 1
						continue
					}
					return SideUnknown, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				return SideUnknown, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			b.place(PieceKey{Side: s, Piece: p}, position.NewSquare(row, col))
		}
		if ptr != len(rows[row])-1 {
			return SideUnknown, fmt.Errorf("%w: too many cells", ErrInvalidFEN)
		}
	}
	for _, s := range Sides {
		switch len(b.pieces[s][PieceKing]) {
		case 0:
			return SideUnknown, fmt.Errorf("%w: king missing", ErrInvalidFEN)
		case 1:
		default:
			return SideUnknown, fmt.Errorf("%w: multiple kings", ErrInvalidFEN)
		}
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return SideUnknown, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 {
		return SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
	b.castleRights[SideWhite].revoke()
	b.castleRights[SideBlack].revoke()
	castling := segments[2]
	if castling == "-" {
		castling = ""
	}
	for _, e := range castling {
		var s Side
		var cs CastleSide
		switch e {
		case 'K':
			s, cs = SideWhite, CastleSideKing
		case 'k':
			s, cs = SideBlack, CastleSideKing
		case 'Q':
			s, cs = SideWhite, CastleSideQueen
		case 'q':
			s, cs = SideBlack, CastleSideQueen
		default:
			return SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		if b.pieces[s][PieceKing][0] != position.NewSquare(s.HomeRow(), kingHomeCol) {
			return SideUnknown, fmt.Errorf("%w: castling rights without king on its home square", ErrInvalidFEN)
		}
		b.castleRights[s].KingMoved = false
		b.castleRights[s].RookMoved[cs] = false
	}

	if segments[3] != "-" {
		if _, err := position.NewSquareFromNotation(segments[3]); err != nil {
			return SideUnknown, fmt.Errorf("%w: %v", fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN), err)
		}
	}

	if _, err := strconv.ParseUint(segments[4], 10, 16); err != nil {
		return SideUnknown, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	if _, err := strconv.ParseUint(segments[5], 10, 16); err != nil {
		return SideUnknown, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}

	return turn, nil
}

func MarshalFEN(b *Board, turn Side) (string, error) {
	if b == nil {
		return "", fmt.Errorf("invalid board")
	}
	builder := strings.Builder{}
	var skip uint8
	for row := int8(0); row < Height; row++ {
		for col := int8(0); col < Width; col++ {
			for skip = 0; col < Width && !b.isOccupied(position.NewSquare(row, col)); col++ {
				skip++
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
			}
			if col < Width {
				key, _, _ := b.PieceAt(position.NewSquare(row, col))
				_, _ = builder.WriteString(key.Piece.SymbolFEN(key.Side))
			}
		}
		if row < Height-1 {
			_, _ = builder.WriteRune('/')
		}
	}

	switch turn {
	case SideWhite:
		_, _ = builder.WriteString(" w ")
	case SideBlack:
		_, _ = builder.WriteString(" b ")
	default:
		return "", fmt.Errorf("invalid turn")
	}

	white, black := b.castleRights[SideWhite], b.castleRights[SideBlack]
	if !white.IsAnyAllowed() && !black.IsAnyAllowed() {
		_, _ = builder.WriteRune('-')
	} else {
		if white.IsAllowed(CastleSideKing) {
			_, _ = builder.WriteRune('K')
		}
		if white.IsAllowed(CastleSideQueen) {
			_, _ = builder.WriteRune('Q')
		}
		if black.IsAllowed(CastleSideKing) {
			_, _ = builder.WriteRune('k')
		}
		if black.IsAllowed(CastleSideQueen) {
			_, _ = builder.WriteRune('q')
		}
	}

	_, _ = builder.WriteString(" - 0 1")

	return builder.String(), nil
}
