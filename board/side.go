package board

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

// Sides lists both playing sides, White first.
var Sides = [2]Side{SideWhite, SideBlack}

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// HomeRow is the row holding the side's king and rooks at the start of the game.
func (s Side) HomeRow() int8 {
	if s == SideWhite {
		return 7
	}
	return 0
}

// PawnRow is the row pawns may double-step from.
func (s Side) PawnRow() int8 {
	if s == SideWhite {
		return 6
	}
	return 1
}

// Forward is the row delta of a pawn advance.
func (s Side) Forward() int8 {
	if s == SideWhite {
		return -1
	}
	return 1
}
