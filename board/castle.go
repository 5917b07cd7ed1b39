package board

// CastleSide indexes the per-side rook flags.
type CastleSide uint8

const (
	CastleSideQueen CastleSide = iota
	CastleSideKing
)

func (cs CastleSide) String() string {
	if cs == CastleSideKing {
		return "0-0"
	}
	return "0-0-0"
}

// RookCol is the column the castling rook starts on.
func (cs CastleSide) RookCol() int8 {
	if cs == CastleSideKing {
		return 7
	}
	return 0
}

// RookTargetCol is the column the castling rook lands on.
func (cs CastleSide) RookTargetCol() int8 {
	if cs == CastleSideKing {
		return 5
	}
	return 3
}

// KingTargetCol is the column the king lands on.
func (cs CastleSide) KingTargetCol() int8 {
	if cs == CastleSideKing {
		return 6
	}
	return 2
}

func castleSideFromKingTarget(col int8) (CastleSide, bool) {
	for _, cs := range [2]CastleSide{CastleSideQueen, CastleSideKing} {
		if cs.KingTargetCol() == col {
			return cs, true
		}
	}
	return 0, false
}

// CastleRights tracks whether a side's king and corner rooks have moved.
type CastleRights struct {
	KingMoved bool
	RookMoved [2]bool
}

func (c CastleRights) IsAllowed(cs CastleSide) bool {
	return !c.KingMoved && !c.RookMoved[cs]
}

func (c CastleRights) IsAnyAllowed() bool {
	return c.IsAllowed(CastleSideKing) || c.IsAllowed(CastleSideQueen)
}

func (c *CastleRights) revoke() {
	c.KingMoved = true
	c.RookMoved = [2]bool{true, true}
}
