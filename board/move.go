package board

import "github.com/daystram/evalbar/position"

type Move struct {
	From, To position.Square
	Piece    PieceKey
	Index    int

	Captured   Piece
	IsCheck    bool
	IsCastle   bool
	CastleSide CastleSide
}

func (m Move) IsCapture() bool {
	return m.Captured != PieceUnknown
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if m.IsCastle {
		return m.CastleSide.String()
	}
	nt := m.Piece.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture() {
		if m.Piece.Piece == PiecePawn {
			nt += position.NotationComponentCol(m.From.Col)
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsCheck {
		nt += "+"
	}
	return nt
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation()
}
