package board

import "github.com/daystram/evalbar/position"

func (b *Board) KingSquare(s Side) (position.Square, bool) {
	sqs := b.pieces[s][PieceKing]
	if len(sqs) == 0 {
		return position.Square{}, false
	}
	return sqs[0], true
}

func (b *Board) IsInCheck(s Side) bool {
	king, ok := b.KingSquare(s)
	if !ok {
		return false
	}
	return b.IsAttacked(king, s.Opposite())
}

// IsAttacked reports whether any piece of side by has a pseudo-legal move onto
// sq. Pawns only count when sq is occupied, as they only move diagonally to
// capture.
func (b *Board) IsAttacked(sq position.Square, by Side) bool {
	for _, p := range Pieces {
		key := PieceKey{Side: by, Piece: p}
		for _, from := range b.pieces[by][p] {
			if b.IsPseudoLegal(key, from, sq) {
				return true
			}
		}
	}
	return false
}
