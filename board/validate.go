package board

import "github.com/daystram/evalbar/position"

// Destinations splits the reachable squares of a piece into quiet moves and
// captures.
type Destinations struct {
	Quiet    []position.Square `json:"quiet"`
	Captures []position.Square `json:"captures"`
}

// IsPseudoLegal reports whether the piece of class key standing on from may
// move to to, following its movement pattern and board occupancy. It does not
// check whether the mover's own king is left in check.
func (b *Board) IsPseudoLegal(key PieceKey, from, to position.Square) bool {
	mustKnownPiece(key.Piece)
	if !from.Valid() || !to.Valid() {
		return false
	}
	if _, ok := b.indexOf(key, from); !ok {
		return false
	}
	if b.isOccupiedBy(key.Side, to) {
		return false
	}

	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	switch key.Piece {
	case PiecePawn:
		return b.isPawnMove(key.Side, from, to)
	case PieceRook:
		return (dRow == 0 || dCol == 0) && b.isPathClear(from, to)
	case PieceKnight:
		return (abs(dRow) == 2 && abs(dCol) == 1) || (abs(dRow) == 1 && abs(dCol) == 2)
	case PieceBishop:
		return abs(dRow) == abs(dCol) && b.isPathClear(from, to)
	case PieceQueen:
		return (dRow == 0 || dCol == 0 || abs(dRow) == abs(dCol)) && b.isPathClear(from, to)
	case PieceKing:
		if abs(dRow) <= 1 && abs(dCol) <= 1 {
			return true
		}
		return b.isCastle(key.Side, from, to)
	}
	return false
}

func (b *Board) isPawnMove(s Side, from, to position.Square) bool {
	dir := s.Forward()
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if dCol == 0 && !b.isOccupied(to) {
		if dRow == dir {
			return true
		}
		if from.Row == s.PawnRow() && dRow == 2*dir {
			return !b.isOccupied(from.Offset(dir, 0))
		}
		return false
	}
	return dRow == dir && abs(dCol) == 1 && b.isOccupiedBy(s.Opposite(), to)
}

// isCastle only looks at the moved flags and the squares between king and
// rook. Attacked squares on the king's way are not considered.
func (b *Board) isCastle(s Side, from, to position.Square) bool {
	rights := b.castleRights[s]
	if rights.KingMoved || to.Row != from.Row || abs(to.Col-from.Col) != 2 {
		return false
	}
	cs, ok := castleSideFromKingTarget(to.Col)
	if !ok || rights.RookMoved[cs] {
		return false
	}
	return b.isPathClear(from, position.NewSquare(from.Row, cs.RookCol()))
}

// isPathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, column or diagonal.
func (b *Board) isPathClear(from, to position.Square) bool {
	stepRow, stepCol := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for sq := from.Offset(stepRow, stepCol); sq != to; sq = sq.Offset(stepRow, stepCol) {
		if !sq.Valid() {
			return false
		}
		if b.isOccupied(sq) {
			return false
		}
	}
	return true
}

// LegalDestinations returns every square the piece on from may move to, in
// row-major order.
func (b *Board) LegalDestinations(key PieceKey, from position.Square) []position.Square {
	var sqs []position.Square
	for _, to := range position.All() {
		if b.IsPseudoLegal(key, from, to) {
			sqs = append(sqs, to)
		}
	}
	return sqs
}

func (b *Board) Destinations(key PieceKey, from position.Square) Destinations {
	var d Destinations
	for _, to := range b.LegalDestinations(key, from) {
		if b.isOccupiedBy(key.Side.Opposite(), to) {
			d.Captures = append(d.Captures, to)
		} else {
			d.Quiet = append(d.Quiet, to)
		}
	}
	return d
}
