package board

import "github.com/daystram/evalbar/position"

// IsCheckmate reports whether side s is in check and every pseudo-legal move
// it has still leaves its king in check. Each candidate is played on a fresh
// clone; b itself is never modified.
func (b *Board) IsCheckmate(s Side) bool {
	if !b.IsInCheck(s) {
		return false
	}

	for _, p := range Pieces {
		key := PieceKey{Side: s, Piece: p}
		for i, from := range b.pieces[s][p] {
			for _, to := range position.All() {
				if !b.IsPseudoLegal(key, from, to) {
					continue
				}
				bb := b.Clone()
				bb.Apply(key, i, to)
				if !bb.IsInCheck(s) {
					return false
				}
			}
		}
	}
	return true
}

// GenerateMoves returns the pseudo-legal moves of side s that do not leave its
// own king in check. Moves are flagged when they give check.
func (b *Board) GenerateMoves(s Side) []Move {
	var mvs []Move
	for _, p := range Pieces {
		key := PieceKey{Side: s, Piece: p}
		for i, from := range b.pieces[s][p] {
			for _, to := range position.All() {
				if !b.IsPseudoLegal(key, from, to) {
					continue
				}
				bb := b.Clone()
				mv := bb.Commit(key, i, to)

				// filter moves that leave our King in check
				if bb.IsInCheck(s) {
					continue
				}

				mv.IsCheck = bb.IsInCheck(s.Opposite())
				mvs = append(mvs, mv)
			}
		}
	}
	return mvs
}

// IsLegal reports whether the move is pseudo-legal and does not leave the
// mover's own king in check.
func (b *Board) IsLegal(key PieceKey, from, to position.Square) bool {
	if !b.IsPseudoLegal(key, from, to) {
		return false
	}
	i, _ := b.indexOf(key, from)
	bb := b.Clone()
	bb.Commit(key, i, to)
	return !bb.IsInCheck(key.Side)
}

// SafeDestinations is Destinations without the moves that leave the mover's
// own king in check.
func (b *Board) SafeDestinations(key PieceKey, from position.Square) Destinations {
	var d Destinations
	all := b.Destinations(key, from)
	for _, to := range all.Quiet {
		if b.IsLegal(key, from, to) {
			d.Quiet = append(d.Quiet, to)
		}
	}
	for _, to := range all.Captures {
		if b.IsLegal(key, from, to) {
			d.Captures = append(d.Captures, to)
		}
	}
	return d
}
