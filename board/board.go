package board

import (
	"errors"
	"fmt"

	"github.com/daystram/evalbar/position"
)

var (
	ErrInvalidFEN = errors.New("invalid fen")
)

// Board holds the squares occupied by every piece class plus castling flags.
// Each class keeps its squares in insertion order.
type Board struct {
	pieces       [2 + 1][6 + 1][]position.Square
	castleRights [2 + 1]CastleRights
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard returns a board in the standard starting setup, or the one given by
// WithFEN, along with the side to move.
func NewBoard(opts ...BoardOption) (*Board, Side, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	b := &Board{}
	turn, err := UnmarshalFEN(cfg.fen, b)
	if err != nil {
		return nil, SideUnknown, err
	}
	return b, turn, nil
}

func (b *Board) Squares(key PieceKey) []position.Square {
	return b.pieces[key.Side][key.Piece]
}

func (b *Board) CastleRights(s Side) CastleRights {
	return b.castleRights[s]
}

// PieceAt returns the class and per-class index of the piece on sq.
func (b *Board) PieceAt(sq position.Square) (PieceKey, int, bool) {
	for _, s := range Sides {
		for _, p := range Pieces {
			for i, pos := range b.pieces[s][p] {
				if pos == sq {
					return PieceKey{Side: s, Piece: p}, i, true
				}
			}
		}
	}
	return PieceKey{}, 0, false
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	var n int
	for _, s := range Sides {
		for _, p := range Pieces {
			n += len(b.pieces[s][p])
		}
	}
	return n
}

func (b *Board) indexOf(key PieceKey, sq position.Square) (int, bool) {
	for i, pos := range b.pieces[key.Side][key.Piece] {
		if pos == sq {
			return i, true
		}
	}
	return 0, false
}

func (b *Board) isOccupied(sq position.Square) bool {
	return b.isOccupiedBy(SideWhite, sq) || b.isOccupiedBy(SideBlack, sq)
}

func (b *Board) isOccupiedBy(s Side, sq position.Square) bool {
	for _, p := range Pieces {
		if _, ok := b.indexOf(PieceKey{Side: s, Piece: p}, sq); ok {
			return true
		}
	}
	return false
}

func (b *Board) place(key PieceKey, sq position.Square) {
	b.pieces[key.Side][key.Piece] = append(b.pieces[key.Side][key.Piece], sq)
}

// capture removes the first piece of side s found on sq.
func (b *Board) capture(s Side, sq position.Square) Piece {
	for _, p := range Pieces {
		key := PieceKey{Side: s, Piece: p}
		if i, ok := b.indexOf(key, sq); ok {
			sqs := b.pieces[s][p]
			b.pieces[s][p] = append(sqs[:i], sqs[i+1:]...)
			return p
		}
	}
	return PieceUnknown
}

// Apply relocates the index-th piece of key to the given square, removing any
// opposing piece standing there, and updates castling flags for king and rook
// moves. The move must have been validated by the caller.
func (b *Board) Apply(key PieceKey, index int, to position.Square) {
	if !to.Valid() {
		panic(fmt.Sprintf("board: destination %#v out of range", to))
	}
	mustKnownPiece(key.Piece)

	b.capture(key.Side.Opposite(), to)
	b.pieces[key.Side][key.Piece][index] = to

	switch key.Piece {
	case PieceKing:
		b.castleRights[key.Side].KingMoved = true
	case PieceRook:
		// any rook move gives up castling on both wings
		b.castleRights[key.Side].RookMoved = [2]bool{true, true}
	}
}

// Commit applies a validated move and, when the king travels two columns,
// relocates the castling rook as well. The returned Move describes what was
// played.
func (b *Board) Commit(key PieceKey, index int, to position.Square) Move {
	from := b.pieces[key.Side][key.Piece][index]
	mv := Move{
		From:  from,
		To:    to,
		Piece: key,
		Index: index,
	}
	if other, _, ok := b.PieceAt(to); ok && other.Side != key.Side {
		mv.Captured = other.Piece
	}

	if key.Piece == PieceKing && from.Row == to.Row && abs(to.Col-from.Col) == 2 {
		if cs, ok := castleSideFromKingTarget(to.Col); ok {
			mv.IsCastle, mv.CastleSide = true, cs
			rook := PieceKey{Side: key.Side, Piece: PieceRook}
			// the rook may be gone already; rights only track whether it moved
			if i, ok := b.indexOf(rook, position.NewSquare(from.Row, cs.RookCol())); ok {
				b.pieces[key.Side][PieceRook][i] = position.NewSquare(from.Row, cs.RookTargetCol())
			}
			b.castleRights[key.Side].RookMoved[cs] = true
		}
	}

	b.Apply(key, index, to)
	return mv
}

// Clone returns a deep copy that shares no slices with b.
func (b *Board) Clone() *Board {
	bb := &Board{
		castleRights: b.castleRights,
	}
	for _, s := range Sides {
		for _, p := range Pieces {
			if sqs := b.pieces[s][p]; sqs != nil {
				bb.pieces[s][p] = append(make([]position.Square, 0, len(sqs)), sqs...)
			}
		}
	}
	return bb
}

// Equal reports whether both boards hold the same squares in the same order
// and the same castling flags.
func (b *Board) Equal(other *Board) bool {
	if b.castleRights != other.castleRights {
		return false
	}
	for _, s := range Sides {
		for _, p := range Pieces {
			x, y := b.pieces[s][p], other.pieces[s][p]
			if len(x) != len(y) {
				return false
			}
			for i := range x {
				if x[i] != y[i] {
					return false
				}
			}
		}
	}
	return true
}
