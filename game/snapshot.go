package game

import (
	"github.com/daystram/evalbar/engine"
	"github.com/daystram/evalbar/position"
)

type PieceView struct {
	Side   string `json:"side"`
	Piece  string `json:"piece"`
	Square string `json:"square"`
	Symbol string `json:"symbol"`
}

// Snapshot is a serialisable view of a game, enough for a front end to redraw
// the board and the evaluation bar.
type Snapshot struct {
	FEN       string      `json:"fen"`
	Turn      string      `json:"turn"`
	State     string      `json:"state"`
	Check     string      `json:"check,omitempty"`
	Checkmate bool        `json:"checkmate"`
	Winner    string      `json:"winner,omitempty"`
	Score     int32       `json:"score"`
	Pawns     string      `json:"pawns"`
	LastMove  string      `json:"lastMove,omitempty"`
	Plies     int         `json:"plies"`
	Pieces    []PieceView `json:"pieces"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		FEN:       g.FEN(),
		Turn:      g.turn.String(),
		State:     g.state.String(),
		Checkmate: g.state.IsCheckmate(),
		Winner:    g.state.Winner().String(),
		Score:     g.score,
		Pawns:     engine.FormatScore(g.score),
		Plies:     g.plies,
	}
	if sq, ok := g.CheckSquare(); ok {
		snap.Check = sq.Notation()
	}
	if mv, ok := g.LastMove(); ok {
		snap.LastMove = mv.UCI()
	}
	for _, sq := range position.All() {
		key, _, ok := g.board.PieceAt(sq)
		if !ok {
			continue
		}
		snap.Pieces = append(snap.Pieces, PieceView{
			Side:   key.Side.String(),
			Piece:  key.Piece.Name(),
			Square: sq.Notation(),
			Symbol: key.Piece.SymbolUnicode(key.Side),
		})
	}
	return snap
}
