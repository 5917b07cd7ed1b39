package game

import (
	"errors"
	"fmt"

	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/engine"
	"github.com/daystram/evalbar/position"
)

var (
	ErrGameOver    = errors.New("game over")
	ErrNoPiece     = errors.New("no piece")
	ErrNotYourTurn = errors.New("not your turn")
	ErrInvalidMove = errors.New("invalid move")
	ErrNoMoves     = errors.New("no moves available")
)

// Game is a single session: a board, the side to move and the outcome so far.
// It is not safe for concurrent use.
type Game struct {
	board    *board.Board
	turn     board.Side
	state    board.State
	score    int32
	lastMove *board.Move
	plies    int
}

func New(opts ...board.BoardOption) (*Game, error) {
	b, turn, err := board.NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board: b,
		turn:  turn,
	}
	g.refresh()
	return g, nil
}

func (g *Game) refresh() {
	g.state = g.board.State(g.turn)
	g.score = engine.Evaluate(g.board)
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

func (g *Game) Turn() board.Side {
	return g.turn
}

func (g *Game) State() board.State {
	return g.state
}

func (g *Game) Score() int32 {
	return g.score
}

func (g *Game) Winner() board.Side {
	return g.state.Winner()
}

func (g *Game) Plies() int {
	return g.plies
}

func (g *Game) LastMove() (board.Move, bool) {
	if g.lastMove == nil {
		return board.Move{}, false
	}
	return *g.lastMove, true
}

func (g *Game) FEN() string {
	fen, err := board.MarshalFEN(g.board, g.turn)
	if err != nil {
		// the board was built from a valid FEN and only changed by legal moves
		panic(err)
	}
	return fen
}

// CheckSquare returns the square of the king in check, if any.
func (g *Game) CheckSquare() (position.Square, bool) {
	if !g.state.IsCheck() && !g.state.IsCheckmate() {
		return position.Square{}, false
	}
	return g.board.KingSquare(g.turn)
}

func (g *Game) owned(from position.Square) (board.PieceKey, error) {
	if !g.state.IsRunning() {
		return board.PieceKey{}, ErrGameOver
	}
	key, _, ok := g.board.PieceAt(from)
	if !ok {
		return board.PieceKey{}, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if key.Side != g.turn {
		return board.PieceKey{}, fmt.Errorf("%w: %s belongs to %s", ErrNotYourTurn, from, key.Side)
	}
	return key, nil
}

// Select returns where the piece on from may go. Moves that would leave the
// mover's king in check are left out.
func (g *Game) Select(from position.Square) (board.Destinations, error) {
	key, err := g.owned(from)
	if err != nil {
		return board.Destinations{}, err
	}
	return g.board.SafeDestinations(key, from), nil
}

// Move plays from -> to for the side to move and hands the turn over.
func (g *Game) Move(from, to position.Square) (board.Move, error) {
	key, err := g.owned(from)
	if err != nil {
		return board.Move{}, err
	}
	if !g.board.IsLegal(key, from, to) {
		return board.Move{}, fmt.Errorf("%w: %s %s%s", ErrInvalidMove, key, from, to)
	}

	_, i, _ := g.board.PieceAt(from)
	mv := g.board.Commit(key, i, to)

	g.turn = g.turn.Opposite()
	g.plies++
	g.refresh()
	mv.IsCheck = g.state.IsCheck() || g.state.IsCheckmate()
	g.lastMove = &mv
	return mv, nil
}

// Rng is the source RandomMove draws from.
type Rng interface {
	Intn(n int) int
}

// RandomMove plays a uniformly chosen legal move for the side to move.
func (g *Game) RandomMove(rng Rng) (board.Move, error) {
	if !g.state.IsRunning() {
		return board.Move{}, ErrGameOver
	}
	mvs := g.board.GenerateMoves(g.turn)
	if len(mvs) == 0 {
		return board.Move{}, fmt.Errorf("%w: %s", ErrNoMoves, g.turn)
	}
	mv := mvs[rng.Intn(len(mvs))]
	return g.Move(mv.From, mv.To)
}
