package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/engine"
	"github.com/daystram/evalbar/game"
)

// step plays random moves from fen, drawing the board and evaluation after
// each one.
func step(fen string, seed uint64, limit int) error {
	log.Println("============ step")
	var (
		timesMove  []time.Duration
		timesState []time.Duration
	)
	g, err := game.New(board.WithFEN(fen))
	if err != nil {
		return err
	}
	rng := game.NewPseudoRand(seed)
stepLoop:
	for ply := 0; ply < limit; ply++ {
		t1 := time.Now()
		mv, err := g.RandomMove(rng)
		t2 := time.Now()
		if errors.Is(err, game.ErrNoMoves) || errors.Is(err, game.ErrGameOver) {
			fmt.Println("no moves left for", g.Turn())
			break
		}
		if err != nil {
			return err
		}
		timesMove = append(timesMove, t2.Sub(t1))

		t1 = time.Now()
		st := g.State()
		b := g.Board()
		t2 = time.Now()
		timesState = append(timesState, t2.Sub(t1))

		var h board.Highlights
		if sq, ok := g.CheckSquare(); ok {
			h.Check = &sq
		}
		fmt.Printf("\n===== [#%d] %s: %s\n", ply/2+1, mv.Piece.Side, mv)
		fmt.Println(b.Draw(h))
		fmt.Println(engine.DrawBar(g.Score(), 40), engine.FormatScore(g.Score()))
		fmt.Println(g.FEN())
		switch {
		case !st.IsRunning():
			break stepLoop
		case st.IsCheck():
			<-time.After(100 * time.Millisecond)
			fallthrough
		default:
			<-time.After(10 * time.Millisecond)
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(g.State(), g.Winner())
	fmt.Println("move: ", avg(timesMove))
	fmt.Println("state:", avg(timesState))
	return nil
}
