package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/engine"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", turn)
	fmt.Println(b.Dump())
	fmt.Println(b.Draw(board.Highlights{}))
	fmt.Println(b.State(turn))
	fmt.Println("eval:", engine.FormatScore(engine.Evaluate(b)))
	dumpMoves(b, turn)

	if draw {
		for _, mv := range b.GenerateMoves(turn) {
			bb := b.Clone()
			bb.Commit(mv.Piece, mv.Index, mv.To)
			fen, err := board.MarshalFEN(bb, turn.Opposite())
			if err != nil {
				return err
			}
			fmt.Println(mv)
			fmt.Println(bb.Draw(board.Highlights{}))
			fmt.Println(fen)
		}
	}
	return nil
}

func dumpMoves(b *board.Board, turn board.Side) {
	mvs := b.GenerateMoves(turn)
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s => %s (cap=%s) (cas=%v) (chk=%v)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.Piece, mv.From, mv.To, mv.Captured.Name(), mv.IsCastle, mv.IsCheck)
	}
}
