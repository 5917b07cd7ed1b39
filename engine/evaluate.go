package engine

import (
	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/position"
)

const (
	// scoreMidgameMaterial is the material total above which a side is
	// considered to be in the middlegame. The king's own value is counted.
	scoreMidgameMaterial int32 = 5000
	scoreCenterBonus     int32 = 10
	scoreKingSafety      int32 = 5
)

var (
	scoreMaterial = [6 + 1]int32{
		board.PiecePawn:   100,
		board.PieceKnight: 320,
		board.PieceBishop: 330,
		board.PieceRook:   500,
		board.PieceQueen:  900,
		board.PieceKing:   20000,
	}

	// PST table taken from https://www.chessprogramming.org/Simplified_Evaluation_Function
	// Rows follow the board: row 0 is rank 8 from White's point of view.
	scorePiecePosition = [6 + 1][8][8]int32{
		board.PiecePawn: {
			{0, 0, 0, 0, 0, 0, 0, 0},
			{50, 50, 50, 50, 50, 50, 50, 50},
			{10, 10, 20, 30, 30, 20, 10, 10},
			{5, 5, 10, 25, 25, 10, 5, 5},
			{0, 0, 0, 20, 20, 0, 0, 0},
			{5, -5, -10, 0, 0, -10, -5, 5},
			{5, 10, 10, -20, -20, 10, 10, 5},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		board.PieceKnight: {
			{-50, -40, -30, -30, -30, -30, -40, -50},
			{-40, -20, 0, 0, 0, 0, -20, -40},
			{-30, 0, 10, 15, 15, 10, 0, -30},
			{-30, 5, 15, 20, 20, 15, 5, -30},
			{-30, 0, 15, 20, 20, 15, 0, -30},
			{-30, 5, 10, 15, 15, 10, 5, -30},
			{-40, -20, 0, 5, 5, 0, -20, -40},
			{-50, -40, -30, -30, -30, -30, -40, -50},
		},
		board.PieceBishop: {
			{-20, -10, -10, -10, -10, -10, -10, -20},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-10, 0, 5, 10, 10, 5, 0, -10},
			{-10, 5, 5, 10, 10, 5, 5, -10},
			{-10, 0, 10, 10, 10, 10, 0, -10},
			{-10, 10, 10, 10, 10, 10, 10, -10},
			{-10, 5, 0, 0, 0, 0, 5, -10},
			{-20, -10, -10, -10, -10, -10, -10, -20},
		},
		board.PieceRook: {
			{0, 0, 0, 0, 0, 0, 0, 0},
			{5, 10, 10, 10, 10, 10, 10, 5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{0, 0, 0, 5, 5, 0, 0, 0},
		},
		board.PieceQueen: {
			{-20, -10, -10, -5, -5, -10, -10, -20},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-10, 0, 5, 5, 5, 5, 0, -10},
			{-5, 0, 5, 5, 5, 5, 0, -5},
			{0, 0, 5, 5, 5, 5, 0, -5},
			{-10, 5, 5, 5, 5, 5, 0, -10},
			{-10, 0, 5, 0, 0, 0, 0, -10},
			{-20, -10, -10, -5, -5, -10, -10, -20},
		},
		board.PieceKing: {
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-20, -30, -30, -40, -40, -30, -30, -20},
			{-10, -20, -20, -20, -20, -20, -20, -10},
			{20, 20, 0, 0, 0, 0, 20, 20},
			{20, 30, 10, 0, 0, 10, 30, 20},
		},
	}
	scoreKingPositionEndgame = [8][8]int32{
		{-50, -40, -30, -20, -20, -30, -40, -50},
		{-30, -20, -10, 0, 0, -10, -20, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -30, 0, 0, 0, 0, -30, -30},
		{-50, -30, -30, -30, -30, -30, -30, -50},
	}

	centerSquares = [4]position.Square{
		position.NewSquare(3, 3),
		position.NewSquare(3, 4),
		position.NewSquare(4, 3),
		position.NewSquare(4, 4),
	}
)

// Evaluate returns the static score of b in centipawns. The score is positive
// when White is better.
func Evaluate(b *board.Board) int32 {
	var score, material [2 + 1]int32
	for _, s := range board.Sides {
		for _, p := range board.Pieces {
			for _, sq := range b.Squares(board.NewPieceKey(s, p)) {
				material[s] += scoreMaterial[p]
				score[s] += scoreMaterial[p]

				row := pstRow(s, sq)
				switch {
				case p != board.PieceKing:
					score[s] += scorePiecePosition[p][row][sq.Col]
				case material[s] > scoreMidgameMaterial:
					score[s] += scorePiecePosition[board.PieceKing][row][sq.Col]
				default:
					score[s] += scoreKingPositionEndgame[row][sq.Col]
				}

				if isCenter(sq) {
					score[s] += scoreCenterBonus
				}
			}
		}
	}

	// Keep the King home while there is material on the board
	for _, s := range board.Sides {
		king, ok := b.KingSquare(s)
		if !ok || material[s] <= scoreMidgameMaterial {
			continue
		}
		distance := int32(king.Row)
		if s == board.SideWhite {
			distance = int32(7 - king.Row)
		}
		score[s] += scoreKingSafety * distance
	}

	return score[board.SideWhite] - score[board.SideBlack]
}

// pstRow maps a square onto the table row for side s; Black reads the tables
// mirrored across the horizontal midline.
func pstRow(s board.Side, sq position.Square) int8 {
	if s == board.SideBlack {
		return 7 - sq.Row
	}
	return sq.Row
}

func isCenter(sq position.Square) bool {
	for _, c := range centerSquares {
		if c == sq {
			return true
		}
	}
	return false
}
