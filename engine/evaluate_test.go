package engine

import (
	"testing"

	"github.com/daystram/evalbar/board"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want int32
	}{
		{
			name: "starting position",
			fen:  board.DefaultStartingPositionFEN,
			want: 0,
		},
		{
			name: "bare kings",
			fen:  "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			want: 0,
		},
		{
			name: "centralised knight against centre pawn",
			fen:  "4k3/8/8/3p4/4N3/8/8/6K1 w - - 0 1",
			want: 250,
		},
		{
			name: "wandering king",
			fen:  "4k3/8/8/8/8/4K3/8/8 w - - 0 1",
			want: -10,
		},
		{
			name: "mirrored kings",
			fen:  "8/8/4k3/8/8/4K3/8/8 w - - 0 1",
			want: 0,
		},
		{
			name: "missing queen",
			fen:  "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			want: 900 - 5,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _, err := board.NewBoard(board.WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := Evaluate(b); got != tt.want {
				t.Errorf("unexpected score: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsSymmetric(t *testing.T) {
	t.Parallel()
	white, _, err := board.NewBoard(board.WithFEN("4k3/8/8/8/4P3/5N2/8/4K3 w - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	black, _, err := board.NewBoard(board.WithFEN("4k3/8/5n2/4p3/8/8/8/4K3 w - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if w, b := Evaluate(white), Evaluate(black); w != -b || w <= 0 {
		t.Errorf("unexpected scores: white=%d black=%d", w, b)
	}
}

func TestEvaluateDoesNotMutate(t *testing.T) {
	t.Parallel()
	b, _, err := board.NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	before := b.Clone()
	first, second := Evaluate(b), Evaluate(b)
	if first != second {
		t.Errorf("evaluation not deterministic: %d != %d", first, second)
	}
	if !b.Equal(before) {
		t.Error("board mutated by evaluation")
	}
}

func TestBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score     int32
		length    int
		wantWhite int
		wantBlack int
	}{
		{score: 0, length: 400, wantWhite: 200, wantBlack: 200},
		{score: 1000, length: 400, wantWhite: 300, wantBlack: 100},
		{score: -1000, length: 400, wantWhite: 100, wantBlack: 300},
		{score: 5000, length: 400, wantWhite: 400, wantBlack: 0},
		{score: -5000, length: 400, wantWhite: 0, wantBlack: 400},
	}
	for _, tt := range tests {
		white, black := Bar(tt.score, tt.length)
		if white != tt.wantWhite || black != tt.wantBlack {
			t.Errorf("unexpected bar for %d: got=%d/%d want=%d/%d", tt.score, white, black, tt.wantWhite, tt.wantBlack)
		}
	}
	if got := FormatScore(-125); got != "-1.25" {
		t.Errorf("unexpected formatted score: %s", got)
	}
}
