package board

import (
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/daystram/evalbar/position"
)

// TestAgainstReference replays short games through notnil/chess and compares
// placement, move counts, check and mate after every ply. The games avoid the
// rules this board deliberately leaves out.
func TestAgainstReference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		moves    string
		wantMate bool
	}{
		{
			name:     "fool's mate",
			moves:    "f2f3 e7e5 g2g4 d8h4",
			wantMate: true,
		},
		{
			name:     "scholar's mate",
			moves:    "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6 h5f7",
			wantMate: true,
		},
		{
			name:  "italian castle",
			moves: "e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 e1g1 g8f6 d2d3 d7d6 c1g5 c8g4",
		},
		{
			name:  "queen trade",
			moves: "d2d4 e7e5 d4e5 d8g5 d1d7 e8d7 c1g5 f7f6",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ref := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
			b := mustBoard(t, DefaultStartingPositionFEN)
			turn := SideWhite

			for _, uci := range strings.Fields(tt.moves) {
				if got, want := len(b.GenerateMoves(turn)), len(ref.ValidMoves()); got != want {
					t.Fatalf("unexpected move count before %s: got=%d want=%d\n%s", uci, got, want, b.Dump())
				}

				from, err := position.NewSquareFromNotation(uci[:2])
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				to, err := position.NewSquareFromNotation(uci[2:])
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				mustCommit(t, b, from, to)
				if err := ref.MoveStr(uci); err != nil {
					t.Fatalf("reference rejected %s: %v", uci, err)
				}
				turn = turn.Opposite()

				fen, err := MarshalFEN(b, turn)
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if got, want := strings.Fields(fen)[0], ref.Position().Board().String(); got != want {
					t.Fatalf("unexpected placement after %s: got=%s want=%s", uci, got, want)
				}

				refMoves := ref.Moves()
				if got, want := b.IsInCheck(turn), refMoves[len(refMoves)-1].HasTag(chess.Check); got != want {
					t.Fatalf("unexpected check after %s: got=%v want=%v", uci, got, want)
				}
			}

			if got, want := b.IsCheckmate(turn), ref.Method() == chess.Checkmate; got != want || got != tt.wantMate {
				t.Errorf("unexpected checkmate: got=%v reference=%v want=%v", got, want, tt.wantMate)
			}
		})
	}
}
