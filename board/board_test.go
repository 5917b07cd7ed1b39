package board

import (
	"math/rand"
	"testing"

	"github.com/daystram/evalbar/position"
)

func sq(row, col int8) position.Square {
	return position.NewSquare(row, col)
}

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, _, err := NewBoard(WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func mustCommit(t *testing.T, b *Board, from, to position.Square) Move {
	t.Helper()
	key, index, ok := b.PieceAt(from)
	if !ok {
		t.Fatalf("no piece on %s", from)
	}
	if !b.IsPseudoLegal(key, from, to) {
		t.Fatalf("move %s%s rejected for %s\n%s", from, to, key, b.Dump())
	}
	return b.Commit(key, index, to)
}

func assertSquares(t *testing.T, got, want []position.Square) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected squares: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected squares: got=%v want=%v", got, want)
		}
	}
}

func TestStartingPosition(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	for _, s := range Sides {
		if b.IsInCheck(s) {
			t.Errorf("%s unexpectedly in check", s)
		}
		if b.IsCheckmate(s) {
			t.Errorf("%s unexpectedly checkmated", s)
		}
	}
	if st := b.State(SideWhite); st != StateRunning {
		t.Errorf("unexpected state: got=%s want=%s", st, StateRunning)
	}
	if n := len(b.GenerateMoves(SideWhite)); n != 20 {
		t.Errorf("unexpected move count: got=%d want=20", n)
	}
}

func TestLegalDestinations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		key  PieceKey
		from position.Square
		want []position.Square
	}{
		{
			name: "knight from start",
			fen:  DefaultStartingPositionFEN,
			key:  NewPieceKey(SideWhite, PieceKnight),
			from: sq(7, 1),
			want: []position.Square{sq(5, 0), sq(5, 2)},
		},
		{
			name: "pawn double step",
			fen:  DefaultStartingPositionFEN,
			key:  NewPieceKey(SideWhite, PiecePawn),
			from: sq(6, 4),
			want: []position.Square{sq(4, 4), sq(5, 4)},
		},
		{
			name: "black pawn double step",
			fen:  DefaultStartingPositionFEN,
			key:  NewPieceKey(SideBlack, PiecePawn),
			from: sq(1, 3),
			want: []position.Square{sq(2, 3), sq(3, 3)},
		},
		{
			name: "pawn blocked on intermediate square",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PiecePawn),
			from: sq(6, 4),
			want: []position.Square{},
		},
		{
			name: "pawn blocked on double step square",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PiecePawn),
			from: sq(6, 4),
			want: []position.Square{sq(5, 4)},
		},
		{
			name: "pawn captures diagonally only onto opponents",
			fen:  "4k3/8/8/8/8/3p1N2/4P3/4K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PiecePawn),
			from: sq(6, 4),
			want: []position.Square{sq(4, 4), sq(5, 3), sq(5, 4)},
		},
		{
			name: "rook stops at blockers",
			fen:  "4k3/8/8/8/1p1R2P1/8/8/4K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PieceRook),
			from: sq(4, 3),
			want: []position.Square{
				sq(0, 3), sq(1, 3), sq(2, 3), sq(3, 3),
				sq(4, 1), sq(4, 2), sq(4, 4), sq(4, 5),
				sq(5, 3), sq(6, 3), sq(7, 3),
			},
		},
		{
			name: "bishop in the corner",
			fen:  "4k3/8/8/8/8/8/1P6/B3K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PieceBishop),
			from: sq(7, 0),
			want: []position.Square{},
		},
		{
			name: "king steps",
			fen:  "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1",
			key:  NewPieceKey(SideWhite, PieceKing),
			from: sq(7, 4),
			want: []position.Square{sq(6, 4), sq(6, 5), sq(7, 3), sq(7, 5)},
		},
		{
			name: "empty origin",
			fen:  DefaultStartingPositionFEN,
			key:  NewPieceKey(SideWhite, PieceQueen),
			from: sq(4, 4),
			want: []position.Square{},
		},
		{
			name: "origin out of range",
			fen:  DefaultStartingPositionFEN,
			key:  NewPieceKey(SideWhite, PieceQueen),
			from: sq(8, 3),
			want: []position.Square{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			assertSquares(t, b.LegalDestinations(tt.key, tt.from), tt.want)
		})
	}
}

func TestPawnDoubleStepOnlyFromStartingRow(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	pawn := NewPieceKey(SideWhite, PiecePawn)
	assertSquares(t, b.LegalDestinations(pawn, sq(6, 4)), []position.Square{sq(4, 4), sq(5, 4)})

	mustCommit(t, b, sq(6, 4), sq(5, 4))
	assertSquares(t, b.LegalDestinations(pawn, sq(5, 4)), []position.Square{sq(4, 4)})
}

func TestDestinationsPartition(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "4k3/8/8/3p4/4N3/8/8/4K3 w - - 0 1")
	d := b.Destinations(NewPieceKey(SideWhite, PieceKnight), sq(4, 4))
	if len(d.Captures) != 0 {
		t.Errorf("unexpected captures: %v", d.Captures)
	}
	if len(d.Quiet) != 8 {
		t.Errorf("unexpected quiet moves: %v", d.Quiet)
	}

	b = mustBoard(t, "4k3/8/5p2/8/4N3/8/8/4K3 w - - 0 1")
	d = b.Destinations(NewPieceKey(SideWhite, PieceKnight), sq(4, 4))
	assertSquares(t, d.Captures, []position.Square{sq(2, 5)})
	if len(d.Quiet) != 7 {
		t.Errorf("unexpected quiet moves: %v", d.Quiet)
	}
}

func TestIsPseudoLegalRejectsOwnOccupied(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	rook := NewPieceKey(SideWhite, PieceRook)
	if b.IsPseudoLegal(rook, sq(7, 0), sq(6, 0)) {
		t.Error("rook moved onto own pawn")
	}
	if b.IsPseudoLegal(rook, sq(7, 0), sq(7, 0)) {
		t.Error("rook moved onto itself")
	}
	if b.IsPseudoLegal(rook, sq(7, 0), sq(-1, 0)) {
		t.Error("rook moved off the board")
	}
}

func TestUnknownPiecePanics(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown piece kind")
		}
	}()
	b.IsPseudoLegal(NewPieceKey(SideWhite, PieceUnknown), sq(7, 0), sq(5, 0))
}

func TestApplyOutOfRangePanics(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out of range destination")
		}
	}()
	b.Apply(NewPieceKey(SideWhite, PieceKnight), 0, sq(8, 0))
}

func TestFoolsMate(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	for _, mv := range [][2]position.Square{
		{sq(6, 5), sq(5, 5)},
		{sq(1, 4), sq(3, 4)},
		{sq(6, 6), sq(4, 6)},
	} {
		mustCommit(t, b, mv[0], mv[1])
		if b.IsInCheck(SideWhite) || b.IsInCheck(SideBlack) {
			t.Fatalf("unexpected check\n%s", b.Dump())
		}
	}
	mustCommit(t, b, sq(0, 3), sq(4, 7))

	if !b.IsInCheck(SideWhite) {
		t.Fatalf("expected White in check\n%s", b.Dump())
	}
	king, _ := b.KingSquare(SideWhite)
	if king != sq(7, 4) {
		t.Errorf("unexpected king square: got=%v want=%v", king, sq(7, 4))
	}
	if !b.IsCheckmate(SideWhite) {
		t.Fatalf("expected White checkmated\n%s", b.Dump())
	}
	if b.IsCheckmate(SideBlack) {
		t.Error("Black unexpectedly checkmated")
	}
	st := b.State(SideWhite)
	if st != StateCheckmateWhite {
		t.Errorf("unexpected state: got=%s want=%s", st, StateCheckmateWhite)
	}
	if w := st.Winner(); w != SideBlack {
		t.Errorf("unexpected winner: got=%s want=%s", w, SideBlack)
	}
	if n := len(b.GenerateMoves(SideWhite)); n != 0 {
		t.Errorf("unexpected escape moves: %d", n)
	}
}

func TestCheckmate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		fen       string
		side      Side
		wantCheck bool
		wantMate  bool
	}{
		{
			name:      "back rank mate",
			fen:       "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
			side:      SideBlack,
			wantCheck: true,
			wantMate:  true,
		},
		{
			name:      "checker can be captured",
			fen:       "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
			side:      SideWhite,
			wantCheck: true,
			wantMate:  false,
		},
		{
			name:      "check can be blocked",
			fen:       "R5k1/5ppp/8/8/8/8/8/2r3K1 b - - 0 1",
			side:      SideBlack,
			wantCheck: true,
			wantMate:  false,
		},
		{
			name:      "protected checker",
			fen:       "4k3/8/8/8/8/4r3/4q3/4K3 w - - 0 1",
			side:      SideWhite,
			wantCheck: true,
			wantMate:  true,
		},
		{
			name:      "stalemate is not mate",
			fen:       "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			side:      SideBlack,
			wantCheck: false,
			wantMate:  false,
		},
		{
			name:      "knight check",
			fen:       "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1",
			side:      SideWhite,
			wantCheck: true,
			wantMate:  false,
		},
		{
			name:      "pawn check",
			fen:       "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1",
			side:      SideWhite,
			wantCheck: true,
			wantMate:  false,
		},
		{
			name:      "pawns do not attack straight ahead",
			fen:       "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1",
			side:      SideWhite,
			wantCheck: false,
			wantMate:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			if got := b.IsInCheck(tt.side); got != tt.wantCheck {
				t.Errorf("unexpected check: got=%v want=%v\n%s", got, tt.wantCheck, b.Dump())
			}
			if got := b.IsCheckmate(tt.side); got != tt.wantMate {
				t.Errorf("unexpected checkmate: got=%v want=%v\n%s", got, tt.wantMate, b.Dump())
			}
		})
	}
}

func TestIsCheckmateDoesNotMutate(t *testing.T) {
	t.Parallel()
	for _, fen := range []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
		"r3k2r/8/8/8/8/8/4q3/R3K2R w KQkq - 0 1",
	} {
		b := mustBoard(t, fen)
		before := b.Clone()
		b.IsCheckmate(SideWhite)
		b.GenerateMoves(SideWhite)
		if !b.Equal(before) {
			t.Errorf("board mutated by checkmate search: %s\n%s", fen, b.Dump())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	bb := b.Clone()
	mustCommit(t, bb, sq(6, 4), sq(4, 4))
	mustCommit(t, bb, sq(7, 4), sq(6, 4))
	if b.Equal(bb) {
		t.Fatal("clone shares state with original")
	}
	if got := b.Squares(NewPieceKey(SideWhite, PiecePawn))[4]; got != sq(6, 4) {
		t.Errorf("original pawn moved: %v", got)
	}
	if b.CastleRights(SideWhite).KingMoved {
		t.Error("original castle rights changed")
	}
}

func TestCastling(t *testing.T) {
	t.Parallel()
	king := NewPieceKey(SideWhite, PieceKing)
	rook := NewPieceKey(SideWhite, PieceRook)

	t.Run("kingside", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		if !b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Fatal("expected kingside castle to be allowed")
		}
		mv := mustCommit(t, b, sq(7, 4), sq(7, 6))
		if !mv.IsCastle || mv.CastleSide != CastleSideKing {
			t.Errorf("unexpected move: %+v", mv)
		}
		assertSquares(t, b.Squares(king), []position.Square{sq(7, 6)})
		assertSquares(t, b.Squares(rook), []position.Square{sq(7, 0), sq(7, 5)})
		cr := b.CastleRights(SideWhite)
		if !cr.KingMoved || !cr.RookMoved[CastleSideKing] {
			t.Errorf("unexpected castle rights: %+v", cr)
		}
		if cr.RookMoved[CastleSideQueen] {
			t.Errorf("queenside rook unexpectedly flagged: %+v", cr)
		}
		if mv.String() != "0-0" {
			t.Errorf("unexpected notation: %s", mv)
		}
	})

	t.Run("queenside", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
		bk := NewPieceKey(SideBlack, PieceKing)
		if !b.IsPseudoLegal(bk, sq(0, 4), sq(0, 2)) {
			t.Fatal("expected queenside castle to be allowed")
		}
		mustCommit(t, b, sq(0, 4), sq(0, 2))
		assertSquares(t, b.Squares(NewPieceKey(SideBlack, PieceRook)), []position.Square{sq(0, 3), sq(0, 7)})
		if !b.CastleRights(SideBlack).RookMoved[CastleSideQueen] {
			t.Error("queenside rook not flagged")
		}
	})

	t.Run("blocked path", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1")
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castled through a knight on g1")
		}
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 2)) {
			t.Error("castled through a knight on b1")
		}
		b = mustBoard(t, DefaultStartingPositionFEN)
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castled from the starting position")
		}
	})

	t.Run("rook moved", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		mustCommit(t, b, sq(7, 7), sq(6, 7))
		if cr := b.CastleRights(SideWhite); cr.KingMoved || cr.RookMoved != [2]bool{true, true} {
			t.Errorf("unexpected castle rights: %+v", cr)
		}
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castled with a rook that moved")
		}
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 2)) {
			t.Error("castled queenside after the kingside rook moved")
		}
		if !b.CastleRights(SideBlack).IsAllowed(CastleSideQueen) {
			t.Error("white rook move changed black's rights")
		}
	})

	t.Run("rook moved away from the corner row", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/R7/4K2R w Kkq - 0 1")
		mustCommit(t, b, sq(6, 0), sq(5, 0))
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castled kingside after a rook moved")
		}
	})

	t.Run("king moved", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		mustCommit(t, b, sq(7, 4), sq(7, 3))
		mustCommit(t, b, sq(7, 3), sq(7, 4))
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) || b.IsPseudoLegal(king, sq(7, 4), sq(7, 2)) {
			t.Error("castled with a king that moved")
		}
	})

	t.Run("no rights", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
		if b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castled without rights")
		}
	})

	t.Run("attacked squares are not considered", func(t *testing.T) {
		t.Parallel()
		b := mustBoard(t, "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1")
		if !b.IsInCheck(SideWhite) {
			t.Fatal("expected White in check")
		}
		if !b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castling out of check rejected")
		}
		b = mustBoard(t, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
		if !b.IsPseudoLegal(king, sq(7, 4), sq(7, 6)) {
			t.Error("castling through an attacked square rejected")
		}
	})
}

func TestPieceCountInvariant(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 4; game++ {
		b := mustBoard(t, DefaultStartingPositionFEN)
		turn := SideWhite
		for ply := 0; ply < 80; ply++ {
			mvs := b.GenerateMoves(turn)
			if len(mvs) == 0 {
				break
			}
			mv := mvs[rng.Intn(len(mvs))]
			before := b.Count()
			played := b.Commit(mv.Piece, mv.Index, mv.To)
			want := before
			if played.IsCapture() {
				want--
			}
			if got := b.Count(); got != want {
				t.Fatalf("unexpected piece count after %s: got=%d want=%d\n%s", played, got, want, b.Dump())
			}
			for _, s := range Sides {
				if len(b.Squares(NewPieceKey(s, PieceKing))) != 1 {
					t.Fatalf("king missing for %s\n%s", s, b.Dump())
				}
			}
			turn = turn.Opposite()
		}
	}
}

func TestNoTwoPiecesShareASquare(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(11))
	b := mustBoard(t, DefaultStartingPositionFEN)
	turn := SideWhite
	for ply := 0; ply < 60; ply++ {
		mvs := b.GenerateMoves(turn)
		if len(mvs) == 0 {
			break
		}
		mv := mvs[rng.Intn(len(mvs))]
		b.Commit(mv.Piece, mv.Index, mv.To)
		seen := make(map[position.Square]bool, 32)
		for _, s := range Sides {
			for _, p := range Pieces {
				for _, pos := range b.Squares(NewPieceKey(s, p)) {
					if seen[pos] {
						t.Fatalf("square %s occupied twice\n%s", pos, b.Dump())
					}
					seen[pos] = true
				}
			}
		}
		turn = turn.Opposite()
	}
}

func TestMoveNotation(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "4k3/8/8/3p4/4P3/5N2/8/4K3 w - - 0 1")
	mv := mustCommit(t, b, sq(4, 4), sq(3, 3))
	if got := mv.Algebra(); got != "exd5" {
		t.Errorf("unexpected notation: got=%s want=exd5", got)
	}
	if got := mv.UCI(); got != "e4d5" {
		t.Errorf("unexpected uci: got=%s want=e4d5", got)
	}
	mv = mustCommit(t, b, sq(5, 5), sq(3, 4))
	if got := mv.Algebra(); got != "Ne5" {
		t.Errorf("unexpected notation: got=%s want=Ne5", got)
	}
}
