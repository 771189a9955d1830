package board

import "testing"

func TestLegalMovesFrom(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		sq   Square
		want int
	}{
		{E2, 2}, // e3, e4
		{G1, 2}, // Nf3, Nh3
		{E1, 0}, // boxed in
		{D8, 0}, // enemy piece
		{E4, 0}, // empty square
	}

	for _, tc := range tests {
		if got := pos.LegalMovesFrom(tc.sq).Len(); got != tc.want {
			t.Errorf("LegalMovesFrom(%s) = %d moves, want %d", tc.sq, got, tc.want)
		}
	}
}

func castleKinds(ml *MoveList) map[MoveKind]bool {
	kinds := make(map[MoveKind]bool)
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).IsCastle() {
			kinds[ml.Get(i).Kind] = true
		}
	}
	return kinds
}

func TestCastlingGeneration(t *testing.T) {
	// Rights present, path empty and safe: both castles available
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	kinds := castleKinds(pos.GenerateLegalMoves())
	if !kinds[KindCastleKingSide] || !kinds[KindCastleQueenSide] {
		t.Error("both castles should be generated")
	}

	// No rights: nothing, even though the squares are free
	pos = mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1")
	if len(castleKinds(pos.GenerateLegalMoves())) != 0 {
		t.Error("no castle should be generated without rights")
	}

	// Starting position: squares between are occupied
	pos = NewPosition()
	if len(castleKinds(pos.GenerateLegalMoves())) != 0 {
		t.Error("no castle should be generated through occupied squares")
	}
}

func TestCastlingThroughAttackedSquare(t *testing.T) {
	// Black rook on f3 covers f1: kingside is out, queenside stays
	pos := mustParse(t, "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1")
	kinds := castleKinds(pos.GenerateLegalMoves())
	if kinds[KindCastleKingSide] {
		t.Error("kingside castle crosses an attacked square")
	}
	if !kinds[KindCastleQueenSide] {
		t.Error("queenside castle should still be available")
	}
}

func TestNoCastlingOutOfCheck(t *testing.T) {
	// Black rook on e4 checks the king
	pos := mustParse(t, "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1")
	if !pos.InCheck() {
		t.Fatal("position should be check")
	}
	if len(castleKinds(pos.GenerateLegalMoves())) != 0 {
		t.Error("castling out of check must not be generated")
	}
}

func TestRequiresPromotion(t *testing.T) {
	pos := mustParse(t, "8/P7/8/8/8/8/7k/K7 w - - 0 50")

	if !pos.RequiresPromotion(A7, A8) {
		t.Error("a7a8 should require a promotion piece")
	}
	if !pos.RequiresPromotion(A7, B8) {
		t.Error("a7b8 targets the back rank and should require promotion")
	}
	if pos.RequiresPromotion(A1, A2) {
		t.Error("king moves never require promotion")
	}

	black := mustParse(t, "k7/8/8/8/8/8/p6K/8 b - - 0 1")
	if !black.RequiresPromotion(A2, A1) {
		t.Error("a2a1 should require a promotion piece for Black")
	}
}

// TestLegalMovesNeverLeaveKingInCheck applies every generated move of
// several positions and verifies the mover's king is safe afterward.
func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}

	for _, fen := range fens {
		pos := mustParse(t, fen)
		us := pos.SideToMove

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			next := pos.Apply(m)
			ksq, ok := next.FindKing(us)
			if !ok {
				t.Fatalf("%s: king vanished after %s", fen, m)
			}
			if next.IsSquareAttacked(ksq, us.Other()) {
				t.Errorf("%s: move %s leaves the king attacked", fen, m)
			}
		}
	}
}

func TestAttackers(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/3r4/2P1P3/8/8/4K3 w - - 0 1")

	attackers := pos.Attackers(D5, White)
	if len(attackers) != 2 {
		t.Fatalf("Attackers(d5, White) = %v, want both pawns", attackers)
	}
	seen := map[Square]bool{attackers[0]: true, attackers[1]: true}
	if !seen[C4] || !seen[E4] {
		t.Errorf("Attackers(d5, White) = %v, want c4 and e4", attackers)
	}

	if !pos.IsSquareAttacked(D5, White) {
		t.Error("d5 should be attacked by White")
	}
	if len(pos.Attackers(D5, Black)) != 0 {
		t.Error("no black piece attacks d5")
	}
}
