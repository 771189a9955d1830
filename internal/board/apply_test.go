package board

import "testing"

// findMove returns the legal move with the given UCI form, failing the
// test if it is not legal in the position.
func findMove(t *testing.T, pos *Position, uci string) Move {
	t.Helper()
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).String() == uci {
			return moves.Get(i)
		}
	}
	t.Fatalf("no legal move %s in %s", uci, pos.ToFEN())
	return NoMove
}

func TestApplyDerivedFields(t *testing.T) {
	pos := NewPosition()

	next := pos.Apply(findMove(t, &pos, "e2e4"))
	if next.SideToMove != Black {
		t.Error("side to move should flip to Black")
	}
	if next.EnPassant != E3 {
		t.Errorf("EnPassant = %v, want e3 after double push", next.EnPassant)
	}
	if next.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d, want 0 after pawn move", next.HalfMoveClock)
	}
	if next.FullMoveNumber != 1 {
		t.Errorf("FullMoveNumber = %d, want 1 after White's move", next.FullMoveNumber)
	}
	if next.CastlingRights != AllCastling {
		t.Error("castling rights should be untouched")
	}

	after := next.Apply(findMove(t, &next, "g8f6"))
	if after.EnPassant != NoSquare {
		t.Error("en passant target should clear after one ply")
	}
	if after.HalfMoveClock != 1 {
		t.Errorf("HalfMoveClock = %d, want 1 after quiet knight move", after.HalfMoveClock)
	}
	if after.FullMoveNumber != 2 {
		t.Errorf("FullMoveNumber = %d, want 2 after Black's move", after.FullMoveNumber)
	}
}

func TestApplyValueSemantics(t *testing.T) {
	pos := NewPosition()
	before := pos.ToFEN()

	_ = pos.Apply(findMove(t, &pos, "e2e4"))

	if got := pos.ToFEN(); got != before {
		t.Errorf("Apply mutated its receiver: %q -> %q", before, got)
	}
}

func TestApplyEnPassant(t *testing.T) {
	// Black pawn on d4; White's double push e2e4 passes through the
	// attacked square e3.
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	afterPush := pos.Apply(findMove(t, &pos, "e2e4"))
	if afterPush.EnPassant != E3 {
		t.Fatalf("EnPassant = %v, want e3", afterPush.EnPassant)
	}

	ep := findMove(t, &afterPush, "d4e3")
	if ep.Kind != KindEnPassant {
		t.Fatalf("d4e3 kind = %v, want en-passant", ep.Kind)
	}

	after := afterPush.Apply(ep)
	if after.PieceAt(E3) != BlackPawn {
		t.Error("capturing pawn should land on e3")
	}
	if after.PieceAt(E4) != NoPiece {
		t.Error("captured pawn on e4 should be removed")
	}
	if after.PieceAt(D4) != NoPiece {
		t.Error("origin square d4 should be empty")
	}
	if after.HalfMoveClock != 0 {
		t.Error("half-move clock should reset on capture")
	}
}

func TestApplyCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	// White kingside
	oo := findMove(t, &pos, "e1g1")
	if oo.Kind != KindCastleKingSide {
		t.Fatalf("e1g1 kind = %v, want castle-kingside", oo.Kind)
	}
	after := pos.Apply(oo)
	if after.PieceAt(G1) != WhiteKing || after.PieceAt(F1) != WhiteRook {
		t.Error("kingside castle should place Kg1 and Rf1")
	}
	if after.PieceAt(E1) != NoPiece || after.PieceAt(H1) != NoPiece {
		t.Error("e1 and h1 should be empty after castling")
	}
	if after.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Error("White should lose both castling rights")
	}
	if after.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) == 0 {
		t.Error("Black's castling rights should survive")
	}

	// Black queenside from the resulting position
	ooo := findMove(t, &after, "e8c8")
	if ooo.Kind != KindCastleQueenSide {
		t.Fatalf("e8c8 kind = %v, want castle-queenside", ooo.Kind)
	}
	final := after.Apply(ooo)
	if final.PieceAt(C8) != BlackKing || final.PieceAt(D8) != BlackRook {
		t.Error("queenside castle should place Kc8 and Rd8")
	}
	if final.CastlingRights != NoCastling {
		t.Errorf("CastlingRights = %v, want none", final.CastlingRights)
	}
}

func TestApplyCastlingRightsOnRookMoves(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	// Moving the h1 rook drops only White's kingside right
	after := pos.Apply(findMove(t, &pos, "h1h2"))
	if after.CastlingRights != WhiteQueenSideCastle|BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("CastlingRights = %v, want Qkq", after.CastlingRights)
	}

	// Capturing the h8 rook from h1 drops both kingside rights
	captured := pos.Apply(findMove(t, &pos, "h1h8"))
	if captured.CastlingRights != WhiteQueenSideCastle|BlackQueenSideCastle {
		t.Errorf("CastlingRights = %v, want Qq", captured.CastlingRights)
	}
}

func TestApplyPromotion(t *testing.T) {
	pos, err := ParseFEN("8/P7/8/8/8/8/7k/K7 w - - 3 50")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	promo := findMove(t, &pos, "a7a8q")
	if promo.Kind != KindPromotion || promo.Promotion != Queen {
		t.Fatalf("a7a8q = %+v, want queen promotion", promo)
	}

	after := pos.Apply(promo)
	if after.PieceAt(A8) != WhiteQueen {
		t.Errorf("PieceAt(a8) = %v, want white queen", after.PieceAt(A8))
	}
	if after.PieceAt(A7) != NoPiece {
		t.Error("a7 should be empty after promotion")
	}
	if after.HalfMoveClock != 0 {
		t.Error("half-move clock should reset on a pawn move")
	}
	if after.FullMoveNumber != 50 {
		t.Errorf("FullMoveNumber = %d, want 50 after White's move", after.FullMoveNumber)
	}
}

func TestApplyCaptureResetsClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3r4/8/3R4/8/4K3 w - - 7 20")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	quiet := pos.Apply(findMove(t, &pos, "d3d4"))
	if quiet.HalfMoveClock != 8 {
		t.Errorf("HalfMoveClock = %d, want 8 after quiet rook move", quiet.HalfMoveClock)
	}

	capture := pos.Apply(findMove(t, &pos, "d3d5"))
	if capture.HalfMoveClock != 0 {
		t.Errorf("HalfMoveClock = %d, want 0 after capture", capture.HalfMoveClock)
	}
}
