package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Test position: back rank mate, already checkmate
	// White: Ka1, Ra8
	// Black: Kh8, pawns on g7 and h7 blocking escape
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(pos.String())
	t.Log("InCheck:", pos.InCheck())

	// List all legal moves for black
	blackMoves := pos.GenerateLegalMoves()
	t.Log("Black legal moves:", blackMoves.Len())
	for i := 0; i < blackMoves.Len(); i++ {
		t.Log("  Move:", blackMoves.Get(i))
	}

	if pos.HasLegalMoves() {
		t.Error("Expected no legal moves")
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("Checkmate position reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Test position: king CAN escape by capturing the rook
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Not checkmate position (king can capture rook):")
	t.Log(pos.String())
	t.Log("InCheck:", pos.InCheck())

	blackMoves := pos.GenerateLegalMoves()
	t.Log("Black legal moves:", blackMoves.Len())
	for i := 0; i < blackMoves.Len(); i++ {
		t.Log("  Move:", blackMoves.Get(i))
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
}

func TestStalemate(t *testing.T) {
	// Test position: black king on a8 has no moves but is not in check
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Stalemate position:")
	t.Log(pos.String())

	if pos.InCheck() {
		t.Error("Stalemated king should not be in check")
	}
	if pos.HasLegalMoves() {
		t.Error("Expected no legal moves")
	}
	if !pos.IsStalemate() {
		t.Error("Expected stalemate but got false")
	}
	if pos.IsCheckmate() {
		t.Error("Stalemate position reported as checkmate")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"k7/8/8/8/8/8/8/K7 w - - 0 1", true},         // K vs K
		{"k7/8/8/8/8/8/8/KB6 w - - 0 1", true},        // K+B vs K
		{"k7/8/8/8/8/8/8/KN6 w - - 0 1", true},        // K+N vs K
		{"kb6/8/8/8/8/8/8/KB6 w - - 0 1", false},      // minors on both sides
		{"k7/8/8/8/8/8/8/KNN5 w - - 0 1", false},      // two knights
		{"k7/p7/8/8/8/8/8/K7 w - - 0 1", false},       // pawn on the board
		{"k7/8/8/8/8/8/8/KR6 w - - 0 1", false},       // rook on the board
		{StartFEN, false},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("Failed to parse FEN %q: %v", tc.fen, err)
		}
		if got := pos.IsInsufficientMaterial(); got != tc.want {
			t.Errorf("IsInsufficientMaterial(%q) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
