package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position represents a complete chess position: the piece placement
// plus the game state fields of a FEN record.
//
// Position is a value type. Apply returns a fresh Position and never
// mutates its receiver, so old positions stay valid for history and
// repetition tracking.
type Position struct {
	Board Board

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Half-moves since last pawn move or capture (for the fifty-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board.PieceAt(sq)
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board.PieceAt(sq) == NoPiece
}

// FindKing returns the square of the given color's king.
// The second return value is false if no such king is on the board.
func (p *Position) FindKing(c Color) (Square, bool) {
	return p.Board.FindKing(c)
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(p.Board.String())
	sb.WriteString(fmt.Sprintf("\nSide to move: %s\n", p.SideToMove))
	sb.WriteString(fmt.Sprintf("Castling: %s\n", p.CastlingRights))
	sb.WriteString(fmt.Sprintf("En passant: %s\n", p.EnPassant))
	sb.WriteString(fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock))
	sb.WriteString(fmt.Sprintf("Full move: %d\n", p.FullMoveNumber))
	return sb.String()
}

// Validate checks the structural invariants of the position.
func (p *Position) Validate() error {
	if n := p.Board.count(WhiteKing); n != 1 {
		return &InvalidPositionError{Reason: fmt.Sprintf("white must have exactly one king, found %d", n)}
	}
	if n := p.Board.count(BlackKing); n != 1 {
		return &InvalidPositionError{Reason: fmt.Sprintf("black must have exactly one king, found %d", n)}
	}
	for sq := A1; sq <= H1; sq++ {
		if p.Board[sq].Type() == Pawn || p.Board[sq+56].Type() == Pawn {
			return &InvalidPositionError{Reason: "pawns cannot be on rank 1 or 8"}
		}
	}
	return nil
}
