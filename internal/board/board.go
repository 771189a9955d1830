package board

import (
	"fmt"
	"strings"
)

// Board is a mailbox representation of the chess board: one Piece per
// square, indexed by Square (A1=0 .. H8=63).
//
// The zero value is not usable because Piece(0) is WhitePawn; construct
// boards with NewBoard or ParseFEN.
type Board [64]Piece

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	for sq := A1; sq <= H8; sq++ {
		b[sq] = NoPiece
	}
	return b
}

// PieceAt returns the piece on the given square, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq]
}

// FindKing returns the square of the given color's king.
// The second return value is false if no such king is on the board.
func (b *Board) FindKing(c Color) (Square, bool) {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if b[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}

// count returns the number of pieces of the given kind on the board.
func (b *Board) count(p Piece) int {
	n := 0
	for sq := A1; sq <= H8; sq++ {
		if b[sq] == p {
			n++
		}
	}
	return n
}

// move relocates the piece on from to to, leaving from empty.
func (b *Board) move(from, to Square) {
	b[to] = b[from]
	b[from] = NoPiece
}

// String returns an ASCII diagram of the board from White's perspective.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			piece := b[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
