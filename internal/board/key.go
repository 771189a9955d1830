package board

// PositionKey identifies a position for repetition detection: piece
// placement, side to move, castling rights, and en passant
// availability. The move counters are excluded, so transpositions that
// differ only in their clocks compare equal.
type PositionKey uint64

// Key computes the PositionKey for the position.
//
// The en passant file is folded in only when a pawn of the side to
// move could actually capture on the target square; a dead en passant
// flag does not make two otherwise equal positions distinct.
func (p *Position) Key() PositionKey {
	var key uint64

	for sq := A1; sq <= H8; sq++ {
		if piece := p.Board[sq]; piece != NoPiece {
			key ^= zobristPiece[piece][sq]
		}
	}

	if p.SideToMove == Black {
		key ^= zobristSideToMove
	}

	key ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare && p.hasEnPassantCapture() {
		key ^= zobristEnPassant[p.EnPassant.File()]
	}

	return PositionKey(key)
}

// hasEnPassantCapture reports whether a pawn of the side to move
// stands beside the en passant target square.
func (p *Position) hasEnPassantCapture() bool {
	to := p.EnPassant
	us := p.SideToMove

	fromRank := to.Rank() - 1
	if us == Black {
		fromRank = to.Rank() + 1
	}

	pawn := NewPiece(Pawn, us)
	for _, df := range [2]int{-1, 1} {
		if inBounds(to.File()+df, fromRank) && p.Board[NewSquare(to.File()+df, fromRank)] == pawn {
			return true
		}
	}
	return false
}
