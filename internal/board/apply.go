package board

// Apply executes a move and returns the resulting position. The
// receiver is taken by value and never modified, so every call yields
// an independent Position and earlier positions stay intact.
//
// The move must come from move generation or from ParseMove against
// this position; Apply trusts its fields and does not re-check
// legality.
func (p Position) Apply(m Move) Position {
	next := p
	mover := p.SideToMove

	next.Board.move(m.From, m.To)

	switch m.Kind {
	case KindEnPassant:
		// The captured pawn sits beside the destination, on the
		// mover's origin rank.
		next.Board[NewSquare(m.To.File(), m.From.Rank())] = NoPiece
	case KindCastleKingSide:
		if mover == White {
			next.Board.move(H1, F1)
		} else {
			next.Board.move(H8, F8)
		}
	case KindCastleQueenSide:
		if mover == White {
			next.Board.move(A1, D1)
		} else {
			next.Board.move(A8, D8)
		}
	case KindPromotion:
		next.Board[m.To] = NewPiece(m.Promotion, mover)
	}

	// Switch side to move
	next.SideToMove = mover.Other()

	// Update en passant square
	next.EnPassant = NoSquare
	if m.Kind == KindDoublePawnPush {
		next.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	// Update castling rights: lost when the king or a rook leaves its
	// home square, or when a rook is captured on one.
	if m.Piece.Type() == King {
		if mover == White {
			next.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			next.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case H1:
			next.CastlingRights &^= WhiteKingSideCastle
		case A1:
			next.CastlingRights &^= WhiteQueenSideCastle
		case H8:
			next.CastlingRights &^= BlackKingSideCastle
		case A8:
			next.CastlingRights &^= BlackQueenSideCastle
		}
	}

	// Update move clocks
	if m.Piece.Type() == Pawn || m.IsCapture() {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}
	if mover == Black {
		next.FullMoveNumber++
	}

	return next
}
