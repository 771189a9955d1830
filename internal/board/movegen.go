package board

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave
// the mover's king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// LegalMovesFrom returns the legal moves originating on the given
// square. Empty squares and enemy pieces yield an empty list.
func (p *Position) LegalMovesFrom(sq Square) *MoveList {
	all := p.GenerateLegalMoves()
	result := NewMoveList()
	for i := 0; i < all.Len(); i++ {
		if all.Get(i).From == sq {
			result.Add(all.Get(i))
		}
	}
	return result
}

// generateAllMoves generates all pseudo-legal moves for the side to move.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove

	for from := A1; from <= H8; from++ {
		piece := p.Board[from]
		if piece == NoPiece || piece.Color() != us {
			continue
		}

		switch piece.Type() {
		case Pawn:
			p.generatePawnMoves(ml, from)
		case Knight:
			p.generateOffsetMoves(ml, from, knightOffsets)
		case Bishop:
			p.generateSlidingMoves(ml, from, bishopDirs)
		case Rook:
			p.generateSlidingMoves(ml, from, rookDirs)
		case Queen:
			p.generateSlidingMoves(ml, from, rookDirs)
			p.generateSlidingMoves(ml, from, bishopDirs)
		case King:
			p.generateOffsetMoves(ml, from, kingOffsets)
		}
	}

	// Castling
	p.generateCastlingMoves(ml, us)
}

// generatePawnMoves generates pushes, captures, en passant and
// promotions for the pawn on from.
func (p *Position) generatePawnMoves(ml *MoveList, from Square) {
	us := p.SideToMove
	piece := p.Board[from]

	dir, startRank, promoRank := 1, 1, 7
	if us == Black {
		dir, startRank, promoRank = -1, 6, 0
	}

	file, rank := from.File(), from.Rank()

	// Single and double pushes
	if inBounds(file, rank+dir) {
		to := NewSquare(file, rank+dir)
		if p.Board[to] == NoPiece {
			if to.Rank() == promoRank {
				addPromotions(ml, from, to, piece, NoPiece)
			} else {
				ml.Add(NewMove(from, to, piece))
				if rank == startRank {
					to2 := NewSquare(file, rank+2*dir)
					if p.Board[to2] == NoPiece {
						ml.Add(NewDoublePush(from, to2, piece))
					}
				}
			}
		}
	}

	// Diagonal captures and en passant
	for _, df := range [2]int{-1, 1} {
		if !inBounds(file+df, rank+dir) {
			continue
		}
		to := NewSquare(file+df, rank+dir)
		target := p.Board[to]
		if target != NoPiece && target.Color() != us {
			if to.Rank() == promoRank {
				addPromotions(ml, from, to, piece, target)
			} else {
				ml.Add(NewCapture(from, to, piece, target))
			}
		} else if target == NoPiece && to == p.EnPassant {
			ml.Add(NewEnPassant(from, to, piece))
		}
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square, piece, captured Piece) {
	ml.Add(NewPromotion(from, to, piece, captured, Queen))
	ml.Add(NewPromotion(from, to, piece, captured, Rook))
	ml.Add(NewPromotion(from, to, piece, captured, Bishop))
	ml.Add(NewPromotion(from, to, piece, captured, Knight))
}

// generateOffsetMoves generates moves for pieces with a fixed move
// pattern (knight and king).
func (p *Position) generateOffsetMoves(ml *MoveList, from Square, offsets [8][2]int) {
	piece := p.Board[from]
	for _, d := range offsets {
		if !inBounds(from.File()+d[0], from.Rank()+d[1]) {
			continue
		}
		to := NewSquare(from.File()+d[0], from.Rank()+d[1])
		target := p.Board[to]
		if target == NoPiece {
			ml.Add(NewMove(from, to, piece))
		} else if target.Color() != piece.Color() {
			ml.Add(NewCapture(from, to, piece, target))
		}
	}
}

// generateSlidingMoves generates moves along each direction until the
// ray is blocked (bishop, rook and queen).
func (p *Position) generateSlidingMoves(ml *MoveList, from Square, dirs [4][2]int) {
	piece := p.Board[from]
	for _, d := range dirs {
		f, r := from.File()+d[0], from.Rank()+d[1]
		for inBounds(f, r) {
			to := NewSquare(f, r)
			target := p.Board[to]
			if target == NoPiece {
				ml.Add(NewMove(from, to, piece))
			} else {
				if target.Color() != piece.Color() {
					ml.Add(NewCapture(from, to, piece, target))
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		// Kingside (O-O)
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			// Squares between king and rook must be empty (f1, g1)
			if p.IsEmpty(F1) && p.IsEmpty(G1) {
				// King may not castle out of, through, or into check
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastling(E1, G1, WhiteKing))
				}
			}
		}

		// Queenside (O-O-O)
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			// Squares between king and rook must be empty (b1, c1, d1)
			if p.IsEmpty(B1) && p.IsEmpty(C1) && p.IsEmpty(D1) {
				// King path: e1, d1, c1
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastling(E1, C1, WhiteKing))
				}
			}
		}
	} else {
		// Kingside (O-O)
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.IsEmpty(F8) && p.IsEmpty(G8) {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastling(E8, G8, BlackKing))
				}
			}
		}

		// Queenside (O-O-O)
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.IsEmpty(B8) && p.IsEmpty(C8) && p.IsEmpty(D8) {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastling(E8, C8, BlackKing))
				}
			}
		}
	}
}

// filterLegalMoves removes moves that would leave the mover's own king
// in check, by applying each candidate to a scratch copy of the
// position and probing the resulting king square.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	us := p.SideToMove

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		next := p.Apply(m)
		if ksq, ok := next.FindKing(us); ok && !next.IsSquareAttacked(ksq, us.Other()) {
			result.Add(m)
		}
	}

	return result
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	us := p.SideToMove

	for i := 0; i < ml.Len(); i++ {
		next := p.Apply(ml.Get(i))
		if ksq, ok := next.FindKing(us); ok && !next.IsSquareAttacked(ksq, us.Other()) {
			return true
		}
	}

	return false
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	ksq, ok := p.FindKing(p.SideToMove)
	if !ok {
		return false
	}
	return p.IsSquareAttacked(ksq, p.SideToMove.Other())
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial returns true if neither side has enough
// material to deliver checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	wMinors, bMinors := 0, 0

	for sq := A1; sq <= H8; sq++ {
		piece := p.Board[sq]
		if piece == NoPiece {
			continue
		}
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight, Bishop:
			if piece.Color() == White {
				wMinors++
			} else {
				bMinors++
			}
		}
	}

	// K vs K
	if wMinors+bMinors == 0 {
		return true
	}

	// K+minor vs K
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	return wMinors == 0 && bMinors <= 1
}

// RequiresPromotion returns true when the piece on from is a pawn of
// the side to move and to lies on its promotion rank. Callers use this
// before attempting a move to know that a promotion piece is needed.
func (p *Position) RequiresPromotion(from, to Square) bool {
	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Type() != Pawn || piece.Color() != p.SideToMove {
		return false
	}
	promoRank := 7
	if piece.Color() == Black {
		promoRank = 0
	}
	return to.Rank() == promoRank
}
