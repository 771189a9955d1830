package board

// Direction offsets in (file, rank) steps.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirs      = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

func inBounds(file, rank int) bool {
	return file >= 0 && file <= 7 && rank >= 0 && rank <= 7
}

// IsSquareAttacked returns true if the square is attacked by any piece
// of the given color. The position is never mutated.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	file, rank := sq.File(), sq.Rank()

	// Pawns attack one rank toward the enemy, so their origin rank is
	// behind sq from byColor's point of view.
	pawnRank := rank - 1
	if byColor == Black {
		pawnRank = rank + 1
	}
	pawn := NewPiece(Pawn, byColor)
	for _, df := range [2]int{-1, 1} {
		if inBounds(file+df, pawnRank) && p.Board[NewSquare(file+df, pawnRank)] == pawn {
			return true
		}
	}

	// Knights
	knight := NewPiece(Knight, byColor)
	for _, d := range knightOffsets {
		if inBounds(file+d[0], rank+d[1]) && p.Board[NewSquare(file+d[0], rank+d[1])] == knight {
			return true
		}
	}

	// King
	king := NewPiece(King, byColor)
	for _, d := range kingOffsets {
		if inBounds(file+d[0], rank+d[1]) && p.Board[NewSquare(file+d[0], rank+d[1])] == king {
			return true
		}
	}

	// Sliding pieces: the first piece along each ray decides.
	if p.rayAttack(sq, byColor, rookDirs, Rook) {
		return true
	}
	return p.rayAttack(sq, byColor, bishopDirs, Bishop)
}

// rayAttack walks each direction from sq until a piece blocks the ray
// and reports whether that piece is a matching slider or queen.
func (p *Position) rayAttack(sq Square, byColor Color, dirs [4][2]int, slider PieceType) bool {
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for inBounds(f, r) {
			piece := p.Board[NewSquare(f, r)]
			if piece != NoPiece {
				if piece.Color() == byColor && (piece.Type() == slider || piece.Type() == Queen) {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return false
}

// Attackers returns the squares of all pieces of the given color that
// attack sq, in board order by piece class.
func (p *Position) Attackers(sq Square, byColor Color) []Square {
	var attackers []Square
	file, rank := sq.File(), sq.Rank()

	pawnRank := rank - 1
	if byColor == Black {
		pawnRank = rank + 1
	}
	pawn := NewPiece(Pawn, byColor)
	for _, df := range [2]int{-1, 1} {
		if inBounds(file+df, pawnRank) && p.Board[NewSquare(file+df, pawnRank)] == pawn {
			attackers = append(attackers, NewSquare(file+df, pawnRank))
		}
	}

	knight := NewPiece(Knight, byColor)
	for _, d := range knightOffsets {
		if inBounds(file+d[0], rank+d[1]) && p.Board[NewSquare(file+d[0], rank+d[1])] == knight {
			attackers = append(attackers, NewSquare(file+d[0], rank+d[1]))
		}
	}

	king := NewPiece(King, byColor)
	for _, d := range kingOffsets {
		if inBounds(file+d[0], rank+d[1]) && p.Board[NewSquare(file+d[0], rank+d[1])] == king {
			attackers = append(attackers, NewSquare(file+d[0], rank+d[1]))
		}
	}

	attackers = p.rayAttackers(attackers, sq, byColor, rookDirs, Rook)
	attackers = p.rayAttackers(attackers, sq, byColor, bishopDirs, Bishop)

	return attackers
}

func (p *Position) rayAttackers(attackers []Square, sq Square, byColor Color, dirs [4][2]int, slider PieceType) []Square {
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for inBounds(f, r) {
			piece := p.Board[NewSquare(f, r)]
			if piece != NoPiece {
				if piece.Color() == byColor && (piece.Type() == slider || piece.Type() == Queen) {
					attackers = append(attackers, NewSquare(f, r))
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attackers
}
