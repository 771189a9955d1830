package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}
	if m.Piece == NoPiece {
		return m.String() // Fallback to UCI
	}

	// Castling
	if m.Kind == KindCastleKingSide {
		return "O-O" + checkSuffix(pos, m)
	}
	if m.Kind == KindCastleQueenSide {
		return "O-O-O" + checkSuffix(pos, m)
	}

	var sb strings.Builder
	pt := m.Piece.Type()

	// Piece letter and disambiguation (not for pawns)
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(getDisambiguation(pos, m, pt))
	}

	// Capture marker
	if m.IsCapture() {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	// Destination square
	sb.WriteString(m.To.String())

	// Promotion
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion])
	}

	sb.WriteString(checkSuffix(pos, m))

	return sb.String()
}

// checkSuffix returns "#" for mating moves, "+" for checking moves,
// and "" otherwise. Mate takes precedence over check.
func checkSuffix(pos *Position, m Move) string {
	next := pos.Apply(m)
	if next.IsCheckmate() {
		return "#"
	}
	if next.InCheck() {
		return "+"
	}
	return ""
}

// getDisambiguation returns the minimal origin qualifier needed to
// single out the move: nothing, the file, the rank, or both.
func getDisambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From

	// Find all other pieces of the same type with a legal move to the
	// same destination.
	var candidates []Square
	allMoves := pos.GenerateLegalMoves()
	for i := 0; i < allMoves.Len(); i++ {
		move := allMoves.Get(i)
		if move.To != m.To || move.From == from {
			continue
		}
		if move.Piece.Type() == pt {
			candidates = append(candidates, move.From)
		}
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		// File is sufficient
		return string('a' + byte(from.File()))
	}
	if !sameRank {
		// Rank is sufficient
		return string('1' + byte(from.Rank()))
	}
	// Need both file and rank
	return from.String()
}

// ParseSAN parses a SAN string against a position and returns the
// matching legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	// Castling
	if s == "O-O" || s == "0-0" {
		return findCastle(pos, KindCastleKingSide, orig)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findCastle(pos, KindCastleQueenSide, orig)
	}

	// Parse promotion
	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	// Remove capture marker
	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	// Parse destination (last 2 characters)
	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid san: %s", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid san: %s", orig)
	}
	s = s[:len(s)-2]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	// Find the matching legal move
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To != dest || m.Piece.Type() != pt {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if promoPiece != NoPieceType {
			if !m.IsPromotion() || m.Promotion != promoPiece {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}

		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches san: %s", orig)
}

// findCastle returns the legal castling move of the given kind.
func findCastle(pos *Position, kind MoveKind, notation string) (Move, error) {
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).Kind == kind {
			return moves.Get(i), nil
		}
	}
	return NoMove, fmt.Errorf("no legal move matches san: %s", notation)
}
