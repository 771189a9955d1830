package board

import "fmt"

// MoveKind classifies a move. Every move carries exactly one kind.
// A capturing promotion keeps KindPromotion; the Captured field still
// records the taken piece.
type MoveKind uint8

const (
	KindNormal MoveKind = iota
	KindCapture
	KindDoublePawnPush
	KindEnPassant
	KindCastleKingSide
	KindCastleQueenSide
	KindPromotion
)

// String returns the kind name.
func (k MoveKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindCapture:
		return "capture"
	case KindDoublePawnPush:
		return "double-pawn-push"
	case KindEnPassant:
		return "en-passant"
	case KindCastleKingSide:
		return "castle-kingside"
	case KindCastleQueenSide:
		return "castle-queenside"
	case KindPromotion:
		return "promotion"
	default:
		return "unknown"
	}
}

// Move describes a single move with everything needed to apply it to a
// Position and to render it in SAN. Moves are comparable values.
type Move struct {
	From      Square
	To        Square
	Piece     Piece     // the moving piece
	Captured  Piece     // NoPiece if nothing is taken; en passant records the pawn
	Promotion PieceType // NoPieceType unless Kind is KindPromotion
	Kind      MoveKind
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece, Captured: NoPiece, Promotion: NoPieceType}

// NewMove creates a quiet move.
func NewMove(from, to Square, piece Piece) Move {
	return Move{From: from, To: to, Piece: piece, Captured: NoPiece, Promotion: NoPieceType, Kind: KindNormal}
}

// NewCapture creates a capturing move.
func NewCapture(from, to Square, piece, captured Piece) Move {
	return Move{From: from, To: to, Piece: piece, Captured: captured, Promotion: NoPieceType, Kind: KindCapture}
}

// NewDoublePush creates a two-square pawn advance.
func NewDoublePush(from, to Square, piece Piece) Move {
	return Move{From: from, To: to, Piece: piece, Captured: NoPiece, Promotion: NoPieceType, Kind: KindDoublePawnPush}
}

// NewEnPassant creates an en passant capture. The captured pawn is the
// enemy pawn beside the destination square.
func NewEnPassant(from, to Square, piece Piece) Move {
	return Move{From: from, To: to, Piece: piece, Captured: NewPiece(Pawn, piece.Color().Other()), Promotion: NoPieceType, Kind: KindEnPassant}
}

// NewCastling creates a castling move (the king's movement); the side
// is inferred from the destination file.
func NewCastling(from, to Square, piece Piece) Move {
	kind := KindCastleQueenSide
	if to.File() == 6 {
		kind = KindCastleKingSide
	}
	return Move{From: from, To: to, Piece: piece, Captured: NoPiece, Promotion: NoPieceType, Kind: kind}
}

// NewPromotion creates a promotion move, capturing or quiet.
func NewPromotion(from, to Square, piece, captured Piece, promo PieceType) Move {
	return Move{From: from, To: to, Piece: piece, Captured: captured, Promotion: promo, Kind: KindPromotion}
}

// IsCapture returns true if this move takes a piece, including en
// passant and capturing promotions.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind == KindPromotion
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	return m.Kind == KindCastleKingSide || m.Kind == KindCastleQueenSide
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind == KindEnPassant
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From.String() + m.To.String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion-Knight])
	}

	return s
}

// ParseMove parses a UCI format move string against a position,
// classifying the move kind from board context. The result is not
// checked for legality.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	m := Move{
		From:      from,
		To:        to,
		Piece:     piece,
		Captured:  pos.PieceAt(to),
		Promotion: NoPieceType,
		Kind:      KindNormal,
	}
	if m.Captured != NoPiece {
		m.Kind = KindCapture
	}

	// Promotion suffix
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		m.Kind = KindPromotion
		return m, nil
	}

	switch piece.Type() {
	case King:
		if abs(to.File()-from.File()) == 2 {
			if to.File() == 6 {
				m.Kind = KindCastleKingSide
			} else {
				m.Kind = KindCastleQueenSide
			}
		}
	case Pawn:
		if to == pos.EnPassant && from.File() != to.File() {
			m.Kind = KindEnPassant
			m.Captured = NewPiece(Pawn, piece.Color().Other())
		} else if abs(to.Rank()-from.Rank()) == 2 {
			m.Kind = KindDoublePawnPush
		}
	}

	return m, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
