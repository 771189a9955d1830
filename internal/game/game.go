// Package game drives a single chess game: it owns the current
// position, validates and applies moves, keeps the move history, and
// derives the game status after every change.
package game

import (
	"time"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

// Game is the state machine for one chess game. Callers create one
// Game per game; a Game is not safe for concurrent use.
type Game struct {
	pos      board.Position
	status   Status
	history  []MoveRecord
	keyCount map[board.PositionKey]int
	selected board.Square
	startFEN string
	resigned board.Color
}

// New returns a game at the standard starting position, ready to play.
func New() *Game {
	g := &Game{}
	// StartFEN always parses.
	_ = g.LoadFEN(board.StartFEN)
	return g
}

// NewWaiting returns a game at the standard starting position that
// accepts no moves until Start is called.
func NewWaiting() *Game {
	g := New()
	g.status = StatusWaiting
	return g
}

// Start moves a waiting game into play. Starting a game that is
// already running is a no-op.
func (g *Game) Start() error {
	if g.status.Terminal() {
		return ErrGameFinished
	}
	if g.status == StatusWaiting {
		g.evaluateStatus()
	}
	return nil
}

// LoadFEN replaces the whole game state with the given position.
// History, selection, and repetition counts reset, and the status is
// evaluated immediately: loading a mate or a dead-clock position
// reports the terminal status right away.
func (g *Game) LoadFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.pos = pos
	g.startFEN = pos.ToFEN()
	g.history = nil
	g.keyCount = map[board.PositionKey]int{pos.Key(): 1}
	g.selected = board.NoSquare
	g.resigned = board.NoColor
	g.evaluateStatus()
	return nil
}

// AttemptMove validates and plays the move from one square to another.
// The promotion piece is consulted only for promoting moves; a
// promoting move attempted with NoPieceType fails with
// *NeedsPromotionError and leaves the game unchanged, so callers can
// ask for the piece and retry. Moves that match no legal move fail
// with *IllegalMoveError. On success the executed move's record is
// returned and the status re-evaluated.
func (g *Game) AttemptMove(from, to board.Square, promotion board.PieceType) (MoveRecord, error) {
	if g.status == StatusWaiting {
		return MoveRecord{}, ErrNotStarted
	}
	if g.status.Terminal() {
		return MoveRecord{}, ErrGameFinished
	}

	legal := g.pos.LegalMovesFrom(from)
	needsPiece := false
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.To != to {
			continue
		}
		if m.IsPromotion() {
			if promotion == board.NoPieceType {
				needsPiece = true
				continue
			}
			if m.Promotion == promotion {
				return g.commit(m), nil
			}
			continue
		}
		return g.commit(m), nil
	}
	if needsPiece {
		return MoveRecord{}, &NeedsPromotionError{From: from, To: to}
	}
	return MoveRecord{}, &IllegalMoveError{From: from, To: to, Reason: g.illegalReason(from, to)}
}

func (g *Game) illegalReason(from, to board.Square) string {
	piece := g.pos.PieceAt(from)
	switch {
	case !from.IsValid() || !to.IsValid():
		return "square off the board"
	case piece == board.NoPiece:
		return "no piece on " + from.String()
	case piece.Color() != g.pos.SideToMove:
		return "piece belongs to the opponent"
	default:
		return "not a legal move"
	}
}

// commit applies an already validated move. SAN is rendered against
// the pre-move position.
func (g *Game) commit(m board.Move) MoveRecord {
	before := g.pos.ToFEN()
	san := m.ToSAN(&g.pos)
	next := g.pos.Apply(m)

	rec := MoveRecord{
		Move:        m,
		SAN:         san,
		FENBefore:   before,
		FENAfter:    next.ToFEN(),
		PositionKey: next.Key(),
		Captured:    m.Captured,
		Timestamp:   time.Now(),
	}

	g.pos = next
	g.keyCount[rec.PositionKey]++
	g.history = append(g.history, rec)
	g.selected = board.NoSquare
	g.evaluateStatus()
	return rec
}

// Resign ends the game in favor of the resigning side's opponent.
func (g *Game) Resign(c board.Color) error {
	if g.status.Terminal() {
		return ErrGameFinished
	}
	g.status = StatusResigned
	g.resigned = c
	return nil
}

// Undo takes back the last move and re-derives the status. A
// resignation stands: games finished by resignation cannot be rewound.
func (g *Game) Undo() error {
	if g.status == StatusResigned {
		return ErrGameFinished
	}
	if len(g.history) == 0 {
		return ErrNoHistory
	}

	last := g.history[len(g.history)-1]
	pos, err := board.ParseFEN(last.FENBefore)
	if err != nil {
		return err
	}

	if n := g.keyCount[last.PositionKey]; n <= 1 {
		delete(g.keyCount, last.PositionKey)
	} else {
		g.keyCount[last.PositionKey] = n - 1
	}
	g.history = g.history[:len(g.history)-1]
	g.pos = pos
	g.selected = board.NoSquare
	g.evaluateStatus()
	return nil
}

// SelectSquare marks sq as the pending move origin when it holds a
// piece of the side to move, and returns that piece's legal
// destinations. Any other square clears the selection.
func (g *Game) SelectSquare(sq board.Square) []board.Square {
	if g.status == StatusWaiting || g.status.Terminal() {
		g.selected = board.NoSquare
		return nil
	}
	piece := g.pos.PieceAt(sq)
	if piece == board.NoPiece || piece.Color() != g.pos.SideToMove {
		g.selected = board.NoSquare
		return nil
	}
	g.selected = sq
	return g.destinations(sq)
}

// Selected returns the currently selected square, or NoSquare.
func (g *Game) Selected() board.Square {
	return g.selected
}

// LegalMoves returns the legal destination squares for the piece on
// from. Promotion variants collapse into a single destination.
func (g *Game) LegalMoves(from board.Square) []board.Square {
	if g.status == StatusWaiting || g.status.Terminal() {
		return nil
	}
	return g.destinations(from)
}

func (g *Game) destinations(from board.Square) []board.Square {
	moves := g.pos.LegalMovesFrom(from)
	var dests []board.Square
	for i := 0; i < moves.Len(); i++ {
		to := moves.Get(i).To
		seen := false
		for _, d := range dests {
			if d == to {
				seen = true
				break
			}
		}
		if !seen {
			dests = append(dests, to)
		}
	}
	return dests
}

// Status returns the current game status.
func (g *Game) Status() Status { return g.status }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return g.pos.InCheck() }

// AttackingSquares returns the squares of the pieces giving check to
// the side to move's king.
func (g *Game) AttackingSquares() []board.Square {
	ksq, ok := g.pos.FindKing(g.pos.SideToMove)
	if !ok {
		return nil
	}
	return g.pos.Attackers(ksq, g.pos.SideToMove.Other())
}

// Position returns a copy of the current position.
func (g *Game) Position() board.Position { return g.pos }

// FEN returns the current position in FEN.
func (g *Game) FEN() string { return g.pos.ToFEN() }

// StartFEN returns the FEN the game started from.
func (g *Game) StartFEN() string { return g.startFEN }

// History returns the move records played so far, oldest first.
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color { return g.pos.SideToMove }

// Outcome returns the PGN result string: "1-0", "0-1", "1/2-1/2", or
// "*" while the game is still open.
func (g *Game) Outcome() string {
	switch g.status {
	case StatusCheckmate:
		if g.pos.SideToMove == board.White {
			return "0-1"
		}
		return "1-0"
	case StatusResigned:
		if g.resigned == board.White {
			return "0-1"
		}
		return "1-0"
	case StatusStalemate, StatusDrawFiftyMove, StatusDrawRepetition:
		return "1/2-1/2"
	}
	return "*"
}

// evaluateStatus derives the status from the current position. The
// first matching state wins: checkmate, stalemate, threefold
// repetition, fifty-move rule, check, active.
func (g *Game) evaluateStatus() {
	switch {
	case g.pos.IsCheckmate():
		g.status = StatusCheckmate
	case g.pos.IsStalemate():
		g.status = StatusStalemate
	case g.keyCount[g.pos.Key()] >= 3:
		g.status = StatusDrawRepetition
	case g.pos.HalfMoveClock >= 100:
		g.status = StatusDrawFiftyMove
	case g.pos.InCheck():
		g.status = StatusCheck
	default:
		g.status = StatusActive
	}
}
