package game

import (
	"errors"
	"fmt"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

var (
	// ErrGameFinished reports a command against a game in a terminal state.
	ErrGameFinished = errors.New("game already finished")

	// ErrNoHistory reports an undo with no moves to take back.
	ErrNoHistory = errors.New("no moves to undo")

	// ErrNotStarted reports a move against a game still waiting to start.
	ErrNotStarted = errors.New("game not started")
)

// IllegalMoveError reports a move attempt that matches no legal move.
// The game is left unchanged.
type IllegalMoveError struct {
	From   board.Square
	To     board.Square
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s%s: %s", e.From, e.To, e.Reason)
}

// NeedsPromotionError reports a pawn move onto the last rank attempted
// without a promotion piece. The move pair itself is fine; callers
// should ask for the piece and retry.
type NeedsPromotionError struct {
	From board.Square
	To   board.Square
}

func (e *NeedsPromotionError) Error() string {
	return fmt.Sprintf("move %s%s requires a promotion piece", e.From, e.To)
}
