package game

import (
	"time"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

// MoveRecord captures one executed move with everything needed to
// display, replay, or take it back.
type MoveRecord struct {
	Move        board.Move        `json:"move"`
	SAN         string            `json:"san"`
	FENBefore   string            `json:"fenBefore"`
	FENAfter    string            `json:"fenAfter"`
	PositionKey board.PositionKey `json:"positionKey"`
	Captured    board.Piece       `json:"captured"`
	Timestamp   time.Time         `json:"timestamp"`
}
