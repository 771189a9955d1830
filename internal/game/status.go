package game

import "fmt"

// Status describes where a game stands in its lifecycle.
type Status uint8

const (
	// StatusWaiting is a game that has been created but not started.
	StatusWaiting Status = iota
	// StatusActive is a game in progress, side to move not in check.
	StatusActive
	// StatusCheck is a game in progress, side to move in check.
	StatusCheck
	// StatusCheckmate ends the game: the side to move is mated.
	StatusCheckmate
	// StatusStalemate ends the game: no legal moves, king not attacked.
	StatusStalemate
	// StatusDrawFiftyMove ends the game: a hundred halfmoves passed
	// without a pawn move or capture.
	StatusDrawFiftyMove
	// StatusDrawRepetition ends the game: the same position occurred
	// three times.
	StatusDrawRepetition
	// StatusResigned ends the game: one side surrendered.
	StatusResigned
)

// Terminal reports whether the status ends the game. A terminal game
// accepts no further moves or resignations.
func (s Status) Terminal() bool {
	switch s {
	case StatusCheckmate, StatusStalemate, StatusDrawFiftyMove, StatusDrawRepetition, StatusResigned:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDrawFiftyMove:
		return "draw-fifty-move"
	case StatusDrawRepetition:
		return "draw-repetition"
	case StatusResigned:
		return "resigned"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for c := StatusWaiting; c <= StatusResigned; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown game status %q", text)
}
