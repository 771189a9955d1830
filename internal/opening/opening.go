// Package opening classifies move sequences against an embedded
// excerpt of the Encyclopaedia of Chess Openings.
package opening

import "github.com/JanGitHop/j-chess-sub000/internal/board"

// An Opening is a named move sequence from the starting position.
type Opening struct {
	code  string
	title string
	uci   string
	moves []board.Move
}

// Code returns the ECO code, e.g. "B01".
func (o *Opening) Code() string { return o.code }

// Title returns the opening's name.
func (o *Opening) Title() string { return o.title }

// UCI returns the defining move line in UCI notation.
func (o *Opening) UCI() string { return o.uci }

// Moves returns a copy of the defining move sequence.
func (o *Opening) Moves() []board.Move {
	m := make([]board.Move, len(o.moves))
	copy(m, o.moves)
	return m
}

// Book finds openings for move sequences.
type Book interface {
	// Find returns the most specific opening for the moves, or nil
	// when even the first move is out of book.
	Find(moves []board.Move) *Opening
	// Possible returns the openings reachable after the moves. With an
	// empty move list every opening is returned.
	Possible(moves []board.Move) []*Opening
}
