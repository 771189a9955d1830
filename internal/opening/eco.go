package opening

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

//go:embed openings.tsv
var ecoData []byte

const (
	ecoColumnCode  = 0
	ecoColumnTitle = 1
	ecoColumnUCI   = 2
	ecoColumns     = 3
)

// BookECO is an opening tree built from the embedded ECO excerpt.
// It is safe for concurrent use once constructed.
type BookECO struct {
	root *node
}

// node is one position in the opening tree, keyed from its parent by
// the UCI move that reaches it.
type node struct {
	parent   *node
	children map[string]*node
	opening  *Opening
}

// NewBookECO parses the embedded ECO data into an opening tree. The
// data is curated, so any unreadable or illegal line is an error, not
// a skip.
func NewBookECO() (*BookECO, error) {
	b := &BookECO{root: &node{children: make(map[string]*node)}}

	reader := csv.NewReader(bytes.NewReader(ecoData))
	reader.Comma = '\t'
	reader.FieldsPerRecord = ecoColumns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read eco data: %w", err)
	}

	for i, row := range records {
		if i == 0 {
			continue // header
		}
		o, err := parseOpening(row[ecoColumnCode], row[ecoColumnTitle], row[ecoColumnUCI])
		if err != nil {
			return nil, fmt.Errorf("eco row %d: %w", i+1, err)
		}
		if err := b.insert(o); err != nil {
			return nil, fmt.Errorf("eco row %d: %w", i+1, err)
		}
	}

	if len(b.root.children) == 0 {
		return nil, errors.New("no openings loaded from eco data")
	}
	return b, nil
}

// parseOpening validates a UCI move line by playing it out from the
// starting position.
func parseOpening(code, title, line string) (*Opening, error) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		return nil, err
	}

	var moves []board.Move
	for _, s := range strings.Fields(line) {
		m, err := board.ParseMove(s, &pos)
		if err != nil {
			return nil, fmt.Errorf("opening %q (%s): %w", title, code, err)
		}
		if !pos.GenerateLegalMoves().Contains(m) {
			return nil, fmt.Errorf("opening %q (%s): illegal move %s", title, code, s)
		}
		moves = append(moves, m)
		pos = pos.Apply(m)
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("opening %q (%s): empty move line", title, code)
	}

	return &Opening{code: code, title: title, uci: line, moves: moves}, nil
}

func (b *BookECO) insert(o *Opening) error {
	n := b.root
	for _, m := range o.moves {
		key := m.String()
		child, ok := n.children[key]
		if !ok {
			child = &node{parent: n, children: make(map[string]*node)}
			n.children[key] = child
		}
		n = child
	}
	if n.opening != nil {
		return fmt.Errorf("openings %q and %q share one line", n.opening.title, o.title)
	}
	n.opening = o
	return nil
}

// Find returns the most specific opening matching a prefix of the
// moves: it walks as deep as the book knows the line, then back up to
// the nearest named position.
func (b *BookECO) Find(moves []board.Move) *Opening {
	for n := b.followPath(b.root, moves); n != nil; n = n.parent {
		if n.opening != nil {
			return n.opening
		}
	}
	return nil
}

// Possible returns the known openings still reachable after the given
// moves. With no moves every opening in the book is returned.
func (b *BookECO) Possible(moves []board.Move) []*Opening {
	var out []*Opening
	b.followPath(b.root, moves).walk(func(n *node) {
		if n.opening != nil {
			out = append(out, n.opening)
		}
	})
	return out
}

func (b *BookECO) followPath(n *node, moves []board.Move) *node {
	if len(moves) == 0 {
		return n
	}
	child, ok := n.children[moves[0].String()]
	if !ok {
		return n
	}
	return b.followPath(child, moves[1:])
}

func (n *node) walk(visit func(*node)) {
	visit(n)
	for _, c := range n.children {
		c.walk(visit)
	}
}
