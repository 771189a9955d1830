package board

// Perft counts the leaf nodes of the legal move tree at the given
// depth. Known node counts for reference positions validate the move
// generator.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		next := p.Apply(moves.Get(i))
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by the
// move in UCI form. Comparing a divide against a trusted engine
// narrows a wrong total down to the offending root move.
func Divide(p *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)

	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next := p.Apply(m)
		result[m.String()] = Perft(&next, depth-1)
	}

	return result
}
