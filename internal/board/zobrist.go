package board

// Zobrist keys for position hashing.
// Uses a PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // One per file
	zobristCastling   [16]uint64     // All 16 castling combinations
	zobristSideToMove uint64         // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	// Piece keys
	for p := WhitePawn; p <= BlackKing; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}

	// En passant keys (one per file)
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	// Castling keys (all 16 combinations)
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	// Side to move key
	zobristSideToMove = rng.next()
}
