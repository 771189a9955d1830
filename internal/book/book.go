// Package book reads Polyglot-format opening books: 16-byte
// big-endian entries of position key, encoded move, weight, and learn
// data. Probed moves are verified against the position's legal moves
// before they are returned.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

// Entry is one book move for a position, resolved to a legal move.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// rawEntry keeps the wire fields of a book move. Resolution to a real
// move needs the position and happens at probe time.
type rawEntry struct {
	from   board.Square
	to     board.Square
	promo  board.PieceType
	weight uint16
}

// Book is an opening book keyed by position.
type Book struct {
	entries map[board.PositionKey][]rawEntry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[board.PositionKey][]rawEntry)}
}

// Load reads a Polyglot book file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader reads a Polyglot book from a stream. Entry layout:
// 8 bytes position key, 2 bytes move, 2 bytes weight, 4 bytes learn
// data (ignored), all big-endian.
func LoadReader(r io.Reader) (*Book, error) {
	b := New()

	var entry [16]byte
	for {
		if _, err := io.ReadFull(r, entry[:]); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		key := board.PositionKey(binary.BigEndian.Uint64(entry[0:8]))
		raw := decodeMove(binary.BigEndian.Uint16(entry[8:10]))
		raw.weight = binary.BigEndian.Uint16(entry[10:12])
		b.entries[key] = append(b.entries[key], raw)
	}

	return b, nil
}

// promoTypes maps the Polyglot promotion nibble to a piece type.
var promoTypes = [5]board.PieceType{
	board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen,
}

// decodeMove unpacks the Polyglot move bits: 0-5 to square, 6-11 from
// square, 12-14 promotion piece.
func decodeMove(data uint16) rawEntry {
	raw := rawEntry{
		to:    board.NewSquare(int(data&7), int((data>>3)&7)),
		from:  board.NewSquare(int((data>>6)&7), int((data>>9)&7)),
		promo: board.NoPieceType,
	}
	if p := (data >> 12) & 7; p > 0 && p < 5 {
		raw.promo = promoTypes[p]
	}
	return raw
}

// Probe returns the legal book moves for the position, heaviest
// weight first. Entries that resolve to no legal move are dropped.
func (b *Book) Probe(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}

	raws, ok := b.entries[pos.Key()]
	if !ok {
		return nil
	}

	var out []Entry
	for _, raw := range raws {
		if m := resolve(pos, raw); m != board.NoMove {
			out = append(out, Entry{Move: m, Weight: raw.weight})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// Pick selects a book move weight-proportionally. The boolean is
// false when the position is out of book.
func (b *Book) Pick(pos *board.Position) (board.Move, bool) {
	entries := b.Probe(pos)
	if len(entries) == 0 {
		return board.NoMove, false
	}

	total := uint32(0)
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % total
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return entries[0].Move, true
}

// Size returns the number of positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// resolve maps a wire move onto the position's legal move list.
// Polyglot encodes castling as the king capturing its own rook, so
// that alias is tried when a king stands on the from square.
func resolve(pos *board.Position, raw rawEntry) board.Move {
	from, to := raw.from, raw.to
	if pos.PieceAt(from).Type() == board.King {
		switch {
		case from == board.E1 && to == board.H1:
			to = board.G1
		case from == board.E1 && to == board.A1:
			to = board.C1
		case from == board.E8 && to == board.H8:
			to = board.G8
		case from == board.E8 && to == board.A8:
			to = board.C8
		}
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From != from || lm.To != to {
			continue
		}
		if lm.IsPromotion() != (raw.promo != board.NoPieceType) {
			continue
		}
		if lm.IsPromotion() && lm.Promotion != raw.promo {
			continue
		}
		return lm
	}
	return board.NoMove
}
