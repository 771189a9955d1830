package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
)

// MoveText returns the SAN movetext of the played moves, numbered by
// full move. Games starting with Black to move open with an ellipsis
// number, e.g. "3... Nf6".
func (g *Game) MoveText() string {
	var tokens []string
	for i, rec := range g.history {
		fields := strings.Fields(rec.FENBefore)
		side, num := fields[1], fields[5]
		switch {
		case side == "w":
			tokens = append(tokens, num+".", rec.SAN)
		case i == 0:
			tokens = append(tokens, num+"...", rec.SAN)
		default:
			tokens = append(tokens, rec.SAN)
		}
	}
	return strings.Join(tokens, " ")
}

// PGN exports the game as a PGN document: the seven-tag roster, SetUp
// and FEN tags when the game began away from the standard start, then
// the movetext and result.
func (g *Game) PGN() string {
	var sb strings.Builder
	tag := func(name, value string) {
		fmt.Fprintf(&sb, "[%s %q]\n", name, value)
	}

	date := time.Now().Format("2006.01.02")
	if len(g.history) > 0 {
		date = g.history[0].Timestamp.Format("2006.01.02")
	}

	tag("Event", "Casual Game")
	tag("Site", "?")
	tag("Date", date)
	tag("Round", "?")
	tag("White", "?")
	tag("Black", "?")
	tag("Result", g.Outcome())
	if g.startFEN != board.StartFEN {
		tag("SetUp", "1")
		tag("FEN", g.startFEN)
	}
	sb.WriteString("\n")

	if text := g.MoveText(); text != "" {
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	sb.WriteString(g.Outcome())
	sb.WriteString("\n")
	return sb.String()
}
