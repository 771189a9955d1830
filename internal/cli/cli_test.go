package cli_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
	"github.com/JanGitHop/j-chess-sub000/internal/book"
	"github.com/JanGitHop/j-chess-sub000/internal/cli"
	"github.com/JanGitHop/j-chess-sub000/internal/game"
	"github.com/JanGitHop/j-chess-sub000/internal/opening"
	"github.com/JanGitHop/j-chess-sub000/internal/storage"
)

// runShell feeds input to a fresh shell and returns everything it
// printed.
func runShell(t *testing.T, opts cli.Options, input string) string {
	t.Helper()
	var out bytes.Buffer
	opts.In = strings.NewReader(input)
	opts.Out = &out
	if err := cli.New(opts).Run(); err != nil {
		t.Fatalf("shell: %v", err)
	}
	return out.String()
}

func wantOutput(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Errorf("output missing %q, got:\n%s", f, out)
		}
	}
}

func TestPlayMoveUCI(t *testing.T) {
	out := runShell(t, cli.Options{}, "move e2e4\nquit\n")
	wantOutput(t, out, "played e4 (e2e4)", "Black to move")
}

func TestPlayMoveSAN(t *testing.T) {
	out := runShell(t, cli.Options{}, "move Nf3\nquit\n")
	wantOutput(t, out, "played Nf3 (g1f3)")
}

func TestIllegalMove(t *testing.T) {
	out := runShell(t, cli.Options{}, "move e2e5\nmove xyzzy\nquit\n")
	wantOutput(t, out,
		"illegal move e2e5: not a legal move",
		`cannot read move "xyzzy"`)
}

func TestPromotionHint(t *testing.T) {
	g := game.New()
	if err := g.LoadFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	out := runShell(t, cli.Options{Game: g}, "move a7a8\nmove a7a8q\nquit\n")
	wantOutput(t, out,
		"requires a promotion piece (append a piece letter, e.g. a7a8q)",
		"played a8=Q (a7a8q)")
}

func TestMovesFromSquare(t *testing.T) {
	out := runShell(t, cli.Options{}, "moves e2\nmoves e5\nquit\n")
	wantOutput(t, out, "e3 e4", "no moves from e5")
}

func TestMovesAll(t *testing.T) {
	out := runShell(t, cli.Options{}, "moves\nquit\n")
	wantOutput(t, out, "Nf3", "e4", "h3")
}

func TestFENAndLoad(t *testing.T) {
	const endgame = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	out := runShell(t, cli.Options{}, "fen\nload "+endgame+"\nfen\nquit\n")
	wantOutput(t, out, board.StartFEN, endgame)
}

func TestLoadBadFEN(t *testing.T) {
	out := runShell(t, cli.Options{}, "load not a position\nfen\nquit\n")
	// The running game is untouched by the failed load.
	wantOutput(t, out, board.StartFEN)
}

func TestUndoCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "move e2e4\nundo\nfen\nundo\nquit\n")
	wantOutput(t, out, board.StartFEN, "no moves to undo")
}

func TestNewCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "move e2e4\nnew\nfen\nquit\n")
	wantOutput(t, out, board.StartFEN)
}

func TestStatusCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "status\nquit\n")
	wantOutput(t, out, "status: active", "White to move")
}

func TestStatusReportsCheckers(t *testing.T) {
	g := game.New()
	if err := g.LoadFEN("4k3/8/8/8/4r3/8/3P4/4K3 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	out := runShell(t, cli.Options{Game: g}, "status\nquit\n")
	wantOutput(t, out, "status: check", "check from: e4")
}

func TestResignCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "resign\nmove e2e4\nquit\n")
	wantOutput(t, out, "White resigns. 0-1", "game already finished")
}

func TestResignNamedColor(t *testing.T) {
	out := runShell(t, cli.Options{}, "resign black\nquit\n")
	wantOutput(t, out, "Black resigns. 1-0")
}

func TestOpeningCommand(t *testing.T) {
	eco, err := opening.NewBookECO()
	if err != nil {
		t.Fatalf("NewBookECO: %v", err)
	}
	in := "opening\nmove e2e4\nmove d7d5\nopening\nquit\n"
	out := runShell(t, cli.Options{ECO: eco}, in)
	wantOutput(t, out, "out of book", "B01 Scandinavian Defense")
}

func TestOpeningWithoutData(t *testing.T) {
	out := runShell(t, cli.Options{}, "opening\nquit\n")
	wantOutput(t, out, "no opening data loaded")
}

func TestBookCommand(t *testing.T) {
	g := game.New()
	pos := g.Position()

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint64(pos.Key()))
	move := uint16(board.E4)&0x3F | (uint16(board.E2)&0x3F)<<6
	binary.Write(&buf, binary.BigEndian, move)
	binary.Write(&buf, binary.BigEndian, uint16(50))
	binary.Write(&buf, binary.BigEndian, uint32(0))

	bk, err := book.LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	out := runShell(t, cli.Options{Game: g, Book: bk}, "book\nmove e2e4\nbook\nquit\n")
	wantOutput(t, out, "weight 50", "position not in book")
}

func TestBookWithoutFile(t *testing.T) {
	out := runShell(t, cli.Options{}, "book\nquit\n")
	wantOutput(t, out, "no book loaded")
}

func TestPerftCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "perft 3\nperft zero\nquit\n")
	wantOutput(t, out, "Nodes: 8902", "usage: perft [depth]")
}

func TestSaveGamesRestore(t *testing.T) {
	store, err := storage.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := runShell(t, cli.Options{Store: store},
		"move e2e4\nmove e7e5\nsave\nquit\n")
	wantOutput(t, out, "saved ")

	games, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("saved games = %d, want 1", len(games))
	}
	id := games[0].ID.String()

	in := "games\nrestore " + id[:8] + "\nstatus\nquit\n"
	out = runShell(t, cli.Options{Store: store}, in)
	wantOutput(t, out, id, "2 moves", "restored "+id, "White to move")
}

func TestRestoreUnknownID(t *testing.T) {
	store, err := storage.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := runShell(t, cli.Options{Store: store}, "restore deadbeef\nquit\n")
	wantOutput(t, out, "game not found: deadbeef")
}

func TestStoreDisabled(t *testing.T) {
	out := runShell(t, cli.Options{}, "save\ngames\nrestore x\nquit\n")
	if got := strings.Count(out, "saved-game store disabled"); got != 3 {
		t.Errorf("disabled notice printed %d times, want 3\n%s", got, out)
	}
}

func TestPGNCommand(t *testing.T) {
	in := "move f2f3\nmove e7e5\nmove g2g4\nmove Qh4\npgn\nquit\n"
	out := runShell(t, cli.Options{}, in)
	wantOutput(t, out,
		"game over: checkmate 0-1",
		`[Result "0-1"]`,
		"1. f3 e5 2. g4 Qh4# 0-1")
}

func TestUnknownCommand(t *testing.T) {
	out := runShell(t, cli.Options{}, "flip\nquit\n")
	wantOutput(t, out, `unknown command "flip" (try 'help')`)
}

func TestHelp(t *testing.T) {
	out := runShell(t, cli.Options{}, "help\nquit\n")
	wantOutput(t, out, "move <uci|san>", "restore <id>")
}
