// Package cli implements the interactive game shell: a line-oriented
// command loop that drives one game and its collaborators (opening
// data, Polyglot book, saved-game store).
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
	"github.com/JanGitHop/j-chess-sub000/internal/book"
	"github.com/JanGitHop/j-chess-sub000/internal/game"
	"github.com/JanGitHop/j-chess-sub000/internal/opening"
	"github.com/JanGitHop/j-chess-sub000/internal/storage"
)

// Options configures the shell. Game defaults to a fresh standard
// game, In/Out to stdin/stdout; the other collaborators stay disabled
// when unset.
type Options struct {
	Game  *game.Game
	ECO   opening.Book
	Book  *book.Book
	Store *storage.Store
	In    io.Reader
	Out   io.Writer
}

// Shell is the interactive command loop.
type Shell struct {
	game  *game.Game
	eco   opening.Book
	book  *book.Book
	store *storage.Store
	in    io.Reader
	out   io.Writer
}

// New builds a shell from the given options.
func New(opts Options) *Shell {
	s := &Shell{
		game:  opts.Game,
		eco:   opts.ECO,
		book:  opts.Book,
		store: opts.Store,
		in:    opts.In,
		out:   opts.Out,
	}
	if s.game == nil {
		s.game = game.New()
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	return s
}

// Run reads commands until quit or end of input.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "jchess. Type 'help' for commands.")
	s.printBoard()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		s.dispatch(cmd, args)
	}
}

func (s *Shell) dispatch(cmd string, args []string) {
	switch cmd {
	case "move", "m":
		s.handleMove(args)
	case "moves":
		s.handleMoves(args)
	case "board", "d":
		s.printBoard()
	case "fen":
		fmt.Fprintln(s.out, s.game.FEN())
	case "load":
		s.handleLoad(args)
	case "new":
		s.game = game.New()
		s.printBoard()
	case "status":
		s.handleStatus()
	case "undo":
		s.handleUndo()
	case "resign":
		s.handleResign(args)
	case "opening":
		s.handleOpening()
	case "book":
		s.handleBook()
	case "perft":
		s.handlePerft(args)
	case "save":
		s.handleSave()
	case "games":
		s.handleGames()
	case "restore":
		s.handleRestore(args)
	case "pgn":
		fmt.Fprint(s.out, s.game.PGN())
	case "help":
		s.printHelp()
	default:
		fmt.Fprintf(s.out, "unknown command %q (try 'help')\n", cmd)
	}
}

// handleMove accepts a move in UCI ("e2e4", "a7a8q") or SAN ("Nf3",
// "O-O", "a8=Q") form.
func (s *Shell) handleMove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: move <uci|san>")
		return
	}

	pos := s.game.Position()
	m, err := board.ParseMove(args[0], &pos)
	if err != nil {
		san, sanErr := board.ParseSAN(args[0], &pos)
		if sanErr != nil {
			fmt.Fprintf(s.out, "cannot read move %q\n", args[0])
			return
		}
		m = san
	}

	rec, err := s.game.AttemptMove(m.From, m.To, m.Promotion)
	if err != nil {
		var needs *game.NeedsPromotionError
		if errors.As(err, &needs) {
			fmt.Fprintf(s.out, "%v (append a piece letter, e.g. %s%sq)\n", err, needs.From, needs.To)
			return
		}
		fmt.Fprintln(s.out, err)
		return
	}

	fmt.Fprintf(s.out, "played %s (%s)\n", rec.SAN, rec.Move)
	s.printBoard()
	s.printStatusLine()
}

// handleMoves lists legal moves: destinations for one square, or all
// moves in SAN when no square is given.
func (s *Shell) handleMoves(args []string) {
	if len(args) == 1 {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		dests := s.game.LegalMoves(sq)
		if len(dests) == 0 {
			fmt.Fprintf(s.out, "no moves from %s\n", sq)
			return
		}
		strs := make([]string, len(dests))
		for i, d := range dests {
			strs[i] = d.String()
		}
		fmt.Fprintln(s.out, strings.Join(strs, " "))
		return
	}

	pos := s.game.Position()
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		fmt.Fprintln(s.out, "no legal moves")
		return
	}
	sans := make([]string, 0, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		sans = append(sans, legal.Get(i).ToSAN(&pos))
	}
	fmt.Fprintln(s.out, strings.Join(sans, " "))
}

func (s *Shell) handleLoad(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: load <fen>")
		return
	}
	if err := s.game.LoadFEN(strings.Join(args, " ")); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.printBoard()
	s.printStatusLine()
}

func (s *Shell) handleStatus() {
	fmt.Fprintf(s.out, "status: %s\n", s.game.Status())
	if s.game.InCheck() {
		checkers := s.game.AttackingSquares()
		strs := make([]string, len(checkers))
		for i, sq := range checkers {
			strs[i] = sq.String()
		}
		fmt.Fprintf(s.out, "check from: %s\n", strings.Join(strs, " "))
	}
	if s.game.Status().Terminal() {
		fmt.Fprintf(s.out, "result: %s\n", s.game.Outcome())
	} else {
		fmt.Fprintf(s.out, "%s to move\n", s.game.Turn())
	}
}

func (s *Shell) handleUndo() {
	if err := s.game.Undo(); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.printBoard()
	s.printStatusLine()
}

func (s *Shell) handleResign(args []string) {
	c := s.game.Turn()
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "white", "w":
			c = board.White
		case "black", "b":
			c = board.Black
		default:
			fmt.Fprintln(s.out, "usage: resign [white|black]")
			return
		}
	}
	if err := s.game.Resign(c); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "%s resigns. %s\n", c, s.game.Outcome())
}

func (s *Shell) handleOpening() {
	if s.eco == nil {
		fmt.Fprintln(s.out, "no opening data loaded")
		return
	}
	var moves []board.Move
	for _, rec := range s.game.History() {
		moves = append(moves, rec.Move)
	}
	o := s.eco.Find(moves)
	if o == nil {
		fmt.Fprintln(s.out, "out of book")
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", o.Code(), o.Title())
}

func (s *Shell) handleBook() {
	if s.book == nil {
		fmt.Fprintln(s.out, "no book loaded (start with -book <file>)")
		return
	}
	pos := s.game.Position()
	entries := s.book.Probe(&pos)
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "position not in book")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%-7s weight %d\n", e.Move.ToSAN(&pos), e.Weight)
	}
}

func (s *Shell) handlePerft(args []string) {
	depth := 4
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			fmt.Fprintln(s.out, "usage: perft [depth]")
			return
		}
		depth = d
	}

	pos := s.game.Position()
	start := time.Now()
	nodes := board.Perft(&pos, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(s.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (s *Shell) handleSave() {
	if s.store == nil {
		fmt.Fprintln(s.out, "saved-game store disabled")
		return
	}
	sg := storage.NewSavedGame(s.game)
	if err := s.store.Put(sg); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "saved %s\n", sg.ID)
}

func (s *Shell) handleGames() {
	if s.store == nil {
		fmt.Fprintln(s.out, "saved-game store disabled")
		return
	}
	games, err := s.store.List()
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if len(games) == 0 {
		fmt.Fprintln(s.out, "no saved games")
		return
	}
	for _, sg := range games {
		fmt.Fprintf(s.out, "%s  %s  %3d moves  %-15s %s\n",
			sg.ID, sg.UpdatedAt.Format("2006-01-02 15:04"),
			len(sg.Moves), sg.Status, sg.Outcome)
	}
}

func (s *Shell) handleRestore(args []string) {
	if s.store == nil {
		fmt.Fprintln(s.out, "saved-game store disabled")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: restore <id>")
		return
	}

	sg, err := s.findSaved(args[0])
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	g, err := sg.Rebuild()
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}

	s.game = g
	fmt.Fprintf(s.out, "restored %s\n", sg.ID)
	s.printBoard()
	s.printStatusLine()
}

// findSaved resolves a full id or a unique id prefix.
func (s *Shell) findSaved(idText string) (*storage.SavedGame, error) {
	if id, err := uuid.Parse(idText); err == nil {
		return s.store.Get(id)
	}

	games, err := s.store.List()
	if err != nil {
		return nil, err
	}
	var match *storage.SavedGame
	for _, sg := range games {
		if strings.HasPrefix(sg.ID.String(), idText) {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", idText)
			}
			match = sg
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, idText)
	}
	return match, nil
}

func (s *Shell) printBoard() {
	pos := s.game.Position()
	fmt.Fprintln(s.out, pos.String())
}

func (s *Shell) printStatusLine() {
	st := s.game.Status()
	switch {
	case st.Terminal():
		fmt.Fprintf(s.out, "game over: %s %s\n", st, s.game.Outcome())
	case st == game.StatusCheck:
		fmt.Fprintf(s.out, "%s to move, in check\n", s.game.Turn())
	default:
		fmt.Fprintf(s.out, "%s to move\n", s.game.Turn())
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `commands:
  move <uci|san>    play a move (e2e4, Nf3, O-O, a7a8q)
  moves [square]    list legal moves, or destinations for a square
  board             print the board
  fen               print the position as FEN
  load <fen>        replace the game with a position
  new               start a fresh game
  status            game status, checkers, result
  undo              take back the last move
  resign [color]    resign for the side to move or a named color
  opening           name the opening of the game so far
  book              list book moves for the position
  perft [depth]     count move paths from the position
  save              store the game
  games             list stored games
  restore <id>      load a stored game (id prefix works)
  pgn               print the game as PGN
  quit              leave
`)
}
