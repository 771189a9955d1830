package main

import (
	"flag"
	"log"

	"github.com/JanGitHop/j-chess-sub000/internal/book"
	"github.com/JanGitHop/j-chess-sub000/internal/cli"
	"github.com/JanGitHop/j-chess-sub000/internal/game"
	"github.com/JanGitHop/j-chess-sub000/internal/opening"
	"github.com/JanGitHop/j-chess-sub000/internal/storage"
)

var (
	bookPath = flag.String("book", "", "Polyglot opening book to load")
	startFEN = flag.String("fen", "", "start from this position instead of the standard one")
	noStore  = flag.Bool("no-store", false, "run without the saved-game store")
)

func main() {
	flag.Parse()

	g := game.New()
	if *startFEN != "" {
		if err := g.LoadFEN(*startFEN); err != nil {
			log.Fatalf("bad -fen: %v", err)
		}
	}

	eco, err := opening.NewBookECO()
	if err != nil {
		log.Fatalf("opening data: %v", err)
	}

	var bk *book.Book
	if *bookPath != "" {
		bk, err = book.Load(*bookPath)
		if err != nil {
			log.Fatalf("book %s: %v", *bookPath, err)
		}
		log.Printf("book loaded: %d positions", bk.Size())
	}

	var store *storage.Store
	if !*noStore {
		store, err = storage.Open()
		if err != nil {
			log.Printf("Warning: saved-game store unavailable: %v", err)
			store = nil
		}
	}

	shell := cli.New(cli.Options{
		Game:  g,
		ECO:   eco,
		Book:  bk,
		Store: store,
	})
	runErr := shell.Run()

	// log.Fatal skips deferred calls, so the store closes here.
	if store != nil {
		if err := store.Close(); err != nil {
			log.Printf("Warning: closing store: %v", err)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
