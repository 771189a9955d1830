package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/JanGitHop/j-chess-sub000/internal/board"
	"github.com/JanGitHop/j-chess-sub000/internal/game"
)

const gamePrefix = "game:"

// ErrNotFound reports a lookup for a game id the store does not hold.
var ErrNotFound = errors.New("game not found")

// SavedGame is the stored form of one game.
type SavedGame struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	StartFEN  string            `json:"startFen"`
	FinalFEN  string            `json:"finalFen"`
	Status    game.Status       `json:"status"`
	Outcome   string            `json:"outcome"`
	Moves     []game.MoveRecord `json:"moves"`
	MoveText  string            `json:"moveText"`
}

// NewSavedGame snapshots a game for storage under a fresh id.
func NewSavedGame(g *game.Game) *SavedGame {
	now := time.Now()
	return &SavedGame{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		StartFEN:  g.StartFEN(),
		FinalFEN:  g.FEN(),
		Status:    g.Status(),
		Outcome:   g.Outcome(),
		Moves:     g.History(),
		MoveText:  g.MoveText(),
	}
}

// Rebuild replays the saved moves into a fresh game. A saved
// resignation is applied again after the replay so the restored game
// reports the same status and outcome.
func (sg *SavedGame) Rebuild() (*game.Game, error) {
	g := game.New()
	if err := g.LoadFEN(sg.StartFEN); err != nil {
		return nil, err
	}
	for _, rec := range sg.Moves {
		if _, err := g.AttemptMove(rec.Move.From, rec.Move.To, rec.Move.Promotion); err != nil {
			return nil, fmt.Errorf("replay %s: %w", rec.Move, err)
		}
	}
	if sg.Status == game.StatusResigned {
		resigner := board.White
		if sg.Outcome == "1-0" {
			resigner = board.Black
		}
		if err := g.Resign(resigner); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Store wraps BadgerDB for saved games.
type Store struct {
	db *badger.DB
}

// Open opens the store in the platform database directory.
func Open() (*Store, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store in the given directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id uuid.UUID) []byte {
	return []byte(gamePrefix + id.String())
}

// Put writes a saved game, stamping its update time.
func (s *Store) Put(sg *SavedGame) error {
	sg.UpdatedAt = time.Now()

	data, err := json.Marshal(sg)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(sg.ID), data)
	})
}

// Get loads one saved game by id.
func (s *Store) Get(id uuid.UUID) (*SavedGame, error) {
	var sg SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sg)
		})
	})
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

// List returns all saved games, most recently updated first.
func (s *Store) List() ([]*SavedGame, error) {
	var games []*SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var sg SavedGame
				if err := json.Unmarshal(val, &sg); err != nil {
					return err
				}
				games = append(games, &sg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
	return games, nil
}

// Delete removes a saved game by id.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
