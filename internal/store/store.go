// Package store persists the application state document in SQLite.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/saadjs/healthy-cli/internal/model"
)

// Store owns the single state document row. Every call is one atomic turn.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Load returns the persisted state, or fresh defaults when nothing is stored
// or the stored document cannot be decoded.
func (s *Store) Load() (model.State, error) {
	raw, ok, err := getValue(s.db, model.StorageKey)
	if err != nil {
		return model.State{}, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return model.DefaultState(), nil
	}
	st, err := Decode([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Msg("stored state is unreadable, starting from defaults")
		return model.DefaultState(), nil
	}
	return st, nil
}

func (s *Store) Save(st model.State) error {
	b, err := Encode(st, false)
	if err != nil {
		return err
	}
	if err := setValue(s.db, model.StorageKey, string(b)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result. When fn fails
// nothing is written.
func (s *Store) Update(fn func(model.State) (model.State, error)) (model.State, error) {
	st, err := s.Load()
	if err != nil {
		return model.State{}, err
	}
	next, err := fn(st)
	if err != nil {
		return st, err
	}
	if err := s.Save(next); err != nil {
		return st, err
	}
	return next, nil
}

// Raw returns the stored document bytes exactly as written.
func (s *Store) Raw() ([]byte, bool, error) {
	raw, ok, err := getValue(s.db, model.StorageKey)
	if err != nil {
		return nil, false, fmt.Errorf("read state: %w", err)
	}
	return []byte(raw), ok, nil
}

// Reset drops the stored document; the next Load yields defaults.
func (s *Store) Reset() error {
	if err := deleteValue(s.db, model.StorageKey); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	return nil
}
