package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/keshon/aisling/datastore"

	"github.com/rs/zerolog"
)

// JSONStore keeps probabilities in a single JSON file keyed by "guild:channel".
type JSONStore struct {
	ds       *datastore.DataStore
	defaults Probabilities
	log      zerolog.Logger
}

func OpenJSON(path string, defaults Probabilities, log zerolog.Logger) (*JSONStore, error) {
	cfg := datastore.DefaultConfig(path)
	cfg.AutoSaveInterval = time.Minute
	cfg.Logger = log.With().Str("file", path).Logger()

	ds, err := datastore.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open probability file: %w", err)
	}
	return &JSONStore{ds: ds, defaults: defaults, log: log}, nil
}

func (s *JSONStore) Load(_ context.Context, key Key) Probabilities {
	var p Probabilities
	ok, err := s.ds.Get(key.String(), &p)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("unreadable probability record, using defaults")
		return s.defaults
	}
	if !ok {
		return s.defaults
	}
	if err := p.Validate(); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("stored probabilities out of range, using defaults")
		return s.defaults
	}
	return p
}

func (s *JSONStore) Save(_ context.Context, key Key, p Probabilities) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.ds.Put(key.String(), p); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	if err := s.ds.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", key, err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return s.ds.Close()
}
