// Package storage persists per-channel reply and reaction probabilities.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// DMGuild stands in for the guild id of direct-message channels.
const DMGuild = "DM"

var ErrOutOfRange = errors.New("probability must be within [0,1]")

// Key identifies a channel. Guild is DMGuild for direct messages.
type Key struct {
	Guild   string
	Channel string
}

// KeyFor builds the key for a channel, mapping an empty guild id to DMGuild.
func KeyFor(guildID, channelID string) Key {
	if guildID == "" {
		guildID = DMGuild
	}
	return Key{Guild: guildID, Channel: channelID}
}

func (k Key) IsDM() bool { return k.Guild == DMGuild }

func (k Key) String() string { return k.Guild + ":" + k.Channel }

type Probabilities struct {
	Reply    float64 `json:"reply_probability"`
	Reaction float64 `json:"reaction_probability"`
}

// Validate rejects values outside [0,1], NaN included.
func (p Probabilities) Validate() error {
	if !(p.Reply >= 0 && p.Reply <= 1) {
		return fmt.Errorf("reply %v: %w", p.Reply, ErrOutOfRange)
	}
	if !(p.Reaction >= 0 && p.Reaction <= 1) {
		return fmt.Errorf("reaction %v: %w", p.Reaction, ErrOutOfRange)
	}
	return nil
}

// ProbabilityStore loads and saves channel probabilities.
//
// Load never fails: a missing or unreadable record yields the defaults.
// Save replaces both fields and returns once the record is durable.
type ProbabilityStore interface {
	Load(ctx context.Context, key Key) Probabilities
	Save(ctx context.Context, key Key, p Probabilities) error
	Close() error
}

type Config struct {
	Driver   string // json, sqlite or postgres
	Path     string // json file
	DSN      string // sqlite file or postgres connection string
	Defaults Probabilities
}

// Open returns the store selected by cfg.Driver.
func Open(cfg Config, log zerolog.Logger) (ProbabilityStore, error) {
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	switch cfg.Driver {
	case "", "json":
		s, err := OpenJSON(cfg.Path, cfg.Defaults, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite", "postgres":
		s, err := OpenSQL(cfg.Driver, cfg.DSN, cfg.Defaults, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
