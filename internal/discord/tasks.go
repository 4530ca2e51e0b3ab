package discord

import (
	"context"
	"sync"
	"time"

	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/persona"

	"github.com/rs/zerolog"
)

// HistoryCleanup drops conversation histories idle for longer than ttl.
// Transcripts on disk are not touched.
func HistoryCleanup(hist *history.Manager, ttl time.Duration, m *metrics.Metrics, log zerolog.Logger) func(context.Context) error {
	return func(context.Context) error {
		evicted := hist.EvictIdle(ttl)
		tracked := len(hist.Channels())
		if m != nil {
			m.TrackedChannels.Set(float64(tracked))
		}
		if evicted > 0 {
			log.Info().Int("evicted", evicted).Int("tracked", tracked).Msg("idle histories evicted")
		}
		return nil
	}
}

// StatusSetter is satisfied by *discordgo.Session.
type StatusSetter interface {
	UpdateGameStatus(idle int, name string) error
}

// Presence cycles through the persona's status lines.
type Presence struct {
	setter StatusSetter
	mu     sync.Mutex
	next   int
}

func NewPresence(setter StatusSetter) *Presence {
	return &Presence{setter: setter}
}

// Rotate shows the next status line.
func (p *Presence) Rotate(context.Context) error {
	p.mu.Lock()
	line := persona.Status(p.next)
	p.next++
	p.mu.Unlock()
	return p.setter.UpdateGameStatus(0, line)
}
