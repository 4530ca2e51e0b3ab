package chat

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/persona"
	"github.com/keshon/aisling/internal/sentiment"
	"github.com/keshon/aisling/pkg/util"

	"github.com/rs/zerolog"
)

// PoolFor returns the emoji pool matching a compound sentiment score.
func PoolFor(score float64) []string {
	return persona.Emojis(persona.MoodFor(score))
}

// Reactor adds a sentiment-matched emoji to messages. Scoring runs on a
// bounded worker pool off the dispatch path.
type Reactor struct {
	analyzer sentiment.Analyzer
	platform Platform
	pool     *util.Pool
	metrics  *metrics.Metrics
}

func NewReactor(analyzer sentiment.Analyzer, platform Platform, workers int, m *metrics.Metrics) *Reactor {
	return &Reactor{
		analyzer: analyzer,
		platform: platform,
		pool:     util.NewPool(workers, 64),
		metrics:  m,
	}
}

// React queues a reaction for msg and returns without waiting for it.
func (r *Reactor) React(ctx context.Context, msg Message) error {
	log := zerolog.Ctx(ctx)
	err := r.pool.Submit(ctx, func() {
		mood := persona.MoodFor(r.analyzer.Compound(msg.Content))
		pool := persona.Emojis(mood)
		emoji := pool[rand.IntN(len(pool))]

		if err := r.platform.React(ctx, msg.ChannelID, msg.ID, emoji); err != nil {
			r.metrics.ReactionsTotal.WithLabelValues(string(mood), metrics.OutcomeFailed).Inc()
			log.Error().Err(err).Str("emoji", emoji).Msg("failed to add reaction")
			return
		}
		r.metrics.ReactionsTotal.WithLabelValues(string(mood), metrics.OutcomeSent).Inc()
		log.Debug().Str("emoji", emoji).Str("mood", string(mood)).Msg("reaction added")
	})
	if err != nil {
		return fmt.Errorf("queue reaction: %w", err)
	}
	return nil
}

// Close waits for queued reactions.
func (r *Reactor) Close() {
	r.pool.Close()
}
