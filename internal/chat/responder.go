package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keshon/aisling/internal/ai"
	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/storage"
	"github.com/keshon/aisling/internal/transcript"

	"github.com/rs/zerolog"
)

const typingInterval = 8 * time.Second

type ResponderConfig struct {
	SystemPrompt string
	Timeout      time.Duration
}

// Responder asks the completion service for the persona's next turn and
// posts it as a reply.
type Responder struct {
	provider    ai.Provider
	history     *history.Manager
	transcripts *transcript.Logger
	platform    Platform
	metrics     *metrics.Metrics
	cfg         ResponderConfig
	typingEvery time.Duration
}

func NewResponder(cfg ResponderConfig, provider ai.Provider, hist *history.Manager, transcripts *transcript.Logger, platform Platform, m *metrics.Metrics) *Responder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Responder{
		provider:    provider,
		history:     hist,
		transcripts: transcripts,
		platform:    platform,
		metrics:     m,
		cfg:         cfg,
		typingEvery: typingInterval,
	}
}

// Respond replies to msg. If nothing reaches the channel the history is left
// untouched. A transcript failure is logged and does not fail the call.
func (r *Responder) Respond(ctx context.Context, msg Message, key storage.Key) error {
	log := zerolog.Ctx(ctx)

	past := r.history.Get(msg.ChannelID)
	user := ai.User(msg.Content)
	messages := make([]ai.Message, 0, len(past)+2)
	messages = append(messages, ai.System(r.cfg.SystemPrompt))
	messages = append(messages, past...)
	messages = append(messages, user)

	stopTyping := r.keepTyping(ctx, msg.ChannelID)
	genCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	start := time.Now()
	reply, err := r.provider.Generate(genCtx, messages)
	cancel()
	stopTyping()
	r.metrics.ObserveCompletion(time.Since(start))

	if err == nil && reply == "" {
		err = ai.ErrEmptyCompletion
	}
	if err != nil {
		r.metrics.RepliesTotal.WithLabelValues(outcomeFor(err)).Inc()
		return fmt.Errorf("generate reply: %w", err)
	}

	// Once the first chunk is visible the turn counts as sent; a later chunk
	// failing is logged and the full reply is still recorded.
	chunks := splitMessage(reply, MaxMessageLength)
	for i, chunk := range chunks {
		err := r.platform.Reply(ctx, msg.ChannelID, msg.ID, chunk)
		if err == nil {
			continue
		}
		if i == 0 {
			r.metrics.RepliesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			return fmt.Errorf("send reply: %w", err)
		}
		log.Warn().Err(err).Int("delivered", i).Int("chunks", len(chunks)).Msg("reply partially delivered")
		break
	}
	r.metrics.RepliesTotal.WithLabelValues(metrics.OutcomeSent).Inc()

	assistant := ai.Assistant(reply)
	r.history.Append(msg.ChannelID, user, assistant)

	if err := r.transcripts.Append(key, []ai.Message{user, assistant}, r.cfg.SystemPrompt); err != nil {
		r.metrics.WriteFailures.WithLabelValues("transcript").Inc()
		log.Error().Err(err).Str("file", r.transcripts.Path(key)).Msg("transcript append failed")
	}

	log.Debug().Int("reply_len", len(reply)).Int("history_len", r.history.Len(msg.ChannelID)).Msg("reply sent")
	return nil
}

// keepTyping shows the typing indicator until the returned func is called.
func (r *Responder) keepTyping(ctx context.Context, channelID string) func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	log := zerolog.Ctx(ctx)

	go func() {
		defer close(stopped)
		if err := r.platform.Typing(ctx, channelID); err != nil {
			log.Debug().Err(err).Msg("typing indicator failed")
		}
		ticker := time.NewTicker(r.typingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.platform.Typing(ctx, channelID); err != nil {
					log.Debug().Err(err).Msg("typing indicator failed")
				}
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, ai.ErrEmptyCompletion) {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeFailed
}
