package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/keshon/aisling/internal/chat"
	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/pkg/jobmgr"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type Options struct {
	HistoryIdleTTL  time.Duration
	CleanupInterval time.Duration
	PresenceEvery   time.Duration
}

// Bot owns the gateway session and the background jobs around it.
type Bot struct {
	dg         *discordgo.Session
	dispatcher *chat.Dispatcher
	history    *history.Manager
	jobs       *jobmgr.Manager
	presence   *Presence
	opts       Options
	metrics    *metrics.Metrics
	log        zerolog.Logger

	ctx context.Context
}

func NewBot(dg *discordgo.Session, dispatcher *chat.Dispatcher, hist *history.Manager, opts Options, m *metrics.Metrics, log zerolog.Logger) *Bot {
	b := &Bot{
		dg:         dg,
		dispatcher: dispatcher,
		history:    hist,
		presence:   NewPresence(dg),
		opts:       opts,
		metrics:    m,
		log:        log,
		ctx:        context.Background(),
	}
	b.jobs = jobmgr.NewManager(func(s string) {
		b.log.Debug().Str("job", s).Msg("job status")
	})
	return b
}

// Run opens the session and blocks until ctx is done, then closes the
// session and drains in-flight work.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := b.jobs.Every("history-cleanup", b.opts.CleanupInterval,
		HistoryCleanup(b.history, b.opts.HistoryIdleTTL, b.metrics, b.log)); err != nil {
		b.log.Warn().Err(err).Msg("history cleanup not scheduled")
	}
	if err := b.jobs.Every("presence", b.opts.PresenceEvery, b.presence.Rotate); err != nil {
		b.log.Warn().Err(err).Msg("presence rotation not scheduled")
	}

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, cleaning up")

	// no new events once the session is closed; then drain what was queued
	closeErr := b.dg.Close()
	b.jobs.StopAll()
	b.dispatcher.Close()
	if closeErr != nil {
		return fmt.Errorf("close session: %w", closeErr)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.dispatcher.SetBotID(r.User.ID)
	if err := b.presence.Rotate(b.ctx); err != nil {
		b.log.Warn().Err(err).Msg("failed to set presence")
	}
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("discord bot is running")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	b.dispatcher.Dispatch(b.ctx, toMessage(m.Message))
}

func toMessage(m *discordgo.Message) chat.Message {
	msg := chat.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	for _, u := range m.Mentions {
		if u != nil {
			msg.MentionIDs = append(msg.MentionIDs, u.ID)
		}
	}
	return msg
}
