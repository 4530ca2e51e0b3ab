package chat

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/storage"
	"github.com/keshon/aisling/internal/trigger"
	"github.com/keshon/aisling/pkg/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CommandRouter runs prefix commands. It reports whether msg was a command.
type CommandRouter interface {
	Route(ctx context.Context, msg Message) bool
}

type Dispatcher struct {
	botID     atomic.Value // string
	commands  CommandRouter
	store     storage.ProbabilityStore
	history   *history.Manager
	trigger   *trigger.Evaluator
	responder *Responder
	reactor   *Reactor
	lanes     *util.Lanes
	metrics   *metrics.Metrics
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

type DispatcherDeps struct {
	Commands  CommandRouter // may be nil
	Store     storage.ProbabilityStore
	History   *history.Manager
	Trigger   *trigger.Evaluator
	Responder *Responder
	Reactor   *Reactor
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
}

func NewDispatcher(d DispatcherDeps) *Dispatcher {
	disp := &Dispatcher{
		commands:  d.Commands,
		store:     d.Store,
		history:   d.History,
		trigger:   d.Trigger,
		responder: d.Responder,
		reactor:   d.Reactor,
		lanes:     util.NewLanes(),
		metrics:   d.Metrics,
		log:       d.Log,
	}
	disp.botID.Store("")
	return disp
}

// SetBotID records the bot's own user id once the session is ready.
func (d *Dispatcher) SetBotID(id string) { d.botID.Store(id) }

func (d *Dispatcher) BotID() string { return d.botID.Load().(string) }

// Dispatch handles one inbound message. Work for a channel runs in arrival
// order on that channel's lane; channels proceed independently. Messages
// arriving after Close are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	botID := d.BotID()
	if msg.AuthorID == botID {
		return
	}

	log := d.log.With().
		Str("dispatch_id", uuid.NewString()).
		Str("guild_id", msg.GuildID).
		Str("channel_id", msg.ChannelID).
		Str("message_id", msg.ID).
		Logger()
	ctx = log.WithContext(ctx)

	d.lanes.Go(msg.ChannelID, func() {
		d.handle(ctx, msg, botID)
	})
}

func (d *Dispatcher) handle(ctx context.Context, msg Message, botID string) {
	log := zerolog.Ctx(ctx)

	if d.commands != nil {
		d.commands.Route(ctx, msg)
	}

	key := storage.KeyFor(msg.GuildID, msg.ChannelID)
	probs := d.store.Load(ctx, key)
	d.history.Ensure(msg.ChannelID)

	res := d.trigger.Evaluate(trigger.Input{
		BotID:      botID,
		MentionIDs: msg.MentionIDs,
		GuildID:    msg.GuildID,
		Content:    msg.Content,
	}, probs.Reply)

	reason := res.Reason()
	if reason == "" {
		reason = "none"
	}
	d.metrics.MessagesTotal.WithLabelValues(reason).Inc()

	if d.trigger.Roll(probs.Reaction) {
		if err := d.reactor.React(ctx, msg); err != nil {
			log.Warn().Err(err).Msg("reaction skipped")
		}
	}

	if !res.ShouldRespond() {
		return
	}
	log.Debug().Str("trigger", reason).Msg("responding")
	if err := d.responder.Respond(ctx, msg, key); err != nil {
		log.Error().Err(err).Msg("no reply sent")
	}
}

// Wait blocks until every queued message has been handled.
func (d *Dispatcher) Wait() {
	d.lanes.Wait()
}

// Close stops accepting messages, then drains the lanes and the reaction pool.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.lanes.Wait()
	d.reactor.Close()
}
