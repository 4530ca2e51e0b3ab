// Package command implements the prefix commands users type in chat, such as
// "e!set_reply_threshold 40".
package command

import (
	"context"

	"github.com/keshon/aisling/internal/chat"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/persona"
	"github.com/keshon/aisling/internal/storage"
	"github.com/keshon/aisling/pkg/cmd"

	"github.com/rs/zerolog"
)

// Sender is what commands need from the chat platform.
type Sender interface {
	Send(ctx context.Context, channelID, content string) error
	SendHelp(ctx context.Context, channelID string, help persona.Help) error
	// UserChannelPermissions returns the permission bitmask of userID in channelID.
	UserChannelPermissions(ctx context.Context, userID, channelID string) (int64, error)
}

// Request is the Invocation.Data every command receives.
type Request struct {
	Msg    chat.Message
	Key    storage.Key
	Sender Sender
}

func requestFrom(inv *cmd.Invocation) *Request {
	r, _ := inv.Data.(*Request)
	return r
}

// Router parses prefixed messages and runs the matching command.
type Router struct {
	prefix   string
	registry *cmd.Registry
	sender   Sender
	log      zerolog.Logger
}

type Deps struct {
	Prefix  string
	Store   storage.ProbabilityStore
	Sender  Sender
	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

// NewRouter registers the built-in commands.
func NewRouter(d Deps) (*Router, error) {
	r := &Router{
		prefix:   d.Prefix,
		registry: cmd.NewRegistry(),
		sender:   d.Sender,
		log:      d.Log,
	}

	logged := WithCommandLogger(d.Metrics)
	commands := []cmd.Command{
		cmd.Apply(&HelpCommand{Prefix: d.Prefix}, logged),
		cmd.Apply(&ThresholdsCommand{Store: d.Store}, logged),
		cmd.Apply(&SetThresholdCommand{Kind: Reply, Store: d.Store}, logged, WithUserPermission(ManageChannels)),
		cmd.Apply(&SetThresholdCommand{Kind: Reaction, Store: d.Store}, logged, WithUserPermission(ManageChannels)),
	}
	for _, c := range commands {
		if err := r.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Router) Commands() []cmd.Command { return r.registry.GetAll() }

// Route runs msg as a command when it carries the prefix and names a known
// command. Command errors are logged; the user has already been answered.
func (r *Router) Route(ctx context.Context, msg chat.Message) bool {
	inv, ok := cmd.Parse(r.prefix, msg.Content)
	if !ok {
		return false
	}
	c := r.registry.Get(inv.Name)
	if c == nil {
		return false
	}

	inv.Data = &Request{
		Msg:    msg,
		Key:    storage.KeyFor(msg.GuildID, msg.ChannelID),
		Sender: r.sender,
	}
	if err := c.Run(ctx, inv); err != nil {
		log := zerolog.Ctx(ctx)
		if log.GetLevel() == zerolog.Disabled {
			log = &r.log
		}
		log.Error().Err(err).Str("command", c.Name()).Msg("command failed")
	}
	return true
}
