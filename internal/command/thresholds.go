package command

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/keshon/aisling/internal/storage"
	"github.com/keshon/aisling/pkg/cmd"
)

type ThresholdKind string

const (
	Reply    ThresholdKind = "reply"
	Reaction ThresholdKind = "reaction"
)

const (
	msgOutOfRange = "Please enter a percentage between 0 and 100."
	msgInvalid    = "Invalid input. Please enter a valid percentage between 0 and 100."
)

// SetThresholdCommand sets one of the channel probabilities from a percentage.
// The other probability is read first and written back unchanged.
type SetThresholdCommand struct {
	Kind  ThresholdKind
	Store storage.ProbabilityStore
}

func (c *SetThresholdCommand) Name() string { return "set_" + string(c.Kind) + "_threshold" }

func (c *SetThresholdCommand) Description() string {
	if c.Kind == Reaction {
		return "Set the reaction threshold (percentage of messages Aisling reacts to)."
	}
	return "Set the reply threshold (percentage of messages Aisling replies to)."
}

func (c *SetThresholdCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req := requestFrom(inv)
	if req == nil {
		return nil
	}
	channel := req.Msg.ChannelID

	if len(inv.Args) == 0 {
		return req.Sender.Send(ctx, channel, msgInvalid)
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(inv.Args[0], "%"), 64)
	if err != nil || math.IsNaN(pct) {
		return req.Sender.Send(ctx, channel, msgInvalid)
	}
	if pct < 0 || pct > 100 {
		return req.Sender.Send(ctx, channel, msgOutOfRange)
	}

	probs := c.Store.Load(ctx, req.Key)
	if c.Kind == Reaction {
		probs.Reaction = pct / 100
	} else {
		probs.Reply = pct / 100
	}
	if err := c.Store.Save(ctx, req.Key, probs); err != nil {
		_ = req.Sender.Send(ctx, channel, "Could not save the new threshold, please try again later.")
		return fmt.Errorf("save %s threshold for %s: %w", c.Kind, req.Key, err)
	}

	label := "Reply"
	if c.Kind == Reaction {
		label = "Reaction"
	}
	return req.Sender.Send(ctx, channel, fmt.Sprintf("%s threshold set to %s%%", label, formatPercent(pct)))
}

// ThresholdsCommand shows the channel's current probabilities.
type ThresholdsCommand struct {
	Store storage.ProbabilityStore
}

func (c *ThresholdsCommand) Name() string        { return "thresholds" }
func (c *ThresholdsCommand) Description() string { return "Shows the reply and reaction thresholds for this channel." }

func (c *ThresholdsCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req := requestFrom(inv)
	if req == nil {
		return nil
	}
	p := c.Store.Load(ctx, req.Key)
	return req.Sender.Send(ctx, req.Msg.ChannelID, fmt.Sprintf("Reply threshold: %s%%\nReaction threshold: %s%%",
		formatPercent(p.Reply*100), formatPercent(p.Reaction*100)))
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
