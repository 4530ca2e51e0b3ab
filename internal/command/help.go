package command

import (
	"context"

	"github.com/keshon/aisling/internal/persona"
	"github.com/keshon/aisling/pkg/cmd"
)

type HelpCommand struct {
	Prefix string
}

func (c *HelpCommand) Name() string        { return "aisling_help" }
func (c *HelpCommand) Description() string { return "Displays the help message with a list of available commands." }
func (c *HelpCommand) Aliases() []string   { return []string{"aisling_commands", "aislinghelp"} }

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req := requestFrom(inv)
	if req == nil {
		return nil
	}
	if err := req.Sender.SendHelp(ctx, req.Msg.ChannelID, persona.HelpFor(c.Prefix)); err != nil {
		_ = req.Sender.Send(ctx, req.Msg.ChannelID, "An error occurred while displaying the help message.")
		return err
	}
	return nil
}
