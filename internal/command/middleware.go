package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const ManageChannels = discordgo.PermissionManageChannels

var permissionNames = map[int64]string{
	discordgo.PermissionAdministrator:  "Administrator",
	discordgo.PermissionManageChannels: "Manage Channels",
	discordgo.PermissionManageGuild:    "Manage Server",
	discordgo.PermissionManageMessages: "Manage Messages",
}

// WithUserPermission lets the command run in a guild only when the author has
// one of the required permissions or is an administrator. Direct messages
// are always allowed.
func WithUserPermission(required ...int64) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			req := requestFrom(inv)
			if req == nil || req.Msg.GuildID == "" || len(required) == 0 {
				return c.Run(ctx, inv)
			}

			perms, err := req.Sender.UserChannelPermissions(ctx, req.Msg.AuthorID, req.Msg.ChannelID)
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}
			for _, p := range required {
				if perms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			names := make([]string, 0, len(required))
			for _, p := range required {
				name := permissionNames[p]
				if name == "" {
					name = fmt.Sprintf("0x%x", p)
				}
				names = append(names, name)
			}
			msg := fmt.Sprintf("You need at least one of the following permissions to run this command:\n`%s`",
				strings.Join(names, "`, `"))
			return req.Sender.Send(ctx, req.Msg.ChannelID, msg)
		})
	}
}

// WithCommandLogger logs each run and counts it by status.
func WithCommandLogger(m *metrics.Metrics) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			status := "ok"
			ev := zerolog.Ctx(ctx).Info()
			if err != nil {
				status = "error"
				ev = zerolog.Ctx(ctx).Warn().Err(err)
			}
			if m != nil {
				m.CommandsTotal.WithLabelValues(c.Name(), status).Inc()
			}
			ev.Str("command", c.Name()).
				Strs("args", inv.Args).
				Dur("took", time.Since(start)).
				Msg("command executed")
			return err
		})
	}
}
