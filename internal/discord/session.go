// Package discord connects the chat pipeline to a Discord gateway session.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// NewSession creates an unopened session. Events are delivered one at a time
// in arrival order; handlers hand long work to the dispatcher's lanes.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = intents
	dg.SyncEvents = true
	dg.StateEnabled = true
	return dg, nil
}
