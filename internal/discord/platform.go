package discord

import (
	"context"

	"github.com/keshon/aisling/internal/persona"

	"github.com/bwmarrin/discordgo"
)

// Platform performs chat actions through the REST API.
type Platform struct {
	dg *discordgo.Session
}

func NewPlatform(dg *discordgo.Session) *Platform {
	return &Platform{dg: dg}
}

// Reply answers messageID without pinging its author.
func (p *Platform) Reply(ctx context.Context, channelID, messageID, content string) error {
	_, err := p.dg.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Reference: &discordgo.MessageReference{
			MessageID: messageID,
			ChannelID: channelID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse:       []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
			RepliedUser: false,
		},
	}, discordgo.WithContext(ctx))
	return err
}

func (p *Platform) Typing(ctx context.Context, channelID string) error {
	return p.dg.ChannelTyping(channelID, discordgo.WithContext(ctx))
}

func (p *Platform) React(ctx context.Context, channelID, messageID, emoji string) error {
	return p.dg.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func (p *Platform) Send(ctx context.Context, channelID, content string) error {
	_, err := p.dg.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

func (p *Platform) SendHelp(ctx context.Context, channelID string, help persona.Help) error {
	_, err := p.dg.ChannelMessageSendEmbed(channelID, helpEmbed(help), discordgo.WithContext(ctx))
	return err
}

func (p *Platform) UserChannelPermissions(_ context.Context, userID, channelID string) (int64, error) {
	return p.dg.UserChannelPermissions(userID, channelID)
}

const embedColor = 0x3498db

func helpEmbed(h persona.Help) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       h.Title,
		Description: h.Description,
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: h.Footer},
	}
	for _, f := range h.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}
	return e
}
