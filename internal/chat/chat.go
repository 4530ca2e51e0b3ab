// Package chat turns inbound messages into persona replies and emoji reactions.
package chat

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Message is the platform-neutral view of an inbound message.
type Message struct {
	ID         string
	ChannelID  string
	GuildID    string // empty for direct messages
	AuthorID   string
	Content    string
	MentionIDs []string
}

// Platform is the subset of the chat platform the pipeline acts through.
type Platform interface {
	// Reply answers messageID without pinging its author.
	Reply(ctx context.Context, channelID, messageID, content string) error
	Typing(ctx context.Context, channelID string) error
	React(ctx context.Context, channelID, messageID, emoji string) error
}

// MaxMessageLength is Discord's limit for a single message.
const MaxMessageLength = 2000

// splitMessage cuts text into chunks of at most limit runes, preferring newline boundaries.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n > limit {
			flush()
		}
		for n > limit {
			r := []rune(line)
			chunks = append(chunks, string(r[:limit]))
			line = string(r[limit:])
			n -= limit
		}
		cur.WriteString(line)
		curLen += n
	}
	flush()
	return chunks
}
