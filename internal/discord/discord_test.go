package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keshon/aisling/internal/ai"
	"github.com/keshon/aisling/internal/history"
	"github.com/keshon/aisling/internal/metrics"
	"github.com/keshon/aisling/internal/persona"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessage(t *testing.T) {
	m := &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "<@bot> hello",
		Author:    &discordgo.User{ID: "u1"},
		Mentions:  []*discordgo.User{{ID: "bot"}, nil},
	}
	msg := toMessage(m)
	assert.Equal(t, "u1", msg.AuthorID)
	assert.Equal(t, []string{"bot"}, msg.MentionIDs)
	assert.Equal(t, "g1", msg.GuildID)
}

func TestHelpEmbed(t *testing.T) {
	e := helpEmbed(persona.HelpFor("e!"))
	assert.Equal(t, "AislingBot Help", e.Title)
	require.Len(t, e.Fields, 3)
	assert.Equal(t, "General Commands", e.Fields[0].Name)
	assert.Equal(t, "Feel free to reach out if you have any questions!", e.Footer.Text)
}

func TestNewSessionRequiresToken(t *testing.T) {
	_, err := NewSession("")
	assert.Error(t, err)

	dg, err := NewSession("token")
	require.NoError(t, err)
	assert.True(t, dg.SyncEvents)
	assert.NotZero(t, dg.Identify.Intents&discordgo.IntentsMessageContent)
}

func TestHistoryCleanup(t *testing.T) {
	hist := history.New(10)
	hist.Append("c1", ai.User("hi"))
	m := metrics.New(prometheus.NewRegistry())

	task := HistoryCleanup(hist, time.Hour, m, zerolog.Nop())
	require.NoError(t, task(context.Background()))
	assert.Equal(t, []string{"c1"}, hist.Channels())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrackedChannels))

	require.NoError(t, HistoryCleanup(hist, -time.Second, m, zerolog.Nop())(context.Background()))
	assert.Empty(t, hist.Channels())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TrackedChannels))
}

type fakeStatus struct {
	lines []string
	err   error
}

func (f *fakeStatus) UpdateGameStatus(_ int, name string) error {
	f.lines = append(f.lines, name)
	return f.err
}

func TestPresenceRotates(t *testing.T) {
	fs := &fakeStatus{}
	p := NewPresence(fs)
	require.NoError(t, p.Rotate(context.Background()))
	require.NoError(t, p.Rotate(context.Background()))
	assert.Equal(t, []string{persona.Status(0), persona.Status(1)}, fs.lines)

	fs.err = errors.New("not connected")
	assert.Error(t, p.Rotate(context.Background()))
}
