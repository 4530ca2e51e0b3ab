package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	p, err := Load("", nil)
	require.NoError(t, err)
	assert.Contains(t, p.Prompt, "Meet Aisling")
	assert.Equal(t, DefaultTriggerWords, p.TriggerWords)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("  You are a test persona.\n"), 0o644))

	p, err := Load(path, []string{"tester"})
	require.NoError(t, err)
	assert.Equal(t, "You are a test persona.", p.Prompt)
	assert.Equal(t, []string{"tester"}, p.TriggerWords)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestMoodFor(t *testing.T) {
	assert.Equal(t, Positive, MoodFor(0.8))
	assert.Equal(t, Negative, MoodFor(-0.3))
	assert.Equal(t, Neutral, MoodFor(0.05))
	assert.Equal(t, Neutral, MoodFor(-0.05))
	assert.Len(t, Emojis(Positive), 5)
}

func TestStatusCycles(t *testing.T) {
	assert.Equal(t, Status(0), Status(len(statusLines)))
	assert.NotEqual(t, Status(0), Status(1))
}

func TestHelpUsesPrefix(t *testing.T) {
	h := HelpFor("a!")
	require.Len(t, h.Fields, 3)
	assert.Contains(t, h.Fields[0].Value, "**a!set_reply_threshold <percentage>**")
	assert.Contains(t, h.Fields[0].Value, "(0-100%)")
}

func TestHelpNamesThresholdPermission(t *testing.T) {
	h := HelpFor("e!")
	assert.Contains(t, h.Fields[0].Value, "Manage Channels permission")
}
