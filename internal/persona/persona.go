// Package persona holds Aisling's character: the system prompt, the names she
// answers to, her reaction emoji and her status lines.
package persona

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed prompt.txt
var defaultPrompt string

const Name = "Aisling"

// Mood selects an emoji pool.
type Mood string

const (
	Positive Mood = "positive"
	Negative Mood = "negative"
	Neutral  Mood = "neutral"
)

// Sentiment scores beyond these bounds count as positive or negative.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

var emojiPools = map[Mood][]string{
	Positive: {"😄", "👍", "😊", "😍", "🎉"},
	Negative: {"😢", "😞", "😠", "💔", "😔"},
	Neutral:  {"😐", "🤔", "😶", "😑", "🙃"},
}

// DefaultTriggerWords are the spellings of her name people use to call her.
var DefaultTriggerWords = []string{"aisling", "ashling", "aislinn", "ashlyn"}

var statusLines = []string{
	"reading the tides of your dreams",
	"listening for dreamers",
	"burning sage by candlelight",
	"tracing moonlit symbols",
	"untangling a dream catcher",
}

type Persona struct {
	Prompt       string
	TriggerWords []string
}

// Load returns the built-in persona, with the prompt replaced by the contents
// of promptPath when it is set and the trigger words replaced when words is non-empty.
func Load(promptPath string, words []string) (*Persona, error) {
	p := &Persona{
		Prompt:       strings.TrimSpace(defaultPrompt),
		TriggerWords: DefaultTriggerWords,
	}
	if promptPath != "" {
		b, err := os.ReadFile(promptPath)
		if err != nil {
			return nil, fmt.Errorf("read persona prompt: %w", err)
		}
		prompt := strings.TrimSpace(string(b))
		if prompt == "" {
			return nil, fmt.Errorf("persona prompt %s is empty", promptPath)
		}
		p.Prompt = prompt
	}
	if len(words) > 0 {
		p.TriggerWords = words
	}
	return p, nil
}

// MoodFor maps a compound sentiment score to a mood.
func MoodFor(score float64) Mood {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Emojis returns the reaction pool for a mood.
func Emojis(m Mood) []string {
	return emojiPools[m]
}

// Status returns the n-th presence line, cycling.
func Status(n int) string {
	if n < 0 {
		n = -n
	}
	return statusLines[n%len(statusLines)]
}
