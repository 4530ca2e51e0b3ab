// Package trigger decides whether an incoming message warrants a reply.
package trigger

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// Input is what the evaluator needs to know about a message.
type Input struct {
	BotID      string
	MentionIDs []string
	GuildID    string
	Content    string
}

// Result records each trigger separately so callers can log why a reply fired.
type Result struct {
	Mentioned   bool
	TriggerWord bool
	DirectMsg   bool
	Random      bool
}

func (r Result) ShouldRespond() bool {
	return r.Mentioned || r.TriggerWord || r.DirectMsg || r.Random
}

// Reason names the first trigger that fired, or "" when none did.
func (r Result) Reason() string {
	switch {
	case r.Mentioned:
		return "mention"
	case r.TriggerWord:
		return "trigger_word"
	case r.DirectMsg:
		return "direct_message"
	case r.Random:
		return "random"
	}
	return ""
}

func IsMentioned(botID string, mentionIDs []string) bool {
	return botID != "" && slices.Contains(mentionIDs, botID)
}

// IsDirectMessage reports whether the message arrived outside any guild.
func IsDirectMessage(guildID string) bool {
	return guildID == ""
}

type Evaluator struct {
	words []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns an Evaluator matching the given trigger words case-insensitively.
// src may be nil for a randomly seeded source.
func New(words []string, src rand.Source) *Evaluator {
	lower := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lower = append(lower, w)
		}
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Evaluator{words: lower, rnd: rand.New(src)}
}

// HasTriggerWord reports a substring match, so "Aisling," and "aislings" both count.
func (e *Evaluator) HasTriggerWord(content string) bool {
	content = strings.ToLower(content)
	for _, w := range e.words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}

// Roll returns true with probability p. Roll(0) never fires and Roll(1) always does.
func (e *Evaluator) Roll(p float64) bool {
	if p <= 0 {
		return false
	}
	e.mu.Lock()
	draw := e.rnd.Float64()
	e.mu.Unlock()
	return draw < p
}

// Evaluate checks the deterministic triggers and draws once against replyProbability.
func (e *Evaluator) Evaluate(in Input, replyProbability float64) Result {
	return Result{
		Mentioned:   IsMentioned(in.BotID, in.MentionIDs),
		TriggerWord: e.HasTriggerWord(in.Content),
		DirectMsg:   IsDirectMessage(in.GuildID),
		Random:      e.Roll(replyProbability),
	}
}
