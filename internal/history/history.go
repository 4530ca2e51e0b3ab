// Package history keeps a bounded, ordered conversation per channel.
package history

import (
	"slices"
	"sync"
	"time"

	"github.com/keshon/aisling/internal/ai"
)

const DefaultMaxLength = 50

type conversation struct {
	messages []ai.Message
	lastSeen time.Time
}

// Manager is safe for concurrent use. Callers that need a read-modify-write
// sequence per channel to be ordered must serialize it themselves.
type Manager struct {
	mu       sync.RWMutex
	channels map[string]*conversation
	max      int
	now      func() time.Time
}

// New creates a Manager keeping at most maxLength messages per channel.
func New(maxLength int) *Manager {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Manager{
		channels: make(map[string]*conversation),
		max:      maxLength,
		now:      time.Now,
	}
}

func (m *Manager) MaxLength() int { return m.max }

// Get returns a copy of the channel history, oldest first.
func (m *Manager) Get(channelID string) []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.channels[channelID]
	if !ok {
		return []ai.Message{}
	}
	return slices.Clone(c.messages)
}

// Ensure creates an empty history for the channel if none exists.
func (m *Manager) Ensure(channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot(channelID)
}

// Append adds msgs in order and drops the oldest entries beyond the cap.
func (m *Manager) Append(channelID string, msgs ...ai.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.slot(channelID)
	c.messages = append(c.messages, msgs...)
	if over := len(c.messages) - m.max; over > 0 {
		c.messages = slices.Clone(c.messages[over:])
	}
	c.lastSeen = m.now()
}

func (m *Manager) Len(channelID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.channels[channelID]; ok {
		return len(c.messages)
	}
	return 0
}

// Channels returns the tracked channel ids, sorted.
func (m *Manager) Channels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.channels))
	for id := range m.channels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EvictIdle drops histories not touched for longer than maxIdle and returns
// how many were removed.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	n := 0
	for id, c := range m.channels {
		if c.lastSeen.Before(cutoff) {
			delete(m.channels, id)
			n++
		}
	}
	return n
}

// slot must be called with mu held.
func (m *Manager) slot(channelID string) *conversation {
	c, ok := m.channels[channelID]
	if !ok {
		c = &conversation{lastSeen: m.now()}
		m.channels[channelID] = c
	}
	return c
}
