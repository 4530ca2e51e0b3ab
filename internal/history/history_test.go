package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/keshon/aisling/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownChannelIsEmpty(t *testing.T) {
	m := New(50)
	assert.Empty(t, m.Get("nope"))
	assert.Equal(t, 0, m.Len("nope"))
	assert.Empty(t, m.Channels())
}

func TestAppendKeepsOrder(t *testing.T) {
	m := New(50)
	m.Append("c", ai.User("hi"), ai.Assistant("hello"))
	assert.Equal(t, []ai.Message{ai.User("hi"), ai.Assistant("hello")}, m.Get("c"))
}

func TestFIFOLaw(t *testing.T) {
	const max = 50
	m := New(max)

	var all []ai.Message
	for i := 0; i < 40; i++ {
		pair := []ai.Message{ai.User(fmt.Sprintf("u%d", i)), ai.Assistant(fmt.Sprintf("a%d", i))}
		all = append(all, pair...)
		m.Append("c", pair...)

		want := all
		if len(want) > max {
			want = want[len(want)-max:]
		}
		require.Equal(t, want, m.Get("c"))
	}
	assert.Equal(t, max, m.Len("c"))
	assert.Equal(t, "u15", m.Get("c")[0].Content)
}

func TestGetReturnsCopy(t *testing.T) {
	m := New(10)
	m.Append("c", ai.User("original"))
	got := m.Get("c")
	got[0].Content = "changed"
	assert.Equal(t, "original", m.Get("c")[0].Content)
}

func TestEnsureAndEvictIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := New(10)
	m.now = func() time.Time { return now }

	m.Ensure("old")
	m.Append("old", ai.User("x"))
	m.Ensure("old")
	assert.Equal(t, 1, m.Len("old"))

	now = now.Add(5 * time.Hour)
	m.Append("fresh", ai.User("y"))

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, m.EvictIdle(6*time.Hour))
	assert.Equal(t, []string{"fresh"}, m.Channels())
}
