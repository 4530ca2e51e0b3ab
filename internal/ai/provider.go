// Package ai talks to the remote chat-completion service.
package ai

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyCompletion is returned when the service answers without usable text.
var ErrEmptyCompletion = errors.New("completion returned no text")

// Message is one role-tagged turn of a conversation. Values are never mutated after creation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces the next assistant turn for an ordered conversation.
type Provider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }
