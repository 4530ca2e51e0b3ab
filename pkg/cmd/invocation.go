// Package cmd provides a transport-agnostic command core: a command has a
// name, a description and Run(ctx, invocation). Adapters decide how text or
// events become invocations.
package cmd

import (
	"context"
	"strings"
)

// Invocation carries the arguments and an opaque payload set by the adapter
// (for Discord: the session and the message event).
type Invocation struct {
	Name string
	Args []string
	Data any
}

type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliased is implemented by commands reachable under more than one name.
type Aliased interface {
	Aliases() []string
}

// Parse splits a prefixed message such as "e!set_reply_threshold 40" into
// the command name and its arguments. Names are matched case-insensitively.
func Parse(prefix, content string) (*Invocation, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return nil, false
	}
	return &Invocation{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}
