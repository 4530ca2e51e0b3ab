package cmd

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores commands by name and alias. It does not dispatch; adapters
// look commands up and run them with their own context.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	names    map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		names:    make(map[string]Command),
	}
}

// Register adds c under its name and aliases. A name already taken by another
// command is an error.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := []string{c.Name()}
	if a, ok := Root(c).(Aliased); ok {
		keys = append(keys, a.Aliases()...)
	}
	for _, k := range keys {
		if _, taken := r.names[strings.ToLower(k)]; taken {
			return fmt.Errorf("command name %q already registered", k)
		}
	}
	for _, k := range keys {
		r.names[strings.ToLower(k)] = c
	}
	r.commands[c.Name()] = c
	return nil
}

// Get returns the command registered under name or alias, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names[strings.ToLower(name)]
}

// GetAll returns the registered commands sorted by name, without alias duplicates.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
