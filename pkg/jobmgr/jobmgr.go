// Package jobmgr runs named background jobs with cancellation and
// in-memory tracking.
//
//	jm := jobmgr.NewManager(func(msg string) { log.Print(msg) })
//	_ = jm.Every("history-cleanup", time.Hour, func(ctx context.Context) error {
//	    return cleanup(ctx)
//	})
//	defer jm.StopAll()
//
// Jobs run in their own goroutines and are removed when they return.
package jobmgr

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

type job struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StatusReporter receives lifecycle events for jobs:
//
//	running:history-cleanup
//	error:history-cleanup:context deadline exceeded
//	done:history-cleanup
type StatusReporter func(string)

// Manager tracks running jobs. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*job
	Reporter StatusReporter
}

// NewManager creates a Manager. reporter may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*job),
		Reporter: reporter,
	}
}

// Start runs runner in a new goroutine. Names are unique among running jobs.
func (m *Manager) Start(name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job '%s' is already running", name)
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel, done: make(chan struct{})}
	m.jobs[name] = j
	m.mu.Unlock()

	go func() {
		defer close(j.done)
		m.report("running:" + name)

		if err := runner(ctx); err != nil && ctx.Err() == nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		if m.jobs[name] == j {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// Every runs tick each interval until the job is stopped. A failing tick is
// reported and the loop continues.
func (m *Manager) Every(name string, interval time.Duration, tick func(ctx context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("job '%s': interval must be positive", name)
	}
	return m.Start(name, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := tick(ctx); err != nil {
					m.report("error:" + name + ":" + err.Error())
				}
			}
		}
	})
}

// Stop cancels a running job and waits for it to return.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	j, ok := m.jobs[name]
	if ok {
		delete(m.jobs, name)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}
	j.cancel()
	<-j.done
	return nil
}

// StopAll cancels every running job and waits for them.
func (m *Manager) StopAll() {
	for _, name := range m.List() {
		_ = m.Stop(name)
	}
}

// List returns the names of running jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Status returns a human-readable summary, e.g. "Running jobs: history-cleanup, presence".
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
