package util

import "sync"

// Lanes runs tasks serially per key and in parallel across keys.
// A lane's goroutine exits once its queue drains.
type Lanes struct {
	mu     sync.Mutex
	queues map[string][]func()
	wg     sync.WaitGroup
}

func NewLanes() *Lanes {
	return &Lanes{queues: make(map[string][]func())}
}

// Go queues fn behind earlier tasks for the same key.
func (l *Lanes) Go(key string, fn func()) {
	l.mu.Lock()
	q, running := l.queues[key]
	l.queues[key] = append(q, fn)
	if running {
		l.mu.Unlock()
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go l.drain(key)
}

func (l *Lanes) drain(key string) {
	defer l.wg.Done()
	for {
		l.mu.Lock()
		q := l.queues[key]
		if len(q) == 0 {
			delete(l.queues, key)
			l.mu.Unlock()
			return
		}
		fn := q[0]
		q[0] = nil
		l.queues[key] = q[1:]
		l.mu.Unlock()

		fn()
	}
}

// Active returns the number of keys with queued or running work.
func (l *Lanes) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queues)
}

// Wait blocks until every lane has drained.
func (l *Lanes) Wait() {
	l.wg.Wait()
}
