// Package transcript appends per-channel conversation records to JSON Lines files.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/keshon/aisling/internal/ai"
	"github.com/keshon/aisling/internal/storage"
)

// Logger writes <dir>/<guild>_<channel>.jsonl files. One mutex covers every
// file so the system-line check and the append happen together.
type Logger struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Logger {
	return &Logger{dir: dir}
}

// Path returns the transcript file for key; DM channels use the "DM" prefix.
func (l *Logger) Path(key storage.Key) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_%s.jsonl", key.Guild, key.Channel))
}

// Append writes records in order. The system prompt is written first when the
// file is missing or empty.
func (l *Logger) Append(key storage.Key, records []ai.Message, systemPrompt string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}

	path := l.Path(key)
	info, err := os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	writeSystem := err != nil || info.Size() == 0

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if writeSystem {
		if err := enc.Encode(ai.System(systemPrompt)); err != nil {
			return fmt.Errorf("encode system record: %w", err)
		}
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return f.Close()
}
