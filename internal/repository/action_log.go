package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	actionLogHeader     = "=== System Log Started ===\n"
	actionLogTimeLayout = "2006-01-02 15:04:05"
)

// ActionLog appends one line per registry event to a plain-text file.
type ActionLog struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewActionLog prepares the log file, writing the header when the file is new.
func NewActionLog(path string) (*ActionLog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("prepare log directory: %w", err)
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(actionLogHeader), 0o644); err != nil {
			return nil, fmt.Errorf("create action log: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat action log: %w", err)
	}
	return &ActionLog{path: path, now: time.Now}, nil
}

// WithClock overrides the timestamp source.
func (l *ActionLog) WithClock(now func() time.Time) *ActionLog {
	l.now = now
	return l
}

// Path returns the log location.
func (l *ActionLog) Path() string {
	return l.path
}

// Record appends "[YYYY-MM-DD HH:MM:SS] [TAG] message".
func (l *ActionLog) Record(tag, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open action log: %w", err)
	}
	defer file.Close() //nolint:errcheck

	line := fmt.Sprintf("[%s] [%s] %s\n", l.now().Format(actionLogTimeLayout), tag, message)
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("append action log: %w", err)
	}
	return nil
}
