package generator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger is the subset of a leveled logger the writer needs
type Logger interface {
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Writer appends generated lines to a file at an adjustable interval
type Writer struct {
	path    string
	factory *Factory
	logger  Logger

	mu       sync.Mutex
	interval time.Duration
}

// NewWriter creates a Writer for path, emitting one line per interval
func NewWriter(path string, interval time.Duration, factory *Factory, logger Logger) *Writer {
	return &Writer{
		path:     path,
		factory:  factory,
		logger:   logger,
		interval: interval,
	}
}

// Interval returns the current delay between two lines
func (w *Writer) Interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.interval
}

// Faster halves the interval, never going below a microsecond
func (w *Writer) Faster() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.interval > time.Microsecond {
		w.interval /= 2
	}
	return w.interval
}

// Slower doubles the interval
func (w *Writer) Slower() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval *= 2
	return w.interval
}

// Run writes lines until ctx is cancelled
func (w *Writer) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", w.path, err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open '%s' for appending: %w", w.path, err)
	}
	defer f.Close()

	w.logger.Infof("Writing generated logs to %s", w.path)
	out := bufio.NewWriter(f)
	lastFeedback := time.Now()
	written := 0

	for {
		line := w.factory.Next(time.Now()).String()
		if _, err := out.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write log line: %w", err)
		}
		// Flush per line so the tailer sees complete lines as they are produced
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to flush log line: %w", err)
		}
		written++

		if time.Since(lastFeedback) > 5*time.Second {
			w.logger.Infof("Still writing... %d lines so far, interval %s", written, w.Interval())
			lastFeedback = time.Now()
		}

		timer := time.NewTimer(w.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Infof("Generator stopped after %d lines", written)
			return nil
		case <-timer.C:
		}
	}
}
