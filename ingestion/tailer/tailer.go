// Package tailer follows an append-only file and emits each complete line as it appears.
package tailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrFileGone is returned by Run when the followed file is removed or renamed
var ErrFileGone = errors.New("tailed file was removed or renamed")

// Line is one complete line read from the file
type Line struct {
	Text   string
	ReadAt time.Time // UTC moment the line was read
}

// Logger is the logging capability used by the Tailer
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Tailer follows a single file from its end at the time Run is called
type Tailer struct {
	path   string
	logger Logger
	buf    []byte // read buffer
	rest   []byte // trailing bytes of an unterminated line
	offset int64
}

// New creates a Tailer for path
func New(path string, logger Logger) *Tailer {
	return &Tailer{
		path:   path,
		logger: logger,
		buf:    make([]byte, 32*1024),
	}
}

// Run follows the file until ctx is cancelled or the file disappears. Content present
// before Run is not replayed. emit is called synchronously from the calling goroutine for
// every non-blank line, in file order.
//
// Run returns nil on cancellation and an error wrapping ErrFileGone if the file is removed
// or renamed.
func (t *Tailer) Run(ctx context.Context, emit func(Line)) error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	t.offset, err = f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of %s: %w", t.path, err)
	}
	t.rest = t.rest[:0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", t.path, err)
	}
	t.logger.Infof("Tailing %s from offset %d", t.path, t.offset)

	// Single-slot wake-up: any number of write events between two reads collapse into one.
	wake := make(chan struct{}, 1)
	gone := make(chan struct{}, 1)
	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go t.watch(watchCtx, watcher, wake, gone, watchDone)
	defer func() {
		stopWatch()
		<-watchDone
	}()

	// Lines appended between the seek and the watch registration
	if err := t.readAvailable(f, emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			t.logger.Infof("Stopped tailing %s", t.path)
			return nil
		case <-wake:
			if err := t.readAvailable(f, emit); err != nil {
				return err
			}
		case <-gone:
			// Deliver whatever was written before the file went away
			if err := t.readAvailable(f, emit); err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrFileGone, t.path)
		}
	}
}

// watch translates watcher events into wake-ups and the gone signal
func (t *Tailer) watch(ctx context.Context, watcher *fsnotify.Watcher, wake, gone chan<- struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				signal(gone)
				return
			case event.Has(fsnotify.Chmod):
				// Unlinking an open file only reports an attribute change
				if _, err := os.Stat(t.path); errors.Is(err, os.ErrNotExist) {
					signal(gone)
					return
				}
			case event.Has(fsnotify.Write):
				signal(wake)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			t.logger.Warnf("File watcher error on %s: %v", t.path, err)
			signal(wake)
		}
	}
}

func signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// readAvailable reads to the current end of file and emits every completed line
func (t *Tailer) readAvailable(f *os.File, emit func(Line)) error {
	if info, err := f.Stat(); err == nil && info.Size() < t.offset {
		t.logger.Warnf("%s shrank from %d to %d bytes, reading from the start", t.path, t.offset, info.Size())
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind %s: %w", t.path, err)
		}
		t.offset = 0
		t.rest = t.rest[:0]
	}

	for {
		n, err := f.Read(t.buf)
		if n > 0 {
			t.offset += int64(n)
			t.split(t.buf[:n], emit)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", t.path, err)
		}
	}
}

func (t *Tailer) split(chunk []byte, emit func(Line)) {
	readAt := time.Now().UTC()
	for {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			t.rest = append(t.rest, chunk...)
			return
		}

		line := chunk[:i]
		if len(t.rest) > 0 {
			line = append(t.rest, line...)
			t.rest = t.rest[:0]
		}
		chunk = chunk[i+1:]

		text := string(bytes.TrimRight(line, "\r"))
		if len(bytes.TrimSpace(line)) == 0 {
			t.logger.Debugf("Skipping blank line in %s", t.path)
			continue
		}
		emit(Line{Text: text, ReadAt: readAt})
	}
}
