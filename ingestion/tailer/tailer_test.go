package tailer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type collector struct {
	mu    sync.Mutex
	lines []Line
}

func (c *collector) emit(l Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, l)
}

func (c *collector) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l.Text)
	}
	return out
}

func appendTo(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

// startTailer runs a Tailer in the background and waits until it has seeked to the end
func startTailer(t *testing.T, path string) (*collector, context.CancelFunc, <-chan error) {
	t.Helper()
	c := &collector{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	tl := New(path, zap.NewNop().Sugar())
	go func() { done <- tl.Run(ctx, c.emit) }()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	return c, cancel, done
}

func TestTailer_EmitsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, []byte("old line 1\nold line 2\n"), 0o644))

	c, cancel, done := startTailer(t, path)
	before := time.Now().UTC()

	appendTo(t, path, "first\n\n   \nsecond\r\n")
	assert.Eventually(t, func() bool { return len(c.texts()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, c.texts())

	c.mu.Lock()
	assert.False(t, c.lines[0].ReadAt.Before(before))
	assert.Equal(t, time.UTC, c.lines[0].ReadAt.Location())
	c.mu.Unlock()

	cancel()
	assert.NoError(t, <-done)
}

func TestTailer_HoldsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c, cancel, done := startTailer(t, path)
	defer func() {
		cancel()
		<-done
	}()

	appendTo(t, path, "12.0.0.1 - - [hal")
	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, c.texts())

	appendTo(t, path, "f line]\nnext")
	assert.Eventually(t, func() bool { return len(c.texts()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"12.0.0.1 - - [half line]"}, c.texts())
}

func TestTailer_ManyWritesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c, cancel, done := startTailer(t, path)
	defer func() {
		cancel()
		<-done
	}()

	var want []string
	for i := 0; i < 200; i++ {
		line := "line " + strconv.Itoa(i)
		want = append(want, line)
		appendTo(t, path, line+"\n")
	}
	assert.Eventually(t, func() bool { return len(c.texts()) == len(want) }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, want, c.texts())
}

func TestTailer_RenameStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, cancel, done := startTailer(t, path)
	defer cancel()

	require.NoError(t, os.Rename(path, path+".1"))

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, ErrFileGone), "got %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("tailer did not stop after rename")
	}
}

func TestTailer_RemoveStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c, cancel, done := startTailer(t, path)
	defer cancel()

	appendTo(t, path, "last words\n")
	require.NoError(t, os.Remove(path))

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, ErrFileGone), "got %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("tailer did not stop after remove")
	}
	assert.Equal(t, []string{"last words"}, c.texts())
}

func TestTailer_TruncationRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, []byte("a fairly long line written before the tailer started\n"), 0o644))

	c, cancel, done := startTailer(t, path)
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(path, []byte("short\n"), 0o644))
	assert.Eventually(t, func() bool { return len(c.texts()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"short"}, c.texts())
}

func TestTailer_MissingFile(t *testing.T) {
	tl := New(filepath.Join(t.TempDir(), "nope.log"), zap.NewNop().Sugar())
	err := tl.Run(context.Background(), func(Line) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
