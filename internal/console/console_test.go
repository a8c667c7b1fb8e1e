package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchKeys_StopsOnHandler(t *testing.T) {
	var seen []rune
	err := WatchKeys(strings.NewReader("+-ax-"), func(k rune) bool {
		seen = append(seen, k)
		return k != 'x'
	})
	require.NoError(t, err)
	assert.Equal(t, []rune{'+', '-', 'a', 'x'}, seen)
}

func TestWatchKeys_Interrupt(t *testing.T) {
	stopped := false
	err := WatchKeys(bytes.NewReader([]byte{'a', Interrupt, 'b'}), func(k rune) bool {
		if k == Interrupt {
			stopped = true
			return false
		}
		return true
	})
	require.NoError(t, err)
	assert.True(t, stopped)
}

func TestWatchKeys_ReaderEOF(t *testing.T) {
	count := 0
	err := WatchKeys(strings.NewReader("ab"), func(rune) bool {
		count++
		return true
	})
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, count)
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCRLFWriter(&buf)

	n, err := w.Write([]byte("one\ntwo\r\nthree"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Equal(t, "one\r\ntwo\r\nthree", buf.String())
}
