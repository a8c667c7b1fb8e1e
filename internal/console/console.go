// Package console handles single-key commands on an interactive terminal.
package console

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Interrupt is the byte a raw terminal delivers for Ctrl+C
const Interrupt = 0x03

// KeyHandler is called for every key read. Returning false stops WatchKeys.
type KeyHandler func(key rune) bool

// WatchKeys reads single bytes from r and passes them to handler until the handler
// returns false or r fails. It returns nil when the handler stopped it.
func WatchKeys(r io.Reader, handler KeyHandler) error {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 && !handler(rune(buf[0])) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Terminal puts stdin into raw mode for single-key reads
type Terminal struct {
	fd    int
	state *term.State
}

// OpenTerminal switches stdin to raw mode. ok is false when stdin is not a terminal;
// the returned Terminal is then nil and keys are unavailable.
func OpenTerminal() (t *Terminal, ok bool, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, false, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, false, err
	}
	return &Terminal{fd: fd, state: state}, true, nil
}

// Restore returns stdin to its original mode
func (t *Terminal) Restore() error {
	if t == nil {
		return nil
	}
	return term.Restore(t.fd, t.state)
}

// CRLFWriter turns "\n" into "\r\n". A raw terminal does not return the carriage on a
// bare line feed.
type CRLFWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewCRLFWriter wraps w
func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{w: w}
}

// Write implements io.Writer. The returned count refers to p, not the expanded output.
func (c *CRLFWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
