// Package tty puts the controlling terminal into raw mode for interactive guest I/O, so the
// debugger's "!"-commands and a running program's IN/OUT traffic can be read and written a byte at
// a time, without line discipline buffering keystrokes until Enter.
package tty

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned when standard input is not a terminal. Raw-mode console I/O is unavailable
// in that case; callers fall back to plain line-buffered I/O against the file directly.
var ErrNoTTY = errors.New("tty: not a terminal")

// Console is a raw-mode terminal bound to a machine's guest I/O.
type Console struct {
	fd    int
	in    *os.File
	out   *os.File
	state *term.State
}

// NewConsole puts in into raw mode. Callers must call Restore when done to return the terminal to
// its original state; failing to do so leaves the user's shell in raw mode after the process exits.
func NewConsole(in, out *os.File) (*Console, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	cons := &Console{fd: fd, in: in, out: out, state: state}

	if err := cons.setBlockingReads(); err != nil {
		_ = cons.Restore()
		return nil, err
	}

	return cons, nil
}

// setBlockingReads configures VMIN/VTIME so a read from the terminal blocks for exactly one byte,
// rather than the partial, possibly-empty reads the raw termios term.MakeRaw leaves in place allow.
func (c *Console) setBlockingReads() error {
	termIO, err := unix.IoctlGetTermios(c.fd, unix.TCGETS)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = 1
	termIO.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(c.fd, unix.TCSETS, termIO)
}

// Reader returns the raw byte stream from the terminal.
func (c *Console) Reader() io.Reader { return c.in }

// Writer returns the raw byte stream to the terminal.
func (c *Console) Writer() io.Writer { return c.out }

// Restore returns the terminal to the state it was in before NewConsole.
func (c *Console) Restore() error {
	return term.Restore(c.fd, c.state)
}
