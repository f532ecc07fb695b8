package cmd

import (
	"errors"
	"io"
	"os"

	"synacorvm/internal/log"
	"synacorvm/internal/tty"
)

// consoleStdin puts the process's stdin into raw mode for byte-at-a-time guest I/O, when stdin is
// actually a terminal. When it isn't (piped input, "go test", a CI runner), it falls back to plain
// os.Stdin so commands still work against redirected input. The returned restore func must be
// deferred by the caller; it is a no-op when raw mode was never established.
func consoleStdin(logger *log.Logger) (io.Reader, func()) {
	console, err := tty.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		if !errors.Is(err, tty.ErrNoTTY) {
			logger.Debug("raw console unavailable", "err", err)
		}

		return os.Stdin, func() {}
	}

	return console.Reader(), func() {
		if err := console.Restore(); err != nil {
			logger.Debug("restoring terminal", "err", err)
		}
	}
}
