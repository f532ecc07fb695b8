// Termtest is a manual testing tool for raw-mode terminal I/O. Lacking simple PTY support, running
// this tool by hand is easier than writing automated tests for it: it puts the terminal into raw
// mode, echoes every byte typed back with its hex value, and exits on Ctrl-D.
package main

import (
	"io"
	"os"

	"synacorvm/internal/log"
	"synacorvm/internal/tty"
)

var logger = log.DefaultLogger()

func main() {
	console, err := tty.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer console.Restore()

	logger.Info("raw mode engaged, type keys, Ctrl-D to exit")

	in := console.Reader()
	out := console.Writer()
	buf := make([]byte, 1)

	for {
		n, err := in.Read(buf)
		if n == 0 && err == io.EOF {
			return
		}

		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}

		if buf[0] == 0x04 { // Ctrl-D
			return
		}

		io.WriteString(out, "\r\nkey: 0x")
		out.Write([]byte{hexDigit(buf[0] >> 4), hexDigit(buf[0] & 0xf)})
		io.WriteString(out, "\r\n")
	}
}

func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}

	return 'a' + b - 10
}
