// Package ui provides the interactive front ends over a command.Engine.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MihkelHunter/kif/internal/command"
)

const divider = "____________________________________________________________"

// RunConsole reads commands from in, one per line, and writes each reply to
// out between dividers. It returns after "bye" or at the end of input.
func RunConsole(in io.Reader, out io.Writer, e *command.Engine) error {
	writeFramed(out, command.Greeting())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		reply := e.Handle(line)
		writeFramed(out, reply.Text)
		if reply.Exit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.Debug().Msg("input closed")
	return nil
}

func writeFramed(out io.Writer, text string) {
	var b strings.Builder
	b.WriteString(divider)
	b.WriteByte('\n')
	for _, l := range strings.Split(text, "\n") {
		b.WriteString(" ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(divider)
	b.WriteByte('\n')
	_, _ = io.WriteString(out, b.String())
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
