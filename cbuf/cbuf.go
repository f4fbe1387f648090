// SPDX-License-Identifier: GPL-2.0-or-later

package cbuf

import (
	"log/slog"
	"strings"

	"goportal/cmd"
	"goportal/conlog"
)

// Efunc tries to execute a command line. It returns false if it does not
// know the command.
type Efunc func(*CommandBuffer, cmd.Arguments) (bool, error)

// CommandBuffer holds console text waiting for execution. Commands are
// separated by newlines or semicolons outside of quotes.
type CommandBuffer struct {
	buf       string
	wait      bool
	executors []Efunc
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

func (c *CommandBuffer) AddText(text string) {
	c.buf += text
}

func (c *CommandBuffer) InsertText(text string) {
	c.buf = text + "\n" + c.buf
}

// Wait defers the remaining commands to the next call of Execute.
func (c *CommandBuffer) Wait() {
	c.wait = true
}

func (c *CommandBuffer) Empty() bool {
	return len(strings.TrimSpace(c.buf)) == 0
}

// Execute runs commands until the buffer is empty or a wait command is
// found.
func (c *CommandBuffer) Execute() {
	for len(c.buf) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(c.buf); i++ {
			switch c.buf[i] {
			case '"':
				quote = !quote
			case ';':
				if !quote {
					break LineLoop
				}
			case '\n':
				break LineLoop
			}
		}
		line := c.buf[:i]
		if i < len(c.buf) {
			i++
		}
		c.buf = c.buf[i:]
		if err := c.execute(line); err != nil {
			slog.Error("command failed", slog.String("line", line), slog.Any("err", err))
			conlog.Printf("%s: %v\n", line, err)
		}
		if c.wait {
			c.wait = false
			return
		}
	}
}

func (c *CommandBuffer) execute(s string) error {
	a := cmd.Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	if strings.EqualFold(args[0].String(), "wait") {
		c.Wait()
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	name := args[0].String()
	slog.Warn("Unknown command", slog.String("name", name))
	conlog.Printf("Unknown command \"%s\"\n", name)
	return nil
}
