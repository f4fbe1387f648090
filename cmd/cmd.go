// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"goportal/conlog"
)

type QFunc func(args Arguments) error

// Command is a console command. Run only sees lines with between MinArgs
// and MaxArgs arguments after the name; a negative MaxArgs has no limit.
// Other lines print Usage instead.
type Command struct {
	Name    string
	Usage   string
	MinArgs int
	MaxArgs int
	Run     QFunc
}

func (c Command) accepts(n int) bool {
	return n >= c.MinArgs && (c.MaxArgs < 0 || n <= c.MaxArgs)
}

type Commands map[string]Command

func New() *Commands {
	c := make(Commands)
	return &c
}

// Register adds cmd under its lower cased name.
func (c *Commands) Register(cmd Command) error {
	ln := strings.ToLower(cmd.Name)
	if _, ok := (*c)[ln]; ok {
		return fmt.Errorf("command %s already defined", ln)
	}
	cmd.Name = ln
	(*c)[ln] = cmd
	return nil
}

// Add registers f without argument checks.
func (c *Commands) Add(name string, f QFunc) error {
	return c.Register(Command{Name: name, MaxArgs: -1, Run: f})
}

func (c *Commands) Exists(cmdName string) bool {
	_, ok := (*c)[strings.ToLower(cmdName)]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports false if
// no such command exists.
func (c *Commands) Execute(a Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	cmd, ok := (*c)[strings.ToLower(n[0].String())]
	if !ok {
		return false, nil
	}
	if !cmd.accepts(len(n) - 1) {
		conlog.Printf("usage: %s %s\n", cmd.Name, cmd.Usage)
		return true, nil
	}
	if err := cmd.Run(a); err != nil {
		return false, err
	}
	return true, nil
}

var (
	commands = make(Commands)
)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name string, f QFunc) error {
	return commands.Add(name, f)
}

func Exists(cmdName string) bool {
	return commands.Exists(cmdName)
}

func Execute(a Arguments) (bool, error) {
	return commands.Execute(a)
}

func List() []string {
	return commands.List()
}
