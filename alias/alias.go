// SPDX-License-Identifier: GPL-2.0-or-later

package alias

import (
	"slices"
	"strings"

	"goportal/cbuf"
	"goportal/cmd"
	"goportal/conlog"
)

// Aliases maps console names onto command text.
type Aliases struct {
	aliases map[string]string
}

func New() *Aliases {
	return &Aliases{aliases: make(map[string]string)}
}

// Register adds the alias, unalias and unaliasall commands to c.
func (al *Aliases) Register(c *cmd.Commands) error {
	if err := c.Add("alias", al.alias); err != nil {
		return err
	}
	if err := c.Add("unalias", al.unalias); err != nil {
		return err
	}
	return c.Add("unaliasall", al.unaliasAll)
}

func (al *Aliases) alias(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch c := len(args); c {
	case 0:
		al.list()
	case 1:
		al.print(args[0])
	default:
		al.set(args)
	}
	return nil
}

func (al *Aliases) list() {
	if len(al.aliases) == 0 {
		conlog.SafePrintf("no alias commands found\n")
		return
	}
	names := make([]string, 0, len(al.aliases))
	for k := range al.aliases {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		// each alias value ends with a '\n'
		conlog.SafePrintf("  %s: %s", k, al.aliases[k])
	}
	conlog.SafePrintf("%v alias command(s)\n", len(al.aliases))
}

func (al *Aliases) print(arg cmd.QArg) {
	name := arg.String()
	if v, ok := al.aliases[name]; ok {
		conlog.Printf("  %s: %s", name, v)
	}
}

func join(a []cmd.QArg, sep string) string {
	s := make([]string, len(a))
	for i := range a {
		s[i] = a[i].String()
	}
	return strings.Join(s, sep)
}

func (al *Aliases) set(args []cmd.QArg) {
	// the parts have '"' already removed, quoted commands keep their ';'
	name := args[0]
	command := join(args[1:], " ")
	al.aliases[name.String()] = strings.TrimSpace(command) + "\n"
}

func (al *Aliases) unalias(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch c := len(args); c {
	case 1:
		name := args[0].String()
		if _, ok := al.aliases[name]; ok {
			delete(al.aliases, name)
		} else {
			conlog.Printf("No alias named %s\n", name)
		}
	default:
		conlog.Printf("unalias <name> : delete alias\n")
	}
	return nil
}

func (al *Aliases) unaliasAll(_ cmd.Arguments) error {
	al.aliases = make(map[string]string)
	return nil
}

func (al *Aliases) Get(name string) (string, bool) {
	a, ok := al.aliases[name]
	return a, ok
}

// Execute returns the executor running aliases by inserting their text in
// front of the command buffer.
func (al *Aliases) Execute() cbuf.Efunc {
	return func(cb *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
		args := a.Args()
		if len(args) == 0 {
			return false, nil
		}
		if v, ok := al.Get(args[0].String()); ok {
			cb.InsertText(v)
			return true, nil
		}
		return false, nil
	}
}
