// SPDX-License-Identifier: GPL-2.0-or-later

package sim

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"goportal/cmd"
	"goportal/conlog"
	"goportal/entity"
	"goportal/math/vec"
	"goportal/portal"
)

const (
	spawnDistance = 100
	spawnExtent   = 20
)

func (h *Host) addCommands() error {
	for _, c := range []cmd.Command{
		{Name: "clear", Usage: "[first|second]", MaxArgs: 1, Run: h.clearCmd},
		{Name: "echo", MaxArgs: -1, Run: h.echoCmd},
		{Name: "exec", Usage: "<filename>", MinArgs: 1, MaxArgs: 1, Run: h.execCmd},
		{Name: "grab", Usage: "[hand]", MaxArgs: 1, Run: h.grabCmd},
		{Name: "journal", Usage: "[filename]", MaxArgs: 1, Run: h.journalCmd},
		{Name: "look", Usage: "<pitch> <yaw>", MinArgs: 2, MaxArgs: 2, Run: h.lookCmd},
		{Name: "move", Usage: "<x> <y> <z>", MinArgs: 3, MaxArgs: 3, Run: h.moveCmd},
		{Name: "release", Run: h.releaseCmd},
		{Name: "shoot", Usage: "<first|second>", MinArgs: 1, MaxArgs: 1, Run: h.shootCmd},
		{Name: "spawn", Usage: "<name> [extent]", MinArgs: 1, MaxArgs: 2, Run: h.spawnCmd},
		{Name: "status", Run: h.statusCmd},
	} {
		if err := h.commands.Register(c); err != nil {
			return err
		}
	}
	return h.aliases.Register(h.commands)
}

var errNoPlayer = errors.New("level has no player")

func (h *Host) shootCmd(a cmd.Arguments) error {
	t, ok := portal.ParseType(a.Argv(1).String())
	if !ok {
		conlog.Printf("shoot: unknown portal %q\n", a.Argv(1).String())
		return nil
	}
	if h.player == nil {
		return errNoPlayer
	}
	if p, ok := h.player.ShootPortal(h.Portals, t); ok {
		conlog.Printf("%s portal on %s\n", t, p.Surface().Name())
	}
	return nil
}

func (h *Host) clearCmd(a cmd.Arguments) error {
	if len(a.Args()) == 1 {
		h.Portals.ClearPortals()
		return nil
	}
	t, ok := portal.ParseType(a.Argv(1).String())
	if !ok {
		conlog.Printf("clear: unknown portal %q\n", a.Argv(1).String())
		return nil
	}
	h.Portals.ClearPortal(t)
	return nil
}

func (h *Host) grabCmd(a cmd.Arguments) error {
	if h.player == nil {
		return errNoPlayer
	}
	var ok bool
	var held interface{ Name() string }
	if a.Argv(1).String() == "hand" {
		ok = h.hand.TryGrabbing()
		if ok {
			held = h.hand.Grabbed()
		}
	} else {
		ok = h.grabber.TryGrabbing()
		if ok {
			held = h.grabber.Grabbed()
		}
	}
	if !ok {
		conlog.Printf("nothing to grab\n")
		return nil
	}
	conlog.Printf("holding %s\n", held.Name())
	return nil
}

func (h *Host) releaseCmd(_ cmd.Arguments) error {
	if h.player == nil {
		return errNoPlayer
	}
	h.grabber.Release()
	h.hand.Release()
	return nil
}

func (h *Host) moveCmd(a cmd.Arguments) error {
	delta, err := a.Vec3(1)
	if err != nil {
		return err
	}
	if h.player == nil {
		return errNoPlayer
	}
	if !h.player.Move(h.Ctx, delta) {
		conlog.Printf("move blocked\n")
	}
	return nil
}

func (h *Host) lookCmd(a cmd.Arguments) error {
	r, err := a.Float32s(1, 2)
	if err != nil {
		return err
	}
	if h.player == nil {
		return errNoPlayer
	}
	h.player.SetControlRotation(vec.Rotator{Pitch: r[0], Yaw: r[1]})
	return nil
}

// spawnCmd drops a box in front of the first portal.
func (h *Host) spawnCmd(a cmd.Arguments) error {
	name := a.Argv(1).String()
	if _, ok := h.props[name]; ok {
		conlog.Printf("spawn: %s exists\n", name)
		return nil
	}
	extent := float32(spawnExtent)
	if len(a.Args()) > 2 {
		e, err := a.Float32s(2, 1)
		if err != nil {
			return err
		}
		extent = e[0]
	}
	pose, ok := h.Portals.DebugSpawnTransform(spawnDistance + extent)
	if !ok {
		conlog.Printf("spawn: no first portal\n")
		return nil
	}
	h.props[name] = entity.NewProp(h.Ctx, entity.PropDesc{
		Name:   name,
		Pose:   pose,
		Extent: vec.Vec3{X: extent, Y: extent, Z: extent},
		Mass:   10,
	})
	return nil
}

func (h *Host) echoCmd(a cmd.Arguments) error {
	conlog.Printf("%s\n", a.ArgumentString())
	return nil
}

func (h *Host) execCmd(a cmd.Arguments) error {
	name := a.Argv(1).String()
	b, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "couldn't exec %s", name)
	}
	conlog.Printf("execing %s\n", name)
	h.console.InsertText(string(b))
	return nil
}

func (h *Host) journalCmd(a cmd.Arguments) error {
	if len(a.Args()) == 2 {
		return h.Journal.SaveFile(a.Argv(1).String())
	}
	for _, e := range h.Journal.Entries() {
		conlog.Printf("%6d %8.3f %s\n", e.Frame, e.Time, e.Actor)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatVec(v vec.Vec3) string {
	return fmt.Sprintf("(%.1f %.1f %.1f)", v.X, v.Y, v.Z)
}

func (h *Host) statusCmd(_ cmd.Arguments) error {
	var b strings.Builder
	for _, t := range []portal.Type{portal.First, portal.Second} {
		p := h.Portals.Portal(t)
		if p == nil {
			fmt.Fprintf(&b, "%-8s none\n", t)
			continue
		}
		fmt.Fprintf(&b, "%-8s %s on %s, %d copies\n", t, formatVec(p.Location()), p.Surface().Name(), p.NumCopies())
	}
	for _, name := range sortedKeys(h.props) {
		fmt.Fprintf(&b, "%-8s %s\n", name, formatVec(h.props[name].Transform().Translation))
	}
	for _, name := range sortedKeys(h.characters) {
		fmt.Fprintf(&b, "%-8s %s\n", name, formatVec(h.characters[name].Transform().Translation))
	}
	conlog.Printf("%s", b.String())
	return nil
}
