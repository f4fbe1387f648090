// SPDX-License-Identifier: GPL-2.0-or-later

// Package sim runs a level: physics, portals, grab devices and the console.
package sim

import (
	"log/slog"

	"github.com/pkg/errors"

	"goportal/alias"
	"goportal/cbuf"
	"goportal/cmd"
	"goportal/collision"
	"goportal/cvar"
	"goportal/cvars"
	"goportal/entity"
	"goportal/gametime"
	"goportal/grab"
	"goportal/journal"
	"goportal/level"
	"goportal/math/vec"
	"goportal/portal"
	"goportal/tuning"
	"goportal/world"
)

// handOffset places the motion controller relative to the view.
var handOffset = vec.Vec3{X: 40, Y: 20, Z: -20}

type Host struct {
	Level   *level.Level
	World   *world.World
	Ctx     *portal.Context
	Portals *portal.Manager
	Time    gametime.GameTime
	Journal *journal.Journal
	Debug   DebugLines

	log        *slog.Logger
	gravity    *float32
	geometry   map[string]collision.BodyID
	surfaces   map[string]*portal.Surface
	props      map[string]*entity.Prop
	characters map[string]*entity.Character
	player     *entity.Character
	grabber    *grab.TraceDevice
	hand       *grab.MotionControllerDevice
	console    cbuf.CommandBuffer
	commands   *cmd.Commands
	aliases    *alias.Aliases
	watcher    *tuning.Watcher
	detach     func()
}

// NewHost builds the level. The level script is queued and runs at the end
// of the first frame.
func NewHost(l *level.Level, log *slog.Logger) (*Host, error) {
	if log == nil {
		log = slog.Default()
	}
	h := &Host{
		Level:      l,
		log:        log,
		gravity:    l.Gravity,
		geometry:   make(map[string]collision.BodyID),
		surfaces:   make(map[string]*portal.Surface),
		props:      make(map[string]*entity.Prop),
		characters: make(map[string]*entity.Character),
		commands:   cmd.New(),
		aliases:    alias.New(),
		Journal:    journal.New(journal.DefaultSize),
	}
	h.Time.Reset()
	h.World = world.New(world.Config{
		Mins:     l.Bounds.Mins.Vec(),
		Maxs:     l.Bounds.Maxs.Vec(),
		Gravity:  h.gravityVector(),
		Substeps: int(cvars.PhysicsSubsteps.Value()),
		Log:      log,
	})
	h.Ctx = portal.NewContext(h.World, log.With("module", "portal"))
	h.Ctx.Debug = &h.Debug
	h.Portals = portal.NewManager(h.Ctx, l.Viewport.Width, l.Viewport.Height)
	h.detach = h.Journal.Attach(h.Ctx.Bus, func() (uint64, float64) {
		return uint64(h.Time.FrameCount()), h.Time.Time()
	})

	for _, b := range l.Geometry {
		h.geometry[b.Name] = h.World.Spawn(collision.BodyDesc{
			Name:      b.Name,
			Shape:     collision.BoxShape(b.Extent.Vec()),
			Pose:      b.Transform(),
			Type:      collision.WorldStatic,
			Responses: collision.AllResponses(collision.Block).With(collision.Ignore, collision.FirstPortalCopy, collision.SecondPortalCopy),
			Enabled:   collision.QueryAndPhysics,
		})
	}
	for _, s := range l.Surfaces {
		surface := portal.NewSurface(s.Name, s.Transform(), s.Size.Vec())
		if s.Attached != "" {
			surface.Attach(h.geometry[s.Attached])
		}
		surface.Activate(h.Ctx)
		h.surfaces[s.Name] = surface
	}
	for _, p := range l.Props {
		h.props[p.Name] = entity.NewProp(h.Ctx, entity.PropDesc{
			Name:      p.Name,
			Pose:      p.Transform(),
			Extent:    p.Extent.Vec(),
			Mass:      p.Mass,
			Materials: p.Materials,
		})
	}
	for _, c := range l.Characters {
		h.characters[c.Name] = entity.NewCharacter(h.Ctx, entity.CharacterDesc{
			Name:       c.Name,
			Location:   c.Location.Vec(),
			Yaw:        c.Yaw,
			Radius:     c.Radius,
			HalfHeight: c.HalfHeight,
			EyeHeight:  c.EyeHeight,
		})
	}
	if l.Player != "" {
		h.player = h.characters[l.Player]
		h.grabber = grab.NewTraceDevice(h.Ctx, h.player)
		h.hand = grab.NewMotionControllerDevice(h.Ctx, h.player, vec.NewTransform(vec.Identity, handOffset))
	}

	if err := h.addCommands(); err != nil {
		return nil, err
	}
	h.console.SetCommandExecutors([]cbuf.Efunc{
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
			return h.commands.Execute(a)
		},
		h.aliases.Execute(),
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
			return cmd.Execute(a)
		},
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
			return cvar.Execute(a)
		},
	})
	h.console.AddText(l.Script)
	log.Info("level loaded", slog.String("level", l.Name),
		slog.Int("surfaces", len(h.surfaces)),
		slog.Int("props", len(h.props)),
		slog.Int("characters", len(h.characters)))
	return h, nil
}

// Load reads a level file and builds it.
func Load(path string, log *slog.Logger) (*Host, error) {
	l, err := level.Load(path)
	if err != nil {
		return nil, err
	}
	return NewHost(l, log)
}

// WatchTuning applies the tuning file now and again whenever it changes.
func (h *Host) WatchTuning(path string) error {
	if err := tuning.LoadAndApply(path); err != nil {
		return err
	}
	if h.watcher != nil {
		h.watcher.Close()
	}
	w, err := tuning.NewWatcher(path)
	if err != nil {
		return errors.Wrap(err, "failed to watch tuning")
	}
	h.watcher = w
	return nil
}

func (h *Host) gravityVector() vec.Vec3 {
	if h.gravity != nil {
		return vec.Vec3{Z: *h.gravity}
	}
	return vec.Vec3{Z: cvars.PhysicsGravity.Value()}
}

func (h *Host) viewer() vec.Transform {
	if h.player == nil {
		return vec.IdentityTransform
	}
	return h.player.ViewTransform()
}

// Frame runs one frame for elapsed real seconds: physics, portals, grab
// devices and finally the console.
func (h *Host) Frame(elapsed float64) {
	dt := float32(h.Time.Advance(elapsed))
	if h.watcher != nil {
		for _, err := range h.watcher.Poll() {
			h.log.Error("tuning reload failed", slog.Any("err", err))
		}
	}
	h.Debug.Reset()
	h.World.SetGravity(h.gravityVector())
	h.World.SetSubsteps(int(cvars.PhysicsSubsteps.Value()))
	h.World.Step(dt)
	h.Portals.Tick(h.viewer(), dt)
	if h.grabber != nil {
		h.grabber.Tick(dt)
		h.hand.Tick(dt)
	}
	h.console.Execute()
}

// Execute queues console text for the end of the next frame.
func (h *Host) Execute(text string) {
	h.console.AddText(text + "\n")
}

func (h *Host) Close() {
	if h.watcher != nil {
		h.watcher.Close()
		h.watcher = nil
	}
	if h.grabber != nil {
		h.grabber.Close()
		h.hand.Release()
	}
	if h.detach != nil {
		h.detach()
		h.detach = nil
	}
	h.Portals.ClearPortals()
}

func (h *Host) Player() *entity.Character  { return h.player }
func (h *Host) Grabber() *grab.TraceDevice { return h.grabber }
func (h *Host) Hand() *grab.MotionControllerDevice {
	return h.hand
}

func (h *Host) Prop(name string) (*entity.Prop, bool) {
	p, ok := h.props[name]
	return p, ok
}

func (h *Host) Character(name string) (*entity.Character, bool) {
	c, ok := h.characters[name]
	return c, ok
}

func (h *Host) Surface(name string) (*portal.Surface, bool) {
	s, ok := h.surfaces[name]
	return s, ok
}
