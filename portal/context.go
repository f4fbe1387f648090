// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
)

// DebugDraw receives debug geometry. Colors are 0xRRGGBB.
type DebugDraw interface {
	Line(from, to vec.Vec3, color uint32)
}

// Context carries the services portal operations need. It replaces any
// global engine access.
type Context struct {
	Engine   collision.Engine
	Bus      *Bus
	Registry *Registry
	Actors   *ActorIndex
	Log      *slog.Logger
	Debug    DebugDraw
}

func NewContext(e collision.Engine, l *slog.Logger) *Context {
	if l == nil {
		l = slog.Default()
	}
	return &Context{
		Engine:   e,
		Bus:      &Bus{},
		Registry: NewRegistry(),
		Actors:   NewActorIndex(),
		Log:      l,
	}
}

// Registry resolves handles of live portals and copies.
type Registry struct {
	portals map[uuid.UUID]*Portal
	copies  map[uuid.UUID]*Copy
}

func NewRegistry() *Registry {
	return &Registry{
		portals: make(map[uuid.UUID]*Portal),
		copies:  make(map[uuid.UUID]*Copy),
	}
}

// Portal returns the live portal with handle h.
func (r *Registry) Portal(h uuid.UUID) (*Portal, bool) {
	p, ok := r.portals[h]
	if !ok || p.destroyed {
		return nil, false
	}
	return p, true
}

func (r *Registry) Copy(h uuid.UUID) (*Copy, bool) {
	c, ok := r.copies[h]
	return c, ok
}

func (r *Registry) Portals() int { return len(r.portals) }
func (r *Registry) Copies() int  { return len(r.copies) }

// ActorIndex maps collision bodies back onto the objects owning them.
type ActorIndex struct {
	actors map[collision.BodyID]any
}

func NewActorIndex() *ActorIndex {
	return &ActorIndex{actors: make(map[collision.BodyID]any)}
}

func (a *ActorIndex) Add(b collision.BodyID, actor any) {
	a.actors[b] = actor
}

func (a *ActorIndex) Remove(b collision.BodyID) {
	delete(a.actors, b)
}

func (a *ActorIndex) Actor(b collision.BodyID) (any, bool) {
	actor, ok := a.actors[b]
	return actor, ok
}

func (a *ActorIndex) Teleportable(b collision.BodyID) (Teleportable, bool) {
	t, ok := a.actors[b].(Teleportable)
	return t, ok
}

func (a *ActorIndex) Surface(b collision.BodyID) (*Surface, bool) {
	s, ok := a.actors[b].(*Surface)
	return s, ok
}

func (a *ActorIndex) Portal(b collision.BodyID) (*Portal, bool) {
	p, ok := a.actors[b].(*Portal)
	if !ok || p.destroyed {
		return nil, false
	}
	return p, true
}
