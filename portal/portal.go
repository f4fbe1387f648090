// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/cvars"
	"goportal/math/vec"
)

const borderThickness = 5

// Portal is a placed opening on a surface. It only teleports and spawns
// copies while it is connected to its partner.
type Portal struct {
	handle     uuid.UUID
	typ        Type
	surface    *Surface
	coords     Coords
	extents    Extents
	transform  vec.Transform
	backfacing vec.Transform
	connected  *Portal

	// members are the teleportables inside the inner volume in order of
	// arrival. begun holds those that got OnOverlapWithPortalBegin.
	members     []Teleportable
	begun       map[uuid.UUID]bool
	approaching []Teleportable
	copies      map[uuid.UUID]*Copy

	capture  SceneCapture
	material Material

	mesh    collision.BodyID
	borders [4]collision.BodyID
	inner   collision.BodyID
	outer   collision.BodyID

	destroyed bool
}

func newPortal() *Portal {
	return &Portal{
		handle: NewHandle(),
		begun:  make(map[uuid.UUID]bool),
		copies: make(map[uuid.UUID]*Copy),
	}
}

func (p *Portal) String() string {
	return fmt.Sprintf("%s portal %s", p.typ, p.handle)
}

func (p *Portal) Handle() uuid.UUID         { return p.handle }
func (p *Portal) Type() Type                { return p.typ }
func (p *Portal) Surface() *Surface         { return p.surface }
func (p *Portal) Coords() Coords            { return p.coords }
func (p *Portal) Extents() Extents          { return p.extents }
func (p *Portal) Transform() vec.Transform  { return p.transform }
func (p *Portal) Backfacing() vec.Transform { return p.backfacing }
func (p *Portal) Location() vec.Vec3        { return p.transform.Translation }
func (p *Portal) Forward() vec.Vec3         { return p.transform.Forward() }
func (p *Portal) Connected() *Portal        { return p.connected }
func (p *Portal) IsConnected() bool         { return p.connected != nil }
func (p *Portal) Body() collision.BodyID    { return p.mesh }
func (p *Portal) Capture() *SceneCapture    { return &p.capture }
func (p *Portal) Material() *Material       { return &p.material }
func (p *Portal) Destroyed() bool           { return p.destroyed }

// InnerVolume returns the trigger that decides membership.
func (p *Portal) InnerVolume() collision.BodyID {
	return p.inner
}

// Members returns the teleportables inside the inner volume.
func (p *Portal) Members() []Teleportable {
	return slices.Clone(p.members)
}

// CopyOf returns the copy of t spawned by this portal.
func (p *Portal) CopyOf(t Teleportable) (*Copy, bool) {
	c, ok := p.copies[t.Handle()]
	return c, ok
}

func (p *Portal) NumCopies() int {
	return len(p.copies)
}

// Initialize places the portal and spawns its collision. It fails if the
// portal was already initialized or s is nil.
func (p *Portal) Initialize(ctx *Context, s *Surface, c Coords, e Extents, t Type, other *Portal) bool {
	if p.surface != nil {
		ctx.Log.Error("portal already initialized", slog.String("portal", p.String()))
		return false
	}
	if s == nil {
		ctx.Log.Error("portal without surface", slog.String("portal", p.String()))
		return false
	}
	p.surface = s
	p.coords = c
	p.extents = e
	p.typ = t
	p.transform = s.PortalTransform(c, cvars.PortalOffsetFromSurface.Value())
	p.backfacing = vec.Compose(vec.NewTransform(vec.Rotator{Yaw: 180}.Quat(), vec.Vec3{}), p.transform)
	p.material = Material{Texture: NoConnectedPortalTexture}
	ctx.Registry.portals[p.handle] = p

	p.spawnBodies(ctx)
	p.capture.Hidden = s.CollisionBodies()
	p.capture.ClipPlaneBase = p.Location()
	p.capture.ClipPlaneNormal = p.Forward()

	ctx.Engine.UpdateOverlaps(p.inner)
	ctx.Engine.UpdateOverlaps(p.outer)
	if other != nil {
		p.SetConnectedPortal(ctx, other)
	}
	ctx.Log.Debug("portal initialized", slog.String("portal", p.String()), slog.String("surface", s.Name()))
	return true
}

func (p *Portal) local(l vec.Vec3) vec.Transform {
	return vec.Compose(vec.NewTransform(vec.Identity, l), p.transform)
}

func (p *Portal) spawnBodies(ctx *Context) {
	e := ctx.Engine
	p.mesh = e.Spawn(collision.BodyDesc{
		Name:  p.String(),
		Shape: collision.BoxShape(vec.Vec3{X: 0.05, Y: p.extents.Y, Z: p.extents.Z}),
		Pose:  p.transform,
		Type:  collision.PortalBody,
		Responses: collision.AllResponses(collision.Ignore).
			With(collision.Block, collision.PhysicsBody, collision.GrabObstruction),
		Enabled: collision.QueryOnly,
	})
	ctx.Actors.Add(p.mesh, p)

	depth := cvars.PortalVolumeDepth.Value()
	blocking := collision.AllResponses(collision.Ignore).With(collision.Block,
		collision.PhysicsBody, collision.Pawn,
		collision.WithinFirstPortal, collision.WithinSecondPortal, collision.WithinBothPortals)
	t := float32(borderThickness)
	for i, b := range []struct {
		center vec.Vec3
		extent vec.Vec3
	}{
		{vec.Vec3{X: -depth, Y: -(p.extents.Y + t)}, vec.Vec3{X: depth, Y: t, Z: p.extents.Z + 2*t}},
		{vec.Vec3{X: -depth, Y: p.extents.Y + t}, vec.Vec3{X: depth, Y: t, Z: p.extents.Z + 2*t}},
		{vec.Vec3{X: -depth, Z: -(p.extents.Z + t)}, vec.Vec3{X: depth, Y: p.extents.Y, Z: t}},
		{vec.Vec3{X: -depth, Z: p.extents.Z + t}, vec.Vec3{X: depth, Y: p.extents.Y, Z: t}},
	} {
		p.borders[i] = e.Spawn(collision.BodyDesc{
			Name:      fmt.Sprintf("%s border %d", p, i),
			Shape:     collision.BoxShape(b.extent),
			Pose:      p.local(b.center),
			Type:      collision.WorldStatic,
			Responses: blocking,
			Enabled:   collision.PhysicsOnly,
		})
	}

	overlapping := collision.AllResponses(collision.Ignore).With(collision.Overlap,
		collision.PhysicsBody, collision.Pawn,
		collision.WithinFirstPortal, collision.WithinSecondPortal, collision.WithinBothPortals)
	p.inner = e.Spawn(collision.BodyDesc{
		Name:      p.String() + " inner",
		Shape:     collision.BoxShape(vec.Vec3{X: depth, Y: p.extents.Y, Z: p.extents.Z}),
		Pose:      p.transform,
		Type:      collision.WorldDynamic,
		Responses: overlapping,
		Enabled:   collision.QueryOnly,
		Trigger:   true,
	})
	outer := cvars.PortalOuterVolumeDepth.Value()
	margin := outer - depth
	p.outer = e.Spawn(collision.BodyDesc{
		Name:      p.String() + " outer",
		Shape:     collision.BoxShape(vec.Vec3{X: outer, Y: p.extents.Y + margin, Z: p.extents.Z + margin}),
		Pose:      p.transform,
		Type:      collision.WorldDynamic,
		Responses: overlapping,
		Enabled:   collision.QueryOnly,
		Trigger:   true,
	})
	e.OnBeginOverlap(p.inner, func(_, other collision.BodyID) {
		if t, ok := ctx.Actors.Teleportable(other); ok {
			p.onActorBeginOverlap(ctx, t)
		}
	})
	e.OnEndOverlap(p.inner, func(_, other collision.BodyID) {
		if t, ok := ctx.Actors.Teleportable(other); ok {
			p.onActorEndOverlap(ctx, t)
		}
	})
	e.OnBeginOverlap(p.outer, func(_, other collision.BodyID) {
		if t, ok := ctx.Actors.Teleportable(other); ok {
			p.onActorApproach(ctx, t, true)
		}
	})
	e.OnEndOverlap(p.outer, func(_, other collision.BodyID) {
		if t, ok := ctx.Actors.Teleportable(other); ok {
			p.onActorApproach(ctx, t, false)
		}
	})
}

func (p *Portal) isMember(t Teleportable) bool {
	return slices.ContainsFunc(p.members, func(m Teleportable) bool {
		return m.Handle() == t.Handle()
	})
}

func (p *Portal) onActorBeginOverlap(ctx *Context, t Teleportable) {
	if p.destroyed || p.isMember(t) {
		return
	}
	p.members = append(p.members, t)
	if p.connected != nil {
		p.beginTeleportable(ctx, t)
	}
}

// onActorEndOverlap also teleports a member that left through the back of
// the inner volume before the next Tick saw it cross.
func (p *Portal) onActorEndOverlap(ctx *Context, t Teleportable) {
	if p.destroyed {
		return
	}
	if p.connected != nil && p.begun[t.Handle()] && p.isMember(t) {
		p.checkCrossing(ctx, t)
		if p.destroyed {
			return
		}
	}
	p.members = slices.DeleteFunc(p.members, func(m Teleportable) bool {
		return m.Handle() == t.Handle()
	})
	p.endTeleportable(ctx, t)
}

func (p *Portal) onActorApproach(ctx *Context, t Teleportable, begin bool) {
	a, ok := t.(Approacher)
	if !ok || p.destroyed {
		return
	}
	if begin {
		p.approaching = append(p.approaching, t)
		a.OnPortalApproachBegin(ctx, p)
		return
	}
	n := len(p.approaching)
	p.approaching = slices.DeleteFunc(p.approaching, func(m Teleportable) bool {
		return m.Handle() == t.Handle()
	})
	if len(p.approaching) != n {
		a.OnPortalApproachEnd(ctx, p)
	}
}

func (p *Portal) beginTeleportable(ctx *Context, t Teleportable) {
	if p.begun[t.Handle()] {
		return
	}
	p.begun[t.Handle()] = true
	t.OnOverlapWithPortalBegin(ctx, p)
	p.createCopy(ctx, t)
}

func (p *Portal) endTeleportable(ctx *Context, t Teleportable) {
	if !p.begun[t.Handle()] {
		return
	}
	delete(p.begun, t.Handle())
	p.destroyCopy(ctx, t)
	t.OnOverlapWithPortalEnd(ctx, p)
}

func (p *Portal) createCopy(ctx *Context, t Teleportable) {
	if _, ok := p.copies[t.Handle()]; ok {
		return
	}
	if c := t.CreatePortalCopy(ctx, p); c != nil {
		p.copies[t.Handle()] = c
	}
}

func (p *Portal) destroyCopy(ctx *Context, t Teleportable) {
	c, ok := p.copies[t.Handle()]
	if !ok {
		return
	}
	delete(p.copies, t.Handle())
	c.Destroy(ctx)
}

// SetConnectedPortal links p to other. Passing nil breaks the link, which
// ends the overlap of everything inside and destroys all copies.
func (p *Portal) SetConnectedPortal(ctx *Context, other *Portal) {
	if other == p.connected {
		return
	}
	if p.connected != nil {
		for _, t := range p.Members() {
			p.endTeleportable(ctx, t)
		}
	}
	p.connected = other
	if other == nil {
		p.material.Texture = NoConnectedPortalTexture
		p.capture.Enabled = false
		return
	}
	p.capture.Enabled = p.capture.Target != nil
	for _, t := range p.Members() {
		p.beginTeleportable(ctx, t)
	}
}

// hasCrossed reports whether a point lies behind the portal plane.
func (p *Portal) hasCrossed(loc vec.Vec3) bool {
	dir := vec.Sub(loc, p.Location()).Normalize()
	return vec.Dot(dir, p.Forward()) < 0
}

// Tick teleports members that crossed the plane and moves all copies.
func (p *Portal) Tick(ctx *Context, dt float32) {
	if p.destroyed {
		return
	}
	if cvars.PortalDebugDraw.Bool() && ctx.Debug != nil {
		p.debugDraw(ctx)
	}
	if p.connected == nil {
		return
	}
	for _, t := range p.Members() {
		if !p.begun[t.Handle()] || !p.isMember(t) {
			continue
		}
		p.checkCrossing(ctx, t)
		if p.destroyed || p.connected == nil {
			return
		}
	}
	for _, c := range p.copies {
		c.Sync(ctx)
	}
}

func (p *Portal) checkCrossing(ctx *Context, t Teleportable) {
	loc := ctx.Engine.Pose(t.CollisionBody()).Translation
	if p.hasCrossed(loc) {
		p.TeleportActor(ctx, t)
	}
}

// OnActorMoved runs the crossing check for t right away.
func (p *Portal) OnActorMoved(ctx *Context, t Teleportable) {
	if p.destroyed || p.connected == nil || !p.begun[t.Handle()] {
		return
	}
	p.checkCrossing(ctx, t)
}

// TeleportActor passes t through to the connected portal.
func (p *Portal) TeleportActor(ctx *Context, t Teleportable) bool {
	if p.connected == nil {
		return false
	}
	return t.Teleport(ctx, p)
}

// Destroy ends every overlap, breaks the link in both directions and
// removes all bodies.
func (p *Portal) Destroy(ctx *Context) {
	if p.destroyed {
		return
	}
	if other := p.connected; other != nil {
		if other.connected == p {
			other.SetConnectedPortal(ctx, nil)
		}
		p.SetConnectedPortal(ctx, nil)
	}
	for _, t := range p.Members() {
		p.endTeleportable(ctx, t)
	}
	for _, t := range slices.Clone(p.approaching) {
		if a, ok := t.(Approacher); ok {
			a.OnPortalApproachEnd(ctx, p)
		}
	}
	p.members = nil
	p.approaching = nil
	p.destroyed = true

	ctx.Actors.Remove(p.mesh)
	for _, b := range append([]collision.BodyID{p.mesh, p.inner, p.outer}, p.borders[:]...) {
		ctx.Engine.Destroy(b)
	}
	delete(ctx.Registry.portals, p.handle)
	ctx.Log.Debug("portal destroyed", slog.String("portal", p.String()))
}

func (p *Portal) debugDraw(ctx *Context) {
	const (
		green = 0x00ff00
		red   = 0xff0000
	)
	color := uint32(red)
	if p.connected != nil {
		color = green
	}
	var corners [4]vec.Vec3
	for i, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		corners[i] = p.transform.TransformPosition(vec.Vec3{Y: c[0] * p.extents.Y, Z: c[1] * p.extents.Z})
	}
	for i := range corners {
		ctx.Debug.Line(corners[i], corners[(i+1)%4], color)
	}
	ctx.Debug.Line(p.Location(), vec.Add(p.Location(), p.transform.Up().Scale(p.extents.Z)), color)
	ctx.Debug.Line(p.Location(), vec.Add(p.Location(), p.Forward().Scale(50)), color)
}
