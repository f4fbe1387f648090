// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
)

var _ Approacher = (*TeleportableBase)(nil)

// Teleportable is implemented by everything that can pass through portals.
type Teleportable interface {
	Handle() uuid.UUID
	Name() string
	CollisionBody() collision.BodyID
	Velocity() (linear, angular vec.Vec3)
	SetVelocity(linear, angular vec.Vec3)
	// Teleport moves the entity from the front of src to the front of the
	// portal connected to src.
	Teleport(ctx *Context, src *Portal) bool
	CreatePortalCopy(ctx *Context, p *Portal) *Copy
	OnOverlapWithPortalBegin(ctx *Context, p *Portal)
	OnOverlapWithPortalEnd(ctx *Context, p *Portal)
}

// Approacher is implemented by teleportables that care about the outer
// volume of a portal.
type Approacher interface {
	OnPortalApproachBegin(ctx *Context, p *Portal)
	OnPortalApproachEnd(ctx *Context, p *Portal)
}

// TeleportableBase keeps the collision bookkeeping shared by all entity
// kinds. Embed it and call Init once the collision body exists.
type TeleportableBase struct {
	body     collision.BodyID
	baseType collision.Channel
	state    OverlapState
	// portals holds the handles of the connected portals the entity is in.
	portals     []uuid.UUID
	approaching int
}

func (b *TeleportableBase) Init(body collision.BodyID, baseType collision.Channel) {
	b.body = body
	b.baseType = baseType
}

func (b *TeleportableBase) CollisionBody() collision.BodyID {
	return b.body
}

func (b *TeleportableBase) OverlapState() OverlapState {
	return b.state
}

// OverlappingPortals returns the handles of the portals the entity is in.
func (b *TeleportableBase) OverlappingPortals() []uuid.UUID {
	return slices.Clone(b.portals)
}

func (b *TeleportableBase) setCollisionWith(ctx *Context, s *Surface, enabled bool) {
	for _, c := range s.CollisionBodies() {
		ctx.Engine.IgnoreCollision(b.body, c, !enabled)
	}
}

// OnOverlapWithPortalBegin updates state and collision when entering p.
func (b *TeleportableBase) OnOverlapWithPortalBegin(ctx *Context, p *Portal) {
	if slices.Contains(b.portals, p.Handle()) {
		ctx.Log.Error("portal overlap began twice", slog.String("portal", p.String()))
		return
	}
	b.portals = append(b.portals, p.Handle())
	b.state = b.state.Begin(p.Type())
	ctx.Engine.SetObjectType(b.body, b.state.ObjectType(b.baseType))
	b.setCollisionWith(ctx, p.Surface(), false)
	ctx.Engine.SetResponse(b.body, OpposingCopyObjectType(p.Type()), collision.Block)
}

// OnOverlapWithPortalEnd reverts OnOverlapWithPortalBegin.
func (b *TeleportableBase) OnOverlapWithPortalEnd(ctx *Context, p *Portal) {
	i := slices.Index(b.portals, p.Handle())
	if i < 0 {
		ctx.Log.Error("portal overlap ended without begin", slog.String("portal", p.String()))
		return
	}
	b.portals = slices.Delete(b.portals, i, i+1)
	b.setCollisionWith(ctx, p.Surface(), true)
	ctx.Engine.SetResponse(b.body, OpposingCopyObjectType(p.Type()), collision.Ignore)
	b.state = b.state.End(p.Type())
	ctx.Engine.SetObjectType(b.body, b.state.ObjectType(b.baseType))
}

// OnPortalApproachBegin turns on continuous collision while the entity is
// close to any portal.
func (b *TeleportableBase) OnPortalApproachBegin(ctx *Context, _ *Portal) {
	b.approaching++
	if b.approaching == 1 {
		ctx.Engine.SetCCD(b.body, true)
	}
}

func (b *TeleportableBase) OnPortalApproachEnd(ctx *Context, _ *Portal) {
	if b.approaching == 0 {
		return
	}
	b.approaching--
	if b.approaching == 0 {
		ctx.Engine.SetCCD(b.body, false)
	}
}

// NotifyMoved runs the crossing check of every portal self is in. Call it
// after moving self outside of the physics step.
func (b *TeleportableBase) NotifyMoved(ctx *Context, self Teleportable) {
	for _, h := range b.OverlappingPortals() {
		if p, ok := ctx.Registry.Portal(h); ok {
			p.OnActorMoved(ctx, self)
		}
	}
}
