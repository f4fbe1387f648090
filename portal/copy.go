// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
)

type CopyKind uint8

const (
	// StaticCopy mirrors a physics prop and forwards hits to it.
	StaticCopy CopyKind = iota
	// SkeletalCopy mirrors a character with a capsule.
	SkeletalCopy
)

// Copy is the stand in of a teleportable in front of the connected portal.
// It is posed from its parent every tick and never simulated itself.
type Copy struct {
	handle    uuid.UUID
	owner     uuid.UUID
	ownerType Type
	parent    Teleportable
	kind      CopyKind
	body      collision.BodyID
	linked    collision.BodyID
	materials []*MaterialInstance
	destroyed bool
}

// NewCopy spawns a copy of parent for the connected portal p.
func NewCopy(ctx *Context, p *Portal, parent Teleportable, kind CopyKind, materials []string) *Copy {
	if p.connected == nil {
		ctx.Log.Error("copy for unconnected portal", slog.String("portal", p.String()))
		return nil
	}
	e := ctx.Engine
	pb := parent.CollisionBody()
	c := &Copy{
		handle:    NewHandle(),
		owner:     p.handle,
		ownerType: p.typ,
		parent:    parent,
		kind:      kind,
	}

	shape := e.Shape(pb)
	if kind == SkeletalCopy && shape.Kind != collision.Capsule {
		b := shape.Bounds()
		shape = collision.CapsuleShape(max(b.X, b.Y), b.Z)
	}
	rs := e.Responses(pb).With(collision.Ignore,
		collision.FirstPortalCopy, collision.SecondPortalCopy,
		collision.PortalTrace, collision.GrabObstruction)
	c.body = e.Spawn(collision.BodyDesc{
		Name:      parent.Name() + " copy",
		Shape:     shape,
		Pose:      p.TeleportTransform(e.Pose(pb)),
		Type:      CopyObjectType(p.typ),
		Responses: rs,
		Enabled:   collision.QueryAndPhysics,
		Mass:      e.Mass(pb),
	})
	e.IgnoreCollision(c.body, pb, true)
	for _, b := range p.connected.surface.CollisionBodies() {
		e.IgnoreCollision(c.body, b, true)
	}
	if kind == StaticCopy {
		c.linked = pb
		e.OnHit(c.body, func(_, other collision.BodyID, hit collision.Hit, impulse vec.Vec3) {
			c.onHit(ctx, other, hit, impulse)
		})
	}
	for _, m := range materials {
		c.materials = append(c.materials, &MaterialInstance{Name: m, CanBeCulled: true})
	}
	c.updateMaterials(p)
	ctx.Registry.copies[c.handle] = c
	return c
}

func (c *Copy) Handle() uuid.UUID              { return c.handle }
func (c *Copy) Owner() uuid.UUID               { return c.owner }
func (c *Copy) Parent() Teleportable           { return c.parent }
func (c *Copy) Kind() CopyKind                 { return c.kind }
func (c *Copy) Body() collision.BodyID         { return c.body }
func (c *Copy) LinkedBody() collision.BodyID   { return c.linked }
func (c *Copy) Materials() []*MaterialInstance { return c.materials }
func (c *Copy) Destroyed() bool                { return c.destroyed }

func (c *Copy) ownerPortal(ctx *Context) (*Portal, bool) {
	p, ok := ctx.Registry.Portal(c.owner)
	if !ok || p.connected == nil {
		ctx.Log.Error("copy owner no longer valid", slog.String("copy", c.handle.String()))
		return nil, false
	}
	return p, true
}

func (c *Copy) updateMaterials(p *Portal) {
	for _, m := range c.materials {
		m.CullPlaneCenter = p.connected.Location()
		m.CullPlaneNormal = p.connected.Forward()
	}
}

// Sync poses the copy from its parent and stops it.
func (c *Copy) Sync(ctx *Context) {
	if c.destroyed {
		return
	}
	p, ok := c.ownerPortal(ctx)
	if !ok {
		return
	}
	ctx.Engine.SetPose(c.body, p.TeleportTransform(ctx.Engine.Pose(c.parent.CollisionBody())))
	c.ResetVelocity(ctx)
	c.updateMaterials(p)
}

// ResetVelocity stops the copy.
func (c *Copy) ResetVelocity(ctx *Context) {
	ctx.Engine.SetVelocity(c.body, vec.Vec3{}, vec.Vec3{})
}

// AddImpulseAtLocation applies an impulse given in the space of the copy to
// the linked parent.
func (c *Copy) AddImpulseAtLocation(ctx *Context, impulse, location vec.Vec3) {
	if c.linked == collision.NoBody {
		return
	}
	p, ok := c.ownerPortal(ctx)
	if !ok {
		return
	}
	ctx.Engine.AddImpulseAtLocation(c.linked, p.InverseTeleportVelocity(impulse), p.InverseTeleportLocation(location))
}

func (c *Copy) AddForceAtLocation(ctx *Context, force, location vec.Vec3) {
	if c.linked == collision.NoBody {
		return
	}
	p, ok := c.ownerPortal(ctx)
	if !ok {
		return
	}
	ctx.Engine.AddForceAtLocation(c.linked, p.InverseTeleportVelocity(force), p.InverseTeleportLocation(location))
}

func forwardsHits(c collision.Channel) bool {
	switch c {
	case collision.PhysicsBody, collision.WithinFirstPortal, collision.WithinSecondPortal, collision.WithinBothPortals:
		return true
	}
	return false
}

func (c *Copy) onHit(ctx *Context, other collision.BodyID, hit collision.Hit, impulse vec.Vec3) {
	if c.destroyed || !forwardsHits(ctx.Engine.ObjectType(other)) || impulse.IsNearlyZero(1e-6) {
		return
	}
	c.AddImpulseAtLocation(ctx, impulse, hit.Location)
}

// Destroy removes the body of the copy.
func (c *Copy) Destroy(ctx *Context) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	ctx.Engine.Destroy(c.body)
	delete(ctx.Registry.copies, c.handle)
}
