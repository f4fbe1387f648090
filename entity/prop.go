// SPDX-License-Identifier: GPL-2.0-or-later

// Package entity holds the kinds of things that move through portals.
package entity

import (
	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
	"goportal/portal"
)

// PropResponses are the responses of physics props outside of portals.
var PropResponses = collision.AllResponses(collision.Block).
	With(collision.Ignore, collision.FirstPortalCopy, collision.SecondPortalCopy, collision.PortalTrace).
	With(collision.Overlap, collision.WorldDynamic)

type PropDesc struct {
	Name      string
	Pose      vec.Transform
	Extent    vec.Vec3
	Mass      float32
	Materials []string
}

// Prop is a simulated box that can be grabbed and carried through portals.
type Prop struct {
	portal.TeleportableBase
	ctx       *portal.Context
	handle    uuid.UUID
	name      string
	materials []string
	grabbed   bool
}

func NewProp(ctx *portal.Context, d PropDesc) *Prop {
	p := &Prop{
		ctx:       ctx,
		handle:    portal.NewHandle(),
		name:      d.Name,
		materials: d.Materials,
	}
	body := ctx.Engine.Spawn(collision.BodyDesc{
		Name:      d.Name,
		Shape:     collision.BoxShape(d.Extent),
		Pose:      d.Pose,
		Type:      collision.PhysicsBody,
		Responses: PropResponses,
		Enabled:   collision.QueryAndPhysics,
		Simulate:  true,
		Mass:      d.Mass,
	})
	p.Init(body, collision.PhysicsBody)
	ctx.Actors.Add(body, p)
	ctx.Engine.UpdateOverlaps(body)
	return p
}

func (p *Prop) Handle() uuid.UUID { return p.handle }
func (p *Prop) Name() string      { return p.name }

func (p *Prop) Transform() vec.Transform {
	return p.ctx.Engine.Pose(p.CollisionBody())
}

func (p *Prop) Velocity() (vec.Vec3, vec.Vec3) {
	return p.ctx.Engine.Velocity(p.CollisionBody())
}

func (p *Prop) SetVelocity(linear, angular vec.Vec3) {
	p.ctx.Engine.SetVelocity(p.CollisionBody(), linear, angular)
}

func (p *Prop) Teleport(ctx *portal.Context, src *portal.Portal) bool {
	return portal.Teleport(ctx, p, src, src.TeleportTransform(p.Transform()))
}

func (p *Prop) CreatePortalCopy(ctx *portal.Context, src *portal.Portal) *portal.Copy {
	return portal.NewCopy(ctx, src, p, portal.StaticCopy, p.materials)
}

func (p *Prop) IsGrabbed() bool {
	return p.grabbed
}

// OnGrabbed turns the prop kinematic while it is held.
func (p *Prop) OnGrabbed(ctx *portal.Context) {
	p.grabbed = true
	ctx.Engine.SetSimulatePhysics(p.CollisionBody(), false)
}

func (p *Prop) OnReleased(ctx *portal.Context) {
	p.grabbed = false
	ctx.Engine.SetSimulatePhysics(p.CollisionBody(), true)
}

// OnGrabbableMoved runs the crossing checks after a grab device moved it.
func (p *Prop) OnGrabbableMoved(ctx *portal.Context, _ float32) {
	p.NotifyMoved(ctx, p)
}

// Destroy ends all portal overlaps and removes the body.
func (p *Prop) Destroy(ctx *portal.Context) {
	ctx.Engine.Destroy(p.CollisionBody())
	ctx.Actors.Remove(p.CollisionBody())
}
