// SPDX-License-Identifier: GPL-2.0-or-later

package entity

import (
	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
	"goportal/portal"
)

var CharacterResponses = collision.AllResponses(collision.Block).
	With(collision.Ignore, collision.FirstPortalCopy, collision.SecondPortalCopy, collision.PortalTrace).
	With(collision.Overlap, collision.WorldDynamic)

type CharacterDesc struct {
	Name       string
	Location   vec.Vec3
	Yaw        float32
	Radius     float32
	HalfHeight float32
	EyeHeight  float32
}

// Character is an upright capsule with a free look direction.
type Character struct {
	portal.TeleportableBase
	ctx       *portal.Context
	handle    uuid.UUID
	name      string
	control   vec.Rotator
	eyeHeight float32
}

func NewCharacter(ctx *portal.Context, d CharacterDesc) *Character {
	c := &Character{
		ctx:       ctx,
		handle:    portal.NewHandle(),
		name:      d.Name,
		control:   vec.Rotator{Yaw: d.Yaw},
		eyeHeight: d.EyeHeight,
	}
	body := ctx.Engine.Spawn(collision.BodyDesc{
		Name:      d.Name,
		Shape:     collision.CapsuleShape(d.Radius, d.HalfHeight),
		Pose:      vec.NewTransform(vec.Rotator{Yaw: d.Yaw}.Quat(), d.Location),
		Type:      collision.Pawn,
		Responses: CharacterResponses,
		Enabled:   collision.QueryAndPhysics,
		Simulate:  true,
		Mass:      80,
	})
	c.Init(body, collision.Pawn)
	ctx.Actors.Add(body, c)
	ctx.Engine.UpdateOverlaps(body)
	return c
}

func (c *Character) Handle() uuid.UUID { return c.handle }
func (c *Character) Name() string      { return c.name }

func (c *Character) Transform() vec.Transform {
	return c.ctx.Engine.Pose(c.CollisionBody())
}

func (c *Character) Velocity() (vec.Vec3, vec.Vec3) {
	return c.ctx.Engine.Velocity(c.CollisionBody())
}

func (c *Character) SetVelocity(linear, _ vec.Vec3) {
	c.ctx.Engine.SetVelocity(c.CollisionBody(), linear, vec.Vec3{})
}

func (c *Character) ControlRotation() vec.Rotator {
	return c.control
}

// SetControlRotation sets the look direction. Roll is dropped.
func (c *Character) SetControlRotation(r vec.Rotator) {
	c.control = vec.Rotator{Pitch: r.Pitch, Yaw: r.Yaw}
}

func (c *Character) EyeLocation() vec.Vec3 {
	return vec.Add(c.Transform().Translation, vec.Vec3{Z: c.eyeHeight})
}

// ViewTransform is the eye location looking along the control rotation.
func (c *Character) ViewTransform() vec.Transform {
	return vec.NewTransform(c.control.Quat(), c.EyeLocation())
}

// Move sweeps the character by delta and runs the crossing checks of the
// portals it is in.
func (c *Character) Move(ctx *portal.Context, delta vec.Vec3) bool {
	rot := vec.Rotator{Yaw: c.control.Yaw}.Quat()
	_, blocked := ctx.Engine.Move(c.CollisionBody(), delta, rot)
	c.NotifyMoved(ctx, c)
	return !blocked
}

// Teleport keeps the capsule upright and carries the look direction
// through.
func (c *Character) Teleport(ctx *portal.Context, src *portal.Portal) bool {
	pose := c.Transform()
	loc := src.TeleportLocation(pose.Translation)
	rot := src.TeleportRotation(pose.Rotation).ToRotator().YawOnly()
	control := src.TeleportRotation(c.control.Quat()).ToRotator()
	if !portal.Teleport(ctx, c, src, vec.NewTransform(rot.Quat(), loc)) {
		return false
	}
	c.SetControlRotation(control)
	return true
}

func (c *Character) CreatePortalCopy(ctx *portal.Context, src *portal.Portal) *portal.Copy {
	return portal.NewCopy(ctx, src, c, portal.SkeletalCopy, nil)
}

// ShootPortal places a portal where the character looks.
func (c *Character) ShootPortal(m *portal.Manager, t portal.Type) (*portal.Portal, bool) {
	return m.ShootPortal(t, c.EyeLocation(), c.control.Forward())
}
