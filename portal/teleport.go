// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/chewxy/math32"

	"goportal/collision"
	"goportal/math/vec"
)

// Teleport moves t from the front of src to dest in front of the connected
// portal. dest is usually src.TeleportTransform of the current pose. On
// success the velocity is carried through and a TeleportEvent is published.
func Teleport(ctx *Context, t Teleportable, src *Portal, dest vec.Transform) bool {
	dst := src.Connected()
	if dst == nil {
		return false
	}
	body := t.CollisionBody()
	linear, angular := t.Velocity()
	linear = src.TeleportVelocity(linear)
	angular = src.TeleportVelocity(angular)

	ignore := dst.Surface().CollisionBodies()
	for _, p := range []*Portal{src, dst} {
		if c, ok := p.CopyOf(t); ok {
			ignore = append(ignore, c.Body())
		}
	}

	adjust := EncroachmentAdjustment(ctx, body, dst, dest, ignore)
	dest.Translation = vec.Add(dest.Translation, adjust)

	if !ctx.Engine.Teleport(body, dest, collision.QueryParams{Ignore: ignore}) {
		ctx.Log.Error("teleport failed",
			slog.String("actor", t.Name()),
			slog.String("portal", src.String()))
		return false
	}
	t.SetVelocity(linear, angular)
	ctx.Bus.Publish(TeleportEvent{Actor: t, Source: src.Handle(), Target: dst.Handle()})
	return true
}

// CanEncroach reports whether an overlap with o must push a teleporting
// body away. Copies are the body itself seen through a portal and never
// count.
func CanEncroach(o collision.OverlapResult) bool {
	return o.Response == collision.Block && !o.Type.IsCopy()
}

// behindPlane reports whether body b lies fully behind the plane of p.
func behindPlane(ctx *Context, b collision.BodyID, p *Portal) bool {
	pose := ctx.Engine.Pose(b)
	e := ctx.Engine.Shape(b).Bounds()
	f := p.Forward()
	r := math32.Abs(vec.Dot(f, pose.Forward()))*e.X +
		math32.Abs(vec.Dot(f, pose.Right()))*e.Y +
		math32.Abs(vec.Dot(f, pose.Up()))*e.Z
	d := vec.Dot(vec.Sub(pose.Translation, p.Location()), f)
	return d+r <= 0
}

// EncroachmentAdjustment returns the translation that moves body out of
// blocking geometry at dest in front of target. If any blocking overlap
// lacks a valid translation the result is zero.
func EncroachmentAdjustment(ctx *Context, body collision.BodyID, target *Portal, dest vec.Transform, ignore []collision.BodyID) vec.Vec3 {
	q := collision.QueryParams{Ignore: append([]collision.BodyID{body}, ignore...)}
	overlaps := ctx.Engine.Overlap(ctx.Engine.Shape(body), dest, InnerObjectType(target.Type()), q)
	var sum vec.Vec3
	for _, o := range overlaps {
		if !CanEncroach(o) || behindPlane(ctx, o.Body, target) {
			continue
		}
		if !o.MTDValid {
			ctx.Log.Debug("encroachment without valid translation", slog.String("portal", target.String()))
			return vec.Vec3{}
		}
		sum = vec.Add(sum, o.MTD)
	}
	return sum
}
