// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math"
	"goportal/math/vec"
)

// Surface is a flat panel portals can be placed on. Its transform sits on the
// center of the front face with +X pointing out of the face.
type Surface struct {
	handle    uuid.UUID
	name      string
	transform vec.Transform
	// size is the full size, X is the thickness.
	size     vec.Vec3
	body     collision.BodyID
	attached collision.BodyID
	canFit   bool
	active   bool
}

func NewSurface(name string, t vec.Transform, size vec.Vec3) *Surface {
	return &Surface{
		handle:    NewHandle(),
		name:      name,
		transform: t,
		size:      size,
	}
}

// Activate spawns the collider and decides once whether a portal fits.
func (s *Surface) Activate(ctx *Context) {
	if s.active {
		return
	}
	s.active = true
	half := s.size.Scale(0.5)
	center := s.transform.TransformPosition(vec.Vec3{X: -half.X})
	s.body = ctx.Engine.Spawn(collision.BodyDesc{
		Name:      s.name,
		Shape:     collision.BoxShape(half),
		Pose:      vec.NewTransform(s.transform.Rotation, center),
		Type:      collision.WorldStatic,
		Responses: collision.AllResponses(collision.Block).With(collision.Ignore, collision.FirstPortalCopy, collision.SecondPortalCopy),
		Enabled:   collision.QueryAndPhysics,
	})
	ctx.Actors.Add(s.body, s)
	m := MinimumExtents()
	s.canFit = half.Y >= m.Y && half.Z >= m.Z
	if !s.canFit {
		ctx.Log.Debug("surface too small for a portal", slog.String("surface", s.name))
	}
}

// Attach registers a collider of another object this surface is painted on.
// The collider loses collision with teleportables just like the surface.
func (s *Surface) Attach(b collision.BodyID) {
	s.attached = b
}

func (s *Surface) Handle() uuid.UUID        { return s.handle }
func (s *Surface) Name() string             { return s.name }
func (s *Surface) Transform() vec.Transform { return s.transform }
func (s *Surface) Size() vec.Vec3           { return s.size }
func (s *Surface) Body() collision.BodyID   { return s.body }
func (s *Surface) Attached() collision.BodyID {
	return s.attached
}

func (s *Surface) CanFitPortal() bool {
	return s.canFit
}

// CollisionBodies returns the colliders teleportables stop colliding with
// while they are inside a portal on this surface.
func (s *Surface) CollisionBodies() []collision.BodyID {
	ret := []collision.BodyID{}
	if s.body != collision.NoBody {
		ret = append(ret, s.body)
	}
	if s.attached != collision.NoBody {
		ret = append(ret, s.attached)
	}
	return ret
}

// IsFrontFace reports whether a hit with normal n is on the face portals
// can be placed on.
func (s *Surface) IsFrontFace(n vec.Vec3) bool {
	return vec.Dot(n, s.transform.Forward()) > 1-math.KindaSmall
}

// ToCoords projects a world position onto the face.
func (s *Surface) ToCoords(p vec.Vec3) Coords {
	l := s.transform.InverseTransformPosition(p)
	return Coords{l.Y, l.Z}
}

// FitPortal clamps the coords so a portal around them stays on the surface.
// The extents shrink down to the minimum size on small surfaces.
func (s *Surface) FitPortal(c Coords) (Coords, Extents, bool) {
	if !s.canFit {
		return c, Extents{}, false
	}
	std := StandardExtents()
	e := Extents{
		Y: min(std.Y, s.size.Y/2),
		Z: min(std.Z, s.size.Z/2),
	}
	limitY := s.size.Y/2 - e.Y
	limitZ := s.size.Z/2 - e.Z
	return Coords{
		Y: math.Clamp(-limitY, c.Y, limitY),
		Z: math.Clamp(-limitZ, c.Z, limitZ),
	}, e, true
}

// PortalTransform returns the world transform of a portal at c, lifted off
// the face by offset.
func (s *Surface) PortalTransform(c Coords, offset float32) vec.Transform {
	return vec.NewTransform(s.transform.Rotation,
		s.transform.TransformPosition(vec.Vec3{X: offset, Y: c.Y, Z: c.Z}))
}
