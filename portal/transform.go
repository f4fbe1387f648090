// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"goportal/math/vec"
)

// The maps below take a world space quantity in front of p into the
// equivalent one in front of the connected portal. Positions are expressed
// relative to the backfacing frame of p, which faces into p, and then
// re-expressed in the frame of the connected portal, which faces out. An
// unconnected portal returns its input.

func (p *Portal) TeleportLocation(loc vec.Vec3) vec.Vec3 {
	if p.connected == nil {
		return loc
	}
	return p.connected.transform.TransformPosition(p.backfacing.InverseTransformPosition(loc))
}

func (p *Portal) TeleportRotation(q vec.Quat) vec.Quat {
	if p.connected == nil {
		return q
	}
	return p.connected.transform.TransformRotation(p.backfacing.InverseTransformRotation(q))
}

func (p *Portal) TeleportVelocity(v vec.Vec3) vec.Vec3 {
	if p.connected == nil {
		return v
	}
	return p.connected.transform.TransformVector(p.backfacing.InverseTransformVector(v))
}

// TeleportTransform maps a full transform.
func (p *Portal) TeleportTransform(t vec.Transform) vec.Transform {
	if p.connected == nil {
		return t
	}
	return vec.Compose(t.RelativeTo(p.backfacing), p.connected.transform)
}

// InverseTeleportLocation undoes TeleportLocation.
func (p *Portal) InverseTeleportLocation(loc vec.Vec3) vec.Vec3 {
	if p.connected == nil {
		return loc
	}
	return p.backfacing.TransformPosition(p.connected.transform.InverseTransformPosition(loc))
}

func (p *Portal) InverseTeleportRotation(q vec.Quat) vec.Quat {
	if p.connected == nil {
		return q
	}
	return p.backfacing.TransformRotation(p.connected.transform.InverseTransformRotation(q))
}

func (p *Portal) InverseTeleportVelocity(v vec.Vec3) vec.Vec3 {
	if p.connected == nil {
		return v
	}
	return p.backfacing.TransformVector(p.connected.transform.InverseTransformVector(v))
}
