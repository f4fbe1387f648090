// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"goportal/cvar"
)

var (
	PortalShootRange        *cvar.Cvar
	PortalOffsetFromSurface *cvar.Cvar
	PortalWidth             *cvar.Cvar
	PortalHeight            *cvar.Cvar
	PortalMinWidth          *cvar.Cvar
	PortalMinHeight         *cvar.Cvar
	PortalVolumeDepth       *cvar.Cvar
	PortalOuterVolumeDepth  *cvar.Cvar
	PortalMaxTraceIteration *cvar.Cvar
	PortalDebugDraw         *cvar.Cvar

	GrabRange           *cvar.Cvar
	GrabHoldOffset      *cvar.Cvar
	GrabMaxDistance     *cvar.Cvar
	GrabMinFacing       *cvar.Cvar
	GrabReleaseDelay    *cvar.Cvar
	GrabMaxSpeed        *cvar.Cvar
	GrabMaxAngularSpeed *cvar.Cvar
	GrabSphereRadius    *cvar.Cvar

	PhysicsGravity  *cvar.Cvar
	PhysicsSubsteps *cvar.Cvar

	HostFrameRate *cvar.Cvar
	HostTimeScale *cvar.Cvar
)

func init() {
	PortalShootRange = cvar.MustRegister("portal_shootrange", "10000", cvar.ARCHIVE).
		SetDescription("maximum distance a portal can be placed at")
	PortalOffsetFromSurface = cvar.MustRegister("portal_offset", "0.1", cvar.NONE)
	PortalWidth = cvar.MustRegister("portal_width", "180", cvar.NONE)
	PortalHeight = cvar.MustRegister("portal_height", "250", cvar.NONE)
	PortalMinWidth = cvar.MustRegister("portal_minwidth", "180", cvar.NONE).
		SetDescription("surfaces narrower than this can not hold a portal")
	PortalMinHeight = cvar.MustRegister("portal_minheight", "250", cvar.NONE)
	PortalVolumeDepth = cvar.MustRegister("portal_volumedepth", "50", cvar.NONE).
		SetDescription("half depth of the teleport detection volume")
	PortalOuterVolumeDepth = cvar.MustRegister("portal_outervolumedepth", "150", cvar.NONE)
	PortalMaxTraceIteration = cvar.MustRegister("portal_maxtraceiterations", "10", cvar.NONE)
	PortalDebugDraw = cvar.MustRegister("portal_debugdraw", "0", cvar.NONE)

	GrabRange = cvar.MustRegister("grab_range", "500", cvar.ARCHIVE)
	GrabHoldOffset = cvar.MustRegister("grab_holdoffset", "150", cvar.ARCHIVE)
	GrabMaxDistance = cvar.MustRegister("grab_maxdistance", "300", cvar.ARCHIVE).
		SetDescription("held objects further away along their portal path are released")
	GrabMinFacing = cvar.MustRegister("grab_minfacing", "0.5", cvar.ARCHIVE)
	GrabReleaseDelay = cvar.MustRegister("grab_releasedelay", "0.25", cvar.ARCHIVE)
	GrabMaxSpeed = cvar.MustRegister("grab_maxspeed", "1500", cvar.ARCHIVE)
	GrabMaxAngularSpeed = cvar.MustRegister("grab_maxangularspeed", "360", cvar.ARCHIVE)
	GrabSphereRadius = cvar.MustRegister("grab_sphereradius", "20", cvar.ARCHIVE)

	PhysicsGravity = cvar.MustRegister("physics_gravity", "-980", cvar.NOTIFY)
	PhysicsSubsteps = cvar.MustRegister("physics_substeps", "1", cvar.NONE)

	HostFrameRate = cvar.MustRegister("host_framerate", "0", cvar.NONE)
	HostTimeScale = cvar.MustRegister("host_timescale", "0", cvar.NONE)
}
