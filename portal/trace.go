// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/cvars"
	"goportal/math/vec"
)

// TraceResult is the outcome of a trace that may pass through portals.
type TraceResult struct {
	Hit   collision.Hit
	Found bool
	// Portals lists the portals the trace entered, in order.
	Portals []uuid.UUID
	// Distance is the length of the path up to the hit or the end.
	Distance float32
	// Start and End are the last traced segment.
	Start, End vec.Vec3
}

// LineTraceThroughPortals traces from start to end and continues through
// every connected portal it hits from the front. It gives up after
// portal_maxtraceiterations segments and reports no hit.
func LineTraceThroughPortals(ctx *Context, start, end vec.Vec3, c collision.Channel, q collision.QueryParams) TraceResult {
	maxIter := int(cvars.PortalMaxTraceIteration.Value())
	ignore := append([]collision.BodyID(nil), q.Ignore...)
	var res TraceResult
	for i := 0; i < maxIter; i++ {
		res.Start, res.End = start, end
		hit, ok := ctx.Engine.LineTrace(start, end, c, collision.QueryParams{Ignore: ignore})
		if !ok {
			res.Distance += vec.Distance(start, end)
			return res
		}
		p, isPortal := ctx.Actors.Portal(hit.Body)
		dir := vec.Sub(end, start)
		if !isPortal || p.connected == nil || vec.Dot(dir, p.Forward()) >= 0 {
			res.Hit = hit
			res.Found = true
			res.Distance += hit.Distance
			return res
		}
		res.Portals = append(res.Portals, p.handle)
		res.Distance += hit.Distance
		start = p.TeleportLocation(hit.Location)
		end = p.TeleportLocation(end)
		ignore = append(ignore, p.connected.mesh)
		ignore = append(ignore, p.connected.surface.CollisionBodies()...)
	}
	ctx.Log.Warn("trace through portals exceeded iteration limit", slog.Int("limit", maxIter))
	return TraceResult{Portals: res.Portals, Start: res.Start, End: res.End, Distance: res.Distance}
}

// TransformPositionThroughPortals maps loc through the given portals in
// order. It stops at the first handle that no longer resolves and reports
// false together with the value computed so far.
func TransformPositionThroughPortals(ctx *Context, loc vec.Vec3, portals []uuid.UUID) (vec.Vec3, bool) {
	for _, h := range portals {
		p, ok := ctx.Registry.Portal(h)
		if !ok {
			ctx.Log.Error("transform through stale portal", slog.String("portal", h.String()))
			return loc, false
		}
		loc = p.TeleportLocation(loc)
	}
	return loc, true
}

// TransformRotationThroughPortals is the rotation counterpart of
// TransformPositionThroughPortals.
func TransformRotationThroughPortals(ctx *Context, q vec.Quat, portals []uuid.UUID) (vec.Quat, bool) {
	for _, h := range portals {
		p, ok := ctx.Registry.Portal(h)
		if !ok {
			ctx.Log.Error("transform through stale portal", slog.String("portal", h.String()))
			return q, false
		}
		q = p.TeleportRotation(q)
	}
	return q, true
}
