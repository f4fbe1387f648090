// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"log/slog"

	"github.com/chewxy/math32"

	"goportal/collision"
	"goportal/cvars"
	"goportal/math/vec"
)

// Manager owns the two portal slots.
type Manager struct {
	ctx     *Context
	portals [2]*Portal
	targets [2]*RenderTarget
}

// NewManager creates the render targets for a viewport of w by h pixels. A
// manager without render targets still places portals but captures
// nothing.
func NewManager(ctx *Context, w, h int) *Manager {
	m := &Manager{ctx: ctx}
	if w <= 0 || h <= 0 {
		ctx.Log.Error("portal render targets missing", slog.Int("width", w), slog.Int("height", h))
		return m
	}
	for i := range m.targets {
		m.targets[i] = NewRenderTarget(w, h)
	}
	return m
}

func (m *Manager) Portal(t Type) *Portal {
	return m.portals[t]
}

func (m *Manager) BothPortalsActive() bool {
	return m.portals[First] != nil && m.portals[Second] != nil
}

// RenderTarget returns the target the capture of slot t writes into.
func (m *Manager) RenderTarget(t Type) *RenderTarget {
	return m.targets[t]
}

// footprintsOverlap reports whether two rectangles on the same surface
// overlap.
func footprintsOverlap(c1 Coords, e1 Extents, c2 Coords, e2 Extents) bool {
	return math32.Abs(c1.Y-c2.Y) < e1.Y+e2.Y && math32.Abs(c1.Z-c2.Z) < e1.Z+e2.Z
}

// ShootPortal places the portal of slot t where the ray from origin along
// dir hits a surface. Rejected placements leave both slots untouched.
func (m *Manager) ShootPortal(t Type, origin, dir vec.Vec3) (*Portal, bool) {
	ctx := m.ctx
	end := vec.Add(origin, dir.Normalize().Scale(cvars.PortalShootRange.Value()))
	hit, ok := ctx.Engine.LineTrace(origin, end, collision.PortalTrace, collision.QueryParams{})
	if !ok {
		ctx.Log.Debug("portal shot hit nothing", slog.String("type", t.String()))
		return nil, false
	}
	s, ok := ctx.Actors.Surface(hit.Body)
	if !ok {
		ctx.Log.Debug("portal shot hit no surface", slog.String("type", t.String()))
		return nil, false
	}
	return m.PlacePortal(t, s, s.ToCoords(hit.Location), hit.Normal)
}

// PlacePortal runs the placement protocol for a hit at c on s with normal n.
func (m *Manager) PlacePortal(t Type, s *Surface, c Coords, n vec.Vec3) (*Portal, bool) {
	ctx := m.ctx
	if !s.CanFitPortal() {
		ctx.Log.Info("surface can not fit a portal", slog.String("surface", s.Name()))
		return nil, false
	}
	if !s.IsFrontFace(n) {
		ctx.Log.Debug("portal shot hit back of surface", slog.String("surface", s.Name()))
		return nil, false
	}
	c, e, ok := s.FitPortal(c)
	if !ok {
		return nil, false
	}
	if other := m.portals[t.Other()]; other != nil && other.Surface() == s &&
		footprintsOverlap(c, e, other.Coords(), other.Extents()) {
		ctx.Log.Info("portal would overlap its partner", slog.String("type", t.String()))
		return nil, false
	}

	if old := m.portals[t]; old != nil {
		old.Destroy(ctx)
		m.portals[t] = nil
	}

	p := newPortal()
	p.capture.Target = m.targets[t]
	other := m.portals[t.Other()]
	if !p.Initialize(ctx, s, c, e, t, other) {
		return nil, false
	}
	m.portals[t] = p
	if other != nil {
		other.SetConnectedPortal(ctx, p)
		p.material = Material{Source: m.targets[other.typ]}
		other.material = Material{Source: m.targets[t]}
		if m.targets[other.typ] == nil {
			p.material.Texture = NoConnectedPortalTexture
			other.material.Texture = NoConnectedPortalTexture
		}
	}
	ctx.Log.Info("portal placed", slog.String("portal", p.String()), slog.String("surface", s.Name()))
	return p, true
}

// ClearPortal destroys the portal in slot t.
func (m *Manager) ClearPortal(t Type) {
	if p := m.portals[t]; p != nil {
		p.Destroy(m.ctx)
		m.portals[t] = nil
	}
}

func (m *Manager) ClearPortals() {
	m.ClearPortal(First)
	m.ClearPortal(Second)
}

// Tick updates the capture cameras from the viewer and ticks both portals.
func (m *Manager) Tick(viewer vec.Transform, dt float32) {
	for _, p := range m.portals {
		if p != nil {
			p.UpdateCapture(viewer)
		}
	}
	for _, p := range m.portals {
		if p != nil {
			p.Tick(m.ctx, dt)
		}
	}
}

// DebugSpawnTransform returns a transform just in front of the first
// portal, facing out of it.
func (m *Manager) DebugSpawnTransform(distance float32) (vec.Transform, bool) {
	p := m.portals[First]
	if p == nil {
		return vec.Transform{}, false
	}
	loc := vec.Add(p.Location(), p.Forward().Scale(distance))
	return vec.NewTransform(p.transform.Rotation, loc), true
}
