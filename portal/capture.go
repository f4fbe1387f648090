// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
)

// NoConnectedPortalTexture is shown by a portal without partner.
const NoConnectedPortalTexture = "portal_unconnected"

// RenderTarget is a texture a scene capture renders into.
type RenderTarget struct {
	ID             uuid.UUID
	Width, Height  int
	DoubleBuffered bool
}

func NewRenderTarget(w, h int) *RenderTarget {
	return &RenderTarget{ID: NewHandle(), Width: w, Height: h, DoubleBuffered: true}
}

// SceneCapture is the camera state rendering the view through a portal. The
// renderer places the camera at Relative composed with the portal transform
// and clips everything behind the clip plane.
type SceneCapture struct {
	Enabled         bool
	Target          *RenderTarget
	Relative        vec.Transform
	ClipPlaneBase   vec.Vec3
	ClipPlaneNormal vec.Vec3
	// Hidden bodies are not rendered by the capture.
	Hidden []collision.BodyID
}

// Material is what a portal surface displays.
type Material struct {
	Texture string
	// Source is the render target shown when connected.
	Source *RenderTarget
}

// MaterialInstance carries the cull plane parameters of a copy material.
type MaterialInstance struct {
	Name            string
	CanBeCulled     bool
	CullPlaneCenter vec.Vec3
	CullPlaneNormal vec.Vec3
}

// CameraTransform returns the world transform of the capture camera.
func (p *Portal) CameraTransform() vec.Transform {
	return vec.Compose(p.capture.Relative, p.transform)
}

// UpdateCapture places the capture camera so it sees what the viewer would
// see when looking through the connected portal.
func (p *Portal) UpdateCapture(viewer vec.Transform) {
	if p.connected == nil || !p.capture.Enabled {
		return
	}
	p.capture.Relative = viewer.RelativeTo(p.connected.backfacing)
}
