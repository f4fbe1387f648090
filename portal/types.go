// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/google/uuid"

	"goportal/collision"
	"goportal/cvars"
)

// Type selects one of the two portal slots.
type Type uint8

const (
	First Type = iota
	Second
)

func (t Type) Other() Type {
	if t == First {
		return Second
	}
	return First
}

func (t Type) String() string {
	if t == First {
		return "first"
	}
	return "second"
}

// ParseType accepts the slot names and the shorthands 1/a and 2/b.
func ParseType(s string) (Type, bool) {
	switch s {
	case "first", "1", "a":
		return First, true
	case "second", "2", "b":
		return Second, true
	}
	return First, false
}

// CopyObjectType is the object type of copies spawned by a portal of type t.
func CopyObjectType(t Type) collision.Channel {
	if t == First {
		return collision.FirstPortalCopy
	}
	return collision.SecondPortalCopy
}

// OpposingCopyObjectType is the object type of copies that appear in front
// of a portal of type t, spawned by its partner.
func OpposingCopyObjectType(t Type) collision.Channel {
	return CopyObjectType(t.Other())
}

// InnerObjectType is the object type of a teleportable inside only a portal
// of type t.
func InnerObjectType(t Type) collision.Channel {
	if t == First {
		return collision.WithinFirstPortal
	}
	return collision.WithinSecondPortal
}

// Coords is a position on the front face of a surface. Y points right and
// Z up, the origin is the center of the face.
type Coords struct {
	Y, Z float32
}

// Extents is the half size of a portal opening.
type Extents struct {
	Y, Z float32
}

// StandardExtents returns the half size of a full portal.
func StandardExtents() Extents {
	return Extents{cvars.PortalWidth.Value() / 2, cvars.PortalHeight.Value() / 2}
}

// MinimumExtents returns the half size of the smallest portal.
func MinimumExtents() Extents {
	return Extents{cvars.PortalMinWidth.Value() / 2, cvars.PortalMinHeight.Value() / 2}
}

// NewHandle returns a fresh handle for portals, copies and entities.
func NewHandle() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
