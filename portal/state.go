// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"goportal/collision"
)

//go:generate stringer -type=OverlapState -output=state_string.go

// OverlapState tracks which portal volumes a teleportable is inside of.
type OverlapState uint8

const (
	Outside OverlapState = iota
	WithinFirst
	WithinSecond
	// WithinBoth needs both portals on the same surface with overlapping
	// ranges. Placement rejects that, so it only shows up transiently.
	WithinBoth
)

func single(t Type) OverlapState {
	if t == First {
		return WithinFirst
	}
	return WithinSecond
}

// Begin returns the state after entering a portal of type t.
func (s OverlapState) Begin(t Type) OverlapState {
	switch s {
	case single(t.Other()), WithinBoth:
		return WithinBoth
	default:
		return single(t)
	}
}

// End returns the state after leaving a portal of type t.
func (s OverlapState) End(t Type) OverlapState {
	switch s {
	case WithinBoth:
		return single(t.Other())
	case single(t):
		return Outside
	default:
		return s
	}
}

// Within reports whether the state includes the portal of type t.
func (s OverlapState) Within(t Type) bool {
	return s == WithinBoth || s == single(t)
}

// ObjectType maps the state onto the object type of the collision body.
// base is the type of the body outside of any portal.
func (s OverlapState) ObjectType(base collision.Channel) collision.Channel {
	switch s {
	case WithinFirst:
		return collision.WithinFirstPortal
	case WithinSecond:
		return collision.WithinSecondPortal
	case WithinBoth:
		return collision.WithinBothPortals
	}
	return base
}
