// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"slices"

	"goportal/collision"
	"goportal/math/vec"
)

const areaDepth = 4

// areaNode is a node of the static kd split of the world used to find
// bodies near a query box.
type areaNode struct {
	axis     int
	dist     float32
	children [2]*areaNode
	bodies   map[collision.BodyID]struct{}
}

func createAreaNode(depth int, mins, maxs vec.Vec3) *areaNode {
	an := &areaNode{
		axis:   -1,
		bodies: make(map[collision.BodyID]struct{}),
	}
	if depth == areaDepth {
		return an
	}
	s := vec.Sub(maxs, mins)
	an.axis = 0
	if s.Y > s.X {
		an.axis = 1
	}
	an.dist = 0.5 * (maxs.Idx(an.axis) + mins.Idx(an.axis))

	mins1, maxs1 := mins, maxs
	mins2, maxs2 := mins, maxs
	maxs1.SetIdx(an.axis, an.dist)
	mins2.SetIdx(an.axis, an.dist)

	an.children[0] = createAreaNode(depth+1, mins2, maxs2)
	an.children[1] = createAreaNode(depth+1, mins1, maxs1)
	return an
}

// link stores id in the deepest node that fully contains the box and
// returns that node.
func (a *areaNode) link(id collision.BodyID, mins, maxs vec.Vec3) *areaNode {
	n := a
	for n.axis != -1 {
		switch {
		case mins.Idx(n.axis) > n.dist:
			n = n.children[0]
		case maxs.Idx(n.axis) < n.dist:
			n = n.children[1]
		default:
			n.bodies[id] = struct{}{}
			return n
		}
	}
	n.bodies[id] = struct{}{}
	return n
}

func (a *areaNode) unlink(id collision.BodyID) {
	delete(a.bodies, id)
}

// query collects the ids of all bodies linked in nodes the box touches.
// The result is sorted to keep event order stable.
func (a *areaNode) query(mins, maxs vec.Vec3) []collision.BodyID {
	var ret []collision.BodyID
	var walk func(n *areaNode)
	walk = func(n *areaNode) {
		for id := range n.bodies {
			ret = append(ret, id)
		}
		if n.axis == -1 {
			return
		}
		if maxs.Idx(n.axis) > n.dist {
			walk(n.children[0])
		}
		if mins.Idx(n.axis) < n.dist {
			walk(n.children[1])
		}
	}
	walk(a)
	slices.Sort(ret)
	return ret
}
