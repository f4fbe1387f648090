// SPDX-License-Identifier: GPL-2.0-or-later

package collision

//go:generate stringer -type=Channel,Response,Enabled -output=channel_string.go

// Channel is both the object type of a body and the channel a query runs on.
type Channel uint8

const (
	WorldStatic Channel = iota
	WorldDynamic
	Pawn
	PhysicsBody
	// PortalTrace is the channel portals are placed with.
	PortalTrace
	GrabObstruction
	PortalBody
	FirstPortalCopy
	SecondPortalCopy
	WithinFirstPortal
	WithinSecondPortal
	WithinBothPortals
	NumChannels
)

// IsCopy reports whether c is the object type of a portal copy.
func (c Channel) IsCopy() bool {
	return c == FirstPortalCopy || c == SecondPortalCopy
}

type Response uint8

const (
	Ignore Response = iota
	Overlap
	Block
)

// Enabled selects which parts of the engine see a body.
type Enabled uint8

const (
	NoCollision Enabled = iota
	QueryOnly
	PhysicsOnly
	QueryAndPhysics
)

func (e Enabled) Query() bool {
	return e == QueryOnly || e == QueryAndPhysics
}

func (e Enabled) Physics() bool {
	return e == PhysicsOnly || e == QueryAndPhysics
}

// Responses holds the response of a body to every channel.
type Responses [NumChannels]Response

// AllResponses returns a Responses with every channel set to r.
func AllResponses(r Response) Responses {
	var rs Responses
	for i := range rs {
		rs[i] = r
	}
	return rs
}

// With returns a copy of rs where every given channel is set to r.
func (rs Responses) With(r Response, chans ...Channel) Responses {
	for _, c := range chans {
		rs[c] = r
	}
	return rs
}

// Mutual is the effective response between two bodies.
func Mutual(a, b Response) Response {
	return min(a, b)
}
