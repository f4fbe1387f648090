// SPDX-License-Identifier: GPL-2.0-or-later

package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/collision"
	"goportal/cvars"
	"goportal/entity"
	"goportal/math/vec"
	"goportal/portal"
	"goportal/world"
)

func newContext(t *testing.T) (*portal.Context, *world.World) {
	t.Helper()
	cvars.PortalOffsetFromSurface.SetValue(0)
	t.Cleanup(cvars.PortalOffsetFromSurface.Reset)
	w := world.New(world.Config{
		Mins: vec.Vec3{X: -4000, Y: -4000, Z: -4000},
		Maxs: vec.Vec3{X: 4000, Y: 4000, Z: 4000},
	})
	return portal.NewContext(w, nil), w
}

func wall(ctx *portal.Context, loc vec.Vec3, yaw float32) *portal.Surface {
	s := portal.NewSurface("wall", vec.NewTransform(vec.Rotator{Yaw: yaw}.Quat(), loc), vec.Vec3{X: 20, Y: 400, Z: 400})
	s.Activate(ctx)
	return s
}

func player(ctx *portal.Context, loc vec.Vec3, yaw float32) *entity.Character {
	return entity.NewCharacter(ctx, entity.CharacterDesc{
		Name:       "player",
		Location:   loc,
		Yaw:        yaw,
		Radius:     30,
		HalfHeight: 90,
		EyeHeight:  60,
	})
}

func TestCharacterView(t *testing.T) {
	ctx, _ := newContext(t)
	c := player(ctx, vec.Vec3{X: 10, Y: 20, Z: 30}, 90)

	assert.Equal(t, vec.Vec3{X: 10, Y: 20, Z: 90}, c.EyeLocation())
	assert.True(t, vec.NearlyEqual(c.ViewTransform().Forward(), vec.Vec3{Y: 1}, 1e-5))

	c.SetControlRotation(vec.Rotator{Pitch: 10, Yaw: 45, Roll: 30})
	assert.Equal(t, vec.Rotator{Pitch: 10, Yaw: 45}, c.ControlRotation())
}

func TestCharacterShootPortal(t *testing.T) {
	ctx, _ := newContext(t)
	m := portal.NewManager(ctx, 0, 0)
	s := wall(ctx, vec.Vec3{}, 0)
	c := player(ctx, vec.Vec3{X: 300}, 180)

	p, ok := c.ShootPortal(m, portal.First)
	require.True(t, ok)
	assert.Equal(t, s, p.Surface())
	assert.InDelta(t, 60, p.Coords().Z, 1e-3)

	c.SetControlRotation(vec.Rotator{Yaw: 0})
	_, ok = c.ShootPortal(m, portal.Second)
	assert.False(t, ok)
}

func TestCharacterWalksThroughPortal(t *testing.T) {
	ctx, w := newContext(t)
	m := portal.NewManager(ctx, 0, 0)
	sa := wall(ctx, vec.Vec3{}, 0)
	sb := wall(ctx, vec.Vec3{Y: 1000}, 90)
	a, ok := m.PlacePortal(portal.First, sa, portal.Coords{}, sa.Transform().Forward())
	require.True(t, ok)
	b, ok := m.PlacePortal(portal.Second, sb, portal.Coords{}, sb.Transform().Forward())
	require.True(t, ok)

	c := player(ctx, vec.Vec3{X: 100}, 180)
	assert.Equal(t, portal.Outside, c.OverlapState())

	require.True(t, c.Move(ctx, vec.Vec3{X: -60}))
	assert.Equal(t, portal.WithinFirst, c.OverlapState())
	cp, ok := a.CopyOf(c)
	require.True(t, ok)
	assert.Equal(t, portal.SkeletalCopy, cp.Kind())
	assert.Equal(t, collision.NoBody, cp.LinkedBody())
	assert.Equal(t, collision.Capsule, w.Shape(cp.Body()).Kind)

	// The wall behind the portal no longer blocks.
	require.True(t, c.Move(ctx, vec.Vec3{X: -60}))
	got := c.Transform().Translation
	assert.True(t, vec.NearlyEqual(got, vec.Vec3{Y: 1020}, 1e-2), "location %v", got)
	assert.InDelta(t, 90, c.ControlRotation().Yaw, 1e-3)
	assert.Equal(t, portal.WithinSecond, c.OverlapState())
	assert.Equal(t, []uuid.UUID{b.Handle()}, c.OverlappingPortals())
	assert.Equal(t, 0, a.NumCopies())
	assert.Equal(t, collision.WithinSecondPortal, w.ObjectType(c.CollisionBody()))
}

func TestCharacterBlockedWithoutPortal(t *testing.T) {
	ctx, _ := newContext(t)
	wall(ctx, vec.Vec3{}, 0)
	c := player(ctx, vec.Vec3{X: 100}, 180)

	assert.False(t, c.Move(ctx, vec.Vec3{X: -120}))
	assert.GreaterOrEqual(t, c.Transform().Translation.X, float32(29.9))
}

func TestPropGrabbed(t *testing.T) {
	ctx, w := newContext(t)
	w.SetGravity(vec.Vec3{Z: -100})
	p := entity.NewProp(ctx, entity.PropDesc{
		Name:   "cube",
		Pose:   vec.NewTransform(vec.Identity, vec.Vec3{Z: 100}),
		Extent: vec.Vec3{X: 10, Y: 10, Z: 10},
		Mass:   10,
	})

	p.OnGrabbed(ctx)
	assert.True(t, p.IsGrabbed())
	w.Step(0.5)
	assert.Equal(t, float32(100), p.Transform().Translation.Z)

	p.OnReleased(ctx)
	assert.False(t, p.IsGrabbed())
	w.Step(0.5)
	assert.Less(t, p.Transform().Translation.Z, float32(100))

	p.Destroy(ctx)
	assert.False(t, w.Valid(p.CollisionBody()))
	_, ok := ctx.Actors.Actor(p.CollisionBody())
	assert.False(t, ok)
}
