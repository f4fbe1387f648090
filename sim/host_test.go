// SPDX-License-Identifier: GPL-2.0-or-later

package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/conlog"
	"goportal/cvars"
	"goportal/journal"
	"goportal/level"
	"goportal/math/vec"
	"goportal/portal"
)

const chamber = `
name: chamber
gravity: 0
viewport: {width: 320, height: 240}
surfaces:
  - name: east
    location: [0, 0, 200]
    size: [20, 400, 400]
  - name: west
    location: [1000, 0, 200]
    rotation: {yaw: 180}
    size: [20, 400, 400]
geometry:
  - name: floor
    location: [500, 0, -10]
    extent: [1000, 1000, 10]
props:
  - name: cube
    location: [100, 0, 152]
    extent: [20, 20, 20]
characters:
  - name: player
    location: [500, 0, 88]
    yaw: 180
    radius: 34
    halfheight: 88
    eyeheight: 64
`

const frame = 1.0 / 60

func newHost(t *testing.T, script string) *Host {
	t.Helper()
	l, err := level.Parse([]byte(chamber + "script: " + fmt.Sprintf("%q", script) + "\n"))
	require.NoError(t, err)
	h, err := NewHost(l, nil)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}

func captureConsole(t *testing.T) *strings.Builder {
	var b strings.Builder
	old := conlog.SetPrintf(func(format string, v ...interface{}) {
		fmt.Fprintf(&b, format, v...)
	})
	t.Cleanup(func() { conlog.SetPrintf(old) })
	return &b
}

func TestLevelScriptPlacesPortals(t *testing.T) {
	h := newHost(t, "shoot first\nlook 0 0\nshoot second")
	assert.False(t, h.Portals.BothPortalsActive(), "script runs at the end of the frame")
	h.Frame(frame)
	require.True(t, h.Portals.BothPortalsActive())

	a, b := h.Portals.Portal(portal.First), h.Portals.Portal(portal.Second)
	east, _ := h.Surface("east")
	west, _ := h.Surface("west")
	assert.Same(t, east, a.Surface())
	assert.Same(t, west, b.Surface())
	assert.Same(t, b, a.Connected())
	assert.InDelta(t, 152, a.Location().Z, 0.01)
	assert.NotNil(t, h.Portals.RenderTarget(portal.First))
}

func TestPropPassesThroughPortals(t *testing.T) {
	h := newHost(t, "shoot first\nlook 0 0\nshoot second\nlook 0 90\nmove 0 300 0")
	h.Frame(frame)
	require.True(t, h.Portals.BothPortalsActive())

	cube, ok := h.Prop("cube")
	require.True(t, ok)
	cube.SetVelocity(vec.Vec3{X: -500}, vec.Vec3{})
	for i := 0; i < 40; i++ {
		h.Frame(frame)
	}

	loc := cube.Transform().Translation
	assert.Greater(t, loc.X, float32(700))
	assert.Less(t, loc.X, float32(990))
	assert.InDelta(t, 0, loc.Y, 0.5)
	assert.InDelta(t, 152, loc.Z, 0.5)
	v, _ := cube.Velocity()
	assert.InDelta(t, -500, v.X, 1)

	require.Equal(t, 1, h.Journal.Len())
	e := h.Journal.Entries()[0]
	assert.Equal(t, "cube", e.Actor)
	assert.Equal(t, h.Portals.Portal(portal.First).Handle(), e.Source)
	assert.Equal(t, h.Portals.Portal(portal.Second).Handle(), e.Target)
	assert.Equal(t, portal.Outside, cube.OverlapState())
}

func TestAttachedGeometryLosesCollision(t *testing.T) {
	src := strings.Replace(chamber, "    size: [20, 400, 400]\n  - name: west",
		"    size: [20, 400, 400]\n    attached: pillar\n  - name: west", 1)
	src = strings.Replace(src, "geometry:\n",
		"geometry:\n  - name: pillar\n    location: [-40, 0, 200]\n    extent: [20, 200, 200]\n", 1)
	l, err := level.Parse([]byte(src + "script: \"shoot first\\nlook 0 0\\nshoot second\"\n"))
	require.NoError(t, err)
	h, err := NewHost(l, nil)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	h.Frame(frame)
	require.True(t, h.Portals.BothPortalsActive())

	east, _ := h.Surface("east")
	pillar := h.geometry["pillar"]
	assert.Equal(t, pillar, east.Attached())
	cube, ok := h.Prop("cube")
	require.True(t, ok)
	assert.False(t, h.World.IsCollisionIgnored(cube.CollisionBody(), pillar))

	h.World.SetPose(cube.CollisionBody(), vec.NewTransform(vec.Identity, vec.Vec3{X: 30, Z: 152}))
	assert.Equal(t, portal.WithinFirst, cube.OverlapState())
	assert.True(t, h.World.IsCollisionIgnored(cube.CollisionBody(), pillar))
	assert.True(t, h.World.IsCollisionIgnored(cube.CollisionBody(), east.Body()))

	h.World.SetPose(cube.CollisionBody(), vec.NewTransform(vec.Identity, vec.Vec3{X: 300, Z: 152}))
	assert.Equal(t, portal.Outside, cube.OverlapState())
	assert.False(t, h.World.IsCollisionIgnored(cube.CollisionBody(), pillar))
}

func TestGrabAndRelease(t *testing.T) {
	h := newHost(t, "")
	cube, _ := h.Prop("cube")
	cube.SetVelocity(vec.Vec3{}, vec.Vec3{})
	h.World.SetPose(cube.CollisionBody(), vec.NewTransform(vec.Identity, vec.Vec3{X: 350, Z: 152}))

	h.Execute("grab")
	h.Frame(frame)
	assert.True(t, h.Grabber().IsGrabbing())
	assert.True(t, cube.IsGrabbed())

	h.Frame(frame)
	assert.True(t, vec.NearlyEqual(cube.Transform().Translation, vec.Vec3{X: 350, Z: 152}, 0.5))

	h.Execute("release")
	h.Frame(frame)
	assert.False(t, cube.IsGrabbed())
}

func TestSpawnInFrontOfPortal(t *testing.T) {
	h := newHost(t, "spawn crate\nshoot first\nspawn crate 10")
	out := captureConsole(t)
	h.Frame(frame)
	crate, ok := h.Prop("crate")
	require.True(t, ok)
	assert.True(t, vec.NearlyEqual(crate.Transform().Translation, vec.Vec3{X: 110.1, Z: 152}, 0.01))
	assert.Contains(t, out.String(), "no first portal")
}

func TestConsole(t *testing.T) {
	h := newHost(t, "")
	out := captureConsole(t)
	h.Execute(`echo "hello portal"`)
	h.Execute("shoot third")
	h.Execute("nosuchcommand")
	h.Execute("status")
	h.Execute("move 1 2")
	h.Frame(frame)
	assert.Contains(t, out.String(), "hello portal\n")
	assert.Contains(t, out.String(), "usage: move <x> <y> <z>\n")
	assert.Contains(t, out.String(), `unknown portal "third"`)
	assert.Contains(t, out.String(), "first    none")
	assert.Contains(t, out.String(), "cube")
}

func TestConsoleAlias(t *testing.T) {
	h := newHost(t, "alias portals \"shoot first; look 0 0; shoot second\"\nportals")
	h.Frame(frame)
	assert.True(t, h.Portals.BothPortalsActive())
}

func TestConsoleCvars(t *testing.T) {
	h := newHost(t, "")
	t.Cleanup(cvars.GrabRange.Reset)
	h.Execute("grab_range 42")
	h.Frame(frame)
	assert.Equal(t, float32(42), cvars.GrabRange.Value())
}

func TestExecAndJournal(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "setup.cfg")
	dump := filepath.Join(dir, "journal.bin")
	require.NoError(t, os.WriteFile(script, []byte("shoot first\nlook 0 0\nshoot second\n"), 0o644))

	h := newHost(t, "exec "+script)
	h.Frame(frame)
	require.True(t, h.Portals.BothPortalsActive())

	h.Journal.Add(journal.Entry{Frame: 3, Actor: "cube"})
	h.Execute("journal " + dump)
	h.Frame(frame)
	es, err := journal.LoadFile(dump)
	require.NoError(t, err)
	assert.Equal(t, []journal.Entry{{Frame: 3, Actor: "cube"}}, es)
}

func TestDebugDraw(t *testing.T) {
	h := newHost(t, "shoot first")
	t.Cleanup(cvars.PortalDebugDraw.Reset)
	h.Frame(frame)
	assert.Empty(t, h.Debug.Lines())
	cvars.PortalDebugDraw.SetValue(1)
	h.Frame(frame)
	assert.NotEmpty(t, h.Debug.Lines())
}

func TestWatchTuning(t *testing.T) {
	h := newHost(t, "")
	t.Cleanup(cvars.GrabMaxSpeed.Reset)
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grab_maxspeed: 900\n"), 0o644))
	require.NoError(t, h.WatchTuning(path))
	assert.Equal(t, float32(900), cvars.GrabMaxSpeed.Value())

	assert.Error(t, h.WatchTuning(filepath.Join(t.TempDir(), "missing.yaml")))
}
