// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/math/vec"
)

const chamber = `
name: chamber
gravity: 0
viewport: {width: 640, height: 480}
surfaces:
  - name: east
    location: [0, 0, 200]
    size: [20, 400, 400]
  - name: west
    location: [1000, 0, 200]
    rotation: {yaw: 180}
    size: [20, 400, 400]
    attached: backing
geometry:
  - name: floor
    location: [500, 0, -10]
    extent: [1000, 1000, 10]
  - name: backing
    location: [1040, 0, 200]
    extent: [20, 200, 200]
props:
  - name: cube
    location: [500, 0, 40]
    extent: [20, 20, 20]
    materials: [cube]
characters:
  - name: player
    location: [300, 0, 88]
    yaw: 180
script: |
  shoot first
`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(chamber))
	require.NoError(t, err)
	assert.Equal(t, "chamber", l.Name)
	require.NotNil(t, l.Gravity)
	assert.Equal(t, float32(0), *l.Gravity)
	assert.Equal(t, Viewport{640, 480}, l.Viewport)
	require.Len(t, l.Surfaces, 2)
	assert.Equal(t, float32(180), l.Surfaces[1].Rotation.Yaw)
	assert.Equal(t, vec.Vec3{X: 1000, Z: 200}, l.Surfaces[1].Transform().Translation)
	assert.Equal(t, "backing", l.Surfaces[1].Attached)
	assert.Empty(t, l.Surfaces[0].Attached)
	require.Len(t, l.Props, 1)
	assert.Equal(t, float32(10), l.Props[0].Mass, "default mass")
	assert.Equal(t, []string{"cube"}, l.Props[0].Materials)
	require.Len(t, l.Characters, 1)
	assert.Equal(t, float32(64), l.Characters[0].EyeHeight)
	assert.Equal(t, "player", l.Player)
	assert.Equal(t, "shoot first\n", l.Script)
	assert.Equal(t, Vector{8192, 8192, 8192}, l.Bounds.Maxs)
}

func TestParseInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"syntax", "surfaces: [\n"},
		{"vector length", "surfaces:\n  - name: a\n    size: [1, 2]\n"},
		{"duplicate", "surfaces:\n  - {name: a, size: [1, 1, 1]}\ngeometry:\n  - {name: a, extent: [1, 1, 1]}\n"},
		{"no name", "props:\n  - {extent: [1, 1, 1]}\n"},
		{"zero size", "surfaces:\n  - {name: a, size: [0, 1, 1]}\n"},
		{"player", "player: bob\ncharacters:\n  - {name: alice}\n"},
		{"bounds", "bounds: {mins: [0, 0, 0], maxs: [1, 0, 1]}\n"},
		{"attached", "surfaces:\n  - {name: a, size: [1, 1, 1], attached: pillar}\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chamber.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chamber), 0o644))
	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "chamber", l.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
