// SPDX-License-Identifier: GPL-2.0-or-later

package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/cvar"
	"goportal/cvars"
)

func resetCvars(t *testing.T, cvs ...*cvar.Cvar) {
	t.Cleanup(func() {
		for _, cv := range cvs {
			cv.Reset()
		}
	})
}

func TestParse(t *testing.T) {
	tu, err := Parse([]byte("grab_range: 650\nportal_debugdraw: true\nportal_offset: 0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, Tuning{
		"grab_range":       "650",
		"portal_debugdraw": "true",
		"portal_offset":    "0.5",
	}, tu)
	assert.Equal(t, []string{"grab_range", "portal_debugdraw", "portal_offset"}, tu.Names())
}

func TestParseRejectsNesting(t *testing.T) {
	_, err := Parse([]byte("grab:\n  range: 5\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("grab_range: [1, 2\n"))
	assert.Error(t, err)
}

func TestParseTOML(t *testing.T) {
	tu, err := ParseTOML([]byte("grab_range = 650\nportal_debugdraw = true\nportal_offset = 0.5\nname = \"x\"\n"))
	require.NoError(t, err)
	assert.Equal(t, Tuning{
		"grab_range":       "650",
		"portal_debugdraw": "1",
		"portal_offset":    "0.5",
		"name":             "x",
	}, tu)

	_, err = ParseTOML([]byte("[grab]\nrange = 5\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	resetCvars(t, cvars.GrabRange, cvars.PortalWidth)
	err := Tuning{"grab_range": "650", "portal_width": "200"}.Apply()
	require.NoError(t, err)
	assert.Equal(t, float32(650), cvars.GrabRange.Value())
	assert.Equal(t, float32(200), cvars.PortalWidth.Value())
}

func TestApplyUnknown(t *testing.T) {
	resetCvars(t, cvars.GrabRange)
	err := Tuning{"grab_range": "700", "no_such_cvar": "1"}.Apply()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_cvar")
	assert.Equal(t, float32(700), cvars.GrabRange.Value(), "known cvars are still set")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadAndApply(t *testing.T) {
	resetCvars(t, cvars.GrabMaxDistance)
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grab_maxdistance: 420\n"), 0o644))
	require.NoError(t, LoadAndApply(path))
	assert.Equal(t, float32(420), cvars.GrabMaxDistance.Value())

	path = filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("grab_maxdistance = 380.5\n"), 0o644))
	require.NoError(t, LoadAndApply(path))
	assert.Equal(t, float32(380.5), cvars.GrabMaxDistance.Value())
}

func TestWatcher(t *testing.T) {
	resetCvars(t, cvars.GrabHoldOffset)
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grab_holdoffset: 100\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("grab_holdoffset: 175\n"), 0o644))

	assert.Eventually(t, func() bool {
		assert.Empty(t, w.Poll())
		return cvars.GrabHoldOffset.Value() == 175
	}, 2*time.Second, 20*time.Millisecond)
}
