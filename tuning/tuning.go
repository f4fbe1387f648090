// SPDX-License-Identifier: GPL-2.0-or-later

// Package tuning reads cvar values from yaml or toml files.
package tuning

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"goportal/cvar"
)

// Tuning maps cvar names onto their values.
type Tuning map[string]string

// Load reads a tuning file. Files ending in .toml are read as toml, all
// others as yaml.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tuning %q", path)
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	t, err := parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "tuning %q", path)
	}
	return t, nil
}

func Parse(raw []byte) (Tuning, error) {
	var n map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "failed to decode")
	}
	t := make(Tuning, len(n))
	for k, v := range n {
		if v.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("line %d: %s is not a scalar", v.Line, k)
		}
		t[k] = v.Value
	}
	return t, nil
}

// ParseTOML reads a flat toml table. Booleans become 1 and 0.
func ParseTOML(raw []byte) (Tuning, error) {
	var m map[string]any
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode")
	}
	t := make(Tuning, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case string:
			t[k] = v
		case int64:
			t[k] = strconv.FormatInt(v, 10)
		case float64:
			t[k] = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			t[k] = "0"
			if v {
				t[k] = "1"
			}
		default:
			return nil, errors.Errorf("%s is not a scalar", k)
		}
	}
	return t, nil
}

// Apply sets all known cvars. Read only cvars and unknown names are
// skipped and reported in the returned error.
func (t Tuning) Apply() error {
	var bad []string
	for _, k := range t.Names() {
		cv, ok := cvar.Get(k)
		if !ok {
			bad = append(bad, k)
			continue
		}
		if cv.ReadOnly() {
			bad = append(bad, k+" (read only)")
			continue
		}
		if cv.String() == t[k] {
			continue
		}
		cv.SetByString(t[k])
		slog.Debug("tuning", slog.String("cvar", k), slog.String("value", t[k]))
	}
	if len(bad) != 0 {
		return errors.Errorf("unknown cvars: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Names returns the cvar names in sorted order.
func (t Tuning) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LoadAndApply loads the file at path and applies it.
func LoadAndApply(path string) error {
	t, err := Load(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(t.Apply(), "tuning %q", path)
}
