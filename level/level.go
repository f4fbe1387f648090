// SPDX-License-Identifier: GPL-2.0-or-later

// Package level reads test chamber descriptions.
package level

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"goportal/math/vec"
)

type Vector [3]float32

func (v Vector) Vec() vec.Vec3 {
	return vec.VFromA(v)
}

type Rotation struct {
	Pitch float32 `yaml:"pitch"`
	Yaw   float32 `yaml:"yaw"`
	Roll  float32 `yaml:"roll"`
}

func (r Rotation) Quat() vec.Quat {
	return vec.Rotator{Pitch: r.Pitch, Yaw: r.Yaw, Roll: r.Roll}.Quat()
}

type Bounds struct {
	Mins Vector `yaml:"mins"`
	Maxs Vector `yaml:"maxs"`
}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Surface is a panel portals can be placed on. Location is the center of
// the front face, the face points along the rotated +X axis. Size is the
// full size with the thickness in X. Attached names a geometry box the
// panel is painted on.
type Surface struct {
	Name     string   `yaml:"name"`
	Location Vector   `yaml:"location"`
	Rotation Rotation `yaml:"rotation"`
	Size     Vector   `yaml:"size"`
	Attached string   `yaml:"attached"`
}

func (s Surface) Transform() vec.Transform {
	return vec.NewTransform(s.Rotation.Quat(), s.Location.Vec())
}

// Box is static geometry no portal can be placed on.
type Box struct {
	Name     string   `yaml:"name"`
	Location Vector   `yaml:"location"`
	Rotation Rotation `yaml:"rotation"`
	Extent   Vector   `yaml:"extent"`
}

func (b Box) Transform() vec.Transform {
	return vec.NewTransform(b.Rotation.Quat(), b.Location.Vec())
}

type Prop struct {
	Name      string   `yaml:"name"`
	Location  Vector   `yaml:"location"`
	Rotation  Rotation `yaml:"rotation"`
	Extent    Vector   `yaml:"extent"`
	Mass      float32  `yaml:"mass"`
	Materials []string `yaml:"materials"`
}

func (p Prop) Transform() vec.Transform {
	return vec.NewTransform(p.Rotation.Quat(), p.Location.Vec())
}

type Character struct {
	Name       string  `yaml:"name"`
	Location   Vector  `yaml:"location"`
	Yaw        float32 `yaml:"yaw"`
	Radius     float32 `yaml:"radius"`
	HalfHeight float32 `yaml:"halfheight"`
	EyeHeight  float32 `yaml:"eyeheight"`
}

type Level struct {
	Name       string      `yaml:"name"`
	Bounds     Bounds      `yaml:"bounds"`
	Gravity    *float32    `yaml:"gravity"`
	Viewport   Viewport    `yaml:"viewport"`
	Surfaces   []Surface   `yaml:"surfaces"`
	Geometry   []Box       `yaml:"geometry"`
	Props      []Prop      `yaml:"props"`
	Characters []Character `yaml:"characters"`
	// Player names the character the console commands act on.
	Player string `yaml:"player"`
	// Script is executed on the console once the level is built.
	Script string `yaml:"script"`
}

func Load(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level %q", path)
	}
	l, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "level %q", path)
	}
	return l, nil
}

// Parse decodes and validates a level and fills in defaults.
func Parse(raw []byte) (*Level, error) {
	l := &Level{}
	if err := yaml.Unmarshal(raw, l); err != nil {
		return nil, errors.Wrap(err, "failed to decode")
	}
	l.setDefaults()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Level) setDefaults() {
	if l.Bounds.Mins == (Vector{}) && l.Bounds.Maxs == (Vector{}) {
		l.Bounds = Bounds{
			Mins: Vector{-8192, -8192, -8192},
			Maxs: Vector{8192, 8192, 8192},
		}
	}
	for i := range l.Props {
		if l.Props[i].Mass == 0 {
			l.Props[i].Mass = 10
		}
	}
	for i := range l.Characters {
		c := &l.Characters[i]
		if c.Radius == 0 {
			c.Radius = 34
		}
		if c.HalfHeight == 0 {
			c.HalfHeight = 88
		}
		if c.EyeHeight == 0 {
			c.EyeHeight = 64
		}
	}
	if l.Player == "" && len(l.Characters) != 0 {
		l.Player = l.Characters[0].Name
	}
}

func positive(v Vector) bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}

// Validate checks names are unique and sizes are positive.
func (l *Level) Validate() error {
	for i := 0; i < 3; i++ {
		if l.Bounds.Mins[i] >= l.Bounds.Maxs[i] {
			return errors.New("bounds are empty")
		}
	}
	if l.Viewport.Width < 0 || l.Viewport.Height < 0 {
		return errors.New("negative viewport")
	}
	names := make(map[string]bool)
	unique := func(kind, n string) error {
		if n == "" {
			return errors.Errorf("%s without name", kind)
		}
		if names[n] {
			return errors.Errorf("%s %q: name is used twice", kind, n)
		}
		names[n] = true
		return nil
	}
	for _, s := range l.Surfaces {
		if err := unique("surface", s.Name); err != nil {
			return err
		}
		if !positive(s.Size) {
			return errors.Errorf("surface %q: size must be positive", s.Name)
		}
	}
	for _, b := range l.Geometry {
		if err := unique("geometry", b.Name); err != nil {
			return err
		}
		if !positive(b.Extent) {
			return errors.Errorf("geometry %q: extent must be positive", b.Name)
		}
	}
	for _, p := range l.Props {
		if err := unique("prop", p.Name); err != nil {
			return err
		}
		if !positive(p.Extent) {
			return errors.Errorf("prop %q: extent must be positive", p.Name)
		}
		if p.Mass < 0 {
			return errors.Errorf("prop %q: negative mass", p.Name)
		}
	}
	player := false
	for _, c := range l.Characters {
		if err := unique("character", c.Name); err != nil {
			return err
		}
		if c.Radius <= 0 || c.HalfHeight <= 0 {
			return errors.Errorf("character %q: capsule must be positive", c.Name)
		}
		player = player || c.Name == l.Player
	}
	if l.Player != "" && !player {
		return errors.Errorf("player %q is no character", l.Player)
	}
	geometry := make(map[string]bool)
	for _, b := range l.Geometry {
		geometry[b.Name] = true
	}
	for _, s := range l.Surfaces {
		if s.Attached != "" && !geometry[s.Attached] {
			return errors.Errorf("surface %q: attached to unknown geometry %q", s.Name, s.Attached)
		}
	}
	return nil
}
