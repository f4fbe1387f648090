// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"goportal/math/vec"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch strings.ToLower(a.a) {
	case "1", "t", "true", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed input line
	full string
}

func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		slog.Debug("Argv out of bounds", slog.Int("idx", i), slog.Int("len", len(c.args)))
		return QArg{""}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// Float32s parses n arguments starting at index i as numbers.
func (c *Arguments) Float32s(i, n int) ([]float32, error) {
	ret := make([]float32, n)
	for k := range ret {
		s := c.Argv(i + k).String()
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		ret[k] = float32(f)
	}
	return ret, nil
}

// Vec3 parses the three arguments starting at index i.
func (c *Arguments) Vec3(i int) (vec.Vec3, error) {
	f, err := c.Float32s(i, 3)
	if err != nil {
		return vec.Vec3{}, err
	}
	return vec.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

// ArgumentString returns everything after the command name with surrounding
// quotes removed.
func (c *Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Parse splits a single command line into arguments. Double quotes group
// words and // starts a comment running to the end of the line.
func Parse(s string) (args Arguments) {
	args.full = strings.TrimFunc(s, unicode.IsSpace)
	args.args = []QArg{}

	in := args.full
	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "//"), in[0] == '\n', in[0] == '\r':
			return
		case in[0] <= ' ':
			in = in[1:]
		case in[0] == '"':
			end := strings.IndexByte(in[1:], '"')
			if end < 0 {
				slog.Debug("unterminated string", slog.String("line", args.full))
				args.args = append(args.args, QArg{in[1:]})
				return
			}
			args.args = append(args.args, QArg{in[1 : end+1]})
			in = in[end+2:]
		default:
			end := strings.IndexFunc(in, func(r rune) bool { return r <= ' ' })
			if end < 0 {
				end = len(in)
			}
			args.args = append(args.args, QArg{in[:end]})
			in = in[end:]
		}
	}
	return
}
