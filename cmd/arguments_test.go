// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"testing"

	"goportal/conlog"
	"goportal/math/vec"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in     string
		wantF  string
		wantAS string
		wantA  []QArg
	}{
		{
			in:     `shoot first`,
			wantF:  `shoot first`,
			wantAS: `first`,
			wantA:  []QArg{{"shoot"}, {"first"}},
		},
		{
			in:     `echo "hello world"`,
			wantF:  `echo "hello world"`,
			wantAS: `hello world`,
			wantA:  []QArg{{"echo"}, {"hello world"}},
		},
		{
			in:     ` set  grab_range 500 `,
			wantF:  `set  grab_range 500`,
			wantAS: `grab_range 500`,
			wantA:  []QArg{{"set"}, {"grab_range"}, {"500"}},
		},
		{
			in:     `clear // both slots`,
			wantF:  `clear // both slots`,
			wantAS: ``,
			wantA:  []QArg{{"clear"}},
		},
		{
			in:    `   `,
			wantF: ``,
			wantA: []QArg{},
		},
	} {
		arg := Parse(tc.in)
		if tc.wantF != arg.Full() {
			t.Errorf("Parse(%q).Full()=%q, want %q", tc.in, arg.Full(), tc.wantF)
		}
		if tc.wantAS != arg.ArgumentString() {
			t.Errorf("Parse(%q).ArgumentString()=%q, want %q", tc.in, arg.ArgumentString(), tc.wantAS)
		}
		as := arg.Args()
		if len(tc.wantA) != len(as) {
			t.Fatalf("Parse(%q).Args() has len(%d), want %d", tc.in, len(as), len(tc.wantA))
		}
		for i := range tc.wantA {
			if tc.wantA[i] != as[i] {
				t.Errorf("Arg[%d]=%q, want %q", i, as[i], tc.wantA[i])
			}
		}
	}
}

func TestQArg(t *testing.T) {
	if got := (QArg{"12"}).Int(); got != 12 {
		t.Errorf("Int() = %v", got)
	}
	if got := (QArg{"1.5"}).Float32(); got != 1.5 {
		t.Errorf("Float32() = %v", got)
	}
	if !(QArg{"On"}).Bool() || (QArg{"0"}).Bool() {
		t.Errorf("Bool() mismatch")
	}
}

func TestCommands(t *testing.T) {
	c := New()
	called := 0
	if err := c.Add("Shoot", func(a Arguments) error {
		called++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("shoot", nil); err == nil {
		t.Errorf("adding shoot twice did not fail")
	}
	ok, err := c.Execute(Parse("SHOOT first"))
	if !ok || err != nil || called != 1 {
		t.Errorf("Execute = %v, %v, called %d", ok, err, called)
	}
	if ok, _ := c.Execute(Parse("unknown")); ok {
		t.Errorf("unknown command executed")
	}
}

func TestCommandArity(t *testing.T) {
	var out string
	old := conlog.SetPrintf(func(format string, v ...interface{}) {
		out += fmt.Sprintf(format, v...)
	})
	defer conlog.SetPrintf(old)

	var got vec.Vec3
	move := Command{
		Name:    "move",
		Usage:   "<x> <y> <z>",
		MinArgs: 3,
		MaxArgs: 3,
		Run: func(a Arguments) error {
			var err error
			got, err = a.Vec3(1)
			return err
		},
	}
	c := New()
	if err := c.Register(move); err != nil {
		t.Fatal(err)
	}
	ok, err := c.Execute(Parse("move 1 2"))
	if !ok || err != nil {
		t.Fatalf("Execute = %v, %v", ok, err)
	}
	if want := "usage: move <x> <y> <z>\n"; out != want {
		t.Errorf("printed %q, want %q", out, want)
	}
	if _, err := c.Execute(Parse("move 1 2 -3.5")); err != nil {
		t.Fatal(err)
	}
	if want := (vec.Vec3{X: 1, Y: 2, Z: -3.5}); got != want {
		t.Errorf("Vec3 = %v, want %v", got, want)
	}
	if _, err := c.Execute(Parse("move 1 up 3")); err == nil {
		t.Errorf("a word parsed as a number")
	}
}

func TestFloat32s(t *testing.T) {
	a := Parse("look -10 90.5")
	got, err := a.Float32s(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != -10 || got[1] != 90.5 {
		t.Errorf("Float32s = %v", got)
	}
	if _, err := a.Float32s(1, 3); err == nil {
		t.Errorf("missing argument parsed")
	}
}
