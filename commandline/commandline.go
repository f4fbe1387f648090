// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	conDebug bool
	realtime bool
	watch    bool

	journal = boolInt{false, 256}

	frames int

	levelFile   string
	tuningFile  string
	journalFile string
	exec        string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&conDebug, "condebug", false, "enable debug logging")
	flag.BoolVar(&realtime, "realtime", false, "pace frames with the wall clock")
	flag.BoolVar(&watch, "watch", false, "reload the tuning file when it changes")

	flag.Var(&journal, "journal", "record portal crossings, optional number of kept entries")

	flag.IntVar(&frames, "frames", 600, "number of frames to run, 0 runs until interrupted")

	flag.StringVar(&levelFile, "level", "", "level file")
	flag.StringVar(&tuningFile, "tuning", "", "yaml or toml file with cvar values")
	flag.StringVar(&journalFile, "journalfile", "journal.bin", "where the journal is written, zstd compressed for .zst")
	flag.StringVar(&exec, "exec", "", "console commands run after the level script")
}

func ConsoleDebug() bool {
	return conDebug
}

func Realtime() bool {
	return realtime
}

func Watch() bool {
	return watch
}

func Journal() bool {
	return journal.set
}

func JournalSize() int {
	return journal.num
}

func Frames() int {
	return frames
}

func Level() string {
	return levelFile
}

func Tuning() string {
	return tuningFile
}

func JournalFile() string {
	return journalFile
}

func Exec() string {
	return exec
}
