// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"

	"goportal/commandline"
	"goportal/qtime"
	"goportal/sim"
	"goportal/tuning"
)

const (
	tic      = 1.0 / 60
	ticSleep = time.Second / 60
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if commandline.ConsoleDebug() {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("goportal failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	if commandline.Level() == "" {
		return errors.New("no level given, use -level")
	}
	h, err := sim.Load(commandline.Level(), log)
	if err != nil {
		return err
	}
	defer h.Close()

	if t := commandline.Tuning(); t != "" {
		if commandline.Watch() {
			err = h.WatchTuning(t)
		} else {
			err = tuning.LoadAndApply(t)
		}
		if err != nil {
			return err
		}
	}
	if commandline.Journal() {
		h.Journal.Resize(commandline.JournalSize())
	}
	if e := commandline.Exec(); e != "" {
		h.Execute(e)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	clock := qtime.NewClock()
	frames := commandline.Frames()
FrameLoop:
	for i := 0; frames == 0 || i < frames; i++ {
		select {
		case <-interrupt:
			break FrameLoop
		default:
		}
		if commandline.Realtime() {
			clock.Sleep(ticSleep)
			h.Frame(clock.Frame())
		} else {
			h.Frame(tic)
		}
	}
	log.Info("stopped", slog.Int("frames", h.Time.FrameCount()),
		slog.Float64("time", h.Time.Time()),
		slog.Duration("wall", clock.Since()))

	if commandline.Journal() {
		if err := h.Journal.SaveFile(commandline.JournalFile()); err != nil {
			return err
		}
		log.Info("journal written", slog.String("file", commandline.JournalFile()), slog.Int("entries", h.Journal.Len()))
	}
	return nil
}
