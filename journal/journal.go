// SPDX-License-Identifier: GPL-2.0-or-later

// Package journal records portal crossings.
package journal

import (
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"goportal/portal"
)

const (
	// keep a max size to prevent the journal from growing indefinitely
	DefaultSize = 256
)

type Entry struct {
	Frame  uint64
	Time   float64
	Actor  string
	Handle uuid.UUID
	Source uuid.UUID
	Target uuid.UUID
}

// Journal keeps the last entries in a ring.
type Journal struct {
	entries []Entry
	start   int
	size    int
	total   uint64
}

func New(size int) *Journal {
	if size <= 0 {
		size = DefaultSize
	}
	return &Journal{entries: make([]Entry, 0, size), size: size}
}

func (j *Journal) Add(e Entry) {
	j.total++
	if len(j.entries) < j.size {
		j.entries = append(j.entries, e)
		return
	}
	j.entries[j.start] = e
	j.start = (j.start + 1) % j.size
}

// Entries returns the kept entries, oldest first.
func (j *Journal) Entries() []Entry {
	ret := make([]Entry, 0, len(j.entries))
	ret = append(ret, j.entries[j.start:]...)
	return append(ret, j.entries[:j.start]...)
}

// Resize changes the number of kept entries, dropping the oldest.
func (j *Journal) Resize(size int) {
	if size <= 0 {
		size = DefaultSize
	}
	es := j.Entries()
	if len(es) > size {
		es = es[len(es)-size:]
	}
	j.entries = append(make([]Entry, 0, size), es...)
	j.start = 0
	j.size = size
}

func (j *Journal) Len() int { return len(j.entries) }

// Total counts all entries ever added.
func (j *Journal) Total() uint64 { return j.total }

// Clock returns the frame and time a crossing is recorded with.
type Clock func() (frame uint64, time float64)

// Attach records every crossing published on b until the returned function
// is called.
func (j *Journal) Attach(b *portal.Bus, clock Clock) func() {
	return b.Subscribe(func(e portal.TeleportEvent) {
		var entry Entry
		if clock != nil {
			entry.Frame, entry.Time = clock()
		}
		entry.Actor = e.Actor.Name()
		entry.Handle = e.Actor.Handle()
		entry.Source = e.Source
		entry.Target = e.Target
		j.Add(entry)
	})
}

func (j *Journal) Save(w io.Writer) error {
	if _, err := w.Write(Marshal(j.Entries())); err != nil {
		return errors.Wrap(err, "failed to write journal")
	}
	return nil
}

// SaveFile writes the journal to path. Paths ending in .zst are zstd
// compressed.
func (j *Journal) SaveFile(path string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0660)
	if err != nil {
		return errors.Wrapf(err, "failed to write journal %q", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to write journal %q", path)
		}
	}()
	if !compressed(path) {
		return errors.Wrapf(j.Save(f), "journal %q", path)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrapf(err, "failed to write journal %q", path)
	}
	if err := j.Save(enc); err != nil {
		enc.Close()
		return errors.Wrapf(err, "journal %q", path)
	}
	return errors.Wrapf(enc.Close(), "failed to write journal %q", path)
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Load reads a journal written by Save.
func Load(r io.Reader) ([]Entry, error) {
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read journal")
	}
	return Unmarshal(in)
}

func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read journal %q", path)
	}
	defer f.Close()
	var r io.Reader = f
	if compressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read journal %q", path)
		}
		defer dec.Close()
		r = dec
	}
	es, err := Load(r)
	if err != nil {
		return nil, errors.Wrapf(err, "journal %q", path)
	}
	return es, nil
}
