// SPDX-License-Identifier: GPL-2.0-or-later

package journal

import (
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"goportal/crc"
)

// Field numbers of the dump. A dump is a message with repeated entries
// followed by the checksum of everything before it.
const (
	fieldEntry    protowire.Number = 1
	fieldChecksum protowire.Number = 2

	fieldFrame  protowire.Number = 1
	fieldTime   protowire.Number = 2
	fieldActor  protowire.Number = 3
	fieldHandle protowire.Number = 4
	fieldSource protowire.Number = 5
	fieldTarget protowire.Number = 6
)

func appendUUID(b []byte, n protowire.Number, id uuid.UUID) []byte {
	if id == uuid.Nil {
		return b
	}
	b = protowire.AppendTag(b, n, protowire.BytesType)
	return protowire.AppendBytes(b, id[:])
}

func marshalEntry(e Entry) []byte {
	var b []byte
	if e.Frame != 0 {
		b = protowire.AppendTag(b, fieldFrame, protowire.VarintType)
		b = protowire.AppendVarint(b, e.Frame)
	}
	if e.Time != 0 {
		b = protowire.AppendTag(b, fieldTime, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(e.Time))
	}
	if e.Actor != "" {
		b = protowire.AppendTag(b, fieldActor, protowire.BytesType)
		b = protowire.AppendString(b, e.Actor)
	}
	b = appendUUID(b, fieldHandle, e.Handle)
	b = appendUUID(b, fieldSource, e.Source)
	b = appendUUID(b, fieldTarget, e.Target)
	return b
}

func Marshal(es []Entry) []byte {
	var b []byte
	for _, e := range es {
		b = protowire.AppendTag(b, fieldEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalEntry(e))
	}
	return seal(b)
}

// seal closes a dump with the checksum of b.
func seal(b []byte) []byte {
	sum := crc.Checksum(b)
	b = protowire.AppendTag(b, fieldChecksum, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(sum))
}

// verify checks that b ends in its only checksum record and that the
// checksum covers everything before it.
func verify(b []byte) error {
	sum := -1
	for off := 0; off < len(b); {
		n, t, l := protowire.ConsumeTag(b[off:])
		if l < 0 {
			return protowire.ParseError(l)
		}
		fl := protowire.ConsumeFieldValue(n, t, b[off+l:])
		if fl < 0 {
			return protowire.ParseError(fl)
		}
		if n == fieldChecksum {
			if sum >= 0 {
				return errors.Errorf("second checksum at %d", off)
			}
			if t != protowire.VarintType {
				return errors.Errorf("checksum has wire type %d", t)
			}
			sum = off
		}
		off += l + fl
	}
	if sum < 0 {
		return errors.New("missing checksum")
	}
	_, _, l := protowire.ConsumeTag(b[sum:])
	v, vl := protowire.ConsumeVarint(b[sum+l:])
	if sum+l+vl != len(b) {
		return errors.Errorf("data after checksum at %d", sum)
	}
	if want := crc.Checksum(b[:sum]); v != uint64(want) {
		return errors.Errorf("checksum mismatch at %d: %#04x want %#04x", sum, v, want)
	}
	return nil
}

// fields calls f for every field in b. Unknown fields are for f to skip.
func fields(b []byte, f func(n protowire.Number, t protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		n, t, l := protowire.ConsumeTag(b)
		if l < 0 {
			return protowire.ParseError(l)
		}
		b = b[l:]
		l, err := f(n, t, b)
		if err != nil {
			return err
		}
		if l < 0 {
			l = protowire.ConsumeFieldValue(n, t, b)
			if l < 0 {
				return protowire.ParseError(l)
			}
		}
		b = b[l:]
	}
	return nil
}

func consumeUUID(b []byte, t protowire.Type, id *uuid.UUID) (int, error) {
	if t != protowire.BytesType {
		return -1, nil
	}
	v, l := protowire.ConsumeBytes(b)
	if l < 0 {
		return 0, protowire.ParseError(l)
	}
	u, err := uuid.FromBytes(v)
	if err != nil {
		return 0, errors.Wrap(err, "bad handle")
	}
	*id = u
	return l, nil
}

func unmarshalEntry(b []byte) (Entry, error) {
	var e Entry
	err := fields(b, func(n protowire.Number, t protowire.Type, b []byte) (int, error) {
		switch {
		case n == fieldFrame && t == protowire.VarintType:
			v, l := protowire.ConsumeVarint(b)
			if l < 0 {
				return 0, protowire.ParseError(l)
			}
			e.Frame = v
			return l, nil
		case n == fieldTime && t == protowire.Fixed64Type:
			v, l := protowire.ConsumeFixed64(b)
			if l < 0 {
				return 0, protowire.ParseError(l)
			}
			e.Time = math.Float64frombits(v)
			return l, nil
		case n == fieldActor && t == protowire.BytesType:
			v, l := protowire.ConsumeString(b)
			if l < 0 {
				return 0, protowire.ParseError(l)
			}
			e.Actor = v
			return l, nil
		case n == fieldHandle:
			return consumeUUID(b, t, &e.Handle)
		case n == fieldSource:
			return consumeUUID(b, t, &e.Source)
		case n == fieldTarget:
			return consumeUUID(b, t, &e.Target)
		}
		return -1, nil
	})
	return e, err
}

func Unmarshal(b []byte) ([]Entry, error) {
	if err := verify(b); err != nil {
		return nil, errors.Wrap(err, "failed to decode journal")
	}
	var es []Entry
	err := fields(b, func(n protowire.Number, t protowire.Type, b []byte) (int, error) {
		if n != fieldEntry || t != protowire.BytesType {
			return -1, nil
		}
		v, l := protowire.ConsumeBytes(b)
		if l < 0 {
			return 0, protowire.ParseError(l)
		}
		e, err := unmarshalEntry(v)
		if err != nil {
			return 0, err
		}
		es = append(es, e)
		return l, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode journal")
	}
	return es, nil
}
