// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/google/uuid"
)

// TeleportEvent is published after a teleportable passed from Source to
// Target. Both are handles and may no longer resolve when the event is read.
type TeleportEvent struct {
	Actor  Teleportable
	Source uuid.UUID
	Target uuid.UUID
}

type Listener func(TeleportEvent)

type subscription struct {
	id int
	f  Listener
}

// Bus delivers teleport events synchronously in subscription order.
type Bus struct {
	subs []subscription
	next int
}

// Subscribe registers f and returns a function removing it again.
func (b *Bus) Subscribe(f Listener) func() {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscription{id, f})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every listener. Listeners may subscribe, unsubscribe and
// publish while being called.
func (b *Bus) Publish(e TeleportEvent) {
	subs := b.subs
	for _, s := range subs {
		s.f(e)
	}
}
