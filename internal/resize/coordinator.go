// Package resize coalesces container size notifications into rebuilds.
package resize

import (
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// DefaultQuiet is how long notifications must stop before a rebuild.
const DefaultQuiet = 100 * time.Millisecond

// Notification reports the new content size of an observed element.
type Notification struct {
	Target string
	Size   core.Size
}

// Ticket identifies one scheduled rebuild. Only the newest ticket settles.
type Ticket struct {
	Seq  uint64
	Size core.Size
}

// Coordinator is a single-threaded coalescing buffer: every accepted
// notification cancels the pending rebuild and schedules a new one. The host
// fires Settle after Quiet has elapsed for each ticket it was handed.
type Coordinator struct {
	Target string
	Quiet  time.Duration

	seq     uint64
	pending core.Size
	last    core.Size
	settled int
}

func NewCoordinator(target string, quiet time.Duration) *Coordinator {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Coordinator{Target: target, Quiet: quiet}
}

// Notify records a notification. It returns false for other targets.
func (c *Coordinator) Notify(n Notification) (Ticket, bool) {
	if n.Target != c.Target {
		return Ticket{}, false
	}
	c.seq++
	c.pending = n.Size
	return Ticket{Seq: c.seq, Size: n.Size}, true
}

// Settle reports whether the ticket should trigger a rebuild: it must be the
// newest, carry a non-degenerate size and differ from the size last rebuilt.
func (c *Coordinator) Settle(t Ticket) (core.Size, bool) {
	if t.Seq != c.seq {
		return core.Size{}, false
	}
	if c.pending.Degenerate() || c.pending == c.last {
		return core.Size{}, false
	}
	c.last = c.pending
	c.settled++
	return c.pending, true
}

// MarkBuilt records a size that was rebuilt outside the coordinator, such as
// the initial mount, so an identical notification does not rebuild again.
func (c *Coordinator) MarkBuilt(s core.Size) {
	c.last = s
}

// Settled counts rebuilds granted so far.
func (c *Coordinator) Settled() int { return c.settled }

// Pending reports whether a notification is waiting for its quiet period.
func (c *Coordinator) Pending() bool {
	return c.pending != c.last && !c.pending.Degenerate()
}
