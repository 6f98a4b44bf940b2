// Package notify delivers critical-error notifications off the audio
// thread. The audio callback may record a fault and ask for delivery, but
// it must never invoke a subscriber synchronously (spec §5, §7); this
// package does that handoff with a single background goroutine bounded by
// a weighted semaphore so a storm of consecutive faults can't pile up
// unbounded dispatch goroutines.
package notify

import (
	"golang.org/x/sync/semaphore"
)

// Notifier delivers at most one in-flight error notification at a time.
// A notification dropped because one is already in flight is not lost
// information: the engine's latched critical-error flag and error slot
// remain the authoritative state for TryGetCriticalError polling.
type Notifier struct {
	sem *semaphore.Weighted
	ch  chan error
}

// New returns a ready-to-use Notifier. bufSize is the channel's buffer;
// once it is full, further notifications are dropped rather than blocking
// the dispatch goroutine, and the older buffered ones stay queued.
func New(bufSize int) *Notifier {
	if bufSize < 1 {
		bufSize = 1
	}
	return &Notifier{
		sem: semaphore.NewWeighted(1),
		ch:  make(chan error, bufSize),
	}
}

// Dispatch schedules err for delivery on a background goroutine. It never
// blocks the caller: if a dispatch is already in flight, or the channel
// is full, the notification is dropped silently.
func (n *Notifier) Dispatch(err error) {
	if !n.sem.TryAcquire(1) {
		return
	}
	go func() {
		defer n.sem.Release(1)
		select {
		case n.ch <- err:
		default:
		}
	}()
}

// Errors returns the channel subscribers receive critical-error
// notifications on. Subscribers must tolerate being invoked on an
// unspecified goroutine.
func (n *Notifier) Errors() <-chan error {
	return n.ch
}
