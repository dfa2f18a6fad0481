package executor

import (
	"context"
	"sync/atomic"

	"github.com/aryankumar/parex/pkg/parex"
)

// controller is the state shared by every goroutine of a run.
// The limit counter and the stop flag are the only cross-goroutine mutable
// state on the hot path, and both are lock-free.
type controller struct {
	// limited is false when no match limit is configured
	limited bool

	// remaining is the number of match slots left to reserve
	remaining atomic.Int64

	// stopped is checked by workers between items and by the feeder between pulls
	stopped atomic.Bool

	// fatal holds the first fatal failure; later ones never overwrite it
	fatal atomic.Pointer[parex.Error]

	// cancel unblocks a feeder waiting on the producer or the queue
	cancel context.CancelFunc
}

func newController(limit int, cancel context.CancelFunc) *controller {
	c := &controller{
		limited: limit >= 0,
		cancel:  cancel,
	}
	if c.limited {
		c.remaining.Store(int64(limit))
	}
	return c
}

// isStopped reports whether the run has been asked to stop
func (c *controller) isStopped() bool {
	return c.stopped.Load()
}

// stop raises the flag without touching the run context
func (c *controller) stop() {
	c.stopped.Store(true)
}

// halt raises the flag and cancels the run context
func (c *controller) halt() {
	c.stopped.Store(true)
	c.cancel()
}

// reserve claims one match slot with a decrement-if-positive.
// It returns false once the limit is exhausted. Claiming the last slot
// halts the run so siblings stop promptly.
func (c *controller) reserve() bool {
	if !c.limited {
		return true
	}

	for {
		n := c.remaining.Load()
		if n <= 0 {
			return false
		}
		if c.remaining.CompareAndSwap(n, n-1) {
			if n == 1 {
				c.halt()
			}
			return true
		}
	}
}

// fail records err as the run's failure if none was recorded yet, then halts.
// It reports whether err was the first fatal failure.
func (c *controller) fail(err *parex.Error) bool {
	first := c.fatal.CompareAndSwap(nil, err)
	c.halt()
	return first
}

// failure returns the first fatal failure, or nil
func (c *controller) failure() *parex.Error {
	return c.fatal.Load()
}
