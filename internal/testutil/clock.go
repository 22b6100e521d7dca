// Package testutil provides fixtures shared by chatstate tests: fresh
// databases, unique Matrix identifiers and a deterministic clock for event
// timestamps.
package testutil

import "sync"

// DefaultEpoch is the first timestamp handed out by a Clock created with a
// zero epoch, in milliseconds since the Unix epoch.
const DefaultEpoch int64 = 1700000000000

// Clock hands out strictly increasing origin_server_ts values so fixture
// events have a stable order without depending on wall time.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	epoch int64
	seq   int64
}

// NewClock creates a clock whose first Next returns epoch+1. A zero epoch
// means DefaultEpoch.
func NewClock(epoch int64) *Clock {
	if epoch == 0 {
		epoch = DefaultEpoch
	}
	return &Clock{epoch: epoch}
}

// Next advances the clock by one millisecond and returns the new timestamp.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.epoch + c.seq
}

// Current returns the last timestamp handed out, or the epoch if Next has
// not been called.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch + c.seq
}

// Reset rewinds the clock to its epoch.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
