package gameserver

import "time"

// Clock supplies wall-clock time to the engine so cooldown and recovery
// rules stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
