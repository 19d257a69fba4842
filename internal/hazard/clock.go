package hazard

import "github.com/jonboulle/clockwork"

// clock drives the refresh ticker, swappable for tests.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the package clock. Passing nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
