package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Night-window evaluation and finding timestamps depend on it; production
// code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for rule evaluation. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
