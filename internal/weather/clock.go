package weather

import "github.com/jonboulle/clockwork"

// clock is the package time source, swappable for tests. Cache expiry and
// the synthetic fallback's seasonality depend on it.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the package clock. Passing nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
