// Package relay drives the heater relay and its indicator LED. The real
// implementation uses the Linux GPIO character device; Memory keeps the
// state in process for running off-hardware and for tests.
package relay

// Default line offsets on gpiochip0.
const (
	DefaultChip          = "gpiochip0"
	DefaultRelayLine     = 5
	DefaultIndicatorLine = 2
)

// Levels returns the raw line values for a heater state. The relay is
// active-high; the indicator LED is wired active-low, so it lights (0)
// while the heater is on.
func Levels(on bool) (relayLevel, indicatorLevel int) {
	if on {
		return 1, 0
	}
	return 0, 1
}
