//go:build !linux

package relay

import "errors"

var errUnsupported = errors.New("relay: gpio not supported on this platform (requires Linux)")

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(chipName string, relayLine, indicatorLine int) (*GPIO, error) {
	return nil, errUnsupported
}

// Drive is not implemented on non-Linux platforms.
func (g *GPIO) Drive(on bool) error { return errUnsupported }

// Close is a no-op on non-Linux platforms.
func (g *GPIO) Close() error { return nil }
