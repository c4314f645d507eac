//go:build linux

package relay

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO drives the relay and indicator lines on a GPIO chip.
type GPIO struct {
	chip      *gpiocdev.Chip
	relay     *gpiocdev.Line
	indicator *gpiocdev.Line
}

// NewGPIO requests both lines as outputs, heater OFF.
func NewGPIO(chipName string, relayLine, indicatorLine int) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("heater-relay"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	rl, il := Levels(false)
	relay, err := chip.RequestLine(relayLine, gpiocdev.AsOutput(rl))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request relay line %d: %w", relayLine, err)
	}
	indicator, err := chip.RequestLine(indicatorLine, gpiocdev.AsOutput(il))
	if err != nil {
		relay.Close()
		chip.Close()
		return nil, fmt.Errorf("request indicator line %d: %w", indicatorLine, err)
	}

	return &GPIO{chip: chip, relay: relay, indicator: indicator}, nil
}

// Drive sets the relay to on and the indicator to the inverse level.
func (g *GPIO) Drive(on bool) error {
	rl, il := Levels(on)
	if err := g.relay.SetValue(rl); err != nil {
		return fmt.Errorf("set relay line: %w", err)
	}
	if err := g.indicator.SetValue(il); err != nil {
		return fmt.Errorf("set indicator line: %w", err)
	}
	return nil
}

// Close switches the heater off and releases the lines as inputs, so the
// relay does not stay energised while nothing controls it.
func (g *GPIO) Close() error {
	var errs []error

	if g.relay != nil {
		if err := g.relay.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("switch relay off: %w", err))
		}
		if err := g.relay.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure relay line: %w", err))
		}
		if err := g.relay.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay line: %w", err))
		}
	}
	if g.indicator != nil {
		if err := g.indicator.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure indicator line: %w", err))
		}
		if err := g.indicator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close indicator line: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	return errors.Join(errs...)
}
