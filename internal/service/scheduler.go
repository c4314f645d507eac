package service

import (
	"time"

	"heater_relay/internal/models"
)

// Millis is a millisecond timestamp from a free-running counter that may
// wrap around. Only differences between two stamps are meaningful.
type Millis uint32

// Since returns the elapsed milliseconds from prev to m, correct across a
// single counter wrap.
func (m Millis) Since(prev Millis) uint32 {
	return uint32(m - prev)
}

// Clock yields the loop's current Millis.
type Clock interface {
	Millis() Millis
}

// MonotonicClock counts milliseconds since it was created, truncated to 32
// bits the way a board's millis() counter behaves.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Millis uses the monotonic reading carried by time.Time.
func (c *MonotonicClock) Millis() Millis {
	return Millis(uint32(time.Since(c.start).Milliseconds()))
}

// PollResult describes what one Tick did.
type PollResult struct {
	Polled  bool
	Reading models.SensorReading
	Count   uint64
}

// firstPollCount is the counter value before any poll completed.
const firstPollCount = 1

// PollScheduler refreshes the sensor every interval and forwards the
// reading to the control unit.
type PollScheduler struct {
	unit     *ControlUnit
	sensor   Sensor
	interval uint32

	last    Millis
	started bool
	counter uint64
}

// NewPollScheduler builds a scheduler. The first Tick always polls so the
// automatic decision has data without waiting a whole interval.
func NewPollScheduler(unit *ControlUnit, sensor Sensor, interval time.Duration) *PollScheduler {
	ms := interval.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return &PollScheduler{
		unit:     unit,
		sensor:   sensor,
		interval: uint32(ms),
		counter:  firstPollCount,
	}
}

// Tick runs one poll cycle if it is due at now. Otherwise it does nothing.
func (s *PollScheduler) Tick(now Millis) PollResult {
	if s.started && now.Since(s.last) < s.interval {
		return PollResult{Count: s.counter}
	}
	s.started = true
	s.last = now

	reading := s.sensor.Refresh()
	s.unit.OnNewReading(reading)
	s.counter++

	return PollResult{Polled: true, Reading: reading, Count: s.counter}
}

// Counter returns the number of completed poll cycles, offset by the
// starting value.
func (s *PollScheduler) Counter() uint64 { return s.counter }
