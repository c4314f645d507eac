package service

import (
	"math"
	"testing"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/relay"
	"heater_relay/internal/sensor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisSince_Wraparound(t *testing.T) {
	assert.Equal(t, uint32(1000), Millis(1500).Since(500))
	assert.Equal(t, uint32(1000), Millis(499).Since(Millis(math.MaxUint32-500)))
	assert.Equal(t, uint32(0), Millis(7).Since(7))
}

func TestMonotonicClock_Advances(t *testing.T) {
	c := NewMonotonicClock()
	a := c.Millis()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Millis().Since(a), uint32(5))
}

func newTestScheduler(readings ...models.SensorReading) (*PollScheduler, *ControlUnit, *sensor.Fake) {
	unit := NewControlUnit(relay.NewMemory(), threshold, models.ModeAuto)
	src := sensor.NewFake(readings...)
	return NewPollScheduler(unit, src, 2*time.Second), unit, src
}

func TestTick_FirstPollIsImmediate(t *testing.T) {
	s, unit, src := newTestScheduler(sensor.Valid(24, 40))
	require.Equal(t, uint64(firstPollCount), s.Counter())

	res := s.Tick(0)

	assert.True(t, res.Polled)
	assert.Equal(t, 1, src.Calls)
	assert.Equal(t, uint64(2), res.Count)
	assert.True(t, unit.HeaterOn())
}

func TestTick_RespectsInterval(t *testing.T) {
	s, _, src := newTestScheduler(sensor.Valid(24, 40))

	s.Tick(100)
	res := s.Tick(2099)
	assert.False(t, res.Polled)
	assert.Equal(t, 1, src.Calls)
	assert.Equal(t, s.Counter(), res.Count)

	res = s.Tick(2100)
	assert.True(t, res.Polled)
	assert.Equal(t, 2, src.Calls)
}

func TestTick_AcrossClockWrap(t *testing.T) {
	s, _, src := newTestScheduler(sensor.Valid(24, 40))
	start := Millis(math.MaxUint32 - 500)

	s.Tick(start)
	assert.False(t, s.Tick(start+1999).Polled) // wraps to 1498
	assert.True(t, s.Tick(start+2000).Polled)
	assert.Equal(t, 2, src.Calls)
}

func TestTick_CounterIncrementsOncePerPoll(t *testing.T) {
	s, _, _ := newTestScheduler(sensor.Valid(24, 40), sensor.Failed(), sensor.Valid(30, 40))

	var now Millis
	prev := s.Counter()
	for i := 0; i < 10; i++ {
		res := s.Tick(now)
		if res.Polled {
			assert.Equal(t, prev+1, s.Counter())
		} else {
			assert.Equal(t, prev, s.Counter())
		}
		prev = s.Counter()
		now += 1000
	}
	assert.Equal(t, uint64(firstPollCount+5), s.Counter())
}

func TestTick_FailedReadingCountsButKeepsState(t *testing.T) {
	s, unit, _ := newTestScheduler(sensor.Valid(24, 40), sensor.Failed())

	s.Tick(0)
	require.True(t, unit.HeaterOn())
	res := s.Tick(2000)

	assert.True(t, res.Polled)
	assert.False(t, res.Reading.Valid)
	assert.Equal(t, uint64(3), res.Count)
	assert.True(t, unit.HeaterOn())
	assert.Equal(t, 24.0, unit.QueryState().Reading.TemperatureC)
}

func TestTick_ZeroIntervalPollsEveryTick(t *testing.T) {
	unit := NewControlUnit(nil, threshold, models.ModeAuto)
	src := sensor.NewFake(sensor.Valid(20, 40))
	s := NewPollScheduler(unit, src, 0)

	s.Tick(5)
	s.Tick(5)
	assert.Equal(t, 2, src.Calls)
}
