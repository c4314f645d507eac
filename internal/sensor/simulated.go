// Package sensor provides temperature/humidity sources for the control
// loop: a simulated room for running without hardware and a scripted fake
// for tests.
package sensor

import (
	"time"

	"heater_relay/internal/models"
)

// Defaults for the simulated room.
const (
	DefaultAmbientC       = 18.0 // °C the room settles to with the heater off
	DefaultHumidity       = 45.0 // %RH at ambient
	DefaultHeatRatePerSec = 0.05 // °C per second while heating
	DefaultCoolRatePerSec = 0.02 // °C per second drift toward ambient
	MaxRoomC              = 40.0 // the room model never exceeds this
	humidityPerDegree     = 1.5  // %RH lost per °C above ambient
)

// SimConfig tunes the simulated room.
type SimConfig struct {
	AmbientC       float64
	StartC         float64 // zero means AmbientC
	Humidity       float64
	HeatRatePerSec float64
	CoolRatePerSec float64
	// FaultEvery makes every Nth read fail; 0 disables fault injection.
	FaultEvery int
}

func (c SimConfig) withDefaults() SimConfig {
	if c.AmbientC == 0 {
		c.AmbientC = DefaultAmbientC
	}
	if c.StartC == 0 {
		c.StartC = c.AmbientC
	}
	if c.Humidity == 0 {
		c.Humidity = DefaultHumidity
	}
	if c.HeatRatePerSec == 0 {
		c.HeatRatePerSec = DefaultHeatRatePerSec
	}
	if c.CoolRatePerSec == 0 {
		c.CoolRatePerSec = DefaultCoolRatePerSec
	}
	return c
}

// Simulated is a room warmed by the heater and cooled by its surroundings.
// It integrates temperature over the wall time between reads.
type Simulated struct {
	cfg      SimConfig
	heaterOn func() bool
	now      func() time.Time

	tempC float64
	last  time.Time
	reads int
}

// NewSimulated builds a room. heaterOn reports the relay state; nil means
// the heater is never on.
func NewSimulated(cfg SimConfig, heaterOn func() bool) *Simulated {
	cfg = cfg.withDefaults()
	if heaterOn == nil {
		heaterOn = func() bool { return false }
	}
	return &Simulated{
		cfg:      cfg,
		heaterOn: heaterOn,
		now:      time.Now,
		tempC:    cfg.StartC,
	}
}

// Refresh advances the room model and returns a reading.
func (s *Simulated) Refresh() models.SensorReading {
	now := s.now()
	if !s.last.IsZero() {
		elapsed := now.Sub(s.last).Seconds()
		if elapsed > 0 {
			s.advance(elapsed)
		}
	}
	s.last = now

	s.reads++
	if s.cfg.FaultEvery > 0 && s.reads%s.cfg.FaultEvery == 0 {
		return models.SensorReading{}
	}
	return models.SensorReading{
		TemperatureC: s.tempC,
		Humidity:     s.humidity(),
		Valid:        true,
	}
}

// TemperatureC exposes the model temperature, including during faults.
func (s *Simulated) TemperatureC() float64 { return s.tempC }

func (s *Simulated) advance(elapsed float64) {
	if s.heaterOn() {
		s.tempC = minFloat(s.tempC+s.cfg.HeatRatePerSec*elapsed, MaxRoomC)
		return
	}
	switch {
	case s.tempC > s.cfg.AmbientC:
		s.tempC = maxFloat(s.tempC-s.cfg.CoolRatePerSec*elapsed, s.cfg.AmbientC)
	case s.tempC < s.cfg.AmbientC:
		s.tempC = minFloat(s.tempC+s.cfg.CoolRatePerSec*elapsed, s.cfg.AmbientC)
	}
}

func (s *Simulated) humidity() float64 {
	h := s.cfg.Humidity - (s.tempC-s.cfg.AmbientC)*humidityPerDegree
	return minFloat(maxFloat(h, 0), 100)
}

func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
