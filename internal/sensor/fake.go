package sensor

import "heater_relay/internal/models"

// Fake returns scripted readings. Once the script is exhausted the last
// reading repeats.
type Fake struct {
	Readings []models.SensorReading
	next     int
	// Calls counts Refresh invocations.
	Calls int
}

// NewFake creates a Fake with the given script.
func NewFake(readings ...models.SensorReading) *Fake {
	return &Fake{Readings: readings}
}

// Refresh returns the next scripted reading, or an invalid one when the
// script is empty.
func (f *Fake) Refresh() models.SensorReading {
	f.Calls++
	if len(f.Readings) == 0 {
		return models.SensorReading{}
	}
	if f.next >= len(f.Readings) {
		return f.Readings[len(f.Readings)-1]
	}
	r := f.Readings[f.next]
	f.next++
	return r
}

// Push appends readings to the script.
func (f *Fake) Push(readings ...models.SensorReading) {
	f.Readings = append(f.Readings, readings...)
}

// Valid is shorthand for a successful reading.
func Valid(tempC, humidity float64) models.SensorReading {
	return models.SensorReading{TemperatureC: tempC, Humidity: humidity, Valid: true}
}

// Failed is a reading from a failed bus transaction.
func Failed() models.SensorReading {
	return models.SensorReading{}
}
