package models

import "time"

// SensorReading is one temperature/humidity acquisition.
// Valid is false when the bus transaction failed.
type SensorReading struct {
	TemperatureC float64 `json:"temperature_c"`
	Humidity     float64 `json:"humidity"`
	Valid        bool    `json:"valid"`
}

// HeaterState is the observable snapshot of the relay.
type HeaterState struct {
	ID            int           `json:"id"`
	Mode          Mode          `json:"mode"`
	HeaterOn      bool          `json:"heater_on"`
	Reading       SensorReading `json:"reading"`
	ThresholdC    float64       `json:"threshold_c"`
	PollCount     uint64        `json:"poll_count"`
	ActuatorFault string        `json:"actuator_fault,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
