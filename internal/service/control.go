package service

import (
	"heater_relay/internal/models"
)

// ControlState is what QueryState reports.
type ControlState struct {
	Mode          models.Mode
	HeaterOn      bool
	Reading       models.SensorReading
	ActuatorFault string
}

// ControlUnit owns the heater mode, the actuator state and the threshold
// decision. It is the only writer of the actuator. Not safe for concurrent
// use: it lives on the control loop goroutine.
type ControlUnit struct {
	actuator   Actuator
	thresholdC float64

	mode     models.Mode
	heaterOn bool
	reading  models.SensorReading
	fault    string
}

// NewControlUnit builds a unit with the heater driven OFF, then applies the
// initial mode. An unknown initial mode leaves the unit in MANUAL_OFF.
func NewControlUnit(actuator Actuator, thresholdC float64, initial models.Mode) *ControlUnit {
	u := &ControlUnit{
		actuator:   actuator,
		thresholdC: thresholdC,
		mode:       models.ModeManualOff,
	}
	u.drive(false)
	u.SetMode(models.CommandFor(initial))
	return u
}

// SetMode applies a control command. ON and OFF switch to manual control
// and drive the relay right away; AUTO re-evaluates the latest reading.
// CommandUnknown is ignored.
func (u *ControlUnit) SetMode(cmd models.Command) {
	switch cmd {
	case models.CommandOn:
		u.mode = models.ModeManualOn
		u.drive(true)
	case models.CommandOff:
		u.mode = models.ModeManualOff
		u.drive(false)
	case models.CommandAuto:
		u.mode = models.ModeAuto
		u.evaluate()
	case models.CommandUnknown:
	}
}

// OnNewReading stores a valid reading and, in AUTO, recomputes the relay.
// Invalid readings change nothing.
func (u *ControlUnit) OnNewReading(r models.SensorReading) {
	if !r.Valid {
		return
	}
	u.reading = r
	if u.mode == models.ModeAuto {
		u.evaluate()
	}
}

// QueryState returns the current mode, relay state and latest reading.
func (u *ControlUnit) QueryState() ControlState {
	return ControlState{
		Mode:          u.mode,
		HeaterOn:      u.heaterOn,
		Reading:       u.reading,
		ActuatorFault: u.fault,
	}
}

// HeaterOn reports the last decided relay state.
func (u *ControlUnit) HeaterOn() bool { return u.heaterOn }

// ThresholdC returns the configured set point.
func (u *ControlUnit) ThresholdC() float64 { return u.thresholdC }

// evaluate applies the threshold decision: ON strictly below the set point.
// Without any valid reading the heater stays OFF.
func (u *ControlUnit) evaluate() {
	if !u.reading.Valid {
		u.drive(false)
		return
	}
	u.drive(u.reading.TemperatureC < u.thresholdC)
}

// drive records the decision first so the decided state survives a failed
// output write; the failure is kept as the actuator fault.
func (u *ControlUnit) drive(on bool) {
	u.heaterOn = on
	if u.actuator == nil {
		return
	}
	if err := u.actuator.Drive(on); err != nil {
		u.fault = err.Error()
		return
	}
	u.fault = ""
}
