package models

import "time"

// Event types written to the journal.
const (
	EventStart         = "START"
	EventStop          = "STOP"
	EventModeChange    = "MODE_CHANGE"
	EventHeaterOn      = "HEATER_ON"
	EventHeaterOff     = "HEATER_OFF"
	EventSensorFault   = "SENSOR_FAULT"
	EventActuatorFault = "ACTUATOR_FAULT"
)

// HeaterEvent is a single log entry.
type HeaterEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | STOP | MODE_CHANGE | HEATER_ON | HEATER_OFF | SENSOR_FAULT | ACTUATOR_FAULT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

var eventTypes = map[string]struct{}{
	EventStart: {}, EventStop: {}, EventModeChange: {},
	EventHeaterOn: {}, EventHeaterOff: {},
	EventSensorFault: {}, EventActuatorFault: {},
}

// IsEventType reports whether s names a known journal event type.
func IsEventType(s string) bool {
	_, ok := eventTypes[s]
	return ok
}

// Metadata keys every journal event carries.
const (
	MetaMode      = "mode"
	MetaPollCount = "poll_count"
)

// Event categories, accepted wherever an event type filter is.
const (
	CategorySwitching = "SWITCHING"
	CategoryFaults    = "FAULTS"
	CategoryLifecycle = "LIFECYCLE"
)

var eventCategories = map[string][]string{
	CategorySwitching: {EventHeaterOn, EventHeaterOff},
	CategoryFaults:    {EventSensorFault, EventActuatorFault},
	CategoryLifecycle: {EventStart, EventStop},
}

// ExpandEventType resolves an event type or category to the event types it
// covers. An empty s means all types and yields nil.
func ExpandEventType(s string) ([]string, bool) {
	if s == "" {
		return nil, true
	}
	if types, ok := eventCategories[s]; ok {
		return types, true
	}
	if IsEventType(s) {
		return []string{s}, true
	}
	return nil, false
}

// IsFault reports whether the event records a sensor or relay failure.
func (e HeaterEvent) IsFault() bool {
	return e.Type == EventSensorFault || e.Type == EventActuatorFault
}

// Mode returns the control mode recorded in the event's metadata. Entries
// read back from the database carry it as a plain string.
func (e HeaterEvent) Mode() (Mode, bool) {
	meta, ok := e.Metadata.(map[string]any)
	if !ok {
		return "", false
	}
	switch v := meta[MetaMode].(type) {
	case Mode:
		return v, true
	case string:
		return ParseMode(v)
	}
	return "", false
}
