// Package mqtt publishes heater journal events and state snapshots to an
// MQTT broker.
package mqtt

import (
	"encoding/json"
	"strings"
	"time"

	"heater_relay/internal/models"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "home/heater"

// Topics derived from a prefix.
func EventsTopic(prefix string) string { return topic(prefix, "events") }
func StateTopic(prefix string) string  { return topic(prefix, "state") }

func topic(prefix, leaf string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return prefix + "/" + leaf
}

// EventPayload is the wire form of a journal event.
type EventPayload struct {
	Timestamp   string `json:"timestamp"`
	ID          string `json:"id"`
	Event       string `json:"event"`
	Description string `json:"description"`
	Metadata    any    `json:"metadata,omitempty"`
}

// StatePayload is the wire form of a state snapshot.
type StatePayload struct {
	Timestamp    string   `json:"timestamp"`
	Mode         string   `json:"mode"`
	Heater       string   `json:"heater"`
	TemperatureC *float64 `json:"temperature_c"`
	Humidity     *float64 `json:"humidity"`
	ThresholdC   float64  `json:"threshold_c"`
	PollCount    uint64   `json:"poll_count"`
	Fault        string   `json:"fault,omitempty"`
}

// FormatEvent creates the JSON payload for an event.
func FormatEvent(e models.HeaterEvent) ([]byte, error) {
	return json.Marshal(EventPayload{
		Timestamp:   e.OccurredAt.UTC().Format(time.RFC3339),
		ID:          e.EventID,
		Event:       e.Type,
		Description: e.Description,
		Metadata:    e.Metadata,
	})
}

// FormatState creates the JSON payload for a snapshot. Temperature and
// humidity are null until a valid reading exists.
func FormatState(s models.HeaterState) ([]byte, error) {
	p := StatePayload{
		Timestamp:  s.UpdatedAt.UTC().Format(time.RFC3339),
		Mode:       string(s.Mode),
		Heater:     "OFF",
		ThresholdC: s.ThresholdC,
		PollCount:  s.PollCount,
		Fault:      s.ActuatorFault,
	}
	if s.HeaterOn {
		p.Heater = "ON"
	}
	if s.Reading.Valid {
		t, h := s.Reading.TemperatureC, s.Reading.Humidity
		p.TemperatureC, p.Humidity = &t, &h
	}
	return json.Marshal(p)
}
