package models

import "time"

// JournalSummary condenses the journal over a time window: how often the
// relay switched, how long it was energised and how many faults occurred.
type JournalSummary struct {
	From            time.Time      `json:"from"`
	To              time.Time      `json:"to"`
	Events          int            `json:"events"`
	Counts          map[string]int `json:"counts"`
	Switches        int            `json:"switches"`
	Faults          int            `json:"faults"`
	HeaterOnSeconds float64        `json:"heater_on_seconds"`
	DutyCycle       float64        `json:"duty_cycle"` // share of [From, To] with the relay on, 0..1
	LastModeChange  *HeaterEvent   `json:"last_mode_change,omitempty"`
}
