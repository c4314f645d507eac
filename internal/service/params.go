package service

import (
	"time"

	"heater_relay/internal/models"
)

// LogFilter narrows journal listings.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	// Type is an event type (HEATER_ON, ...) or a category (SWITCHING,
	// FAULTS, LIFECYCLE). Empty matches everything.
	Type string
	// Mode keeps only events recorded while the unit was in this mode.
	Mode models.Mode
	// Limit keeps the most recent entries; 0 keeps all.
	Limit int
}
