package service

import (
	"context"
	"net"

	"heater_relay/internal/models"
	"heater_relay/internal/repository"
)

// Actuator is the physical heater output. Drive sets the relay and the
// indicator, which shows the inverse level.
type Actuator interface {
	Drive(on bool) error
}

// Sensor performs one temperature/humidity acquisition. A failed bus
// transaction is reported as a reading with Valid=false.
type Sensor interface {
	Refresh() models.SensorReading
}

// Acceptor hands out waiting control clients without blocking.
type Acceptor interface {
	// TryAccept returns (nil, nil) when nobody is waiting.
	TryAccept() (net.Conn, error)
}

// PollCounter exposes the completed poll cycle count.
type PollCounter interface {
	Counter() uint64
}

// Publisher forwards journal entries and snapshots off the device.
type Publisher interface {
	PublishEvent(e models.HeaterEvent) error
	PublishState(s models.HeaterState) error
}

// Monitoring exposes the last recorded snapshot to the status mirror.
type Monitoring interface {
	GetState(ctx context.Context) (models.HeaterState, error)
}

// EventLog exposes the journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.HeaterEvent, error)
	Summarize(ctx context.Context, f LogFilter) (models.JournalSummary, error)
}

// Service aggregates the read side used by the HTTP status mirror. The
// control side (ControlUnit, PollScheduler, RequestHandler) is owned by Loop.
type Service struct {
	Monitoring
	EventLog
}

// NewService wires the repositories into the read services.
func NewService(repos *repository.Repository, thresholdC float64) *Service {
	return &Service{
		Monitoring: NewMonitoringService(repos.StateRepo, thresholdC),
		EventLog:   NewEventLogService(repos.EventRepo),
	}
}
