package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heater_relay/internal/logger"
	"heater_relay/internal/models"
	"heater_relay/internal/repository"

	"github.com/google/uuid"
)

// Journal records what the control loop did: it keeps the single snapshot
// row current and appends an event for every transition it sees.
type Journal struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	publisher Publisher
	log       *logger.Logger
	now       func() time.Time

	last    models.HeaterState
	started bool
}

// NewJournal wires the journal. publisher may be nil.
func NewJournal(stateRepo repository.StateRepo, eventRepo repository.EventRepo, publisher Publisher, log *logger.Logger) *Journal {
	if log == nil {
		log = logger.Nop()
	}
	return &Journal{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Start saves the initial snapshot and logs START. The event is appended
// even when the save fails; both errors are returned joined.
func (j *Journal) Start(ctx context.Context, st models.HeaterState) error {
	now := j.now().UTC()
	st.ID = 1
	st.UpdatedAt = now
	j.last = st
	j.started = true

	var errs []error
	if err := j.stateRepo.Save(ctx, st); err != nil {
		errs = append(errs, fmt.Errorf("save initial state: %w", err))
	}
	start := newEvent(now, models.EventStart, "Heater relay started in "+string(st.Mode),
		eventMeta(st, "heater_on", st.HeaterOn, "threshold_c", st.ThresholdC))
	if err := j.append(ctx, start); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Stop logs STOP. The snapshot row is left as it was.
func (j *Journal) Stop(ctx context.Context) error {
	return j.append(ctx, newEvent(j.now().UTC(), models.EventStop, "Heater relay stopped",
		eventMeta(j.last, "heater_on", j.last.HeaterOn)))
}

// Observe compares st with the previous observation and records the
// differences. Failures are collected and returned; nothing is retried.
func (j *Journal) Observe(ctx context.Context, st models.HeaterState, poll PollResult) error {
	now := j.now().UTC()
	st.ID = 1
	st.UpdatedAt = now

	prev := j.last
	first := !j.started
	j.last = st
	j.started = true

	var events []models.HeaterEvent
	if !first && prev.Mode != st.Mode {
		events = append(events, newEvent(now, models.EventModeChange, "Mode changed to "+string(st.Mode),
			eventMeta(st, "from", string(prev.Mode))))
	}
	if first || prev.HeaterOn != st.HeaterOn {
		typ, desc := models.EventHeaterOff, "Heater switched off"
		if st.HeaterOn {
			typ, desc = models.EventHeaterOn, "Heater switched on"
		}
		events = append(events, newEvent(now, typ, desc,
			eventMeta(st, "temperature_c", st.Reading.TemperatureC, "threshold_c", st.ThresholdC)))
	}
	if poll.Polled && !poll.Reading.Valid {
		events = append(events, newEvent(now, models.EventSensorFault, "Sensor read failed; keeping last reading",
			eventMeta(st)))
	}
	if st.ActuatorFault != "" && st.ActuatorFault != prev.ActuatorFault {
		events = append(events, newEvent(now, models.EventActuatorFault, "Relay output failed",
			eventMeta(st, "error", st.ActuatorFault, "heater_on", st.HeaterOn)))
	}

	changed := first || len(events) > 0 || stateChanged(prev, st)
	if !changed && !poll.Polled {
		return nil
	}

	var errs []error
	if err := j.stateRepo.Save(ctx, st); err != nil {
		errs = append(errs, fmt.Errorf("save state: %w", err))
	}
	for _, e := range events {
		j.log.Infow("heater_event", "type", e.Type, "description", e.Description)
		if err := j.append(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	if j.publisher != nil {
		if err := j.publisher.PublishState(st); err != nil {
			errs = append(errs, fmt.Errorf("publish state: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (j *Journal) append(ctx context.Context, e models.HeaterEvent) error {
	if err := j.eventRepo.Append(ctx, e); err != nil {
		return fmt.Errorf("append %s event: %w", e.Type, err)
	}
	if j.publisher != nil {
		if err := j.publisher.PublishEvent(e); err != nil {
			return fmt.Errorf("publish %s event: %w", e.Type, err)
		}
	}
	return nil
}

func newEvent(at time.Time, typ, desc string, meta map[string]any) models.HeaterEvent {
	return models.HeaterEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  at,
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	}
}

// eventMeta tags an event with the mode and poll count it happened under,
// plus extra key/value pairs.
func eventMeta(st models.HeaterState, kv ...any) map[string]any {
	m := map[string]any{
		models.MetaMode:      string(st.Mode),
		models.MetaPollCount: st.PollCount,
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

// stateChanged ignores UpdatedAt.
func stateChanged(a, b models.HeaterState) bool {
	return a.Mode != b.Mode ||
		a.HeaterOn != b.HeaterOn ||
		a.Reading != b.Reading ||
		a.ThresholdC != b.ThresholdC ||
		a.PollCount != b.PollCount ||
		a.ActuatorFault != b.ActuatorFault
}
