package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/repository"
)

// ErrInvalidFilter wraps every rejection of a LogFilter.
var ErrInvalidFilter = errors.New("invalid log filter")

var (
	errInvalidTimeRange = fmt.Errorf("%w: from must be <= to", ErrInvalidFilter)
	errUnknownEventType = fmt.Errorf("%w: unknown event type or category", ErrInvalidFilter)
	errUnknownMode      = fmt.Errorf("%w: unknown mode", ErrInvalidFilter)
	errNegativeLimit    = fmt.Errorf("%w: limit must be >= 0", ErrInvalidFilter)
)

// EventLogService reads the heater journal.
type EventLogService struct {
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo, now: time.Now}
}

// query is a LogFilter after normalisation.
type query struct {
	from, to time.Time
	types    []string
	mode     models.Mode
	limit    int
}

func normalizeFilter(f LogFilter) (query, error) {
	q := query{limit: f.Limit}
	if !f.From.IsZero() {
		q.from = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.to = f.To.UTC()
	}
	if !q.from.IsZero() && !q.to.IsZero() && q.from.After(q.to) {
		return query{}, errInvalidTimeRange
	}
	if f.Limit < 0 {
		return query{}, errNegativeLimit
	}

	types, ok := models.ExpandEventType(strings.ToUpper(strings.TrimSpace(f.Type)))
	if !ok {
		return query{}, errUnknownEventType
	}
	q.types = types

	if m := strings.ToUpper(strings.TrimSpace(string(f.Mode))); m != "" {
		mode, ok := models.ParseMode(m)
		if !ok {
			return query{}, errUnknownMode
		}
		q.mode = mode
	}
	return q, nil
}

// List returns journal entries matching f, oldest first. A single event type
// is filtered by the database; categories and modes are filtered here.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.HeaterEvent, error) {
	q, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}

	var repoType string
	if len(q.types) == 1 {
		repoType = q.types[0]
	}
	events, err := s.eventRepo.List(ctx, q.from, q.to, repoType)
	if err != nil {
		return nil, err
	}

	out := make([]models.HeaterEvent, 0, len(events))
	for _, e := range events {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	if q.limit > 0 && len(out) > q.limit {
		out = out[len(out)-q.limit:]
	}
	return out, nil
}

func (q query) matches(e models.HeaterEvent) bool {
	if len(q.types) > 1 && !containsType(q.types, e.Type) {
		return false
	}
	if q.mode != "" {
		m, ok := e.Mode()
		return ok && m == q.mode
	}
	return true
}

func containsType(types []string, t string) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// Summarize condenses the journal between f.From and f.To. Type, Mode and
// Limit are ignored: relay on-time needs every switching event. An open To
// ends at the current time; an open From starts at the first entry.
//
// The relay counts as off before the window unless the first switching
// event inside it is HEATER_OFF. START and STOP end any on period since the
// relay is released at both.
func (s *EventLogService) Summarize(ctx context.Context, f LogFilter) (models.JournalSummary, error) {
	q, err := normalizeFilter(LogFilter{From: f.From, To: f.To})
	if err != nil {
		return models.JournalSummary{}, err
	}
	events, err := s.eventRepo.List(ctx, q.from, q.to, "")
	if err != nil {
		return models.JournalSummary{}, err
	}

	sum := models.JournalSummary{
		From:   q.from,
		To:     q.to,
		Events: len(events),
		Counts: make(map[string]int),
	}
	if sum.To.IsZero() {
		sum.To = s.now().UTC()
	}
	if sum.From.IsZero() {
		sum.From = sum.To
		if len(events) > 0 {
			sum.From = events[0].OccurredAt
		}
	}

	var (
		on       bool
		onSince  time.Time
		onTime   time.Duration
		switched bool
	)
	for i, e := range events {
		sum.Counts[e.Type]++
		if e.IsFault() {
			sum.Faults++
		}
		switch e.Type {
		case models.EventHeaterOn:
			sum.Switches++
			if !on {
				on, onSince = true, e.OccurredAt
			}
			switched = true
		case models.EventHeaterOff, models.EventStart, models.EventStop:
			switch {
			case on:
				onTime += e.OccurredAt.Sub(onSince)
			case !switched && e.Type == models.EventHeaterOff:
				onTime += e.OccurredAt.Sub(sum.From)
			}
			on = false
			switched = true
		case models.EventModeChange:
			sum.LastModeChange = &events[i]
		}
	}
	if on && sum.To.After(onSince) {
		onTime += sum.To.Sub(onSince)
	}

	sum.HeaterOnSeconds = onTime.Seconds()
	if window := sum.To.Sub(sum.From); window > 0 {
		sum.DutyCycle = onTime.Seconds() / window.Seconds()
	}
	return sum, nil
}
