package service

import (
	"context"
	"time"

	"heater_relay/internal/logger"
	"heater_relay/internal/models"
)

// idlePause is slept when the acceptor fails, so a broken listener does not
// spin the loop.
const idlePause = 100 * time.Millisecond

// Loop is the single cooperative control loop. It owns the control unit,
// the poll scheduler and the request handler; all control state is touched
// from the goroutine running Run only.
type Loop struct {
	Unit      *ControlUnit
	Scheduler *PollScheduler
	Handler   *RequestHandler

	clock   Clock
	journal *Journal
	log     *logger.Logger
}

// NewLoop assembles a loop. journal may be nil.
func NewLoop(unit *ControlUnit, scheduler *PollScheduler, handler *RequestHandler, clock Clock, journal *Journal, log *logger.Logger) *Loop {
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		Unit:      unit,
		Scheduler: scheduler,
		Handler:   handler,
		clock:     clock,
		journal:   journal,
		log:       log,
	}
}

// Snapshot assembles the observable state of the loop.
func (l *Loop) Snapshot() models.HeaterState {
	st := l.Unit.QueryState()
	return models.HeaterState{
		Mode:          st.Mode,
		HeaterOn:      st.HeaterOn,
		Reading:       st.Reading,
		ThresholdC:    l.Unit.ThresholdC(),
		PollCount:     l.Scheduler.Counter(),
		ActuatorFault: st.ActuatorFault,
	}
}

// Step runs one iteration: a due poll first, then at most one client.
func (l *Loop) Step(ctx context.Context) {
	poll := l.Scheduler.Tick(l.clock.Millis())
	if poll.Polled {
		if !poll.Reading.Valid {
			l.log.Warnw("sensor_read_failed", "poll_count", poll.Count)
		} else {
			l.log.Debugw("sensor_polled",
				"temperature_c", poll.Reading.TemperatureC,
				"humidity", poll.Reading.Humidity,
				"poll_count", poll.Count)
		}
		l.record(ctx, poll)
	}

	ex, err := l.Handler.PollConnections(ctx)
	if err != nil && ctx.Err() == nil {
		l.log.Errorw("control_exchange_failed", "err", err)
		if !ex.Served {
			sleepCtx(ctx, idlePause)
		}
	}
	if ex.Served {
		l.record(ctx, PollResult{Count: l.Scheduler.Counter()})
	}
}

// Run starts the journal and steps until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	if l.journal != nil {
		if err := l.journal.Start(ctx, l.Snapshot()); err != nil {
			l.log.Warnw("journal_start_failed", "err", err)
		}
	}
	for ctx.Err() == nil {
		l.Step(ctx)
	}
	if l.journal != nil {
		// ctx is already done; the final entry uses a fresh one.
		stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.journal.Stop(stopCtx); err != nil {
			l.log.Warnw("journal_stop_failed", "err", err)
		}
	}
}

func (l *Loop) record(ctx context.Context, poll PollResult) {
	if l.journal == nil {
		return
	}
	if err := l.journal.Observe(ctx, l.Snapshot(), poll); err != nil {
		l.log.Warnw("journal_observe_failed", "err", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
