package mqtt

import (
	"errors"
	"sync"
	"time"

	"heater_relay/internal/logger"
	"heater_relay/internal/models"
)

const (
	// DefaultQueueSize bounds how many publishes wait for the broker.
	DefaultQueueSize = 256
	// DefaultRetryInterval is how often a disconnected sink is retried.
	DefaultRetryInterval = 5 * time.Second
)

// ErrNotConnected is returned by a sink whose broker link is down. Async
// keeps the message queued and retries later.
var ErrNotConnected = errors.New("mqtt: not connected")

// Sink publishes synchronously. RealPublisher, FakePublisher and Noop all
// satisfy it.
type Sink interface {
	PublishEvent(e models.HeaterEvent) error
	PublishState(s models.HeaterState) error
	Close() error
}

// Async hands publishes to a background goroutine, so callers never wait on
// the broker. Pending messages live in a bounded ring buffer; the oldest
// are dropped when it overflows.
type Async struct {
	sink  Sink
	log   *logger.Logger
	retry time.Duration

	mu    sync.Mutex
	queue *ringBuffer

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewAsync starts the publishing goroutine. Close stops it.
func NewAsync(sink Sink, queueSize int, retry time.Duration, log *logger.Logger) *Async {
	if log == nil {
		log = logger.Nop()
	}
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	a := &Async{
		sink:    sink,
		log:     log,
		retry:   retry,
		queue:   newRingBuffer(queueSize),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go a.run()
	return a
}

// PublishEvent queues e. It never blocks.
func (a *Async) PublishEvent(e models.HeaterEvent) error {
	a.enqueue(outbound{event: &e})
	return nil
}

// PublishState queues s. It never blocks.
func (a *Async) PublishState(s models.HeaterState) error {
	a.enqueue(outbound{state: &s})
	return nil
}

// Pending returns the number of queued messages.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queue.len()
}

// Close makes one last delivery attempt, stops the goroutine and closes the
// sink.
func (a *Async) Close() error {
	a.once.Do(func() { close(a.done) })
	<-a.stopped
	return a.sink.Close()
}

func (a *Async) enqueue(m outbound) {
	a.mu.Lock()
	a.queue.push(m)
	a.mu.Unlock()
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Async) run() {
	defer close(a.stopped)
	var retry <-chan time.Time
	for {
		select {
		case <-a.done:
			a.flush()
			return
		case <-a.wake:
		case <-retry:
		}
		retry = nil
		if !a.flush() {
			retry = time.After(a.retry)
		}
	}
}

// flush delivers everything queued. It returns false when the sink is not
// connected; the undelivered tail goes back ahead of newer messages.
func (a *Async) flush() bool {
	a.mu.Lock()
	batch, dropped := a.queue.drainAll()
	a.mu.Unlock()
	if dropped > 0 {
		a.log.Warnw("mqtt_queue_overflow", "dropped", dropped)
	}

	for i, m := range batch {
		err := a.send(m)
		if errors.Is(err, ErrNotConnected) {
			a.requeue(batch[i:])
			return false
		}
		if err != nil {
			a.log.Warnw("mqtt_publish_failed", "err", err)
		}
	}
	return true
}

func (a *Async) send(m outbound) error {
	if m.event != nil {
		return a.sink.PublishEvent(*m.event)
	}
	return a.sink.PublishState(*m.state)
}

func (a *Async) requeue(tail []outbound) {
	a.mu.Lock()
	defer a.mu.Unlock()
	newer, _ := a.queue.drainAll()
	for _, m := range tail {
		a.queue.push(m)
	}
	for _, m := range newer {
		a.queue.push(m)
	}
}
